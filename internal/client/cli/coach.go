package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/iudanet/coachsync/internal/validation"
	"github.com/iudanet/coachsync/pkg/api"
)

func (c *Cli) runCoach(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("coach subcommand is required: create, set, end, token, upload")
	}

	switch args[0] {
	case "create":
		return c.runCoachCreate(ctx, args[1:])
	case "set":
		return c.runCoachSet(ctx, args[1:])
	case "end":
		return c.runCoachEnd(ctx, args[1:])
	case "token":
		return c.runCoachToken(ctx, args[1:])
	case "upload":
		return c.runCoachUpload(ctx, args[1:])
	default:
		return fmt.Errorf("unknown coach subcommand: %s", args[0])
	}
}

func (c *Cli) runCoachCreate(ctx context.Context, args []string) error {
	fs := newFlagSet("coach create")
	viewMode := fs.String("view", "", "initial view mode: word, paragraph")
	sessionMode := fs.String("mode", "", "initial session mode: live, paused")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: coach create [-view MODE] [-mode MODE] <call-id>")
	}
	callID, err := parseCallID(fs.Arg(0))
	if err != nil {
		return err
	}

	client, err := c.coachClient()
	if err != nil {
		return err
	}

	row, err := client.CreateSession(ctx, api.CreateSessionRequest{
		CallID:      callID,
		ViewMode:    *viewMode,
		SessionMode: *sessionMode,
	})
	if err != nil {
		return err
	}

	c.io.Println("✓ Session created")
	c.printRow(row)
	return nil
}

func (c *Cli) runCoachSet(ctx context.Context, args []string) error {
	fs := newFlagSet("coach set")
	word := fs.Int("word", 0, "current word index")
	paragraph := fs.Int("paragraph", 0, "current paragraph index")
	viewMode := fs.String("view", "", "view mode: word, paragraph")
	sessionMode := fs.String("mode", "", "session mode: live, paused, ended")
	turnOne := fs.Bool("turn-one", false, "highlight turns of the first speaker")
	speakers := fs.Bool("speakers", false, "highlight speakers")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: coach set [flags] <session-id>")
	}
	sessionID := fs.Arg(0)
	if err := validation.ValidateSessionID(sessionID); err != nil {
		return fmt.Errorf("invalid session id: %w", err)
	}

	// Отправляются только явно заданные флаги
	var req api.UpdateSessionRequest
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "word":
			req.CurrentWordIndex = word
		case "paragraph":
			req.CurrentParagraphIndex = paragraph
		case "view":
			req.ViewMode = viewMode
		case "mode":
			req.SessionMode = sessionMode
		case "turn-one":
			req.HighlightTurnOne = turnOne
		case "speakers":
			req.HighlightSpeakers = speakers
		}
	})
	if req == (api.UpdateSessionRequest{}) {
		return fmt.Errorf("nothing to update")
	}

	client, err := c.coachClient()
	if err != nil {
		return err
	}

	row, err := client.UpdateSession(ctx, sessionID, req)
	if err != nil {
		return err
	}

	c.io.Println("✓ Session updated")
	c.printRow(row)
	return nil
}

func (c *Cli) runCoachEnd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: coach end <session-id>")
	}
	if err := validation.ValidateSessionID(args[0]); err != nil {
		return fmt.Errorf("invalid session id: %w", err)
	}

	client, err := c.coachClient()
	if err != nil {
		return err
	}

	row, err := client.EndSession(ctx, args[0])
	if err != nil {
		return err
	}

	c.io.Println("✓ Session ended")
	c.printRow(row)
	return nil
}

func (c *Cli) runCoachToken(ctx context.Context, args []string) error {
	fs := newFlagSet("coach token")
	ttl := fs.Duration("ttl", 0, "token lifetime, 0 = server default")
	subject := fs.String("subject", "", "spectator name for server logs")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: coach token [-ttl DURATION] [-subject NAME] <session-id>")
	}
	if *ttl < 0 {
		return fmt.Errorf("ttl must not be negative")
	}
	sessionID := fs.Arg(0)
	if err := validation.ValidateSessionID(sessionID); err != nil {
		return fmt.Errorf("invalid session id: %w", err)
	}

	client, err := c.coachClient()
	if err != nil {
		return err
	}

	resp, err := client.IssueToken(ctx, sessionID, api.TokenRequest{
		Subject:    *subject,
		TTLSeconds: int64(ttl.Seconds()),
	})
	if err != nil {
		return err
	}

	c.io.Println("✓ Spectator token issued")
	c.io.Printf("Session: %s\n", resp.SessionID)
	c.io.Printf("Expires in: %s\n", time.Duration(resp.ExpiresIn)*time.Second)
	c.io.Printf("Token: %s\n", resp.Token)
	c.io.Println()
	c.io.Printf("Spectator login: coachsync --server %s login %s %s\n", c.serverURL, resp.SessionID, resp.Token)
	return nil
}

func (c *Cli) runCoachUpload(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: coach upload <call-id> <words.json>")
	}
	callID, err := parseCallID(args[0])
	if err != nil {
		return err
	}

	content, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read words file: %w", err)
	}
	// Принимаем как {"words": [...]}, так и голый массив слов
	var req api.SaveTranscriptRequest
	if err := json.Unmarshal(content, &req.Words); err != nil {
		if err := json.Unmarshal(content, &req); err != nil {
			return fmt.Errorf("failed to decode words file: %w", err)
		}
	}
	if len(req.Words) == 0 {
		return fmt.Errorf("words file contains no words")
	}

	client, err := c.coachClient()
	if err != nil {
		return err
	}

	if err := client.SaveTranscript(ctx, callID, req); err != nil {
		return err
	}

	c.io.Printf("✓ Transcript of call %d saved: %d words\n", callID, len(req.Words))
	return nil
}

func (c *Cli) printRow(row *api.SessionRow) {
	c.io.Printf("ID: %s\n", row.ID)
	c.io.Printf("Call: %d\n", row.CallID)
	c.io.Printf("Mode: %s, view: %s\n", row.SessionMode, row.ViewMode)
	c.io.Printf("Word: %d, paragraph: %d\n", row.CurrentWordIndex, row.CurrentParagraphIndex)
	c.io.Printf("Highlight turn one: %s, speakers: %s\n", onOff(row.HighlightTurnOne), onOff(row.HighlightSpeakers))
	c.io.Printf("Active: %t\n", row.IsActive)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseCallID(s string) (int64, error) {
	callID, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid call id %q: %w", s, err)
	}
	if err := validation.ValidateCallID(callID); err != nil {
		return 0, fmt.Errorf("invalid call id: %w", err)
	}
	return callID, nil
}
