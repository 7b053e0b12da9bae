package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/coachsync/internal/client/transcript"
	"github.com/iudanet/coachsync/internal/models"
)

func (c *Cli) runTranscript(ctx context.Context, args []string) error {
	fs := newFlagSet("transcript")
	cached := fs.Bool("cached", false, "read from the local cache only")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	authData, err := c.requireAuth(ctx)
	if err != nil && !*cached {
		return err
	}

	var callID int64
	switch {
	case fs.NArg() > 0:
		callID, err = parseCallID(fs.Arg(0))
		if err != nil {
			return err
		}
	case authData != nil:
		callID, err = sessionCallID(ctx, c.spectatorClient(authData), authData.SessionID)
		if err != nil {
			return fmt.Errorf("failed to resolve call of session: %w", err)
		}
	default:
		return fmt.Errorf("call id is required")
	}

	if *cached {
		loader := transcript.NewLoader(nil, c.store, c.logger)
		ok, err := loader.LoadCached(ctx, callID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("transcript of call %d is not cached", callID)
		}
		c.printTranscript(loader.State().Transcript)
		return nil
	}

	loader := transcript.NewLoader(c.spectatorClient(authData), c.store, c.logger)
	if err := loader.Fetch(ctx, callID); err != nil {
		return err
	}
	c.printTranscript(loader.State().Transcript)
	return nil
}

func (c *Cli) printTranscript(t *models.Transcript) {
	c.io.Printf("=== Call %d: %d words, %.1fs ===\n", t.CallID, len(t.Words), t.Duration())
	for i, w := range t.Words {
		c.io.Printf("%5d  %7.2f  [%d] %s\n", i, w.StartTime, w.Turn, w.Text)
	}
}
