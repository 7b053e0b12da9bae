package cli

import (
	"context"
	"fmt"
)

// Run выполняет команду клиента
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return c.runLogin(ctx, args)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "watch":
		return c.runWatch(ctx)
	case "transcript":
		return c.runTranscript(ctx, args)
	case "coach":
		return c.runCoach(ctx, args)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}
