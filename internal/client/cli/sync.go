package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func (c *Cli) syncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replay queued changes against the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := c.open(ctx); err != nil {
				return err
			}

			c.io.Println("=== Synchronization ===")
			c.io.Println()

			pending, err := c.sync.GetPendingSyncCount(ctx)
			if err != nil {
				return fmt.Errorf("failed to read queue: %w", err)
			}
			if pending == 0 {
				c.io.Println("✓ Nothing to synchronize")
				return nil
			}
			if !c.goOnline(ctx) {
				return fmt.Errorf("server is unreachable, %d change(s) remain queued", pending)
			}

			c.io.Printf("Replaying %d queued change(s)...\n", pending)
			result, err := c.sync.Sync(ctx)
			if err != nil {
				return fmt.Errorf("synchronization failed: %w", err)
			}

			c.io.Println()
			c.io.Printf("Applied:        %d\n", result.Applied)
			if result.Failed > 0 {
				c.io.Printf("Failed:         %d\n", result.Failed)
			}
			if result.DeadLettered > 0 {
				c.io.Printf("Dead-lettered:  %d (see 'votekeeper queue dead')\n", result.DeadLettered)
			}
			for _, e := range multierr.Errors(result.Err) {
				c.io.Printf("  - %v\n", e)
			}

			if result.Failed == 0 {
				c.io.Println()
				c.io.Println("✓ Synchronization completed successfully!")
				return nil
			}
			return fmt.Errorf("%d change(s) could not be applied", result.Failed)
		},
	}
}
