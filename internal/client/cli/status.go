package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func (c *Cli) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show connectivity, queue and cache state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := c.prepare(ctx); err != nil {
				return err
			}

			c.io.Println("=== VoteKeeper Status ===")
			c.io.Println()
			c.io.Printf("Server:        %s\n", c.cfg.Server.URL)
			if c.monitor.IsOnline() {
				c.io.Printf("Connectivity:  online (%s)\n", c.monitor.NetworkInfo().RTT.Round(time.Millisecond))
			} else {
				c.io.Println("Connectivity:  offline")
			}
			if c.cfg.Server.Token == "" {
				c.io.Println("Token:         not set (writes will be rejected)")
			}

			pending, err := c.queue.Size(ctx)
			if err != nil {
				return fmt.Errorf("failed to read queue: %w", err)
			}
			dead, err := c.queue.Dead(ctx)
			if err != nil {
				return fmt.Errorf("failed to read dead letters: %w", err)
			}
			stats := c.cache.Stats(ctx)

			c.io.Println()
			c.io.Printf("Queued changes: %d\n", pending)
			c.io.Printf("Dead letters:   %d\n", len(dead))
			c.io.Printf("Cached reads:   %d\n", stats.DurableEntries)

			lastSync, err := c.store.GetLastSyncTimestamp(ctx)
			if err != nil {
				return fmt.Errorf("failed to read sync metadata: %w", err)
			}
			status, err := c.store.GetSyncStatus(ctx)
			if err != nil {
				return fmt.Errorf("failed to read sync metadata: %w", err)
			}
			if lastSync > 0 {
				c.io.Printf("Last sync:      %s (%s)\n", humanize.Time(time.Unix(lastSync, 0)), status)
			} else {
				c.io.Println("Last sync:      never")
			}

			c.io.Println()
			c.io.Printf("Database:       %s", c.cfg.Cache.DBPath)
			if info, err := os.Stat(c.cfg.Cache.DBPath); err == nil {
				c.io.Printf(" (%s)", humanize.IBytes(uint64(info.Size())))
			}
			c.io.Println()
			if c.store.Sealed() {
				c.io.Println("Encryption:     enabled")
			}

			if pending > 0 {
				c.io.Println()
				c.io.Printf("⚠️  %d change(s) waiting, run 'votekeeper sync' to replay them\n", pending)
			}
			return nil
		},
	}
}
