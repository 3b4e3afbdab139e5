package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func (c *Cli) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached responses",
	}

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop every cached response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if !yes && c.io.IsTerminal() {
				answer, err := c.io.ReadInput("Drop all cached responses? [y/N]: ")
				if err != nil {
					return err
				}
				if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
					c.io.Println("Aborted")
					return nil
				}
			}
			if err := c.open(ctx); err != nil {
				return err
			}
			before := c.cache.Stats(ctx).DurableEntries
			if err := c.cache.Clear(ctx); err != nil {
				return err
			}
			c.io.Printf("✓ Removed %d cached response(s)\n", before)
			return nil
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(clearCmd)
	return cmd
}
