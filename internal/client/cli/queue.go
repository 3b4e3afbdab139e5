package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/iudanet/votekeeper/internal/models"
)

func (c *Cli) queueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect queued offline changes",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List changes waiting for replay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.open(cmd.Context()); err != nil {
				return err
			}
			entries, err := c.queue.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				c.io.Println("✓ Queue is empty")
				return nil
			}
			return c.printMutations(entries)
		},
	}

	dead := &cobra.Command{
		Use:   "dead",
		Short: "List changes that exhausted their replay attempts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.open(cmd.Context()); err != nil {
				return err
			}
			entries, err := c.queue.Dead(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				c.io.Println("✓ No dead letters")
				return nil
			}
			return c.printMutations(entries)
		},
	}

	requeue := &cobra.Command{
		Use:   "requeue",
		Short: "Move dead letters back into the replay queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.open(cmd.Context()); err != nil {
				return err
			}
			n, err := c.queue.Requeue(cmd.Context())
			if err != nil {
				return err
			}
			c.io.Printf("Requeued %d change(s)\n", n)
			return nil
		},
	}

	cmd.AddCommand(list, dead, requeue)
	return cmd
}

func (c *Cli) printMutations(entries []*models.QueuedMutation) error {
	w := c.table()
	fmt.Fprintln(w, "ID\tMETHOD\tTARGET\tQUEUED\tATTEMPTS\tLAST ERROR")
	for _, m := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			m.ID, m.Method, m.Target, humanize.Time(m.Timestamp), m.Attempts, truncate(m.LastError, 60))
	}
	return w.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
