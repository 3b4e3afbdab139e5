package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/votekeeper/internal/client/connectivity"
	"github.com/iudanet/votekeeper/internal/client/realtime"
	"github.com/iudanet/votekeeper/pkg/api"
)

func (c *Cli) watchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow live updates and replay queued changes whenever the server comes back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.flags.offline {
				return fmt.Errorf("watch needs the server, drop --offline")
			}
			ctx := cmd.Context()
			if err := c.prepare(ctx); err != nil {
				return err
			}
			return c.watch(ctx)
		},
	}
}

// watch запускает проверку сети, воспроизведение очереди и realtime канал
// до отмены контекста
func (c *Cli) watch(ctx context.Context) error {
	wsURL, err := realtime.WSURL(c.cfg.Server.URL)
	if err != nil {
		return err
	}

	unsubscribe := c.monitor.Subscribe(func(online bool) {
		if online {
			c.io.Printf("%s  ● online\n", time.Now().Format(time.TimeOnly))
			return
		}
		c.io.Printf("%s  ○ offline\n", time.Now().Format(time.TimeOnly))
	})
	defer unsubscribe()

	prober := connectivity.NewProber(c.client, c.monitor, c.cfg.Sync.ProbeInterval.Duration, c.logger)
	listener := realtime.NewListener(wsURL, c.cache, c.logger,
		realtime.WithHinter(c.monitor),
		realtime.WithOnEvent(func(ev api.Event) {
			c.io.Printf("%s  %s\n", time.Now().Format(time.TimeOnly), ev.Type)
		}),
	)

	state := "offline"
	if c.monitor.IsOnline() {
		state = "online"
	}
	c.io.Printf("Watching %s (%s), press Ctrl+C to stop\n", c.cfg.Server.URL, state)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c.monitor.Run(ctx)
		return nil
	})
	g.Go(func() error {
		prober.Start(ctx)
		return nil
	})
	g.Go(func() error {
		return listener.Run(ctx)
	})
	return g.Wait()
}
