// Package cli реализует команды votekeeper поверх клиентских сервисов.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	apiclient "github.com/iudanet/votekeeper/internal/client/api"
	"github.com/iudanet/votekeeper/internal/client/cache"
	"github.com/iudanet/votekeeper/internal/client/config"
	"github.com/iudanet/votekeeper/internal/client/connectivity"
	"github.com/iudanet/votekeeper/internal/client/dispatcher"
	"github.com/iudanet/votekeeper/internal/client/iocli"
	"github.com/iudanet/votekeeper/internal/client/queue"
	"github.com/iudanet/votekeeper/internal/client/resources"
	"github.com/iudanet/votekeeper/internal/client/storage/boltdb"
	"github.com/iudanet/votekeeper/internal/client/sync"
	"github.com/iudanet/votekeeper/internal/models"
)

// VersionInfo данные сборки (задаются через ldflags)
type VersionInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

type globalFlags struct {
	configPath string
	serverURL  string
	dbPath     string
	logLevel   string
	offline    bool
}

// Cli собирает сервисы клиента и предоставляет команды
type Cli struct {
	io         iocli.IO
	logger     *slog.Logger
	cfg        *config.Config
	store      *boltdb.Storage
	client     *apiclient.Client
	cache      *cache.Service
	queue      *queue.Service
	sync       sync.Service
	monitor    *connectivity.Monitor
	dispatcher *dispatcher.Dispatcher
	cfgPath    string
	version    VersionInfo
	flags      globalFlags
}

// New создает CLI. Сервисы создаются лениво при выполнении команды.
func New(io iocli.IO, version VersionInfo) *Cli {
	return &Cli{io: io, version: version}
}

// Command возвращает корневую команду
func (c *Cli) Command() *cobra.Command {
	root := &cobra.Command{
		Use:           "votekeeper",
		Short:         "Offline-first client for the election results API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.loadConfig(cmd)
		},
	}
	root.SetOut(c.io)
	root.SetErr(c.io)

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.configPath, "config", "", "Path to config file (default: ~/.votekeeper/config.toml)")
	pf.StringVar(&c.flags.serverURL, "server", "", "API base URL (overrides server.url)")
	pf.StringVar(&c.flags.dbPath, "db", "", "Path to local database (overrides cache.db_path)")
	pf.StringVar(&c.flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides log.level)")
	pf.BoolVar(&c.flags.offline, "offline", false, "Do not contact the server")

	root.AddCommand(
		c.getCommand(),
		c.writeCommand("post", "Create a resource", models.MethodCreate),
		c.writeCommand("put", "Update a resource", models.MethodUpdate),
		c.deleteCommand(),
		c.districtsCommand(),
		c.partiesCommand(),
		c.candidatesCommand(),
		c.resultsCommand(),
		c.queueCommand(),
		c.syncCommand(),
		c.cacheCommand(),
		c.statusCommand(),
		c.watchCommand(),
		c.configCommand(),
		c.versionCommand(),
	)
	return root
}

// Execute выполняет команду с аргументами
func (c *Cli) Execute(ctx context.Context, args []string) error {
	root := c.Command()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// Close освобождает локальное хранилище
func (c *Cli) Close() error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	return err
}

// loadConfig читает конфигурацию и применяет глобальные флаги
func (c *Cli) loadConfig(cmd *cobra.Command) error {
	path := c.flags.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.Server.URL = c.flags.serverURL
	}
	if flags.Changed("db") {
		cfg.Cache.DBPath = c.flags.dbPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = c.flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.cfgPath = path
	c.logger = slog.New(slog.NewTextHandler(c.io, &slog.HandlerOptions{Level: level}))
	return nil
}

// open открывает хранилище и собирает сервисы, не требующие сети.
// Монитор и диспетчер создаются в goOnline.
func (c *Cli) open(ctx context.Context) error {
	if c.store != nil {
		return nil
	}

	if dir := filepath.Dir(c.cfg.Cache.DBPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	var opts []boltdb.Option
	if c.cfg.Cache.Passphrase != "" {
		opts = append(opts, boltdb.WithPassphrase(c.cfg.Cache.Passphrase))
	}
	store, err := boltdb.New(ctx, c.cfg.Cache.DBPath, opts...)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	c.store = store

	c.client = apiclient.NewClient(c.cfg.Server.URL, apiclient.WithToken(c.cfg.Server.Token))
	c.cache = cache.NewService(c.logger,
		cache.WithStorage(store),
		cache.WithDefaultTTL(c.cfg.Cache.DefaultTTL.Duration),
	)
	c.queue = queue.NewService(store, nil, c.logger)
	c.sync = sync.NewService(c.client, store, store, c.logger,
		sync.WithMaxAttempts(c.cfg.Sync.MaxAttempts),
	)
	return nil
}

// goOnline проверяет доступность сервера. Первая проверка задает начальное
// состояние монитора и не считается переходом в онлайн, поэтому не запускает
// воспроизведение очереди. С --offline сервер не опрашивается.
func (c *Cli) goOnline(ctx context.Context) bool {
	if c.monitor != nil {
		if c.flags.offline {
			return false
		}
		prober := connectivity.NewProber(c.client, c.monitor, c.cfg.Sync.ProbeInterval.Duration, c.logger)
		return prober.Check(ctx)
	}

	online := false
	var rtt time.Duration
	if !c.flags.offline {
		prober := connectivity.NewProber(c.client, nil, c.cfg.Sync.ProbeInterval.Duration, c.logger)
		started := time.Now()
		online = prober.Probe(ctx)
		rtt = time.Since(started)
	}

	c.monitor = connectivity.NewMonitor(online, c.sync, c.logger)
	if online {
		c.monitor.SetNetworkInfo(connectivity.NetworkInfo{Type: "http", RTT: rtt})
	}
	c.dispatcher = dispatcher.New(c.client, c.cache, c.monitor, c.logger)
	return online
}

// resourceService возвращает типизированный сервис. queueIfOffline включает
// постановку записей в очередь при отсутствии сети.
func (c *Cli) resourceService(queueIfOffline bool) *resources.Service {
	return resources.NewService(c.dispatcher, c.queue, queueIfOffline, c.logger)
}

// prepare открывает хранилище и определяет состояние сети
func (c *Cli) prepare(ctx context.Context) error {
	if err := c.open(ctx); err != nil {
		return err
	}
	c.goOnline(ctx)
	return nil
}

func describeOffline(err error) error {
	switch {
	case errors.Is(err, dispatcher.ErrOfflineNoCache):
		return fmt.Errorf("%w (server unreachable and nothing cached for this request)", err)
	case errors.Is(err, dispatcher.ErrOfflineWrite):
		return fmt.Errorf("%w (use --queue to replay it on the next sync)", err)
	}
	return err
}
