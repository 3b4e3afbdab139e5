package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/votekeeper/internal/server"
	"github.com/iudanet/votekeeper/internal/server/handlers"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// jwtSecretEnv переменная окружения с секретом подписи токенов
const jwtSecretEnv = "VOTEKEEPER_JWT_SECRET"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "votekeeper-server",
		Short:         "Reference REST/WebSocket backend for election results",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newTokenCmd(), newVersionCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var (
		cfg      server.Config
		secret   string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return fmt.Errorf("invalid log level %q", logLevel)
			}
			logger := slog.New(slog.NewTextHandler(cmd.OutOrStdout(), &slog.HandlerOptions{Level: level}))

			key, err := resolveSecret(secret)
			if err != nil {
				return err
			}
			cfg.JWT.Secret = key
			cfg.Version = Version

			srv, err := server.New(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := srv.Close(); cerr != nil {
					logger.Error("failed to close server", "error", cerr)
				}
			}()

			return srv.Run(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Addr, "addr", server.DefaultAddr, "listen address")
	flags.StringVar(&cfg.DBPath, "db", "votekeeper.db", "SQLite database path")
	flags.StringVar(&secret, "jwt-secret", "", "HMAC secret for admin tokens (env "+jwtSecretEnv+")")
	flags.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.Float64Var(&cfg.RateLimit, "rate-limit", server.DefaultRateLimit, "requests per second per client IP")
	flags.IntVar(&cfg.RateBurst, "rate-burst", server.DefaultRateBurst, "burst size per client IP")
	flags.DurationVar(&cfg.IdempotencyTTL, "idempotency-ttl", server.DefaultIdempotencyTTL, "how long replayable write responses are kept")
	flags.StringSliceVar(&cfg.WSOrigins, "ws-origin", nil, "allowed Origin patterns for /api/ws")

	return cmd
}

func newTokenCmd() *cobra.Command {
	var (
		secret  string
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin token for write access",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := resolveSecret(secret)
			if err != nil {
				return err
			}
			token, err := handlers.GenerateAdminToken(handlers.JWTConfig{Secret: key, TokenTTL: ttl}, subject)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&secret, "jwt-secret", "", "HMAC secret (env "+jwtSecretEnv+")")
	cmd.Flags().StringVar(&subject, "subject", "admin", "operator name stored in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime, 0 for no expiry")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "VoteKeeper Server\n")
			fmt.Fprintf(out, "Version:    %s\n", Version)
			fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
			fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
		},
	}
}

// resolveSecret берет секрет из флага, иначе из окружения
func resolveSecret(flagValue string) ([]byte, error) {
	secret := flagValue
	if secret == "" {
		secret = os.Getenv(jwtSecretEnv)
	}
	if secret == "" {
		return nil, errors.New("jwt secret is required: pass --jwt-secret or set " + jwtSecretEnv)
	}
	return []byte(secret), nil
}
