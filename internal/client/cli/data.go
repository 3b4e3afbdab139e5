package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/votekeeper/internal/client/resources"
	"github.com/iudanet/votekeeper/internal/models"
)

func (c *Cli) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <path> [key=value...]",
		Short: "Read a resource, falling back to the local cache when offline",
		Example: `  votekeeper get /candidates district=d-01
  votekeeper --offline get /results/live`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args[1:])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := c.prepare(ctx); err != nil {
				return err
			}

			data, err := c.dispatcher.Get(ctx, normalizePath(args[0]), params)
			if err != nil {
				return describeOffline(err)
			}
			return c.printJSON(data)
		},
	}
}

func (c *Cli) writeCommand(use, short string, method models.MutationMethod) *cobra.Command {
	var queueIfOffline bool
	cmd := &cobra.Command{
		Use:   use + " <path> <json>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := json.RawMessage(args[1])
			if !json.Valid(payload) {
				return fmt.Errorf("payload is not valid JSON")
			}
			ctx := cmd.Context()
			if err := c.prepare(ctx); err != nil {
				return err
			}

			result, err := c.resourceService(queueIfOffline).Write(ctx, method, normalizePath(args[0]), payload)
			if err != nil {
				return describeOffline(err)
			}
			return c.printWriteResult(result)
		},
	}
	cmd.Flags().BoolVar(&queueIfOffline, "queue", false, "Queue the change for replay when the server is unreachable")
	return cmd
}

func (c *Cli) deleteCommand() *cobra.Command {
	var queueIfOffline bool
	cmd := &cobra.Command{
		Use:   "delete <path>",
		Short: "Delete a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := c.prepare(ctx); err != nil {
				return err
			}

			result, err := c.resourceService(queueIfOffline).Write(ctx, models.MethodDelete, normalizePath(args[0]), nil)
			if err != nil {
				return describeOffline(err)
			}
			return c.printWriteResult(result)
		},
	}
	cmd.Flags().BoolVar(&queueIfOffline, "queue", false, "Queue the change for replay when the server is unreachable")
	return cmd
}

func (c *Cli) printWriteResult(result *resources.WriteResult) error {
	if result.Queued {
		c.io.Printf("Server unreachable: queued change #%d, run 'votekeeper sync' when back online\n", result.QueueID)
		return nil
	}
	if len(result.Data) == 0 {
		c.io.Println("✓ Done")
		return nil
	}
	return c.printJSON(result.Data)
}

func (c *Cli) printJSON(data json.RawMessage) error {
	if len(data) == 0 {
		c.io.Println("(empty response)")
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	buf.WriteByte('\n')
	_, err := c.io.Write(buf.Bytes())
	return err
}

// parseParams разбирает аргументы вида key=value
func parseParams(args []string) (map[string]string, error) {
	params := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", arg)
		}
		params[key] = value
	}
	return params, nil
}

// normalizePath приводит путь к виду /resource
func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
