package cli

import (
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/iudanet/votekeeper/internal/client/config"
)

func (c *Cli) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change client settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := toml.Marshal(c.cfg.Redacted())
			if err != nil {
				return fmt.Errorf("cannot marshal config: %w", err)
			}
			c.io.Printf("# %s\n", c.cfgPath)
			_, err = c.io.Write(data)
			return err
		},
	}

	set := &cobra.Command{
		Use:     "set <section.field> <value>",
		Short:   "Set a config value",
		Example: "  votekeeper config set server.url https://results.example.org/api",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.cfgPath)
			if err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := config.Save(c.cfgPath, cfg); err != nil {
				return err
			}
			c.io.Printf("✓ %s updated\n", args[0])
			return nil
		},
	}

	setToken := &cobra.Command{
		Use:   "set-token",
		Short: "Store the admin bearer token (read from the terminal without echo)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := c.io.ReadPassword("Admin token: ")
			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}
			if token == "" {
				return fmt.Errorf("token cannot be empty")
			}

			cfg, err := config.Load(c.cfgPath)
			if err != nil {
				return err
			}
			if err := cfg.Set("server.token", token); err != nil {
				return err
			}
			if err := config.Save(c.cfgPath, cfg); err != nil {
				return err
			}
			c.io.Println("✓ Token saved")
			return nil
		},
	}

	cmd.AddCommand(show, set, setToken)
	return cmd
}
