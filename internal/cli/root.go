// Package cli implements the tourctl command tree.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petrijr/featuretour/internal/config"
)

// app carries the settings shared by every subcommand. It is filled in by
// the root command's PersistentPreRunE.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        config.Config
	logger     *slog.Logger
}

// NewRootCommand builds the tourctl command tree.
func NewRootCommand() *cobra.Command {
	a := &app{v: config.New()}

	c := &cobra.Command{
		Use:   "tourctl",
		Short: "tourctl runs, records and stores guided feature tours.",
		Long:  "tourctl runs, records and stores guided feature tours.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return a.setupConfig(cmd)
		},
	}

	f := c.PersistentFlags()
	f.StringVar(&a.configFile, "config", "", "Path to a config file (yaml, json or toml)")
	f.String("log-level", "info", "Log level: debug, info, warn or error")
	f.String("log-format", "text", "Log format: text or json")
	f.String("store-driver", string(config.DriverSQLite), "Tour store: memory, sqlite, postgres, redis or mongo")
	f.String("store-dsn", "featuretour.db", "File path, URL or address of the tour store")
	f.String("store-prefix", "featuretour:", "Key prefix of the redis store")
	f.String("store-database", "featuretour", "Database name of the mongo store")
	f.String("store-collection", "tours", "Collection name of the mongo store")
	f.String("tour-default-id", "my-tour", "Tour id used when none is given")
	f.String("tour-default-name", "MyTour", "Tour name used when none is given")

	c.AddCommand(
		NewDemoCommand(a),
		NewGenerateCommand(a),
		NewStoreCommand(a),
		NewHistoryCommand(a),
	)
	return c
}

func (a *app) setupConfig(cmd *cobra.Command) error {
	if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cfg.Logger(cmd.ErrOrStderr())
	return nil
}

// Execute runs tourctl until it finishes or the process is interrupted.
func Execute() {
	lifetimeCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := NewRootCommand().ExecuteContext(lifetimeCtx); err != nil {
		cancel()
		os.Exit(1)
	}
}
