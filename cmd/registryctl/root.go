package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"modelregistry/internal/config"
	"modelregistry/internal/core"
	"modelregistry/internal/logging"
)

// app carries the state shared by every subcommand after flag parsing.
type app struct {
	configPath string
	driver     string
	dbPath     string
	logLevel   string

	cfg config.Config
	log zerolog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "registryctl",
		Short:         "Administer the model registry database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (.toml, .yaml, .yml or .json)")
	flags.StringVar(&a.driver, "driver", "", "storage driver: sqlite, postgres or memory")
	flags.StringVar(&a.dbPath, "db", "", "sqlite database path or postgres DSN")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		migrateCommand(a),
		statsCommand(a),
		searchCommand(a),
		listCommand(a),
		cleanupCommand(a),
		exportCommand(a),
	)
	return root
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.driver != "" {
		cfg.Storage.Driver = a.driver
	}
	if a.dbPath != "" {
		if cfg.Storage.Driver == config.DriverPostgres {
			cfg.Storage.PostgresDSN = a.dbPath
		} else {
			cfg.Storage.SQLitePath = a.dbPath
		}
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.New(cfg.Log, cmd.ErrOrStderr())
	return nil
}

// withService opens a migrated service for the duration of fn.
func (a *app) withService(ctx context.Context, fn func(*core.Service) error) error {
	svc, err := core.OpenService(ctx, a.cfg, a.log)
	if err != nil {
		a.log.Error().Err(err).Str("driver", a.cfg.Storage.Driver).Msg("open registry")
		return fmt.Errorf("open registry: %w", err)
	}
	defer func() {
		if err := svc.Store().Close(); err != nil {
			a.log.Warn().Err(err).Msg("close store")
		}
	}()
	return fn(svc)
}
