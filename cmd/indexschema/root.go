package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/syssam/indexschema/config"
)

const (
	checkMark = "✓"
	crossMark = "✗"
)

// cli holds the state shared by the subcommands.
type cli struct {
	cfgFile  string
	logLevel string
	cfg      *config.Config
	logger   zerolog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zerolog.Nop()}
	rootCmd := &cobra.Command{
		Use:   "indexschema",
		Short: "Compile indexer entity schemas",
		Long: `indexschema compiles a GraphQL entity schema into a validated model
and derives its storage schema, application types and default values.

Examples:
  indexschema validate schema.graphql
  indexschema inspect schema.graphql
  indexschema compile --watch
  indexschema ddl schema.graphql --from previous.graphql
  indexschema migrate schema.graphql --dsn postgres://localhost/indexer`,
		SilenceUsage:      true,
		PersistentPreRunE: c.init,
	}
	rootCmd.PersistentFlags().StringVarP(&c.cfgFile, "config", "c", "indexschema.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level override: debug, info, warn, error")
	rootCmd.AddCommand(
		c.validateCmd(),
		c.inspectCmd(),
		c.compileCmd(),
		c.ddlCmd(),
		c.migrateCmd(),
		versionCmd(),
	)
	return rootCmd
}

// init loads the configuration, falling back to the environment when the
// config file does not exist.
func (c *cli) init(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadWithFallback(c.cfgFile)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
	}
	c.cfg = cfg
	c.logger = cfg.Logger()
	c.logger.Debug().Str("config", c.cfgFile).Strs("schemas", cfg.Schemas).Msg("configuration loaded")
	return nil
}

// schemas returns the schema files of a run: the arguments if any, the
// configured schemas otherwise.
func (c *cli) schemas(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(c.cfg.Schemas) == 0 {
		return nil, errors.New("no schema files: pass them as arguments or set schemas in the config file")
	}
	return c.cfg.Schemas, nil
}

// watch runs fn once, and again whenever one of the files or the config file
// changes, until interrupted. Errors of re-runs are logged.
func (c *cli) watch(ctx context.Context, paths []string, fn func() error) error {
	if err := fn(); err != nil {
		c.logger.Error().Err(err).Msg("run failed")
	}
	if _, err := os.Stat(c.cfgFile); err == nil {
		paths = append(slices.Clone(paths), c.cfgFile)
	}
	w, err := config.NewWatcher(c.logger, paths...)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	c.logger.Info().Strs("files", paths).Msg("watching files for changes")
	err = w.Run(ctx, func(path string) {
		c.logger.Info().Str("file", path).Msg("file changed, running again")
		if path == c.cfgFile || sameFile(path, c.cfgFile) {
			cfg, err := config.Load(c.cfgFile)
			if err != nil {
				c.logger.Error().Err(err).Msg("config reload failed, keeping old config")
				return
			}
			c.cfg = cfg
		}
		if err := fn(); err != nil {
			c.logger.Error().Err(err).Msg("run failed")
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func sameFile(a, b string) bool {
	sa, err := os.Stat(a)
	if err != nil {
		return false
	}
	sb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(sa, sb)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Skip configuration loading.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "indexschema %s (commit: %s, built: %s)\n", version, commit, buildDate)
		},
	}
}
