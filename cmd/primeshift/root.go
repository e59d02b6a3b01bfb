package main

import (
	"context"
	"os"

	"github.com/primeshift/primeshift/cmd/primeshift/commands"
	"github.com/primeshift/primeshift/cmd/primeshift/opts"
	"github.com/primeshift/primeshift/pkg/config"
	"github.com/primeshift/primeshift/pkg/report"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debug      bool
	noColor    bool
)

// NewRootCmd builds the primeshift command tree.
func NewRootCmd() *cobra.Command {
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:           "primeshift",
		Short:         "Migrate PrimeNG usages to the next major version",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(setupLogging(cmd))

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			rootOpts.Config = cfg
			rootOpts.Printer = report.NewPrinter(cmd.OutOrStdout(), noColor)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".primeshift.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(commands.NewRunCmd(rootOpts))
	cmd.AddCommand(commands.NewScanCmd(rootOpts))
	cmd.AddCommand(commands.NewRulesCmd(rootOpts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig reads the config file when it exists. A missing file at the
// default location is fine; an explicitly named file must exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	ctx := cmd.Context()

	if _, err := os.Stat(configFile); err != nil {
		if os.IsNotExist(err) && !cmd.Flags().Changed("config") {
			return config.Default(), nil
		}
		return nil, errors.Errorf("config file %s: %w", configFile, err)
	}

	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// setupLogging configures zerolog based on flags
func setupLogging(cmd *cobra.Command) context.Context {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(cmd.Context())
}
