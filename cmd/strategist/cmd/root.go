// Package cmd provides the strategist CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfulz/strategist/dispatch"
	"github.com/mfulz/strategist/internal/config"
	"github.com/mfulz/strategist/internal/logging"
	"github.com/mfulz/strategist/internal/strategies"
)

var (
	configPath string
	logLevel   string

	dispatcher *dispatch.Dispatcher[strategies.Strategy]
)

// RootCmd is the strategist root command.
var RootCmd = &cobra.Command{
	Use:   "strategist",
	Short: "Inspect and query the strategy registry",
	Long: `strategist resolves query keys against the registered strategy rules.

Rules are registered by the strategy packages at startup. A rule field left
empty is a wildcard; every rule whose fields accept the query key matches.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $STRATEGIST_CONFIG, ~/.strategist/strategist.yaml, /etc/strategist/strategist.yaml)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")

	RootCmd.AddCommand(RulesCmd)
	RootCmd.AddCommand(LookupCmd)
}

// setup loads the config, installs the logger and builds the dispatcher.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	config.Publish(cfg)
	if err := logging.Init(); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	if cfg.Dispatch.Seal && strategies.Registry.Seal() {
		logging.Log.Debugf("[strategist] registry sealed with %d rules", strategies.Registry.Len())
	}

	var opts []dispatch.Option
	if cfg.Dispatch.Cache {
		opts = append(opts, dispatch.WithCache(cfg.Dispatch.CacheTTL))
	}
	dispatcher = strategies.NewDispatcher(opts...)
	return nil
}
