// Command assess scores finance health answers offline and prints the
// question catalog and tax calculators.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finhealth/internal/config"
	"finhealth/internal/logging"
)

type rootOptions struct {
	verbose    bool
	configFile string

	logger *zap.Logger
	tables *config.Tables
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "assess",
		Short: "Finance health assessment tools",
		Long: `assess runs the finance health scoring engine without the API server.

Answers are read from a JSON file keyed by question id, for example
{"A1": {"exists": true, "effectiveness": 4}, "A2": {"exists": false}}.
Unanswered questions score as the worst case.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			logger, err := logging.New(level, "console")
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger

			tables, err := config.LoadTables(opts.configFile)
			if err != nil {
				return err
			}
			opts.tables = tables
			logger.Debug("tables loaded",
				zap.String("config", opts.configFile),
				zap.Int("calculators", len(tables.Calculators)))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", os.Getenv("CONFIG_FILE"), "YAML file with scoring and calculator tables")

	root.AddCommand(newCatalogCmd(opts))
	root.AddCommand(newScoreCmd(opts))
	root.AddCommand(newCalcCmd(opts))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
