package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/moovely/greener/internal/breakeven"
	"github.com/moovely/greener/internal/calculation"
	"github.com/moovely/greener/internal/compare"
	"github.com/moovely/greener/internal/config"
	"github.com/moovely/greener/internal/domain"
	"github.com/moovely/greener/internal/logger"
	"github.com/moovely/greener/internal/ranking"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds the loaded data and engines shared by the commands
type app struct {
	locations *config.LocationTable
	rules     domain.TaxRules
	engine    *compare.Engine
	solver    *breakeven.Solver
	ranker    *ranking.Ranker
	log       *logger.Logger
}

// loadApp reads the location table and tax rules named by the global flags
func loadApp(cmd *cobra.Command) (*app, error) {
	locationsFile, _ := cmd.Flags().GetString("locations")
	taxRulesFile, _ := cmd.Flags().GetString("tax-rules")
	debugMode, _ := cmd.Flags().GetBool("debug")

	log := logger.NewCLI(debugMode)

	table, err := config.LoadLocations(locationsFile)
	if err != nil {
		return nil, err
	}
	rules, err := config.LoadTaxRules(taxRulesFile)
	if err != nil {
		return nil, err
	}

	engine := compare.NewEngine(calculation.NewTaxCalculatorWithRules(rules))
	engine.SetLogger(log)
	log.Debugf("loaded %d locations (%s, tax year %s)", table.Len(), table.Metadata.Source, rules.Metadata.TaxYear)

	return &app{
		locations: table,
		rules:     rules,
		engine:    engine,
		solver:    breakeven.NewDefaultSolver(engine),
		ranker:    ranking.NewRanker(engine),
		log:       log,
	}, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "moovely %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a locations or tax rules file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			asTaxRules, _ := cmd.Flags().GetBool("tax-rules-file")

			if asTaxRules {
				rules, err := config.LoadTaxRules(file)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Tax rules file %s is valid (tax year %s)\n", file, rules.Metadata.TaxYear)
				return nil
			}

			table, err := config.LoadLocations(file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Locations file %s is valid (%d locations)\n", file, table.Len())
			return nil
		},
	}
	cmd.Flags().Bool("tax-rules-file", false, "Validate the file as tax rules instead of locations")
	return cmd
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "moovely",
		Short:         "UK location cost comparison",
		Long:          "Compare take-home pay and living costs between UK towns and cities, and find the salary needed to stay level after a move",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().String("locations", "", "Path to a locations YAML file (default: built-in table)")
	root.PersistentFlags().String("tax-rules", "", "Path to a tax rules YAML file (default: built-in 2025/26 rules)")
	root.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")

	root.AddCommand(taxCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(requiredSalaryCmd())
	root.AddCommand(rankCmd())
	root.AddCommand(locationsCmd())
	root.AddCommand(personaCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
