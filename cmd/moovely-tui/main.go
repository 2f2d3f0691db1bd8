package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/moovely/greener/internal/domain"
	"github.com/moovely/greener/internal/tui"
)

func main() {
	cmd := &cobra.Command{
		Use:          "moovely-tui",
		Short:        "Explore where the grass is greener from a home location",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := tui.Options{}
			opts.HomeID, _ = cmd.Flags().GetString("home")
			opts.LocationsFile, _ = cmd.Flags().GetString("locations")
			opts.TaxRulesFile, _ = cmd.Flags().GetString("tax-rules")

			if cmd.Flags().Changed("salary") {
				v, _ := cmd.Flags().GetFloat64("salary")
				salary, err := domain.AmountFromFloat("salary", v)
				if err != nil {
					return err
				}
				opts.Salary = &salary
			}

			p := tea.NewProgram(
				tui.NewModel(opts),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().String("home", "london", "Location you are moving from")
	cmd.Flags().Float64("salary", 0, "Use this gross salary everywhere instead of local medians")
	cmd.Flags().String("locations", "", "Path to a locations YAML file (default: built-in table)")
	cmd.Flags().String("tax-rules", "", "Path to a tax rules YAML file (default: built-in 2025/26 rules)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
