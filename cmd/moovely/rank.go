package main

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/moovely/greener/internal/domain"
	"github.com/moovely/greener/internal/output"
	"github.com/moovely/greener/internal/ranking"
)

func rankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank [home]",
		Short: "Rank every location by how much better off you would be than at home",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			home, err := a.locations.Get(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			var opts ranking.Options

			if flags.Changed("salary") {
				v, _ := flags.GetFloat64("salary")
				salary, err := domain.AmountFromFloat("salary", v)
				if err != nil {
					return err
				}
				opts.CustomSalary = &salary
			}

			regionNames, _ := flags.GetStringSlice("region")
			if opts.Regions, err = ranking.RegionSet(regionNames); err != nil {
				return err
			}
			opts.Search, _ = flags.GetString("search")

			sortName, _ := flags.GetString("sort")
			if opts.SortBy, err = ranking.ParseSortField(sortName); err != nil {
				return err
			}

			entries := a.ranker.Rank(home, a.locations.All(), opts)

			format, _ := flags.GetString("format")
			switch strings.ToLower(format) {
			case "json":
				data, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			case "table", "":
				fmt.Fprint(cmd.OutOrStdout(), ranking.FormatTable(home, entries, opts.SortBy))
			default:
				return fmt.Errorf("unsupported format: %s (available: json, table)", format)
			}
			return nil
		},
	}
	cmd.Flags().Float64("salary", 0, "Use this gross salary everywhere instead of local medians")
	cmd.Flags().StringSlice("region", nil, "Only include these regions (repeatable or comma separated)")
	cmd.Flags().String("search", "", "Only include locations whose name, region or county contains this text")
	cmd.Flags().String("sort", string(ranking.SortAnnualDiff), "Sort by annual-diff, rent, salary or house-price")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}

func locationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "List the locations in the reference table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			locations := a.locations.All()
			if name, _ := cmd.Flags().GetString("region"); name != "" {
				region, err := domain.ParseRegion(name)
				if err != nil {
					return err
				}
				locations = a.locations.ByRegion(region)
			}

			format, _ := cmd.Flags().GetString("format")
			if strings.ToLower(format) == "json" {
				data, err := json.MarshalIndent(locations, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-12s %-22s %-26s %-18s %10s %10s\n", "ID", "Name", "Region", "Country", "Median", "2-bed")
			fmt.Fprintln(out, strings.Repeat("-", 103))
			for _, loc := range locations {
				fmt.Fprintf(out, "%-12s %-22s %-26s %-18s %10s %10s\n",
					loc.ID, loc.Name, loc.Region, loc.Country,
					output.FormatCurrency(loc.MedianSalary, false),
					output.FormatCurrency(loc.RentTwoBed, false))
			}
			fmt.Fprintf(out, "\n%d locations (source: %s, updated %s)\n",
				len(locations), a.locations.Metadata.Source, a.locations.Metadata.Updated)
			return nil
		},
	}
	cmd.Flags().String("region", "", "Only list locations in this region")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}
