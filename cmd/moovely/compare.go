package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/moovely/greener/internal/breakeven"
	"github.com/moovely/greener/internal/compare"
	"github.com/moovely/greener/internal/domain"
	"github.com/moovely/greener/internal/output"
	"github.com/moovely/greener/internal/persona"
)

// addOptionFlags registers the personalisation flags shared by the
// comparison commands
func addOptionFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("salary", 0, "Use this gross salary in both locations instead of local medians")
	cmd.Flags().String("bed", "", "Rent size: one, two (default) or three")
	cmd.Flags().String("commute", "", "Commute: public-transport (default), drive or wfh")
	cmd.Flags().Bool("childcare", false, "Include full-time childcare")
	cmd.Flags().String("lifestyle", "", "Discretionary spend: homebody, average, social-butterfly or a multiplier such as 1.2")
	cmd.Flags().String("persona", "", "Start from a preset: young-professional, growing-family or downsizer-wfh")
	cmd.Flags().String("session", "", "Start from the persona saved for this session")
	cmd.Flags().String("store", "", "Persona file (default: user config dir)")
}

// buildOptions turns the personalisation flags into validated options. A
// named persona wins over a saved one; explicit flags override both.
func buildOptions(cmd *cobra.Command) (domain.PersonalisationOptions, error) {
	opts := domain.DefaultOptions()
	flags := cmd.Flags()

	personaName, _ := flags.GetString("persona")
	sessionID, _ := flags.GetString("session")
	switch {
	case personaName != "":
		id, err := persona.ParseID(personaName)
		if err != nil {
			return opts, err
		}
		p, _ := persona.Lookup(id)
		opts = persona.Apply(p, opts)

	case sessionID != "":
		store, closeStore, err := openPersonaStore(cmd)
		if err != nil {
			return opts, err
		}
		defer closeStore()

		p, err := persona.Resolve(cmd.Context(), store, sessionID)
		switch {
		case errors.Is(err, persona.ErrNotFound):
		case err != nil:
			return opts, err
		default:
			opts = persona.Apply(p, opts)
		}
	}

	if flags.Changed("salary") {
		v, _ := flags.GetFloat64("salary")
		salary, err := domain.AmountFromFloat("salary", v)
		if err != nil {
			return opts, err
		}
		opts = opts.WithCustomSalary(salary)
	}
	if flags.Changed("bed") {
		v, _ := flags.GetString("bed")
		size, err := domain.ParseBedSize(v)
		if err != nil {
			return opts, err
		}
		opts = opts.WithBedSize(size)
	}
	if flags.Changed("commute") {
		v, _ := flags.GetString("commute")
		ct, err := domain.ParseCommuteType(v)
		if err != nil {
			return opts, err
		}
		opts = opts.WithCommute(ct)
	}
	if flags.Changed("childcare") {
		v, _ := flags.GetBool("childcare")
		opts = opts.WithChildcare(v)
	}
	if flags.Changed("lifestyle") {
		v, _ := flags.GetString("lifestyle")
		multiplier, err := parseLifestyle(v)
		if err != nil {
			return opts, err
		}
		opts = opts.WithLifestyle(multiplier)
	}

	return opts, opts.Validate()
}

// parseLifestyle accepts a named intensity or a plain multiplier
func parseLifestyle(s string) (decimal.Decimal, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if m, err := domain.LifestyleIntensity(s).Multiplier(); err == nil {
		return m, nil
	}
	m, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid lifestyle %q (use homebody, average, social-butterfly or a number)", s)
	}
	return m, nil
}

// pairFromArgs accepts either "from to" or a single "from-vs-to" slug
func pairFromArgs(a *app, args []string) (domain.Location, domain.Location, error) {
	fromID, toID := "", ""
	if len(args) == 1 {
		var err error
		fromID, toID, err = compare.ParseComparisonSlug(args[0])
		if err != nil {
			return domain.Location{}, domain.Location{}, err
		}
	} else {
		fromID, toID = args[0], args[1]
	}

	from, err := a.locations.Get(fromID)
	if err != nil {
		return domain.Location{}, domain.Location{}, err
	}
	to, err := a.locations.Get(toID)
	if err != nil {
		return domain.Location{}, domain.Location{}, err
	}
	return from, to, nil
}

func taxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Show income tax, National Insurance and take-home pay for a salary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			v, _ := cmd.Flags().GetFloat64("salary")
			salary, err := domain.AmountFromFloat("salary", v)
			if err != nil {
				return err
			}
			countryName, _ := cmd.Flags().GetString("country")
			country, err := domain.ParseCountry(countryName)
			if err != nil {
				return err
			}

			b := a.engine.TaxCalc.CalculateTax(salary, country)

			format, _ := cmd.Flags().GetString("format")
			switch strings.ToLower(format) {
			case "json":
				data, err := json.MarshalIndent(b, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			case "table", "":
				fmt.Fprint(cmd.OutOrStdout(), formatTaxBreakdown(b, a.rules.Metadata.TaxYear))
			default:
				return fmt.Errorf("unsupported format: %s (available: json, table)", format)
			}
			return nil
		},
	}
	cmd.Flags().Float64("salary", 0, "Gross annual salary")
	cmd.Flags().String("country", string(domain.CountryEngland), "England, Scotland, Wales or Northern Ireland")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	_ = cmd.MarkFlagRequired("salary")
	return cmd
}

func formatTaxBreakdown(b domain.TaxBreakdown, taxYear string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("TAKE-HOME PAY (%s, %s)\n", b.Country, taxYear))
	sb.WriteString(strings.Repeat("=", 48) + "\n")
	sb.WriteString(fmt.Sprintf("%-26s %20s\n", "Gross salary", output.FormatCurrency(b.Gross, false)))
	sb.WriteString(fmt.Sprintf("%-26s %20s\n", "Personal allowance", output.FormatCurrency(b.PersonalAllowance, false)))
	sb.WriteString(fmt.Sprintf("%-26s %20s\n", "Income tax", output.FormatCurrency(b.IncomeTax, false)))
	sb.WriteString(fmt.Sprintf("%-26s %20s\n", "National Insurance", output.FormatCurrency(b.NationalInsurance, false)))
	sb.WriteString(strings.Repeat("-", 48) + "\n")
	sb.WriteString(fmt.Sprintf("%-26s %20s\n", "Take-home a year", output.FormatCurrency(b.TakeHome, false)))
	sb.WriteString(fmt.Sprintf("%-26s %20s\n", "Take-home a month", output.FormatCurrency(b.MonthlyTakeHome, false)))
	sb.WriteString(fmt.Sprintf("%-26s %20s\n", "Effective rate", output.FormatPercentage(b.EffectiveRate)))
	return sb.String()
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [from] [to] | compare [from-vs-to]",
		Short: "Compare living costs and take-home pay between two locations",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			from, to, err := pairFromArgs(a, args)
			if err != nil {
				return err
			}
			opts, err := buildOptions(cmd)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			f, err := compare.NewFormatter(format)
			if err != nil {
				return err
			}

			out, err := f.Format(a.engine.BuildReport(from, to, opts))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			if !strings.HasSuffix(out, "\n") {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
	addOptionFlags(cmd)
	cmd.Flags().StringP("format", "f", "table", "Output format ("+strings.Join(compare.FormatNames(), ", ")+")")
	return cmd
}

func requiredSalaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "required-salary [from] [to]",
		Short: "Find the salary needed to keep the same disposable income after a move",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			opts, err := buildOptions(cmd)
			if err != nil {
				return err
			}

			all, _ := cmd.Flags().GetBool("all")
			format, _ := cmd.Flags().GetString("format")
			table := &breakeven.TableFormatter{}
			jf := &breakeven.JSONFormatter{Pretty: true}

			if all || (len(args) == 1 && !strings.Contains(args[0], "-vs-")) {
				from, err := a.locations.Get(args[0])
				if err != nil {
					return err
				}
				multi, err := a.solver.RequiredSalaries(from, a.locations.All(), opts)
				if err != nil {
					return err
				}
				if format == "json" {
					out, err := jf.FormatMulti(multi)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), out)
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), table.FormatMulti(multi))
				return nil
			}

			from, to, err := pairFromArgs(a, args)
			if err != nil {
				return err
			}
			result, err := a.solver.RequiredSalary(from, to, opts)
			if err != nil {
				return err
			}
			if format == "json" {
				out, err := jf.Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), table.Format(result))
			return nil
		},
	}
	addOptionFlags(cmd)
	cmd.Flags().Bool("all", false, "Solve for every other location")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}
