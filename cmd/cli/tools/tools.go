// Package tools runs the site calculators from the command line, mostly to check numbers that founders ask about.
package tools

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alphafounders/site/internal/calculator"
	"github.com/alphafounders/site/internal/errors"
	"github.com/alphafounders/site/internal/sectors"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "tools",
	Title: "Calculators",
}

func init() {
	Equity.Flags().String("stage", string(calculator.StageSeed), "company stage")
	Equity.Flags().String("role", string(calculator.RoleStrategic), "advisor role")
	Equity.Flags().String("experience", string(calculator.ExperienceOperator), "advisor experience")
	Equity.Flags().Float64("hours", 0, "advisor hours per month")

	Valuation.Flags().String("round", string(calculator.RoundSeed), "funding round")
	Valuation.Flags().String("sector", "", "sector option id")
	Valuation.Flags().String("revenue", "", "monthly revenue in dollars")

	Tiers.Flags().String("sector", "", "sector option id")
	Tiers.Flags().String("round", "", "funding round")
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

var Equity = &cobra.Command{
	Use:     "equity",
	GroupID: "tools",
	Short:   "Recommend an advisor equity grant",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		flags := cmd.Flags()
		stage, _ := flags.GetString("stage")
		role, _ := flags.GetString("role")
		experience, _ := flags.GetString("experience")
		hours, err := flags.GetFloat64("hours")
		if err != nil {
			return errors.Wrap(err, "invalid hours flag")
		}
		result := calculator.Equity(calculator.EquityInput{
			Stage:         calculator.Stage(stage),
			Role:          calculator.Role(role),
			Experience:    calculator.Experience(experience),
			HoursPerMonth: hours,
		})
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "recommended %s\n", percent(result.Recommended))
		_, _ = fmt.Fprintf(out, "range       %s to %s\n", percent(result.Min), percent(result.Max))
		return nil
	},
}

var Valuation = &cobra.Command{
	Use:     "valuation",
	GroupID: "tools",
	Short:   "Estimate a pre-money valuation range",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		flags := cmd.Flags()
		round, _ := flags.GetString("round")
		sector, _ := flags.GetString("sector")
		revenue, _ := flags.GetString("revenue")
		result := calculator.Valuation(calculator.ValuationInput{
			Round:          calculator.Round(round),
			Sector:         sectors.Sector(sector),
			MonthlyRevenue: revenue,
		})
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "%s %s, %s basis\n", result.Sector.Label(), result.Round, result.Basis)
		_, _ = fmt.Fprintf(out, "low  $%.0f\nmid  $%.0f\nhigh $%.0f\n", result.Low, result.Mid, result.High)
		_, _ = fmt.Fprintf(out, "multiple %s\n", result.Multiple)
		return nil
	},
}

var Checklist = &cobra.Command{
	Use:     "checklist [item id...]",
	GroupID: "tools",
	Short:   "Score accelerator readiness",
	Long:    `Scores the checked checklist items. Run without arguments to list the item ids.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			for _, item := range calculator.ChecklistItems {
				_, _ = fmt.Fprintf(out, "%-12s %2d  %s\n", item.ID, item.Points, item.Label)
			}
			return nil
		}
		result := calculator.Checklist(args)
		_, _ = fmt.Fprintf(out, "total %d / %d\n%s\n", result.Total, result.MaxTotal, result.Readiness)
		for _, score := range result.Categories {
			_, _ = fmt.Fprintf(out, "%-10s %3d%% %s\n", score.Category.ID, score.Percentage, score.Status)
		}
		return nil
	},
}

var Tiers = &cobra.Command{
	Use:     "tiers",
	GroupID: "tools",
	Short:   "Rank the investor tier list",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		flags := cmd.Flags()
		sector, _ := flags.GetString("sector")
		round, _ := flags.GetString("round")
		out := cmd.OutOrStdout()
		for _, group := range calculator.Rank(sectors.Sector(sector), calculator.Round(round)) {
			_, _ = fmt.Fprintf(out, "Tier %s\n", group.Tier)
			for _, investor := range group.Investors {
				_, _ = fmt.Fprintf(out, "  %s %s (%s)\n",
					strings.Repeat("*", investor.Fit), investor.Name, investor.CheckSize)
			}
		}
		return nil
	},
}
