package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foodfireroad/foodfire/internal/app"
	"github.com/foodfireroad/foodfire/internal/core"
	"github.com/foodfireroad/foodfire/internal/report"
	"github.com/foodfireroad/foodfire/internal/streaks"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show totals and the daily balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App, out *report.Printer) error {
				doc := a.State().Snapshot()
				if err := out.Overview(a.Stats().Overview(doc)); err != nil {
					return err
				}
				fmt.Println()
				return out.Balances(a.Stats().DailyBalances(doc))
			})
		},
	}
}

func streakCmd() *cobra.Command {
	var ruleName string

	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Show current and best streak against the daily goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App, out *report.Printer) error {
				rule := a.Config().Rule()
				if ruleName != "" {
					r, err := streaks.ParseRule(ruleName)
					if err != nil {
						return err
					}
					rule = r
				}
				goal := a.State().Settings().DailyKcalGoal
				return out.Streaks(a.StreaksWith(rule), goal, rule)
			})
		},
	}

	cmd.Flags().StringVar(&ruleName, "rule", "", "below (stay within goal) or above (reach goal); default from config")
	return cmd
}

func settingsCmd() *cobra.Command {
	var (
		goal  int
		units string
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the daily goal and unit system",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App, out *report.Printer) error {
				s := a.State().Settings()
				changed := false

				if cmd.Flags().Changed("goal") {
					s.DailyKcalGoal = goal
					changed = true
				}
				if cmd.Flags().Changed("units") {
					u, err := core.ParseUnitSystem(units)
					if err != nil {
						return err
					}
					s.UnitSystem = u
					changed = true
				}

				if changed {
					if err := a.State().SetSettings(s); err != nil {
						return err
					}
					fmt.Println("✓ Settings saved")
				}
				return out.Settings(a.State().Settings())
			})
		},
	}

	cmd.Flags().IntVar(&goal, "goal", core.DefaultGoal, "daily kcal goal")
	cmd.Flags().StringVar(&units, "units", string(core.UnitsMetric), "metric or imperial")
	return cmd
}
