package rnkit

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stevenmcsorley/rn-kit/internal/diary"
	"github.com/stevenmcsorley/rn-kit/internal/model"
	"github.com/stevenmcsorley/rn-kit/internal/repository"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's calories and macros against the daily goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := time.Now()
		if todayDate != "" {
			parsed, err := time.ParseInLocation("2006-01-02", todayDate, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", todayDate)
			}
			target = parsed
		}
		start, end := localDayBounds(target)

		return withRepo(func(ctx context.Context, repo repository.FoodRepository) error {
			entries, err := repo.GetItemsByDateRange(ctx, start, end)
			if err != nil {
				return err
			}
			goal, err := repo.GetDailyCalorieGoal(ctx)
			if err != nil {
				return err
			}

			calories := diary.SumCalories(entries)
			macros := diary.SumMacros(entries)
			macroGoals := diary.ComputeMacroGoals(goal)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", diary.LocalDay(target))
			fmt.Fprintf(out, "Calories: %.0f / %.0f kcal (%.0f remaining)\n", calories, goal, goal-calories)
			fmt.Fprintf(out, "Protein: %.1fg / %.1fg\n", macros.Protein, macroGoals.ProteinGoal)
			fmt.Fprintf(out, "Carbs: %.1fg / %.1fg\n", macros.Carbs, macroGoals.CarbGoal)
			fmt.Fprintf(out, "Fat: %.1fg / %.1fg\n", macros.Fat, macroGoals.FatGoal)
			fmt.Fprintf(out, "Saturated fat: %.1fg | Cholesterol: %.0fmg | Sodium: %.0fmg | Fiber: %.1fg | Sugar: %.1fg\n",
				macros.SaturatedFat, macros.Cholesterol, macros.Sodium, macros.Fiber, macros.Sugar)
			if highest := diary.HighestCarbEntry(entries); highest != nil {
				fmt.Fprintf(out, "Highest carb item: %s (%.1fg)\n", highest.Name, model.Value(highest.Carbs))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
}
