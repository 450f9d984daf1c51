package rnkit

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stevenmcsorley/rn-kit/internal/diary"
	"github.com/stevenmcsorley/rn-kit/internal/repository"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Show the daily calorie goal and its macro split",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(ctx context.Context, repo repository.FoodRepository) error {
			goal, err := repo.GetDailyCalorieGoal(ctx)
			if err != nil {
				return err
			}
			macroGoals := diary.ComputeMacroGoals(goal)
			fmt.Fprintf(cmd.OutOrStdout(), "Daily goal: %.0f kcal\n", goal)
			fmt.Fprintf(cmd.OutOrStdout(), "Macro split: C %.1fg | P %.1fg | F %.1fg\n",
				macroGoals.CarbGoal, macroGoals.ProteinGoal, macroGoals.FatGoal)
			return nil
		})
	},
}

var goalSetCmd = &cobra.Command{
	Use:   "set <calories>",
	Short: "Set the daily calorie goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		goal, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
		if err != nil || goal <= 0 {
			return fmt.Errorf("invalid calorie goal %q", args[0])
		}
		return withRepo(func(ctx context.Context, repo repository.FoodRepository) error {
			if err := repo.SetDailyCalorieGoal(ctx, goal); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Daily goal set to %.0f kcal\n", goal)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalSetCmd)
}
