package rnkit

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stevenmcsorley/rn-kit/internal/diary"
	"github.com/stevenmcsorley/rn-kit/internal/model"
	"github.com/stevenmcsorley/rn-kit/internal/repository"
)

var diaryCmd = &cobra.Command{
	Use:   "diary",
	Short: "Show the diary grouped by day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(ctx context.Context, repo repository.FoodRepository) error {
			entries, err := repo.GetAllItems(ctx)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Diary is empty. Log something with: rnkit add")
				return nil
			}
			for _, day := range diary.GroupByDay(entries) {
				macros := diary.SumMacros(day.Entries)
				fmt.Fprintf(cmd.OutOrStdout(), "%s  (%.0f kcal | P %.1fg C %.1fg F %.1fg)\n",
					day.Date, diary.SumCalories(day.Entries), macros.Protein, macros.Carbs, macros.Fat)
				for _, e := range day.Entries {
					line := fmt.Sprintf("  [%d] %s", e.ID, e.Name)
					if e.Brand != "" {
						line += " - " + e.Brand
					}
					line += fmt.Sprintf("  %.0f kcal", model.Value(e.Calories))
					if e.ServingType == model.ServingTypeServing {
						line += fmt.Sprintf("  (%.0f %s)", e.Quantity, e.Unit)
					}
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(diaryCmd)
}
