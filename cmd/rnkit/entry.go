package rnkit

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stevenmcsorley/rn-kit/internal/model"
	"github.com/stevenmcsorley/rn-kit/internal/repository"
)

// entryFlags collects the full field set of a diary entry. Nutrition flags
// left unset stay NULL in storage and count as zero in aggregation.
type entryFlags struct {
	name        string
	brand       string
	barcode     string
	calories    float64
	protein     float64
	carbs       float64
	fat         float64
	satFat      float64
	cholesterol float64
	sodium      float64
	fiber       float64
	sugar       float64
	quantity    float64
	unit        string
	servingType string
	date        string
	timeStr     string
}

func registerEntryFlags(cmd *cobra.Command, f *entryFlags) {
	cmd.Flags().StringVar(&f.name, "name", "", "Food name")
	cmd.Flags().StringVar(&f.brand, "brand", "", "Brand name")
	cmd.Flags().StringVar(&f.barcode, "barcode", "", "Product barcode")
	cmd.Flags().Float64Var(&f.calories, "calories", 0, "Calories (kcal)")
	cmd.Flags().Float64Var(&f.protein, "protein", 0, "Protein grams")
	cmd.Flags().Float64Var(&f.carbs, "carbs", 0, "Carbs grams")
	cmd.Flags().Float64Var(&f.fat, "fat", 0, "Fat grams")
	cmd.Flags().Float64Var(&f.satFat, "saturated-fat", 0, "Saturated fat grams")
	cmd.Flags().Float64Var(&f.cholesterol, "cholesterol", 0, "Cholesterol milligrams")
	cmd.Flags().Float64Var(&f.sodium, "sodium", 0, "Sodium milligrams")
	cmd.Flags().Float64Var(&f.fiber, "fiber", 0, "Fiber grams")
	cmd.Flags().Float64Var(&f.sugar, "sugar", 0, "Sugar grams")
	cmd.Flags().Float64Var(&f.quantity, "quantity", 0, "Amount consumed")
	cmd.Flags().StringVar(&f.unit, "unit", "g", "Unit of the amount consumed")
	cmd.Flags().StringVar(&f.servingType, "serving-type", model.ServingTypeFull, "full or serving")
	cmd.Flags().StringVar(&f.date, "date", "", "Date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&f.timeStr, "time", "", "Time HH:MM (default now)")
}

func (f *entryFlags) toEntry(cmd *cobra.Command) (model.FoodLogEntry, error) {
	if f.name == "" {
		return model.FoodLogEntry{}, fmt.Errorf("--name is required")
	}
	if f.servingType != model.ServingTypeFull && f.servingType != model.ServingTypeServing {
		return model.FoodLogEntry{}, fmt.Errorf("invalid --serving-type %q (expected full or serving)", f.servingType)
	}
	logged, err := parseDateTimeOrNow(f.date, f.timeStr)
	if err != nil {
		return model.FoodLogEntry{}, err
	}

	// Only flags the user actually set become values; the rest stay
	// unknown rather than a misleading zero.
	nutrition := func(flag string, v float64) *float64 {
		if cmd.Flags().Changed(flag) {
			return model.Float(v)
		}
		return nil
	}
	return model.FoodLogEntry{
		Name:         f.name,
		Brand:        f.brand,
		Barcode:      f.barcode,
		Calories:     nutrition("calories", f.calories),
		Protein:      nutrition("protein", f.protein),
		Carbs:        nutrition("carbs", f.carbs),
		Fat:          nutrition("fat", f.fat),
		SaturatedFat: nutrition("saturated-fat", f.satFat),
		Cholesterol:  nutrition("cholesterol", f.cholesterol),
		Sodium:       nutrition("sodium", f.sodium),
		Fiber:        nutrition("fiber", f.fiber),
		Sugar:        nutrition("sugar", f.sugar),
		Date:         logged,
		Quantity:     f.quantity,
		Unit:         f.unit,
		ServingType:  f.servingType,
	}, nil
}

var addFlags entryFlags

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a food entry in the diary",
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := addFlags.toEntry(cmd)
		if err != nil {
			return err
		}
		return withRepo(func(ctx context.Context, repo repository.FoodRepository) error {
			id, err := repo.AddItem(ctx, entry)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added entry %d: %s (%.0f kcal)\n", id, entry.Name, model.Value(entry.Calories))
			return nil
		})
	},
}

var updateFlags entryFlags

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Overwrite a diary entry",
	Long:  "Overwrite all fields of the entry with the given id. Nutrition flags left unset are cleared, not preserved.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseEntryID(args[0])
		if err != nil {
			return err
		}
		entry, err := updateFlags.toEntry(cmd)
		if err != nil {
			return err
		}
		entry.ID = id
		return withRepo(func(ctx context.Context, repo repository.FoodRepository) error {
			if err := repo.UpdateItem(ctx, entry); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %d\n", id)
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a diary entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseEntryID(args[0])
		if err != nil {
			return err
		}
		return withRepo(func(ctx context.Context, repo repository.FoodRepository) error {
			if err := repo.DeleteItem(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(addCmd, updateCmd, deleteCmd)
	registerEntryFlags(addCmd, &addFlags)
	registerEntryFlags(updateCmd, &updateFlags)
}
