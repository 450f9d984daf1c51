package rnkit

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stevenmcsorley/rn-kit/internal/model"
	"github.com/stevenmcsorley/rn-kit/internal/provider/openfoodfacts"
	"github.com/stevenmcsorley/rn-kit/internal/repository"
)

var scanCmd = &cobra.Command{
	Use:   "scan <barcode>",
	Short: "Look up a barcode, preferring an earlier diary entry",
	Long:  "Check the diary for an entry with this barcode first; only on a miss consult the Open Food Facts catalog. A catalog miss suggests manual entry.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		barcode := strings.TrimSpace(args[0])
		return withRepo(func(ctx context.Context, repo repository.FoodRepository) error {
			existing, err := repo.GetItemByBarcode(ctx, barcode)
			if err != nil {
				return err
			}
			if existing != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Already in diary (entry %d): %s\n", existing.ID, existing.Name)
				printNutritionLine(cmd, "Logged", model.Value(existing.Calories), model.Value(existing.Protein), model.Value(existing.Carbs), model.Value(existing.Fat))
				return nil
			}

			client := &openfoodfacts.Client{}
			product, err := client.LookupBarcode(ctx, barcode)
			if err != nil {
				return err
			}
			if product == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No product found for barcode %s. Add it manually with: rnkit add --barcode %s\n", barcode, barcode)
				return nil
			}
			printProduct(cmd, *product)
			return nil
		})
	},
}

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search the Open Food Facts catalog by name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := strings.Join(args, " ")
		client := &openfoodfacts.Client{}
		products, err := client.Search(cmd.Context(), term, searchLimit)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No products found for %q\n", term)
			return nil
		}
		for i, p := range products {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s", i+1, p.Name)
			if p.Brand != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " - %s", p.Brand)
			}
			fmt.Fprintf(cmd.OutOrStdout(), " (%.0f kcal/100g)\n", p.Per100g.Calories)
		}
		return nil
	},
}

func printProduct(cmd *cobra.Command, p openfoodfacts.Product) {
	name := p.Name
	if p.Brand != "" {
		name += " - " + p.Brand
	}
	fmt.Fprintln(cmd.OutOrStdout(), name)
	printNutritionLine(cmd, "Per 100g", p.Per100g.Calories, p.Per100g.Protein, p.Per100g.Carbs, p.Per100g.Fat)
	if p.PerServing != nil {
		label := fmt.Sprintf("Per serving (%.0f %s)", p.ServingQuantity, p.ServingUnit)
		printNutritionLine(cmd, label, p.PerServing.Calories, p.PerServing.Protein, p.PerServing.Carbs, p.PerServing.Fat)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Log it with: rnkit add --name ... --barcode ...")
}

func printNutritionLine(cmd *cobra.Command, label string, kcal, protein, carbs, fat float64) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %.0f kcal | P %.1fg C %.1fg F %.1fg\n", label, kcal, protein, carbs, fat)
}

func init() {
	rootCmd.AddCommand(scanCmd, searchCmd)
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum number of results")
}
