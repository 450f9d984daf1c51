package rnkit

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "rnkit",
	Short: "rnkit tracks your food diary from the terminal",
	Long:  "rnkit is a local-first food diary: log what you eat by barcode or by hand, and follow daily calories and macros against your goal.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}
