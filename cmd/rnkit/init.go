package rnkit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stevenmcsorley/rn-kit/internal/app"
	"github.com/stevenmcsorley/rn-kit/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the local diary database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := app.EnsureDBDir(path); err != nil {
			return err
		}

		sqldb, err := db.Open(path)
		if err != nil {
			return err
		}
		defer sqldb.Close()

		if err := db.Migrate(sqldb); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized diary database at %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
