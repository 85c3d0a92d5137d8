// Package commands implements CLI commands.
package commands

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tablekit",
	Short: "Single-table SQL helpers and schema type generation",
	Long: `tablekit is a thin data-access helper over database/sql.

The CLI generates type declarations from SQL schema scripts and
inspects live databases.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(NewTypegenCommand())
	rootCmd.AddCommand(NewDBCommand())
	rootCmd.AddCommand(NewVersionCommand())
}
