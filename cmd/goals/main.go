package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/templui/goalboard/cmd/goals/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "goals",
		Short:         "Inspect and export the local goal collection",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(cmd.ListCmd())
	rootCmd.AddCommand(cmd.BoardCmd())
	rootCmd.AddCommand(cmd.ExportCmd())
	rootCmd.AddCommand(cmd.MigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
