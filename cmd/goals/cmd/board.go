package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/goalboard/internal/format"
	"github.com/templui/goalboard/internal/model"
)

func BoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Show goals grouped by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, done, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			board := a.GoalService.Board()
			out := cmd.OutOrStdout()

			for _, status := range model.Statuses {
				column := board.Column(status)
				fmt.Fprintf(out, "%s (%d)\n", status, len(column))
				for _, g := range column {
					fmt.Fprintf(out, "  %s  %s / %s\n", g.Name, format.Currency(g.CurrentAmount), format.Currency(g.TargetAmount))
				}
			}
			return nil
		},
	}
}
