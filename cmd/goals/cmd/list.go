package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/templui/goalboard/internal/format"
	"github.com/templui/goalboard/internal/model"
	"github.com/templui/goalboard/internal/query"
)

func ListCmd() *cobra.Command {
	opts := query.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List goals, filtered and sorted like the dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, done, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			goals := a.GoalService.Query(opts)
			summary := a.GoalService.Summary(opts)

			renderTable(cmd.OutOrStdout(), goals, a.GoalService.Now())
			fmt.Fprintf(cmd.OutOrStdout(), "Showing %d of %d goals\n", summary.Shown, summary.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Search, "search", opts.Search, "match name or description")
	cmd.Flags().StringVar(&opts.Category, "category", opts.Category, "category or \"all\"")
	cmd.Flags().StringVar(&opts.Status, "status", opts.Status, "to-do, in-progress, done or \"all\"")
	cmd.Flags().StringVar(&opts.Sort, "sort", opts.Sort, "deadline, amount, progress or name")

	return cmd
}

func renderTable(w io.Writer, goals []*model.Goal, now time.Time) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Category", "Status", "Saved", "Target", "Progress", "Deadline", "Days"})
	table.SetAutoWrapText(false)

	for _, g := range goals {
		table.Append([]string{
			g.Name,
			string(g.Category),
			string(g.Status),
			format.Currency(g.CurrentAmount),
			format.Currency(g.TargetAmount),
			format.Percent(g.Progress()),
			format.Date(g.Deadline),
			fmt.Sprint(g.DaysRemaining(now)),
		})
	}

	table.Render()
}
