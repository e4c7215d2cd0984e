package cmd

import (
	"bytes"
	"fmt"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"github.com/templui/goalboard/internal/export"
)

func ExportCmd() *cobra.Command {
	var formatName, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export goals as json or xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}

			a, done, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			if out == "" || out == "-" {
				return export.Write(cmd.OutOrStdout(), format, a.GoalService.Goals(), a.GoalService.Now())
			}

			var buf bytes.Buffer
			err = export.Write(&buf, format, a.GoalService.Goals(), a.GoalService.Now())
			if err != nil {
				return err
			}

			err = atomic.WriteFile(out, &buf)
			if err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d goals to %s\n", len(a.GoalService.Goals()), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&formatName, "format", string(export.FormatJSON), "json or xlsx")
	cmd.Flags().StringVar(&out, "out", "", "output file, stdout when empty")

	return cmd
}
