package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_doc_similarity/internal/app"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded comparisons, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(nil, func(a *app.App) error {
				recs, err := a.ListHistory(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, recs)
				}

				out := cmd.OutOrStdout()
				if len(recs) == 0 {
					fmt.Fprintln(out, "No comparisons recorded yet")
					return nil
				}
				rows := make([][]string, 0, len(recs))
				for _, r := range recs {
					rows = append(rows, []string{
						r.ID[:8],
						humanize.Time(r.CreatedAt),
						r.NameA,
						r.NameB,
						fmt.Sprintf("%.2f%%", r.Average),
						r.Level,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "When", "Document A", "Document B", "Average", "Level"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
					shouldColorize(out),
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of comparisons to show (0 = history.limit)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the records as JSON")
	return cmd
}
