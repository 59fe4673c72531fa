package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_doc_similarity/internal/app"
	"github.com/baditaflorin/go_doc_similarity/internal/config"
	"github.com/baditaflorin/go_doc_similarity/internal/core/domain"
)

type compareOptions struct {
	jsonOutput bool
	fast       bool
	parallel   bool
	passages   int
	maxCells   int
	noHistory  bool
}

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var opts compareOptions

	cmd := &cobra.Command{
		Use:   "compare FILE_A FILE_B",
		Short: "Compare two .txt, .pdf or .docx documents",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			docA, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			docB, err := loadDocument(args[1])
			if err != nil {
				return err
			}

			mutate := func(cfg *config.Config) {
				flags := cmd.Flags()
				if flags.Changed("fast") {
					cfg.Engine.FastTokenizer = opts.fast
				}
				if flags.Changed("parallel") {
					cfg.Engine.Parallel = opts.parallel
				}
				if flags.Changed("passages") {
					cfg.Engine.PassageMinTokens = opts.passages
				}
				if flags.Changed("max-cells") {
					cfg.Engine.MaxTableCells = opts.maxCells
				}
				if opts.noHistory {
					cfg.History.Enabled = false
				}
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return ctx.withApp(mutate, func(a *app.App) error {
				report, err := a.CompareDocuments(runCtx, docA, docB)
				if err != nil {
					return fmt.Errorf("compare: %w", err)
				}
				if opts.jsonOutput {
					return writeJSON(cmd, report)
				}
				printReport(cmd, report, len(docA.Data), len(docB.Data))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the report as JSON")
	cmd.Flags().BoolVar(&opts.fast, "fast", false, "Use the lookup-table tokenizer")
	cmd.Flags().BoolVar(&opts.parallel, "parallel", false, "Run the three measures concurrently")
	cmd.Flags().IntVar(&opts.passages, "passages", 0, "Report shared passages of at least N tokens")
	cmd.Flags().IntVar(&opts.maxCells, "max-cells", 0, "Upper bound on dynamic-programming table cells (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "Do not record this comparison")
	return cmd
}

func loadDocument(path string) (domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := domain.NewDocument(filepath.Base(path), data)
	if err != nil {
		return domain.Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func printReport(cmd *cobra.Command, r app.Report, sizeA, sizeB int) {
	out := cmd.OutOrStdout()
	styled := shouldColorize(out)

	docRows := [][]string{
		{r.NameA, humanize.Bytes(uint64(sizeA)), humanize.Comma(int64(r.LengthA))},
		{r.NameB, humanize.Bytes(uint64(sizeB)), humanize.Comma(int64(r.LengthB))},
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Document", "Size", "Tokens"},
		docRows,
		[]columnAlignment{alignLeft, alignRight, alignRight},
		styled,
	))

	var scoreRows [][]string
	for _, m := range domain.Methods {
		scoreRows = append(scoreRows, []string{m.String(), fmt.Sprintf("%.2f%%", r.Scores[m.String()])})
	}
	scoreRows = append(scoreRows, []string{"Average", fmt.Sprintf("%.2f%%", r.Average)})
	fmt.Fprintln(out, renderTable(
		[]string{"Measure", "Score"},
		scoreRows,
		[]columnAlignment{alignLeft, alignRight},
		styled,
	))

	label := strings.ToUpper(r.Label[:1]) + r.Label[1:]
	if styled {
		label = levelColors(r.Level).Sprint(label)
	}
	fmt.Fprintf(out, "Result: %s (%.2f%%)\n", label, r.Average)

	if len(r.Passages) > 0 {
		fmt.Fprintf(out, "\nShared passages (%.1f%% of %s):\n", r.Coverage, r.NameA)
		for _, p := range r.Passages {
			fmt.Fprintf(out, "  [%d/%d] %s\n", p.OffsetA, p.OffsetB, strings.Join(p.Tokens, " "))
		}
	}
	if r.ID != "" {
		fmt.Fprintf(out, "Recorded as %s\n", r.ID)
	}
}
