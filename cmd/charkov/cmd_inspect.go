package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/CTAG07/charkov/pkg/markov"
)

func newInspectCmd(a *app) *cobra.Command {
	var (
		window     int
		pruneMin   int
		limit      int
		dump       bool
		file       string
		corpusName string
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Train a model and print its statistics and busiest windows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			applyIntConfig(cmd, "window", &window, a.config.Model.WindowLength)
			applyIntConfig(cmd, "prune", &pruneMin, a.config.Model.PruneMin)

			// Inspection never samples, so the seed is irrelevant.
			m, err := a.buildModel(cmd.Context(), window, false, fixedSeed, modelSource{file: file, corpusName: corpusName}, pruneMin)
			if err != nil {
				return err
			}
			if dump {
				_, err = io.WriteString(cmd.OutOrStdout(), m.String())
				return err
			}
			return renderInspection(cmd.OutOrStdout(), m, limit)
		},
	}

	cmd.Flags().IntVarP(&window, "window", "w", 0, "window length in characters")
	cmd.Flags().IntVar(&pruneMin, "prune", 0, "drop transitions seen at most this many times")
	cmd.Flags().IntVar(&limit, "limit", 10, "number of windows to list")
	cmd.Flags().BoolVar(&dump, "dump", false, "print every window and its successors")
	cmd.Flags().StringVarP(&file, "file", "f", "", "corpus file to train on")
	cmd.Flags().StringVarP(&corpusName, "corpus", "c", "", "stored corpus to train on")

	return cmd
}

type windowTotal struct {
	window  string
	total   int
	records []markov.Record
}

// renderInspection writes model statistics followed by the limit windows with
// the most observations.
func renderInspection(w io.Writer, m *markov.Model, limit int) error {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true).Underline(true)
	label := r.NewStyle().Width(14)

	stats := m.Stats()
	var sb strings.Builder
	sb.WriteString(title.Render("Model"))
	sb.WriteByte('\n')
	rows := []struct {
		name  string
		value string
	}{
		{"window length", humanize.Comma(int64(stats.WindowLength))},
		{"windows", humanize.Comma(int64(stats.Windows))},
		{"links", humanize.Comma(int64(stats.Links))},
		{"transitions", humanize.Comma(int64(stats.Transitions))},
		{"vocabulary", humanize.Comma(int64(stats.Vocabulary))},
	}
	for _, row := range rows {
		sb.WriteString(label.Render(row.name))
		sb.WriteString(row.value)
		sb.WriteByte('\n')
	}

	totals := make([]windowTotal, 0, m.Len())
	for _, window := range m.Windows() {
		records, _ := m.Successors(window)
		wt := windowTotal{window: window, records: records}
		for _, rec := range records {
			wt.total += rec.Count
		}
		totals = append(totals, wt)
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].total > totals[j].total
	})
	if limit >= 0 && limit < len(totals) {
		totals = totals[:limit]
	}

	if len(totals) > 0 {
		sb.WriteByte('\n')
		sb.WriteString(title.Render("Top windows"))
		sb.WriteByte('\n')
	}
	for _, wt := range totals {
		parts := make([]string, len(wt.records))
		for i, rec := range wt.records {
			parts[i] = rec.String()
		}
		fmt.Fprintf(&sb, "%q x%s : %s\n", wt.window, humanize.Comma(int64(wt.total)), strings.Join(parts, " "))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
