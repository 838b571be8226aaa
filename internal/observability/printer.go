// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"facultyscout/internal/pipeline"
	"facultyscout/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxMatchesToShow is the number of ranked matches displayed
	maxMatchesToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// PrintEvent renders one progress event as a single line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintEvent(ev pipeline.Event) {
	marker := map[pipeline.Status]string{
		pipeline.StatusPending: "·",
		pipeline.StatusRunning: "▶",
		pipeline.StatusDone:    "✓",
		pipeline.StatusError:   "✗",
	}[ev.Status]

	fmt.Fprintf(p.out, "%s %-35s %s\n", marker, ev.Label, ev.Detail)
	for _, sub := range ev.Substeps {
		if sub.Status == pipeline.StatusRunning {
			fmt.Fprintf(p.out, "    … %s\n", sub.Label)
		}
	}
}

// PrintStageSummary renders the final status of every stage from a tracker.
//
//nolint:errcheck
func (p *Printer) PrintStageSummary(tracker *pipeline.Tracker) {
	var sb strings.Builder
	for _, stage := range []pipeline.Stage{
		pipeline.StageQueryPlanner,
		pipeline.StageWebCrawler,
		pipeline.StageExtractor,
		pipeline.StageRanker,
	} {
		ev, ok := tracker.Latest(stage)
		if !ok {
			sb.WriteString(fmt.Sprintf("%-14s %s\n", stage, pipeline.StatusPending))
			continue
		}
		sb.WriteString(fmt.Sprintf("%-14s %s\n", stage, ev.Status))
	}
	p.printBox("Pipeline stages", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatches renders the top ranked matches.
//
//nolint:errcheck
func (p *Printer) PrintMatches(matches []types.FacultyCandidate) {
	if len(matches) == 0 {
		p.printBox("Matches", "No faculty matches found.")
		return
	}

	var sb strings.Builder
	shown := min(len(matches), maxMatchesToShow)
	for i, m := range matches[:shown] {
		sb.WriteString(fmt.Sprintf("%d. %s (%.0f%%)\n", i+1, m.Name, m.RelevanceScore*100))
		sb.WriteString(fmt.Sprintf("   %s, %s\n", m.Institution, m.Department))
	}
	if len(matches) > shown {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(matches)-shown))
	}
	p.printBox(fmt.Sprintf("Top matches (%d total)", len(matches)), strings.TrimSuffix(sb.String(), "\n"))
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}
