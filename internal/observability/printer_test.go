package observability

import (
	"strings"
	"testing"

	"facultyscout/internal/pipeline"
	"facultyscout/internal/types"

	"github.com/stretchr/testify/assert"
)

func TestPrintEvent(t *testing.T) {
	var buf strings.Builder
	p := NewPrinter(&buf)

	p.PrintEvent(pipeline.Event{
		Stage:  pipeline.StageWebCrawler,
		Label:  "Searching university websites",
		Status: pipeline.StatusRunning,
		Detail: "Crawling 6 search queries...",
		Substeps: []pipeline.Substep{
			{Label: "mit nlp faculty", Status: pipeline.StatusRunning},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Searching university websites")
	assert.Contains(t, out, "Crawling 6 search queries...")
	assert.Contains(t, out, "mit nlp faculty")
}

func TestPrintStageSummary(t *testing.T) {
	tracker := pipeline.NewTracker()
	tracker.Record(pipeline.Event{Stage: pipeline.StageQueryPlanner, Status: pipeline.StatusDone})
	tracker.Record(pipeline.Event{Stage: pipeline.StageWebCrawler, Status: pipeline.StatusRunning})

	var buf strings.Builder
	NewPrinter(&buf).PrintStageSummary(tracker)

	out := buf.String()
	assert.Contains(t, out, "query-planner")
	assert.Contains(t, out, "done")
	assert.Contains(t, out, "pending") // extractor and ranker never ran
}

func TestPrintMatches_Empty(t *testing.T) {
	var buf strings.Builder
	NewPrinter(&buf).PrintMatches(nil)
	assert.Contains(t, buf.String(), "No faculty matches found.")
}

func TestPrintMatches_TruncatesList(t *testing.T) {
	matches := make([]types.FacultyCandidate, 8)
	for i := range matches {
		matches[i] = types.FacultyCandidate{
			Name:           "Prof. X",
			Institution:    "Example University",
			Department:     "CS",
			RelevanceScore: 0.8,
		}
	}

	var buf strings.Builder
	NewPrinter(&buf).PrintMatches(matches)

	out := buf.String()
	assert.Contains(t, out, "Top matches (8 total)")
	assert.Contains(t, out, "... and 3 more")
}
