// Package extraction implements the faculty extractor stage: batched
// structured extraction of faculty records from crawled page data.
package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"facultyscout/internal/llm"
	"facultyscout/internal/parsing"
	"facultyscout/internal/prompts"
	"facultyscout/internal/types"
)

// DefaultBatchSize is how many pages go into a single extraction prompt.
// A cost control, not a semantic threshold.
const DefaultBatchSize = 5

// ExtractFaculty processes pages in fixed-size batches, one upstream call
// per batch. A batch whose call or parse fails is skipped wholesale (logged,
// not propagated). Output concatenates batch results in batch order, then
// within-batch array order. Zero pages means zero upstream calls.
//
// The extractor does not enforce a one-page-to-one-faculty relationship: a
// page may yield zero, one, or several entries, and the returned shape is
// trusted as-is.
func ExtractFaculty(ctx context.Context, client llm.Client, pages []types.CandidatePage, batchSize int) []types.FacultyCandidate {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var all []types.FacultyCandidate
	for start := 0; start < len(pages); start += batchSize {
		end := min(start+batchSize, len(pages))
		batch := pages[start:end]

		extracted, err := extractBatch(ctx, client, batch)
		if err != nil {
			log.Printf("Extractor skipped batch %d-%d: %v", start, end-1, err)
			continue
		}
		all = append(all, extracted...)
	}

	return all
}

// extractBatch sends one batch of pages in a single prompt and parses the
// returned faculty array.
func extractBatch(ctx context.Context, client llm.Client, batch []types.CandidatePage) ([]types.FacultyCandidate, error) {
	template := prompts.MustGet("extraction.json", "extract-faculty")
	prompt := prompts.Format(template, map[string]string{
		"PagesText": formatPages(batch),
	})

	response, err := client.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	raw, err := parsing.ExtractArray(response)
	if err != nil {
		return nil, err
	}

	var extracted []types.FacultyCandidate
	if err := json.Unmarshal(raw, &extracted); err != nil {
		return nil, &parsing.MalformedError{Shape: "array", Snippet: "entries are not faculty objects"}
	}

	return extracted, nil
}

func formatPages(batch []types.CandidatePage) string {
	sections := make([]string, len(batch))
	for i, p := range batch {
		sections[i] = fmt.Sprintf("[Page %d]\nURL: %s\nTitle: %s\nContent: %s", i+1, p.URL, p.Title, p.Content)
	}
	return strings.Join(sections, "\n\n---\n\n")
}
