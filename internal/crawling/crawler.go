// Package crawling implements the web crawler stage: one generation call per
// search query, joined deterministically and deduplicated by page title.
package crawling

import (
	"context"
	"encoding/json"
	"log"

	"golang.org/x/sync/errgroup"

	"facultyscout/internal/llm"
	"facultyscout/internal/parsing"
	"facultyscout/internal/prompts"
	"facultyscout/internal/types"
)

// DefaultSearchBreadth caps how many queries are crawled per run. Search
// breadth is a cost control, not a semantic threshold.
const DefaultSearchBreadth = 6

// searchHit is the wire shape of one crawler result entry.
type searchHit struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// CrawlQueries issues one upstream call per query, up to breadth queries,
// concurrently. Per-query failures (upstream or parse) are logged and
// skipped; a query that yields nothing contributes zero pages. Results are
// collected into a slice keyed by query index so the join is deterministic
// regardless of completion order, then concatenated in query order and
// deduplicated by title, first seen first. An empty result is valid.
func CrawlQueries(ctx context.Context, client llm.Client, queries []string, breadth int) []types.CandidatePage {
	if breadth <= 0 {
		breadth = DefaultSearchBreadth
	}
	if len(queries) > breadth {
		queries = queries[:breadth]
	}

	results := make([][]types.CandidatePage, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	for i, query := range queries {
		g.Go(func() error {
			pages, err := searchQuery(gctx, client, query)
			if err != nil {
				log.Printf("Crawler error for query %q: %v", query, err)
				return nil
			}
			results[i] = pages
			return nil
		})
	}
	_ = g.Wait() // workers absorb their own failures

	var all []types.CandidatePage
	for _, pages := range results {
		all = append(all, pages...)
	}

	return types.DedupePagesByTitle(all)
}

// searchQuery asks the generation service to enumerate plausible faculty
// page entries for one query.
func searchQuery(ctx context.Context, client llm.Client, query string) ([]types.CandidatePage, error) {
	template := prompts.MustGet("crawling.json", "search-query")
	prompt := prompts.Format(template, map[string]string{"Query": query})

	response, err := client.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	raw, err := parsing.ExtractArray(response)
	if err != nil {
		return nil, err
	}

	var hits []searchHit
	if err := json.Unmarshal(raw, &hits); err != nil {
		return nil, &parsing.MalformedError{Shape: "array", Snippet: "search results are not {url,title,snippet} entries"}
	}

	pages := make([]types.CandidatePage, 0, len(hits))
	for _, h := range hits {
		pages = append(pages, types.CandidatePage{
			URL:     h.URL,
			Title:   h.Title,
			Snippet: h.Snippet,
			Content: h.Snippet,
		})
	}
	return pages, nil
}
