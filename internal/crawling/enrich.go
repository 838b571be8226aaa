package crawling

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"facultyscout/internal/fetch"
	"facultyscout/internal/types"
)

// enrichConcurrency bounds parallel page fetches during enrichment.
const enrichConcurrency = 4

// EnrichOptions configures optional page-content enrichment.
type EnrichOptions struct {
	// UseBrowser falls back to headless rendering when the plain HTTP fetch
	// yields too little text (script-rendered faculty pages).
	UseBrowser bool
}

// EnrichPages fetches each page URL and replaces Content with the page's
// main body text. Fetch failures leave the snippet in place; enrichment
// never drops a page. Page order is preserved.
func EnrichPages(ctx context.Context, pages []types.CandidatePage, opts EnrichOptions) []types.CandidatePage {
	enriched := make([]types.CandidatePage, len(pages))
	copy(enriched, pages)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i := range enriched {
		g.Go(func() error {
			text, err := fetchPageText(gctx, enriched[i].URL, opts.UseBrowser)
			if err != nil {
				log.Printf("Enrichment skipped for %s: %v", enriched[i].URL, err)
				return nil
			}
			if text != "" {
				enriched[i].Content = text
			}
			return nil
		})
	}
	_ = g.Wait()

	return enriched
}

func fetchPageText(ctx context.Context, url string, useBrowser bool) (string, error) {
	result, err := fetch.URL(ctx, url, nil)
	if err != nil {
		return "", err
	}

	text, err := fetch.ExtractMainText(result.HTML, fetch.FacultyPageSelectors())
	if err != nil {
		return "", err
	}

	if useBrowser && fetch.ShouldUseBrowser(text) {
		html, err := fetch.WithBrowser(ctx, url, fetch.DefaultBrowserTimeout)
		if err != nil {
			return text, nil // keep whatever the plain fetch produced
		}
		rendered, err := fetch.ExtractMainText(html, fetch.FacultyPageSelectors())
		if err == nil && len(rendered) > len(text) {
			text = rendered
		}
	}

	return text, nil
}
