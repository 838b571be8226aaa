package crawling

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"facultyscout/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrichPages_ReplacesContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main><p>Full biography text from the faculty page.</p></main></body></html>`))
	}))
	defer server.Close()

	pages := []types.CandidatePage{
		{URL: server.URL, Title: "A", Snippet: "short snippet", Content: "short snippet"},
	}

	enriched := EnrichPages(context.Background(), pages, EnrichOptions{})

	require.Len(t, enriched, 1)
	assert.Equal(t, "Full biography text from the faculty page.", enriched[0].Content)
	assert.Equal(t, "short snippet", enriched[0].Snippet)
}

func TestEnrichPages_FetchFailureKeepsSnippet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	pages := []types.CandidatePage{
		{URL: server.URL, Title: "A", Snippet: "snippet", Content: "snippet"},
	}

	enriched := EnrichPages(context.Background(), pages, EnrichOptions{})

	require.Len(t, enriched, 1)
	assert.Equal(t, "snippet", enriched[0].Content)
}

func TestEnrichPages_DoesNotMutateInput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main>replacement</main></body></html>`))
	}))
	defer server.Close()

	pages := []types.CandidatePage{
		{URL: server.URL, Title: "A", Snippet: "snippet", Content: "snippet"},
	}

	_ = EnrichPages(context.Background(), pages, EnrichOptions{})

	assert.Equal(t, "snippet", pages[0].Content)
}
