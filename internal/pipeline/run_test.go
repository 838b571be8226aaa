package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"facultyscout/internal/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLLMClient implements llm.Client for testing. Prompts are dispatched on
// the role line each stage prompt opens with.
type MockLLMClient struct {
	PlannerResponse   string
	PlannerErr        error
	CrawlerResponse   string
	ExtractorResponse string
	RankerResponse    string

	mu    sync.Mutex
	calls []string
}

func (m *MockLLMClient) Generate(_ context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "research advisor AI"):
		m.record("planner")
		return m.PlannerResponse, m.PlannerErr
	case strings.Contains(prompt, "web research agent"):
		m.record("crawler")
		return m.CrawlerResponse, nil
	case strings.Contains(prompt, "data extraction agent"):
		m.record("extractor")
		return m.ExtractorResponse, nil
	case strings.Contains(prompt, "research matching agent"):
		m.record("ranker")
		return m.RankerResponse, nil
	}
	return "", errors.New("unrecognized prompt")
}

func (m *MockLLMClient) Close() error { return nil }

func (m *MockLLMClient) record(stage string) {
	m.mu.Lock()
	m.calls = append(m.calls, stage)
	m.mu.Unlock()
}

func (m *MockLLMClient) CallsTo(stage string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == stage {
			n++
		}
	}
	return n
}

func happyClient() *MockLLMClient {
	return &MockLLMClient{
		PlannerResponse: `{"queries": ["q0", "q1"], "researchField": "NLP", "keywords": ["low-resource"]}`,
		CrawlerResponse: `[{"url": "https://example.edu/a", "title": "Prof. A", "snippet": "works on NLP"}]`,
		ExtractorResponse: `[{"name": "Prof. A", "institution": "Example University", "department": "CS",
			"email": "a@example.edu", "bio_summary": "NLP research.",
			"research_interests": ["nlp"], "website_url": "https://example.edu/a"}]`,
		RankerResponse: `[{"index": 0, "score": 0.9, "reason": "strong overlap"}]`,
	}
}

func collectEvents(events *[]Event) func(Event) {
	return func(ev Event) { *events = append(*events, ev) }
}

func TestRun_SuccessEmitsTwoEventsPerStage(t *testing.T) {
	var events []Event
	ranked, err := Run(context.Background(), Options{
		Client:      happyClient(),
		ProfileText: "low-resource NLP",
		OnEvent:     collectEvents(&events),
	})

	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "Prof. A", ranked[0].Name)
	assert.Equal(t, 0.9, ranked[0].RelevanceScore)

	require.Len(t, events, 8)
	wantStages := []Stage{
		StageQueryPlanner, StageQueryPlanner,
		StageWebCrawler, StageWebCrawler,
		StageExtractor, StageExtractor,
		StageRanker, StageRanker,
	}
	for i, ev := range events {
		assert.Equal(t, wantStages[i], ev.Stage, "event %d", i)
		if i%2 == 0 {
			assert.Equal(t, StatusRunning, ev.Status, "event %d", i)
		} else {
			assert.Equal(t, StatusDone, ev.Status, "event %d", i)
		}
	}
}

func TestRun_PlannerFailureIsFatal(t *testing.T) {
	client := happyClient()
	client.PlannerErr = &llm.UpstreamError{Message: "503"}

	var events []Event
	_, err := Run(context.Background(), Options{
		Client:      client,
		ProfileText: "profile",
		OnEvent:     collectEvents(&events),
	})

	require.Error(t, err)
	// Only the planner's running event is emitted; no later stage runs.
	require.Len(t, events, 1)
	assert.Equal(t, StageQueryPlanner, events[0].Stage)
	assert.Equal(t, StatusRunning, events[0].Status)
	assert.Zero(t, client.CallsTo("crawler"))
	assert.Zero(t, client.CallsTo("ranker"))
}

func TestRun_PlannerParseFailureIsFatal(t *testing.T) {
	client := happyClient()
	client.PlannerResponse = "no json"

	var events []Event
	_, err := Run(context.Background(), Options{
		Client:  client,
		OnEvent: collectEvents(&events),
	})

	require.Error(t, err)
	assert.Len(t, events, 1)
}

func TestRun_PlannerDoneCarriesSummaryData(t *testing.T) {
	var events []Event
	_, err := Run(context.Background(), Options{
		Client:  happyClient(),
		OnEvent: collectEvents(&events),
	})
	require.NoError(t, err)

	done := events[1]
	assert.Equal(t, StatusDone, done.Status)
	assert.Equal(t, "NLP", done.Data["researchField"])
	assert.Equal(t, 2, done.Data["queryCount"])
	assert.Contains(t, done.Detail, "Identified field: NLP")
}

func TestRun_CrawlerSubstepsMirrorQueries(t *testing.T) {
	var events []Event
	_, err := Run(context.Background(), Options{
		Client:  happyClient(),
		OnEvent: collectEvents(&events),
	})
	require.NoError(t, err)

	running := events[2]
	require.Equal(t, StageWebCrawler, running.Stage)
	require.Len(t, running.Substeps, 2)
	assert.Equal(t, "q0", running.Substeps[0].Label)
	assert.Equal(t, StatusRunning, running.Substeps[0].Status)

	done := events[3]
	assert.Equal(t, StatusDone, done.Substeps[0].Status)
	assert.Equal(t, 1, done.Data["pagesFound"])
}

func TestRun_SubstepsTruncatedToBreadth(t *testing.T) {
	client := happyClient()
	client.PlannerResponse = `{"queries": ["q0","q1","q2","q3","q4","q5","q6","q7"], "researchField": "NLP", "keywords": ["k"]}`

	var events []Event
	_, err := Run(context.Background(), Options{
		Client:  client,
		OnEvent: collectEvents(&events),
	})
	require.NoError(t, err)

	running := events[2]
	assert.Len(t, running.Substeps, 6)
	assert.Contains(t, running.Detail, "Crawling 8 search queries")
	assert.Equal(t, 6, client.CallsTo("crawler"))
}

func TestRun_EmptyCrawlPropagatesWithoutSpecialCasing(t *testing.T) {
	client := happyClient()
	client.CrawlerResponse = "[]"

	var events []Event
	ranked, err := Run(context.Background(), Options{
		Client:  client,
		OnEvent: collectEvents(&events),
	})

	require.NoError(t, err)
	assert.Empty(t, ranked)
	require.Len(t, events, 8) // all stages still report running and done
	// No pages means no extractor batches and no ranker call.
	assert.Zero(t, client.CallsTo("extractor"))
	assert.Zero(t, client.CallsTo("ranker"))

	rankerDone := events[7]
	assert.Equal(t, "N/A", rankerDone.Data["topMatch"])
}

func TestRun_RankerDetailReportsTopMatch(t *testing.T) {
	var events []Event
	_, err := Run(context.Background(), Options{
		Client:  happyClient(),
		OnEvent: collectEvents(&events),
	})
	require.NoError(t, err)

	done := events[7]
	assert.Contains(t, done.Detail, "Top match: Prof. A (90% match)")
	assert.Equal(t, "Prof. A", done.Data["topMatch"])
}

func TestRun_NilClient(t *testing.T) {
	_, err := Run(context.Background(), Options{})
	assert.Error(t, err)
}

func TestRun_NoCallbackIsFine(t *testing.T) {
	ranked, err := Run(context.Background(), Options{
		Client:      happyClient(),
		ProfileText: "profile",
	})
	require.NoError(t, err)
	assert.Len(t, ranked, 1)
}
