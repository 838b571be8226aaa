package pipeline

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/google/uuid"

	"facultyscout/internal/crawling"
	"facultyscout/internal/extraction"
	"facultyscout/internal/llm"
	"facultyscout/internal/planning"
	"facultyscout/internal/ranking"
	"facultyscout/internal/types"
)

// Stage labels shown to the caller.
const (
	labelPlanner   = "Analyzing your profile"
	labelCrawler   = "Searching university websites"
	labelExtractor = "Extracting faculty information"
	labelRanker    = "Ranking matches by relevance"
)

// Options holds configuration for one pipeline run.
type Options struct {
	Client          llm.Client
	ProfileText     string
	TargetCountries []string

	// SearchBreadth caps how many planner queries are crawled; zero means
	// the default. BatchSize is the extractor batch size; zero means the
	// default.
	SearchBreadth int
	BatchSize     int

	// EnrichPages fetches each crawled page URL and replaces its content
	// with the page body text. UseBrowser additionally allows a headless
	// rendering fallback during enrichment.
	EnrichPages bool
	UseBrowser  bool

	// OnEvent receives progress events synchronously, in production order.
	OnEvent func(Event)
}

// Run executes the four stages strictly in order: Planner -> Crawler ->
// Extractor -> Ranker. Each stage emits a running event on entry and a done
// event on completion. A planner failure is fatal and returned to the
// caller, which owns converting it into the terminal error of its transport;
// the remaining stages degrade internally and always reach done.
//
// The returned list is sorted descending by relevance score. Cancelling ctx
// aborts in-flight upstream calls.
func Run(ctx context.Context, opts Options) ([]types.FacultyCandidate, error) {
	if opts.Client == nil {
		return nil, fmt.Errorf("pipeline requires a generation client")
	}

	runID := uuid.New()
	log.Printf("[run %s] pipeline started", runID)

	// Stage 1: Query Planner
	opts.emit(Event{
		Stage:  StageQueryPlanner,
		Label:  labelPlanner,
		Status: StatusRunning,
		Detail: "Understanding your research interests and generating search strategies...",
	})

	plan, err := planning.PlanQueries(ctx, opts.Client, opts.ProfileText, opts.TargetCountries)
	if err != nil {
		log.Printf("[run %s] planner failed: %v", runID, err)
		return nil, err
	}

	opts.emit(Event{
		Stage:  StageQueryPlanner,
		Label:  labelPlanner,
		Status: StatusDone,
		Detail: fmt.Sprintf("Identified field: %s. Generated %d search strategies.", plan.ResearchField, len(plan.Queries)),
		Data: map[string]any{
			"researchField": plan.ResearchField,
			"keywords":      plan.Keywords,
			"queryCount":    len(plan.Queries),
		},
	})

	// Stage 2: Web Crawler
	breadth := opts.SearchBreadth
	if breadth <= 0 {
		breadth = crawling.DefaultSearchBreadth
	}
	opts.emit(Event{
		Stage:    StageWebCrawler,
		Label:    labelCrawler,
		Status:   StatusRunning,
		Detail:   fmt.Sprintf("Crawling %d search queries across university faculty pages...", len(plan.Queries)),
		Substeps: querySubsteps(plan.Queries, breadth, StatusRunning),
	})

	pages := crawling.CrawlQueries(ctx, opts.Client, plan.Queries, breadth)
	if opts.EnrichPages && len(pages) > 0 {
		pages = crawling.EnrichPages(ctx, pages, crawling.EnrichOptions{UseBrowser: opts.UseBrowser})
	}
	log.Printf("[run %s] crawler produced %d pages", runID, len(pages))

	opts.emit(Event{
		Stage:    StageWebCrawler,
		Label:    labelCrawler,
		Status:   StatusDone,
		Detail:   fmt.Sprintf("Found %d faculty profiles across multiple universities.", len(pages)),
		Substeps: querySubsteps(plan.Queries, breadth, StatusDone),
		Data:     map[string]any{"pagesFound": len(pages)},
	})

	// Stage 3: Faculty Extractor
	opts.emit(Event{
		Stage:  StageExtractor,
		Label:  labelExtractor,
		Status: StatusRunning,
		Detail: fmt.Sprintf("Processing %d pages to extract structured faculty data...", len(pages)),
	})

	faculty := extraction.ExtractFaculty(ctx, opts.Client, pages, opts.BatchSize)
	log.Printf("[run %s] extractor produced %d candidates", runID, len(faculty))

	opts.emit(Event{
		Stage:  StageExtractor,
		Label:  labelExtractor,
		Status: StatusDone,
		Detail: fmt.Sprintf("Extracted detailed profiles for %d faculty members.", len(faculty)),
		Data:   map[string]any{"facultyCount": len(faculty)},
	})

	// Stage 4: Relevance Ranker
	opts.emit(Event{
		Stage:  StageRanker,
		Label:  labelRanker,
		Status: StatusRunning,
		Detail: fmt.Sprintf("Scoring %d faculty members against your profile...", len(faculty)),
	})

	ranked := ranking.RankCandidates(ctx, opts.Client, opts.ProfileText, faculty)

	topName := "N/A"
	topScore := 0.0
	if len(ranked) > 0 {
		topName = ranked[0].Name
		topScore = ranked[0].RelevanceScore
	}
	opts.emit(Event{
		Stage:  StageRanker,
		Label:  labelRanker,
		Status: StatusDone,
		Detail: fmt.Sprintf("Ranked all faculty. Top match: %s (%d%% match).", topName, int(math.Round(topScore*100))),
		Data:   map[string]any{"topMatch": topName},
	})

	log.Printf("[run %s] pipeline completed with %d matches", runID, len(ranked))
	return ranked, nil
}

func (o *Options) emit(ev Event) {
	if o.OnEvent != nil {
		o.OnEvent(ev)
	}
}

// querySubsteps mirrors the truncated query list as crawler substeps.
func querySubsteps(queries []string, breadth int, status Status) []Substep {
	if len(queries) > breadth {
		queries = queries[:breadth]
	}
	substeps := make([]Substep, len(queries))
	for i, q := range queries {
		substeps[i] = Substep{Label: q, Status: status}
	}
	return substeps
}
