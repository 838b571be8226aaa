// Package types defines the run-scoped data model shared by the pipeline
// stages and the HTTP layer.
package types

// QueryPlan is the Query Planner's output. Queries order is significant: it
// determines crawl order, and only a bounded prefix is crawled.
type QueryPlan struct {
	Queries       []string `json:"queries"`
	ResearchField string   `json:"researchField"`
	Keywords      []string `json:"keywords"`
}

// CandidatePage is one search hit produced by the Web Crawler. Title is the
// deduplication key within a single pipeline run.
type CandidatePage struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Content string `json:"content"`
}

// FacultyCandidate is a faculty record produced by the Extractor and scored
// by the Ranker. It has no identity across runs; it is a transient,
// run-scoped value.
type FacultyCandidate struct {
	Name              string   `json:"name"`
	Institution       string   `json:"institution"`
	Department        string   `json:"department"`
	Email             string   `json:"email"`
	BioSummary        string   `json:"bio_summary"`
	ResearchInterests []string `json:"research_interests"`
	WebsiteURL        string   `json:"website_url"`
	RelevanceScore    float64  `json:"relevance_score"`
	MatchReason       string   `json:"match_reason"`
}

// MatchRequest is the inbound trigger from the UI layer.
type MatchRequest struct {
	ProfileText     string   `json:"profile_text" validate:"required"`
	TargetCountries []string `json:"target_countries,omitempty" validate:"omitempty,dive,iso3166_1_alpha2"`
}
