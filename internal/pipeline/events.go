// Package pipeline orchestrates the four matching stages and reports their
// progress as an ordered stream of events.
package pipeline

// Stage identifies one of the four pipeline stages.
type Stage string

// Stage identifiers, in execution order.
const (
	StageQueryPlanner Stage = "query-planner"
	StageWebCrawler   Stage = "web-crawler"
	StageExtractor    Stage = "extractor"
	StageRanker       Stage = "ranker"
)

// Status is the lifecycle state of a stage.
type Status string

// Stage statuses.
const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Substep reports progress of one unit of work inside a stage (the crawler's
// individual search queries).
type Substep struct {
	Label  string `json:"label"`
	Status Status `json:"status"`
}

// Event describes a stage transition. Events for the same stage are
// idempotently replaceable: a later event supersedes an earlier one in any
// observer that keeps per-stage state.
type Event struct {
	Stage    Stage          `json:"id"`
	Label    string         `json:"label"`
	Status   Status         `json:"status"`
	Detail   string         `json:"detail,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	Substeps []Substep      `json:"substeps,omitempty"`
}
