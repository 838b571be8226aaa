// Package ranking implements the relevance ranker stage: scoring faculty
// candidates against the research profile and sorting them by fit.
package ranking

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"

	"facultyscout/internal/llm"
	"facultyscout/internal/parsing"
	"facultyscout/internal/prompts"
	"facultyscout/internal/types"
)

const (
	// DefaultScore is assigned when the scoring response covers no entry
	// for a candidate, or when scoring fails entirely.
	DefaultScore = 0.5
	// DefaultReason accompanies DefaultScore.
	DefaultReason = "no specific match data"
)

// scoreEntry is the wire shape of one scoring response item.
type scoreEntry struct {
	Index  int     `json:"index"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// RankCandidates scores every candidate against the profile in a single
// upstream call and returns them sorted descending by relevance score, ties
// broken by input order. Ranking is a quality-of-result concern, not a
// correctness one: it never fails. Total scoring failure degrades to
// all-default scores in the original order, and an empty input returns
// immediately without any upstream call.
func RankCandidates(ctx context.Context, client llm.Client, profileText string, faculty []types.FacultyCandidate) []types.FacultyCandidate {
	if len(faculty) == 0 {
		return []types.FacultyCandidate{}
	}

	scores := scoreCandidates(ctx, client, profileText, faculty)

	ranked := make([]types.FacultyCandidate, len(faculty))
	copy(ranked, faculty)
	for i := range ranked {
		if entry, ok := scores[i]; ok {
			ranked[i].RelevanceScore = clampScore(entry.Score)
			ranked[i].MatchReason = entry.Reason
		} else {
			ranked[i].RelevanceScore = DefaultScore
			ranked[i].MatchReason = DefaultReason
		}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].RelevanceScore > ranked[b].RelevanceScore
	})

	return ranked
}

// scoreCandidates returns the parsed scoring entries keyed by candidate
// index. On any failure it returns an empty map, which defaults every
// candidate.
func scoreCandidates(ctx context.Context, client llm.Client, profileText string, faculty []types.FacultyCandidate) map[int]scoreEntry {
	template := prompts.MustGet("ranking.json", "score-candidates")
	prompt := prompts.Format(template, map[string]string{
		"ProfileText": profileText,
		"FacultyList": formatFacultyList(faculty),
	})

	scores := make(map[int]scoreEntry)

	response, err := client.Generate(ctx, prompt)
	if err != nil {
		log.Printf("Ranker falling back to default scores: %v", err)
		return scores
	}

	raw, err := parsing.ExtractArray(response)
	if err != nil {
		log.Printf("Ranker falling back to default scores: %v", err)
		return scores
	}

	var entries []scoreEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Printf("Ranker falling back to default scores: %v", err)
		return scores
	}

	for _, entry := range entries {
		if entry.Index < 0 || entry.Index >= len(faculty) {
			continue
		}
		if _, dup := scores[entry.Index]; dup {
			continue // first entry per index wins
		}
		scores[entry.Index] = entry
	}
	return scores
}

func formatFacultyList(faculty []types.FacultyCandidate) string {
	lines := make([]string, len(faculty))
	for i, f := range faculty {
		lines[i] = fmt.Sprintf("[%d] %s — %s, %s\nResearch: %s\nBio: %s",
			i, f.Name, f.Institution, f.Department,
			strings.Join(f.ResearchInterests, ", "), f.BioSummary)
	}
	return strings.Join(lines, "\n\n")
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
