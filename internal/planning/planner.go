// Package planning implements the query planner stage: it turns a free-text
// research profile into an ordered list of faculty search queries.
package planning

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"facultyscout/internal/llm"
	"facultyscout/internal/parsing"
	"facultyscout/internal/prompts"
	"facultyscout/internal/schemas"
	"facultyscout/internal/types"
)

// PlanQueries makes exactly one upstream call and parses the result into a
// query plan. Any failure here is pipeline-fatal: there is no meaningful way
// to proceed without a plan, so errors propagate to the orchestrator.
func PlanQueries(ctx context.Context, client llm.Client, profileText string, targetCountries []string) (*types.QueryPlan, error) {
	prompt := buildPlanPrompt(profileText, targetCountries)

	response, err := client.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("query planning failed: %w", err)
	}

	raw, err := parsing.ExtractObject(response)
	if err != nil {
		return nil, fmt.Errorf("query planner returned no usable plan: %w", err)
	}

	if err := schemas.ValidateQueryPlan(raw); err != nil {
		return nil, fmt.Errorf("query planner returned an invalid plan: %w", err)
	}

	var plan types.QueryPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, fmt.Errorf("failed to decode query plan: %w", err)
	}

	return &plan, nil
}

func buildPlanPrompt(profileText string, targetCountries []string) string {
	countries := "No specific country preference — search globally"
	if len(targetCountries) > 0 {
		countries = "Target countries: " + strings.Join(targetCountries, ", ")
	}

	template := prompts.MustGet("planning.json", "plan-queries")
	return prompts.Format(template, map[string]string{
		"ProfileText": profileText,
		"Countries":   countries,
	})
}
