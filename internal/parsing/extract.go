// Package parsing extracts structured JSON payloads from free-form model
// output. The generation service is not guaranteed to return pure JSON, so
// every stage routes its responses through here.
package parsing

import (
	"encoding/json"
	"strings"

	"facultyscout/internal/llm"
)

// ExtractObject locates the first balanced {...} substring in text and
// parses it as JSON. Surrounding prose, markdown fences, and explanatory
// text are tolerated. Returns *NoMatchError when no such substring exists
// and *MalformedError when the substring is not valid JSON.
func ExtractObject(text string) (json.RawMessage, error) {
	return extract(text, '{', '}')
}

// ExtractArray is ExtractObject for [...] payloads.
func ExtractArray(text string) (json.RawMessage, error) {
	return extract(text, '[', ']')
}

// extract finds the first open delimiter and the last close delimiter and
// attempts to parse everything between them. This is a best-effort
// heuristic, not a strict parser; callers must treat failure as a
// recoverable, per-item condition unless stage semantics say otherwise.
func extract(text string, openDelim, closeDelim byte) (json.RawMessage, error) {
	text = llm.CleanJSONBlock(text)

	start := strings.IndexByte(text, openDelim)
	end := strings.LastIndexByte(text, closeDelim)
	if start < 0 || end < start {
		return nil, &NoMatchError{Shape: shapeName(openDelim)}
	}

	candidate := text[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return nil, &MalformedError{Shape: shapeName(openDelim), Snippet: snippet(candidate)}
	}

	return json.RawMessage(candidate), nil
}

func shapeName(openDelim byte) string {
	if openDelim == '{' {
		return "object"
	}
	return "array"
}

// snippet truncates a candidate payload for error messages.
func snippet(s string) string {
	const max = 120
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
