package types

// DedupePagesByTitle keeps the first-seen page for each distinct title,
// preserving input order. Two pages with identical titles are considered
// the same page within a run.
func DedupePagesByTitle(pages []CandidatePage) []CandidatePage {
	seen := make(map[string]bool, len(pages))
	unique := make([]CandidatePage, 0, len(pages))

	for _, p := range pages {
		if seen[p.Title] {
			continue
		}
		seen[p.Title] = true
		unique = append(unique, p)
	}

	return unique
}
