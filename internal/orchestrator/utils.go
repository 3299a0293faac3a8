package orchestrator

import "strings"

// cleanHistory trims entries and drops blanks and repeats, keeping the
// first-seen order.
func cleanHistory(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	history := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		history = append(history, u)
	}
	return history
}
