package specification

import "strings"

// containsFold is the case-insensitive substring match the search boxes use.
// An empty term matches everything.
func containsFold(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// isAll treats "" and "all" as no filter.
func isAll(v string) bool {
	return v == "" || v == "all"
}
