package openfda

import (
	"strings"

	"github.com/poiesic/taxonomist/core"
)

// buildSearch renders field terms ANDed together, plus one clause per filter.
// Example: device_name:("blood" AND "glucose") AND device_class:"2"
func buildSearch(field string, terms []string, filters core.Filters) string {
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		if q := quote(t); q != "" {
			quoted = append(quoted, q)
		}
	}

	var b strings.Builder
	b.WriteString(field)
	b.WriteString(":(")
	b.WriteString(strings.Join(quoted, " AND "))
	b.WriteString(")")

	for _, f := range filters {
		if q := quote(f.Value); q != "" {
			b.WriteString(" AND ")
			b.WriteString(f.Field)
			b.WriteString(":")
			b.WriteString(q)
		}
	}
	return b.String()
}

// quote wraps a term in double quotes after removing characters the query
// syntax reserves. It returns "" when nothing is left.
func quote(term string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '(', ')', ':', '[', ']', '{', '}':
			return ' '
		}
		return r
	}, term)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if cleaned == "" {
		return ""
	}
	return `"` + cleaned + `"`
}
