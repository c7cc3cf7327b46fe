package mentions

import (
	"strings"
)

// Extractor finds roster player names referenced in article text.
// The roster is loaded once at construction and read-only afterwards.
type Extractor struct {
	names   []string // original casing, roster order
	lowered []string
}

// NewExtractor creates an extractor for the given roster of full names
func NewExtractor(roster []string) *Extractor {
	e := &Extractor{
		names:   make([]string, 0, len(roster)),
		lowered: make([]string, 0, len(roster)),
	}
	for _, name := range roster {
		e.names = append(e.names, name)
		e.lowered = append(e.lowered, strings.ToLower(name))
	}
	return e
}

// RosterSize returns the number of names the extractor matches against
func (e *Extractor) RosterSize() int {
	return len(e.names)
}

// Extract returns the roster names whose lowercase form occurs as a
// substring of the lowercase text. A name that is a substring of another
// player's name can false-positive; that imprecision is a known limitation
// of substring matching. Each name appears at most once in the result.
func (e *Extractor) Extract(text string) []string {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)

	var found []string
	for i, name := range e.lowered {
		if strings.Contains(lower, name) {
			found = append(found, e.names[i])
		}
	}
	return found
}
