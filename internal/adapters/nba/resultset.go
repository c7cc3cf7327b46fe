package nba

import (
	"fmt"
	"strings"
	"time"
)

// statsResponse is the tabular envelope every stats.nba.com endpoint returns:
// named result sets with a header row and mixed-type value rows.
type statsResponse struct {
	Resource   string      `json:"resource"`
	ResultSets []resultSet `json:"resultSets"`
}

type resultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

func (r *statsResponse) resultSet(name string) *resultSet {
	for i := range r.ResultSets {
		if r.ResultSets[i].Name == name {
			return &r.ResultSets[i]
		}
	}
	return nil
}

func (rs *resultSet) columnIndex(header string) int {
	for i, h := range rs.Headers {
		if h == header {
			return i
		}
	}
	return -1
}

func rowString(row []any, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	if s, ok := row[idx].(string); ok {
		return s
	}
	return ""
}

// rowFloat reads a numeric cell; nulls and non-numbers read as 0
func rowFloat(row []any, idx int) float64 {
	if idx < 0 || idx >= len(row) {
		return 0
	}
	if f, ok := row[idx].(float64); ok {
		return f
	}
	return 0
}

// parseGameDate parses dates like "APR 09, 2024"
func parseGameDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty game date")
	}

	// Normalize the all-caps month the API uses
	normalized := strings.ToUpper(s[:1]) + strings.ToLower(s[1:])

	for _, layout := range []string{"Jan 02, 2006", "Jan 2, 2006", "2006-01-02"} {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized game date %q", s)
}
