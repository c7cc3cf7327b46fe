package mentions

import (
	"testing"
)

func TestExtractor_Extract(t *testing.T) {
	roster := []string{"LeBron James", "Jrue Holiday", "Giannis Antetokounmpo"}
	extractor := NewExtractor(roster)

	t.Run("single mention", func(t *testing.T) {
		found := extractor.Extract("LeBron James scored 30 points")
		if len(found) != 1 || found[0] != "LeBron James" {
			t.Errorf("Expected exactly [LeBron James], got %v", found)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		found := extractor.Extract("LEBRON JAMES and jrue holiday combined for 50")
		if len(found) != 2 {
			t.Errorf("Expected 2 mentions, got %v", found)
		}
	})

	t.Run("no mentions", func(t *testing.T) {
		found := extractor.Extract("The draft lottery takes place next month")
		if len(found) != 0 {
			t.Errorf("Expected no mentions, got %v", found)
		}
	})

	t.Run("empty text", func(t *testing.T) {
		if found := extractor.Extract(""); len(found) != 0 {
			t.Errorf("Expected no mentions for empty text, got %v", found)
		}
	})

	t.Run("each name at most once", func(t *testing.T) {
		found := extractor.Extract("LeBron James praised LeBron James")
		if len(found) != 1 {
			t.Errorf("Expected set semantics, got %v", found)
		}
	})
}

// Substring matching is known to false-positive when one roster name is
// contained in the text for unrelated reasons. The behavior is documented,
// not fixed: word-boundary matching would change output.
func TestExtractor_SubstringFalsePositive(t *testing.T) {
	extractor := NewExtractor([]string{"Mo Bamba"})

	found := extractor.Extract("The crowd sang Mo Bamba all night")
	if len(found) != 1 {
		t.Errorf("Substring matching should report the name here, got %v", found)
	}
}
