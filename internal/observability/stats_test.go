package observability

import "testing"

func TestSnapshot(t *testing.T) {
	s := NewStats()
	s.Navigations.Add(3)
	s.Clicks.Add(2)
	s.LinksFound.Add(10)
	s.Errors.Add(1)

	snap := s.Snapshot()
	want := map[string]int64{
		"navigations":   3,
		"clicks":        2,
		"links_found":   10,
		"cards_skipped": 0,
		"ingredients":   0,
		"instructions":  0,
		"errors":        1,
	}
	if len(snap) != len(want) {
		t.Fatalf("expected %d counters, got %d", len(want), len(snap))
	}
	for k, v := range want {
		if snap[k] != v {
			t.Errorf("%s: expected %d, got %d", k, v, snap[k])
		}
	}
}
