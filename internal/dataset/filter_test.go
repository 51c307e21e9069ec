package dataset

import "testing"

func sampleEntries() []Entry {
	return []Entry{
		{"id": float64(1), "name": "alice", "active": true},
		{"id": float64(2), "name": "bob", "active": false},
		{"id": float64(3), "name": "alice", "active": false},
	}
}

func TestFilterLooseNumericMatch(t *testing.T) {
	t.Parallel()

	// Path and query params arrive as strings; JSON numbers decode as
	// float64. "2" must match the entry with id 2.
	got := Filter(sampleEntries(), map[string]string{"id": "2"})
	if len(got) != 1 {
		t.Fatalf("Filter() returned %d entries, want 1", len(got))
	}
	if got[0]["name"] != "bob" {
		t.Errorf("Filter() matched %v, want bob", got[0]["name"])
	}
}

func TestFilterMultipleKeys(t *testing.T) {
	t.Parallel()

	got := Filter(sampleEntries(), map[string]string{"name": "alice", "active": "false"})
	if len(got) != 1 {
		t.Fatalf("Filter() returned %d entries, want 1", len(got))
	}
	if got[0]["id"] != float64(3) {
		t.Errorf("Filter() matched id %v, want 3", got[0]["id"])
	}
}

func TestFilterNoMatch(t *testing.T) {
	t.Parallel()

	if got := Filter(sampleEntries(), map[string]string{"name": "carol"}); len(got) != 0 {
		t.Errorf("Filter() returned %d entries, want 0", len(got))
	}
}

func TestFilterEmptyFiltersMatchesAll(t *testing.T) {
	t.Parallel()

	if got := Filter(sampleEntries(), nil); len(got) != 3 {
		t.Errorf("Filter() returned %d entries, want 3", len(got))
	}
}

func TestFilterStrictTypeSensitive(t *testing.T) {
	t.Parallel()

	entries := sampleEntries()

	// String "1" must not match numeric id 1.
	if got := FilterStrict(entries, map[string]any{"id": "1"}); len(got) != 0 {
		t.Errorf("FilterStrict() with string filter returned %d entries, want 0", len(got))
	}
	if got := FilterStrict(entries, map[string]any{"id": float64(1)}); len(got) != 1 {
		t.Errorf("FilterStrict() with float64 filter returned %d entries, want 1", len(got))
	}
}

func TestFilterStrictNestedValues(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{"id": float64(1), "address": map[string]any{"city": "Berlin"}},
		{"id": float64(2), "address": map[string]any{"city": "Oslo"}},
		{"id": float64(3), "tags": []any{"a", "b"}},
	}

	got := FilterStrict(entries, map[string]any{"address": map[string]any{"city": "Oslo"}})
	if len(got) != 1 || got[0]["id"] != float64(2) {
		t.Errorf("FilterStrict() with nested map filter = %v, want the Oslo entry", got)
	}

	got = FilterStrict(entries, map[string]any{"tags": []any{"a", "b"}})
	if len(got) != 1 || got[0]["id"] != float64(3) {
		t.Errorf("FilterStrict() with slice filter = %v, want the tagged entry", got)
	}
}

func TestStringify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"integral float", float64(4), "4"},
		{"fractional float", 4.5, "4.5"},
		{"string", "x", "x"},
		{"bool", true, "true"},
		{"nil", nil, "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := stringify(tt.in); got != tt.want {
				t.Errorf("stringify(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
