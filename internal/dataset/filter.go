package dataset

import (
	"fmt"
	"reflect"
)

// Entry is a single dataset record.
type Entry = map[string]any

// Filter returns the entries whose fields match every filter value after
// converting both sides to strings. Loose comparison is what the mock
// server uses: path and query parameters always arrive as strings while
// dataset values may be numbers or booleans.
func Filter(entries []Entry, filters map[string]string) []Entry {
	var out []Entry
	for _, e := range entries {
		if matchesLoose(e, filters) {
			out = append(out, e)
		}
	}
	return out
}

// FilterStrict returns the entries whose fields equal every filter value
// exactly, including type. DeepEqual keeps nested objects and lists from
// JSON-decoded entries from panicking the comparison.
func FilterStrict(entries []Entry, filters map[string]any) []Entry {
	var out []Entry
	for _, e := range entries {
		ok := true
		for k, v := range filters {
			if !reflect.DeepEqual(e[k], v) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, e)
		}
	}
	return out
}

func matchesLoose(e Entry, filters map[string]string) bool {
	for k, v := range filters {
		if stringify(e[k]) != v {
			return false
		}
	}
	return true
}

// stringify renders a value the way JSON decoding produced it. Numbers
// decode as float64; integral floats must print without a trailing ".0"
// so that "4" matches an entry holding 4.
func stringify(v any) string {
	switch n := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return n
	case float64:
		if n == float64(int64(n)) {
			return fmt.Sprintf("%d", int64(n))
		}
		return fmt.Sprintf("%g", n)
	default:
		return fmt.Sprintf("%v", n)
	}
}
