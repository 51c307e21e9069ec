package dataset

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/schism-dev/schism/internal/defs"
)

// Store holds the datasets served by the mock server. It is safe for
// concurrent use: handlers read and mutate datasets while the control
// panel resets them.
type Store struct {
	mu   sync.RWMutex
	dir  string
	sets map[string][]Entry
}

// NewStore creates an empty Store reading dataset files from dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir, sets: make(map[string][]Entry)}
}

// Dir returns the directory dataset files are read from.
func (s *Store) Dir() string {
	return s.dir
}

// Load reads each named dataset from <name>.json into memory. Names
// already loaded are reloaded from disk.
func (s *Store) Load(names ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range names {
		entries, err := s.readFile(name)
		if err != nil {
			return err
		}
		s.sets[name] = entries
	}
	return nil
}

// Reload re-reads a single loaded dataset from disk.
func (s *Store) Reload(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sets[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	entries, err := s.readFile(name)
	if err != nil {
		return err
	}
	s.sets[name] = entries
	return nil
}

// Reset reloads every loaded dataset from disk, discarding all
// in-memory mutations.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name := range s.sets {
		entries, err := s.readFile(name)
		if err != nil {
			return err
		}
		s.sets[name] = entries
	}
	return nil
}

// Names returns the loaded dataset names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := slices.Collect(maps.Keys(s.sets))
	slices.Sort(names)
	return names
}

// Has reports whether the named dataset is loaded.
func (s *Store) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.sets[name]
	return ok
}

// Entries returns a copy of the named dataset.
func (s *Store) Entries(name string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, ok := s.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return slices.Clone(entries), nil
}

// Query returns the entries of the named dataset matching the given
// parameters with loose comparison. An empty parameter map matches all.
func (s *Store) Query(name string, params map[string]string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, ok := s.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if len(params) == 0 {
		return slices.Clone(entries), nil
	}
	return Filter(entries, params), nil
}

// Insert appends an entry to the named dataset.
func (s *Store) Insert(name string, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sets[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	s.sets[name] = append(s.sets[name], e)
	return nil
}

// Remove deletes the entries matching params and returns them. With
// single set, exactly one entry must match or nothing is removed.
// Params must not be empty.
func (s *Store) Remove(name string, params map[string]string, single bool) ([]Entry, error) {
	if len(params) == 0 {
		return nil, ErrNoSelector
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	matched := Filter(entries, params)
	if len(matched) == 0 {
		return nil, ErrNoMatch
	}
	if single && len(matched) != 1 {
		return nil, &MultipleMatchesError{Count: len(matched)}
	}

	kept := make([]Entry, 0, len(entries)-len(matched))
	for _, e := range entries {
		if !matchesLoose(e, params) {
			kept = append(kept, e)
		}
	}
	s.sets[name] = kept
	return matched, nil
}

// Replace locates exactly one entry matching params and replaces it
// wholesale with body, returning the stored entry. Params must not be
// empty.
func (s *Store) Replace(name string, params map[string]string, body Entry) (Entry, error) {
	if len(params) == 0 {
		return nil, ErrNoSelector
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	idx := -1
	count := 0
	for i, e := range entries {
		if matchesLoose(e, params) {
			idx = i
			count++
		}
	}
	if count == 0 {
		return nil, ErrNoMatch
	}
	if count != 1 {
		return nil, &MultipleMatchesError{Count: count}
	}

	entries[idx] = body
	return body, nil
}

// readFile decodes <name>.json from the store directory. Caller holds
// the write lock.
func (s *Store) readFile(name string) ([]Entry, error) {
	path := filepath.Join(s.dir, name+defs.DatasetSuffix)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset read %q: %w", name, err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFile, name, err)
	}
	return entries, nil
}

// Save writes a dataset to <name>.json in dir, indented so generated
// files stay hand-editable.
func Save(dir, name string, entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("dataset marshal %q: %w", name, err)
	}
	path := filepath.Join(dir, name+defs.DatasetSuffix)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("dataset write %q: %w", name, err)
	}
	return nil
}
