package generator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/schism-dev/schism/internal/dataset"
	"github.com/schism-dev/schism/internal/defs"
)

// Generator produces dataset entries from schemas. dir is the data
// directory, used to resolve foreign key references against already
// generated datasets.
type Generator struct {
	dir string

	// parents caches parent dataset ids so linked generation does not
	// re-read the same file per entry.
	parents map[string][]any
}

// New creates a Generator resolving references in dir.
func New(dir string) *Generator {
	return &Generator{dir: dir, parents: make(map[string][]any)}
}

// Entry generates a single entry from a schema. Fields are generated
// in sorted name order so errors are reported deterministically.
func (g *Generator) Entry(s *dataset.Schema) (dataset.Entry, error) {
	entry := make(dataset.Entry, len(s.Fields))
	for _, name := range sortedFieldNames(s) {
		spec := s.Fields[name]
		kind, err := KindByName(spec.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		value, err := kind.generate(g, Options(spec.Options))
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		entry[name] = value
	}
	return entry, nil
}

// Dataset generates count entries from a schema.
func (g *Generator) Dataset(s *dataset.Schema, count int) ([]dataset.Entry, error) {
	entries := make([]dataset.Entry, 0, count)
	for i := 0; i < count; i++ {
		entry, err := g.Entry(s)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Linked generates a dataset bound to parent entries: every parent gets
// between minPer and maxPer child entries, each carrying the parent's
// id under "<parent>_id".
func (g *Generator) Linked(s *dataset.Schema, parents []dataset.Entry, minPer, maxPer int) ([]dataset.Entry, error) {
	if s.LinkedTo == "" {
		return nil, fmt.Errorf("%w: schema has no linked_to dataset", ErrInvalidOptions)
	}
	if minPer < 0 || maxPer < minPer {
		return nil, fmt.Errorf("%w: entries per parent %d..%d", ErrInvalidOptions, minPer, maxPer)
	}

	fk := s.LinkedTo + "_id"
	var entries []dataset.Entry
	for _, parent := range parents {
		id, ok := parent["id"]
		if !ok {
			return nil, fmt.Errorf("%w: parent %q entry has no id", ErrInvalidOptions, s.LinkedTo)
		}
		n := gofakeit.Number(minPer, maxPer)
		for i := 0; i < n; i++ {
			entry, err := g.Entry(s)
			if err != nil {
				return nil, err
			}
			entry[fk] = id
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// randomForeignID returns the id of a random entry in the named
// dataset. The ids are cached for the lifetime of the Generator.
func (g *Generator) randomForeignID(name string) (any, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: foreign_key needs a dataset option", ErrInvalidOptions)
	}
	ids, ok := g.parents[name]
	if !ok {
		loaded, err := g.loadIDs(name)
		if err != nil {
			return nil, err
		}
		g.parents[name] = loaded
		ids = loaded
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyReference, name)
	}
	return ids[gofakeit.Number(0, len(ids)-1)], nil
}

func (g *Generator) loadIDs(name string) ([]any, error) {
	data, err := os.ReadFile(filepath.Join(g.dir, name+defs.DatasetSuffix))
	if err != nil {
		return nil, fmt.Errorf("foreign_key dataset %q: %w", name, err)
	}
	var entries []dataset.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("foreign_key dataset %q: %w", name, err)
	}
	ids := make([]any, 0, len(entries))
	for _, e := range entries {
		if id, ok := e["id"]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// EnsureID adds a uuid id field to a schema when none is declared.
// Generated datasets always need a stable id for lookups and links.
func EnsureID(s *dataset.Schema) {
	if s.Fields == nil {
		s.Fields = make(map[string]dataset.FieldSpec)
	}
	if _, ok := s.Fields["id"]; !ok {
		s.Fields["id"] = dataset.FieldSpec{Type: "uuid"}
	}
}

func sortedFieldNames(s *dataset.Schema) []string {
	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
