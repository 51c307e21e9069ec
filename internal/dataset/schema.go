package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/schism-dev/schism/internal/defs"
)

// FieldSpec describes how one field of a dataset is generated.
type FieldSpec struct {
	Type    string         `json:"type"`
	Options map[string]any `json:"options,omitempty"`
}

// Schema describes the shape of a generated dataset, persisted to
// <name>-config.json. LinkedTo names the parent dataset for linked
// datasets; child entries carry a "<parent>_id" foreign key.
type Schema struct {
	LinkedTo string               `json:"linked_to,omitempty"`
	Fields   map[string]FieldSpec `json:"fields"`
}

// ForeignKeys returns the names of fields declared as foreign keys.
func (s *Schema) ForeignKeys() []string {
	var keys []string
	for name, spec := range s.Fields {
		if spec.Type == "foreign_key" {
			keys = append(keys, name)
		}
	}
	return keys
}

// LoadSchema reads the schema for the named dataset. It returns
// (nil, nil) when no schema file exists.
func LoadSchema(dir, name string) (*Schema, error) {
	path := filepath.Join(dir, name+defs.SchemaSuffix)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("schema read %q: %w", name, err)
	}
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %s schema: %v", ErrInvalidFile, name, err)
	}
	return &s, nil
}

// SaveSchema writes the schema for the named dataset.
func SaveSchema(dir, name string, s *Schema) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("schema marshal %q: %w", name, err)
	}
	path := filepath.Join(dir, name+defs.SchemaSuffix)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("schema write %q: %w", name, err)
	}
	return nil
}
