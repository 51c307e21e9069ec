// Package docgen renders project documentation: a hand-written
// template.md followed by generated middleware, dataset and endpoint
// sections describing the configured mock API.
package docgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schism-dev/schism/internal/config"
	"github.com/schism-dev/schism/internal/dataset"
	"github.com/schism-dev/schism/internal/defs"
)

// ErrNoTemplate indicates the project has no template.md to extend.
var ErrNoTemplate = errors.New("docgen: template.md not found")

// Generate renders the documentation for the project in dir and writes
// it to output.md, returning the output path.
func Generate(dir string, project *config.Project) (string, error) {
	template, err := os.ReadFile(filepath.Join(dir, defs.DocTemplateMD))
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w in %s", ErrNoTemplate, dir)
	}
	if err != nil {
		return "", fmt.Errorf("docgen: read template: %w", err)
	}

	body, err := Render(dir, project)
	if err != nil {
		return "", err
	}

	out := strings.TrimRight(string(template), "\n") + "\n\n" + body
	path := filepath.Join(dir, defs.DocOutputMD)
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return "", fmt.Errorf("docgen: write output: %w", err)
	}
	return path, nil
}

// Render produces the generated sections without the template prefix.
func Render(dir string, project *config.Project) (string, error) {
	mw := middlewareSection(project)
	ds, err := datasetSection(dir, project)
	if err != nil {
		return "", err
	}
	ep := endpointSection(project)
	return mw + "\n\n" + ds + "\n\n" + ep + "\n", nil
}

// datasetFields returns the field names of the first entry of the
// named dataset, sorted for stable output.
func datasetFields(dir, name string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(dir, name+defs.DatasetSuffix))
	if err != nil {
		return nil, fmt.Errorf("docgen: dataset %q: %w", name, err)
	}
	var entries []dataset.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("docgen: dataset %q: %w", name, err)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return sortedKeys(entries[0]), nil
}
