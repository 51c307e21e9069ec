package docgen

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/schism-dev/schism/internal/config"
	"github.com/schism-dev/schism/internal/dataset"
)

var titleCaser = cases.Title(language.English)

// heading turns a config identifier into a section heading, so
// "auth_token" reads as "Auth Token".
func heading(name string) string {
	return titleCaser.String(strings.ReplaceAll(name, "_", " "))
}

// printValue renders a single config value for the docs. Lists render
// inline, maps as an indented bullet block, empty maps as "(none)".
func printValue(v any) string {
	switch val := v.(type) {
	case []string:
		return "[ " + strings.Join(val, ", ") + " ]"
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = fmt.Sprint(item)
		}
		return "[ " + strings.Join(parts, ", ") + " ]"
	case map[string]any:
		if len(val) == 0 {
			return "(none)"
		}
		var b strings.Builder
		for _, key := range sortedKeys(val) {
			b.WriteString(fmt.Sprintf("\n  - %s: %v", key, val[key]))
		}
		return b.String()
	default:
		return fmt.Sprint(v)
	}
}

// listMap renders a map as "- key: value" lines with sorted keys.
func listMap(m map[string]any) string {
	lines := make([]string, 0, len(m))
	for _, key := range sortedKeys(m) {
		lines = append(lines, fmt.Sprintf("- %s: %s", key, printValue(m[key])))
	}
	return strings.Join(lines, "\n")
}

// middlewareSection documents every configured middleware and its
// settings, sorted by name.
func middlewareSection(project *config.Project) string {
	names := make([]string, 0, len(project.Middleware))
	for name := range project.Middleware {
		names = append(names, name)
	}
	sort.Strings(names)

	notes := make([]string, 0, len(names))
	for _, name := range names {
		settings := make(map[string]any, len(project.Middleware[name]))
		for k, v := range project.Middleware[name] {
			settings[k] = v
		}
		notes = append(notes, "### "+heading(name)+"\n"+listMap(settings))
	}
	return "## Middleware\n\n" + strings.Join(notes, "\n\n")
}

// datasetSection documents every referenced dataset: its field names
// plus foreign key warnings derived from the dataset's schema.
func datasetSection(dir string, project *config.Project) (string, error) {
	var notes []string
	for _, name := range project.DataSets() {
		fields, err := datasetFields(dir, name)
		if err != nil {
			return "", err
		}
		note := "### " + heading(name) + "\n" + strings.Join(fields, ", ")
		warning, err := foreignKeyWarnings(dir, name)
		if err != nil {
			return "", err
		}
		if warning != "" {
			note += "\n\n" + warning
		}
		notes = append(notes, note)
	}
	return "## Datasets\n\n" + strings.Join(notes, "\n\n"), nil
}

// foreignKeyWarnings flags linked datasets and foreign key fields so
// frontend readers do not treat them as fetchable references. Datasets
// without a schema produce no warning.
func foreignKeyWarnings(dir, name string) (string, error) {
	schema, err := dataset.LoadSchema(dir, name)
	if err != nil {
		return "", err
	}
	if schema == nil {
		return "", nil
	}

	var lines []string
	if schema.LinkedTo != "" {
		lines = append(lines, fmt.Sprintf(
			"**Note:** This dataset is linked to `%s` via `%s_id` foreign key field.",
			schema.LinkedTo, schema.LinkedTo))
	}

	keys := schema.ForeignKeys()
	sort.Strings(keys)
	if len(keys) > 0 {
		lines = append(lines,
			"**Note:** The following fields are foreign keys and should not be used to trigger extra fetches:")
		for _, fk := range keys {
			lines = append(lines, "- `"+fk+"`")
		}
	}
	return strings.Join(lines, "\n"), nil
}

// endpointSection documents every route under its endpoint path.
func endpointSection(project *config.Project) string {
	notes := make([]string, 0, len(project.Routes))
	for _, route := range project.Routes {
		metadata := map[string]any(route.Metadata)
		if metadata == nil {
			metadata = map[string]any{}
		}
		fields := []string{
			"- method: " + route.Method,
			"- data_set: " + route.DataSet,
			"- middleware: " + printValue(route.Middleware),
			"- metadata: " + printValue(metadata),
		}
		notes = append(notes, "### "+route.Endpoint+"\n"+strings.Join(fields, "\n"))
	}
	return "## Endpoints\n\n" + strings.Join(notes, "\n\n")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
