package wizard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/schism-dev/schism/internal/dataset"
	"github.com/schism-dev/schism/internal/generator"
)

// SchemaResult is the outcome of the schema wizard: the dataset name
// and its generation schema.
type SchemaResult struct {
	Name   string
	Schema *dataset.Schema
}

// RunSchema collects a dataset generation schema interactively: the
// dataset name, an optional parent link and the generated fields. dir
// is where existing schemas are looked up before overwriting.
func (w *Wizard) RunSchema(dir string) (*SchemaResult, error) {
	if w.headless.IsHeadless() {
		return nil, ErrHeadless
	}

	name, err := w.input("Dataset name", "the schema is saved as <name>-config.json", true)
	if err != nil {
		return nil, err
	}

	if existing, err := dataset.LoadSchema(dir, name); err != nil {
		return nil, err
	} else if existing != nil {
		overwrite, err := w.confirm("A schema for "+name+" already exists. Overwrite it?", false)
		if err != nil {
			return nil, err
		}
		if !overwrite {
			return &SchemaResult{Name: name, Schema: existing}, nil
		}
	}

	linked, err := w.confirm("Link this dataset to a parent dataset?", false)
	if err != nil {
		return nil, err
	}
	schema := &dataset.Schema{Fields: make(map[string]dataset.FieldSpec)}
	if linked {
		parent, err := w.input("Parent dataset name",
			"entries get a <parent>_id foreign key", true)
		if err != nil {
			return nil, err
		}
		schema.LinkedTo = parent
	}

	for {
		field, err := w.input("Field name", "leave blank to finish", false)
		if err != nil {
			return nil, err
		}
		if field == "" {
			break
		}
		spec, err := w.promptFieldSpec()
		if err != nil {
			return nil, err
		}
		schema.Fields[field] = spec
	}

	generator.EnsureID(schema)
	return &SchemaResult{Name: name, Schema: schema}, nil
}

// promptFieldSpec selects a field kind and collects its options.
func (w *Wizard) promptFieldSpec() (dataset.FieldSpec, error) {
	kinds := generator.Kinds()
	opts := make([]huh.Option[string], len(kinds))
	for i, k := range kinds {
		opts[i] = huh.NewOption(k.Name+" - "+k.Description, k.Name)
	}

	var kindName string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Field type").Options(opts...).Value(&kindName),
	)).WithTheme(w.huhTheme())
	if err := form.Run(); err != nil {
		return dataset.FieldSpec{}, wizardErr(err)
	}

	kind, err := generator.KindByName(kindName)
	if err != nil {
		return dataset.FieldSpec{}, err
	}

	options, err := w.promptKindOptions(kind)
	if err != nil {
		return dataset.FieldSpec{}, err
	}
	return dataset.FieldSpec{Type: kind.Name, Options: options}, nil
}

// promptKindOptions asks for each option of a field kind, typed by the
// option's default value. Answers matching the default are omitted.
func (w *Wizard) promptKindOptions(kind generator.Kind) (map[string]any, error) {
	if len(kind.Options) == 0 {
		return nil, nil
	}

	options := map[string]any{}
	for _, spec := range kind.Options {
		switch def := spec.Default.(type) {
		case bool:
			v, err := w.confirmDesc(spec.Key, spec.Description, def)
			if err != nil {
				return nil, err
			}
			if v != def {
				options[spec.Key] = v
			}

		case int:
			raw, err := w.input(spec.Key, fmt.Sprintf("%s (default %d)", spec.Description, def), false)
			if err != nil {
				return nil, err
			}
			if raw == "" {
				continue
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("option %s: %w", spec.Key, errNotAnInteger)
			}
			options[spec.Key] = n

		case float64:
			raw, err := w.input(spec.Key, fmt.Sprintf("%s (default %v)", spec.Description, def), false)
			if err != nil {
				return nil, err
			}
			if raw == "" {
				continue
			}
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("option %s: %w", spec.Key, errNotANumber)
			}
			options[spec.Key] = f

		default:
			raw, err := w.input(spec.Key, spec.Description, false)
			if err != nil {
				return nil, err
			}
			if raw != "" {
				options[spec.Key] = strings.TrimSpace(raw)
			}
		}
	}
	if len(options) == 0 {
		return nil, nil
	}
	return options, nil
}

var (
	errNotAnInteger = errors.New("expected an integer")
	errNotANumber   = errors.New("expected a number")
)
