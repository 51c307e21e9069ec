package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/schism-dev/schism/internal/middleware"
)

// promptRequirements asks for each requirement in order and returns the
// collected settings. Optional fields left blank are omitted.
func (w *Wizard) promptRequirements(reqs []middleware.Requirement) (middleware.Settings, error) {
	settings := middleware.Settings{}
	for _, req := range reqs {
		value, skip, err := w.promptRequirement(req)
		if err != nil {
			return nil, err
		}
		if !skip {
			settings[req.Key] = value
		}
	}
	return settings, nil
}

// promptRequirement asks for a single requirement. skip is true when an
// optional field was left empty.
func (w *Wizard) promptRequirement(req middleware.Requirement) (value any, skip bool, err error) {
	title := req.Key
	if req.Mandatory {
		title += " (mandatory)"
	} else {
		title += " (optional)"
	}

	switch req.Kind {
	case middleware.KindBool:
		def, _ := req.Default.(bool)
		v, err := w.confirmDesc(title, req.Description, def)
		return v, false, err

	case middleware.KindMap:
		fmt.Fprintln(w.out, w.theme.Muted("Enter key-value pairs for "+req.Key+" (blank key to finish)"))
		pairs, err := w.promptPairs()
		if err != nil {
			return nil, false, err
		}
		if len(pairs) == 0 && !req.Mandatory {
			return nil, true, nil
		}
		return pairs, false, nil

	case middleware.KindList:
		raw, err := w.input(title, req.Description+" (comma separated)", req.Mandatory)
		if err != nil {
			return nil, false, err
		}
		items := splitList(raw)
		if len(items) == 0 && !req.Mandatory {
			return nil, true, nil
		}
		return items, false, nil

	default:
		raw, err := w.input(title, req.Description, req.Mandatory)
		if err != nil {
			return nil, false, err
		}
		if raw == "" && !req.Mandatory {
			return nil, true, nil
		}
		return raw, false, nil
	}
}

// promptPairs collects string key-value pairs until a blank key.
func (w *Wizard) promptPairs() (map[string]any, error) {
	pairs := map[string]any{}
	for {
		key, err := w.input("Key", "leave blank to stop", false)
		if err != nil {
			return nil, err
		}
		if key == "" {
			return pairs, nil
		}
		value, err := w.input("Value for "+key, "", true)
		if err != nil {
			return nil, err
		}
		pairs[key] = value
	}
}

// input asks a single text question.
func (w *Wizard) input(title, description string, mandatory bool) (string, error) {
	var v string
	in := huh.NewInput().Title(title).Value(&v)
	if description != "" {
		in = in.Description(description)
	}
	if mandatory {
		in = in.Validate(required(title))
	}
	form := huh.NewForm(huh.NewGroup(in)).WithTheme(w.huhTheme())
	if err := form.Run(); err != nil {
		return "", wizardErr(err)
	}
	return strings.TrimSpace(v), nil
}

// confirmDesc asks a yes/no question with a description line.
func (w *Wizard) confirmDesc(title, description string, def bool) (bool, error) {
	v := def
	c := huh.NewConfirm().Title(title).Value(&v)
	if description != "" {
		c = c.Description(description)
	}
	form := huh.NewForm(huh.NewGroup(c)).WithTheme(w.huhTheme())
	if err := form.Run(); err != nil {
		return false, wizardErr(err)
	}
	return v, nil
}

// splitList parses a comma-separated answer into trimmed items.
func splitList(raw string) []string {
	var items []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// huhTheme maps the CLI theme onto huh's form styling.
func (w *Wizard) huhTheme() *huh.Theme {
	t := huh.ThemeBase()
	if w.theme.NoColor {
		return t
	}

	primary := lipgloss.Color(w.theme.Colors.Primary)
	success := lipgloss.Color(w.theme.Colors.Success)
	errColor := lipgloss.Color(w.theme.Colors.Error)
	muted := lipgloss.Color(w.theme.Colors.Muted)

	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(errColor)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(errColor)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(success)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(success).SetString("◆ ")
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(muted).SetString("◇ ")
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(primary)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(primary)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(primary)
	return t
}
