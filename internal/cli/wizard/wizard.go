// Package wizard drives the interactive project configuration: prompt
// for middleware settings, then loop adding routes until the user is
// done, producing the config.json the mock server runs from.
package wizard

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/schism-dev/schism/internal/config"
	"github.com/schism-dev/schism/internal/middleware"
	"github.com/schism-dev/schism/internal/ui"
)

var (
	// ErrCancelled indicates the user aborted the wizard.
	ErrCancelled = errors.New("wizard: cancelled")

	// ErrHeadless indicates the wizard was started without a TTY.
	ErrHeadless = errors.New("wizard: interactive terminal required")
)

// Wizard collects a full project configuration interactively.
type Wizard struct {
	theme    *ui.Theme
	headless *ui.HeadlessManager
	registry *middleware.Registry
	out      io.Writer
}

// New creates a Wizard prompting on the terminal and printing to out.
func New(theme *ui.Theme, hm *ui.HeadlessManager, reg *middleware.Registry, out io.Writer) *Wizard {
	return &Wizard{theme: theme, headless: hm, registry: reg, out: out}
}

// Run executes the full wizard and returns the assembled project.
func (w *Wizard) Run() (*config.Project, error) {
	if w.headless.IsHeadless() {
		return nil, ErrHeadless
	}

	project := &config.Project{Middleware: make(map[string]middleware.Settings)}

	for _, mw := range w.registry.All() {
		fmt.Fprintln(w.out, w.theme.Title("Configure middleware: "+mw.Name()))
		settings, err := w.promptRequirements(mw.ConfigRequirements())
		if err != nil {
			return nil, err
		}
		project.Middleware[mw.Name()] = settings
	}

	for {
		fmt.Fprintln(w.out, RenderRoutes(w.theme, project.Routes))
		more, err := w.confirm("Add another route?", true)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		route, err := w.promptRoute()
		if err != nil {
			return nil, err
		}
		project.Routes = append(project.Routes, route)
	}

	return project, nil
}

// promptRoute collects one route: method, endpoint, dataset, the
// middleware chain and the route's metadata.
func (w *Wizard) promptRoute() (config.Route, error) {
	var route config.Route

	methodSel := huh.NewSelect[string]().
		Title("HTTP method").
		Options(
			huh.NewOption("GET", "GET"),
			huh.NewOption("POST", "POST"),
			huh.NewOption("PUT", "PUT"),
			huh.NewOption("DELETE", "DELETE"),
		).
		Value(&route.Method)

	endpointIn := huh.NewInput().
		Title("Endpoint").
		Placeholder("/api/users/{id}").
		Validate(validateEndpoint).
		Value(&route.Endpoint)

	dataSetIn := huh.NewInput().
		Title("Data set name").
		Validate(required("data set name")).
		Value(&route.DataSet)

	names := w.registry.Names()
	opts := make([]huh.Option[string], len(names))
	for i, name := range names {
		opts[i] = huh.NewOption(name, name)
	}
	mwSel := huh.NewMultiSelect[string]().
		Title("Middleware to apply").
		Description("space to toggle, enter to continue").
		Options(opts...).
		Value(&route.Middleware)

	form := huh.NewForm(
		huh.NewGroup(methodSel),
		huh.NewGroup(endpointIn),
		huh.NewGroup(dataSetIn),
		huh.NewGroup(mwSel),
	).WithTheme(w.huhTheme())
	if err := form.Run(); err != nil {
		return config.Route{}, wizardErr(err)
	}

	metadata, err := w.promptRouteMetadata(route)
	if err != nil {
		return config.Route{}, err
	}
	route.Metadata = metadata
	return route, nil
}

// promptRouteMetadata collects the route behavior flags plus the
// metadata each selected middleware requires. Everything lands in the
// route's single flat metadata map.
func (w *Wizard) promptRouteMetadata(route config.Route) (config.RouteMetadata, error) {
	metadata := config.RouteMetadata{}

	behavior := behaviorFlags(route.Method)
	for _, flag := range behavior {
		v, err := w.confirm(flag.prompt, false)
		if err != nil {
			return nil, err
		}
		if v {
			metadata[flag.key] = true
		}
	}

	for _, name := range route.Middleware {
		mw, err := w.registry.Get(name)
		if err != nil {
			return nil, err
		}
		reqs := mw.MetadataRequirements()
		if len(reqs) == 0 {
			continue
		}
		fmt.Fprintln(w.out, w.theme.Title("Metadata for middleware: "+name))
		settings, err := w.promptRequirements(reqs)
		if err != nil {
			return nil, err
		}
		for k, v := range settings {
			metadata[k] = v
		}
	}

	if len(metadata) == 0 {
		return nil, nil
	}
	return metadata, nil
}

// behaviorFlag is one optional per-route behavior toggle.
type behaviorFlag struct {
	key    string
	prompt string
}

// behaviorFlags returns the behavior toggles that apply to a method.
func behaviorFlags(method string) []behaviorFlag {
	if method == "POST" {
		return []behaviorFlag{
			{"creates_entry", "Append the request body to the data set?"},
			{"creates_uuid", "Assign a generated uuid to created entries?"},
			{"creates_created_at", "Stamp created entries with created_at?"},
			{"creates_updated_at", "Initialize updated_at on created entries?"},
		}
	}
	return []behaviorFlag{
		{"singular_response", "Expect exactly one matching entry (singular response)?"},
	}
}

// confirm asks a yes/no question.
func (w *Wizard) confirm(title string, def bool) (bool, error) {
	v := def
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Value(&v),
	)).WithTheme(w.huhTheme())
	if err := form.Run(); err != nil {
		return false, wizardErr(err)
	}
	return v, nil
}

// validateEndpoint requires a non-empty path starting with "/".
func validateEndpoint(val string) error {
	v := strings.TrimSpace(val)
	if v == "" {
		return errors.New("endpoint is required")
	}
	if !strings.HasPrefix(v, "/") {
		return errors.New("endpoint must start with /")
	}
	return nil
}

// required validates a non-empty answer.
func required(what string) func(string) error {
	return func(val string) error {
		if strings.TrimSpace(val) == "" {
			return errors.New(what + " is required")
		}
		return nil
	}
}

// wizardErr maps huh aborts to ErrCancelled.
func wizardErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return fmt.Errorf("wizard: %w", err)
}
