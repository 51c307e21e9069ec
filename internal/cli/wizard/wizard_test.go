package wizard

import (
	"errors"
	"strings"
	"testing"

	"github.com/schism-dev/schism/internal/config"
	"github.com/schism-dev/schism/internal/middleware"
	"github.com/schism-dev/schism/internal/ui"
)

func testWizard() *Wizard {
	theme := ui.DefaultTheme()
	theme.NoColor = true
	hm := ui.NewHeadlessManager()
	hm.ForceHeadless(true)
	return New(theme, hm, middleware.DefaultRegistry(), &strings.Builder{})
}

func TestRunRefusesHeadless(t *testing.T) {
	t.Parallel()

	w := testWizard()
	if _, err := w.Run(); !errors.Is(err, ErrHeadless) {
		t.Fatalf("Run() error = %v, want ErrHeadless", err)
	}
	if _, err := w.RunSchema(t.TempDir()); !errors.Is(err, ErrHeadless) {
		t.Fatalf("RunSchema() error = %v, want ErrHeadless", err)
	}
}

func TestRenderRoutesEmpty(t *testing.T) {
	t.Parallel()

	theme := ui.DefaultTheme()
	theme.NoColor = true
	out := RenderRoutes(theme, nil)
	if !strings.Contains(out, "No routes added yet") {
		t.Errorf("empty tree missing placeholder:\n%s", out)
	}
}

func TestRenderRoutesTree(t *testing.T) {
	t.Parallel()

	theme := ui.DefaultTheme()
	theme.NoColor = true
	routes := []config.Route{
		{Method: "GET", Endpoint: "/users", DataSet: "users",
			Middleware: []string{"auth_token", "input_check"}},
		{Method: "POST", Endpoint: "/orders", DataSet: "orders"},
	}

	out := RenderRoutes(theme, routes)
	for _, want := range []string{
		"1. GET /users",
		"Data set: users",
		"auth_token",
		"input_check",
		"2. POST /orders",
		"None",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("tree missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "1. GET /users") > strings.Index(out, "2. POST /orders") {
		t.Error("routes rendered out of order")
	}
}

func TestValidateEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"valid", "/api/users", false},
		{"valid with param", "/hello/{id}", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"no slash", "api/users", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validateEndpoint(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateEndpoint(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"a, b, c", 3},
		{"admin", 1},
		{"", 0},
		{" , , ", 0},
		{"a,,b", 2},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); len(got) != tt.want {
			t.Errorf("splitList(%q) = %v, want %d items", tt.in, got, tt.want)
		}
	}
}

func TestBehaviorFlags(t *testing.T) {
	t.Parallel()

	post := behaviorFlags("POST")
	keys := make([]string, len(post))
	for i, f := range post {
		keys[i] = f.key
	}
	for _, want := range []string{"creates_entry", "creates_uuid", "creates_created_at", "creates_updated_at"} {
		found := false
		for _, k := range keys {
			if k == want {
				found = true
			}
		}
		if !found {
			t.Errorf("POST flags missing %q: %v", want, keys)
		}
	}

	for _, method := range []string{"GET", "PUT", "DELETE"} {
		flags := behaviorFlags(method)
		if len(flags) != 1 || flags[0].key != "singular_response" {
			t.Errorf("%s flags = %+v, want only singular_response", method, flags)
		}
	}
}

func TestRequiredValidator(t *testing.T) {
	t.Parallel()

	v := required("data set name")
	if err := v(""); err == nil {
		t.Error("required accepted empty input")
	}
	if err := v("  "); err == nil {
		t.Error("required accepted whitespace input")
	}
	if err := v("users"); err != nil {
		t.Errorf("required rejected valid input: %v", err)
	}
}
