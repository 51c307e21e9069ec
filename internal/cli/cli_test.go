package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMain(m *testing.M) {
	InitDependencies()
	deps.Theme.NoColor = true
	deps.Headless.ForceHeadless(true)
	rootCmd.SetErr(io.Discard)
	os.Exit(m.Run())
}

func TestCommandTree(t *testing.T) {
	want := map[string]bool{
		"setup":   false,
		"doctor":  false,
		"serve":   false,
		"config":  false,
		"data":    false,
		"docs":    false,
		"gui":     false,
		"onboard": false,
	}
	for _, cmd := range rootCmd.Commands() {
		name := strings.Fields(cmd.Use)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestVersionTemplate(t *testing.T) {
	if !strings.HasPrefix(rootCmd.VersionTemplate(), "schism ") {
		t.Errorf("version template = %q", rootCmd.VersionTemplate())
	}
}

// writeValidProject lays out a minimal valid project directory.
func writeValidProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	project := map[string]any{
		"middleware": map[string]any{
			"auth_token": map[string]any{"accepted_token": "secret", "flag_driven": true},
		},
		"routes": []map[string]any{
			{
				"method":     "GET",
				"endpoint":   "/users",
				"data_set":   "users",
				"middleware": []string{"auth_token"},
			},
		},
	}
	data, err := json.MarshalIndent(project, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "users.json"),
		[]byte(`[{"id": 1, "name": "Ada"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestConfigChecksValidProject(t *testing.T) {
	dir := writeValidProject(t)

	checks := configChecks(dir)
	if len(checks) != 2 {
		t.Fatalf("got %d checks, want config + one dataset: %+v", len(checks), checks)
	}
	for _, c := range checks {
		if !c.ok {
			t.Errorf("check %q failed: %s", c.name, c.detail)
		}
	}
	if !strings.Contains(checks[1].detail, "1 entries") {
		t.Errorf("dataset detail = %q", checks[1].detail)
	}
}

func TestConfigChecksMissingConfig(t *testing.T) {
	checks := configChecks(t.TempDir())
	if len(checks) != 1 || checks[0].ok {
		t.Fatalf("checks = %+v, want a single failed project config check", checks)
	}
}

func TestConfigChecksMissingDataset(t *testing.T) {
	dir := writeValidProject(t)
	if err := os.Remove(filepath.Join(dir, "users.json")); err != nil {
		t.Fatal(err)
	}

	checks := configChecks(dir)
	failed := false
	for _, c := range checks {
		if c.name == "dataset users" && !c.ok {
			failed = true
		}
	}
	if !failed {
		t.Errorf("missing dataset not flagged: %+v", checks)
	}
}

func TestPrintChecks(t *testing.T) {
	var buf strings.Builder
	printChecks(&buf, []check{
		{"python runtime", true, "/usr/bin/python3"},
		{"project config", false, "config: configuration file not found"},
	})
	out := buf.String()
	if !strings.Contains(out, "✓ python runtime") {
		t.Errorf("output missing pass mark:\n%s", out)
	}
	if !strings.Contains(out, "✗ project config") {
		t.Errorf("output missing fail mark:\n%s", out)
	}
}

func TestDocsGenerateCommand(t *testing.T) {
	dir := writeValidProject(t)
	if err := os.WriteFile(filepath.Join(dir, "template.md"),
		[]byte("# Users API\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"docs", "generate", "--root", dir, "--no-color"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("docs generate failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "output.md"))
	if err != nil {
		t.Fatalf("output.md not written: %v", err)
	}
	for _, want := range []string{"# Users API", "## Middleware", "## Endpoints"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("output.md missing %q", want)
		}
	}
}

func TestDataGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	schema := `{"fields": {"name": {"type": "name"}, "age": {"type": "integer", "options": {"min": 18, "max": 65}}}}`
	if err := os.WriteFile(filepath.Join(dir, "people-config.json"), []byte(schema), 0o644); err != nil {
		t.Fatal(err)
	}

	rootCmd.SetArgs([]string{"data", "generate", "people", "--root", dir, "--count", "5", "--no-color"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("data generate failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "people.json"))
	if err != nil {
		t.Fatalf("people.json not written: %v", err)
	}
	var entries []map[string]any
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("generated dataset is not valid JSON: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("generated %d entries, want 5", len(entries))
	}
	for _, e := range entries {
		if _, ok := e["id"]; !ok {
			t.Error("generated entry missing the implicit id field")
		}
		age := e["age"].(float64)
		if age < 18 || age > 65 {
			t.Errorf("age = %v outside schema range", age)
		}
	}
}

func TestFailurePrintsDiagnostic(t *testing.T) {
	var errOut strings.Builder
	rootCmd.SetErr(&errOut)
	defer rootCmd.SetErr(io.Discard)

	rootCmd.SetArgs([]string{"data", "generate", "ghosts", "--root", t.TempDir()})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected a failure")
	}

	out := errOut.String()
	if !strings.Contains(out, "Error:") || !strings.Contains(out, "no schema") {
		t.Errorf("stderr = %q, want an Error: diagnostic naming the cause", out)
	}
}

func TestDataGenerateWithoutSchema(t *testing.T) {
	rootCmd.SetArgs([]string{"data", "generate", "ghosts", "--root", t.TempDir()})
	err := rootCmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "no schema") {
		t.Fatalf("error = %v, want missing-schema failure", err)
	}
}

func TestConfigValidateCommand(t *testing.T) {
	dir := writeValidProject(t)
	rootCmd.SetArgs([]string{"config", "validate", "--root", dir, "--no-color"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config validate failed on a valid project: %v", err)
	}

	bad := t.TempDir()
	if err := os.WriteFile(filepath.Join(bad, "config.json"),
		[]byte(`{"middleware": {}, "routes": [{"method": "PATCH", "endpoint": "x", "data_set": ""}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	rootCmd.SetArgs([]string{"config", "validate", "--root", bad})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("config validate passed an invalid project")
	}
}

func TestConfigInitRefusesHeadless(t *testing.T) {
	rootCmd.SetArgs([]string{"config", "init", "--root", t.TempDir()})
	err := rootCmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "interactive terminal") {
		t.Fatalf("error = %v, want headless refusal", err)
	}
}

func TestOnboardHeadlessPlainText(t *testing.T) {
	var out strings.Builder
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"onboard"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("onboard failed: %v", err)
	}
	if !strings.Contains(out.String(), "# Welcome to SCHISM") {
		t.Errorf("onboard output missing the guide:\n%.200s", out.String())
	}
}
