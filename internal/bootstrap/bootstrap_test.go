package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeRunner records executed commands and fails where configured.
type fakeRunner struct {
	missing    bool   // LookPath finds nothing
	failOn     string // substring of the command line that should fail
	calls      []string
	createsEnv bool // create the venv dir when "-m venv" runs
	root       string
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.missing {
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
	return "/usr/bin/" + name, nil
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) error {
	line := name + " " + strings.Join(args, " ")
	f.calls = append(f.calls, line)
	if f.failOn != "" && strings.Contains(line, f.failOn) {
		return errors.New("exit status 1")
	}
	if f.createsEnv && strings.Contains(line, "-m venv") {
		if err := os.MkdirAll(filepath.Join(dir, "venv"), 0o755); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRunner) Output(_ context.Context, _, name string, args ...string) (string, error) {
	line := name + " " + strings.Join(args, " ")
	if f.failOn != "" && strings.Contains(line, f.failOn) {
		return "", errors.New("exit status 1")
	}
	return "Python 3.12.1", nil
}

// setupRoot creates a project root with a requirements.txt manifest.
func setupRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	manifest := "fastapi\nuvicorn\ndearpygui\n"
	if err := os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return dir
}

func TestSetupSuccess(t *testing.T) {
	t.Parallel()

	root := setupRoot(t)
	runner := &fakeRunner{createsEnv: true, root: root}
	b := NewForPlatform(root, runner, "linux")

	launcher, err := b.Setup(context.Background())
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}

	if len(runner.calls) != 2 {
		t.Fatalf("runner ran %d commands, want 2: %v", len(runner.calls), runner.calls)
	}
	if !strings.Contains(runner.calls[0], "-m venv venv") {
		t.Errorf("first command = %q, want venv creation", runner.calls[0])
	}
	if !strings.Contains(runner.calls[1], filepath.Join("venv", "bin", "pip")) ||
		!strings.Contains(runner.calls[1], "install -r requirements.txt") {
		t.Errorf("second command = %q, want pip install through the env", runner.calls[1])
	}

	info, err := os.Stat(launcher)
	if err != nil {
		t.Fatalf("launcher missing after Setup(): %v", err)
	}
	if info.Mode().Perm()&0o111 == 0 {
		t.Errorf("launcher mode = %v, want executable", info.Mode())
	}

	content, err := os.ReadFile(launcher)
	if err != nil {
		t.Fatalf("failed to read launcher: %v", err)
	}
	for _, want := range []string{"venv/bin/activate", "python main.py"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("launcher missing %q:\n%s", want, content)
		}
	}
}

func TestSetupIdempotent(t *testing.T) {
	t.Parallel()

	root := setupRoot(t)
	runner := &fakeRunner{createsEnv: true, root: root}
	b := NewForPlatform(root, runner, "linux")

	first, err := b.Setup(context.Background())
	if err != nil {
		t.Fatalf("first Setup() error: %v", err)
	}
	firstContent, _ := os.ReadFile(first)

	second, err := b.Setup(context.Background())
	if err != nil {
		t.Fatalf("second Setup() error: %v", err)
	}
	if first != second {
		t.Errorf("launcher path changed between runs: %q vs %q", first, second)
	}
	secondContent, _ := os.ReadFile(second)
	if string(firstContent) != string(secondContent) {
		t.Error("launcher content changed between runs")
	}
	info, _ := os.Stat(second)
	if info.Mode().Perm()&0o111 == 0 {
		t.Errorf("launcher mode after rerun = %v, want executable", info.Mode())
	}
	if !b.EnvExists() {
		t.Error("EnvExists() = false after Setup()")
	}
}

func TestSetupRuntimeMissing(t *testing.T) {
	t.Parallel()

	root := setupRoot(t)
	b := NewForPlatform(root, &fakeRunner{missing: true}, "linux")

	_, err := b.Setup(context.Background())
	if !errors.Is(err, ErrRuntimeNotFound) {
		t.Fatalf("Setup() error = %v, want ErrRuntimeNotFound", err)
	}
	if b.LauncherExists() {
		t.Error("launcher created despite missing runtime")
	}
}

func TestSetupEnvCreateFails(t *testing.T) {
	t.Parallel()

	root := setupRoot(t)
	b := NewForPlatform(root, &fakeRunner{failOn: "-m venv"}, "linux")

	_, err := b.Setup(context.Background())
	if !errors.Is(err, ErrEnvCreate) {
		t.Fatalf("Setup() error = %v, want ErrEnvCreate", err)
	}
	if b.LauncherExists() {
		t.Error("launcher created despite env creation failure")
	}
}

func TestSetupInstallFails(t *testing.T) {
	t.Parallel()

	root := setupRoot(t)
	b := NewForPlatform(root, &fakeRunner{createsEnv: true, failOn: "pip"}, "linux")

	_, err := b.Setup(context.Background())
	if !errors.Is(err, ErrInstall) {
		t.Fatalf("Setup() error = %v, want ErrInstall", err)
	}
	if b.LauncherExists() {
		t.Error("launcher created despite install failure")
	}
}

func TestSetupManifestMissing(t *testing.T) {
	t.Parallel()

	// No requirements.txt in the root at all.
	root := t.TempDir()
	b := NewForPlatform(root, &fakeRunner{createsEnv: true}, "linux")

	_, err := b.Setup(context.Background())
	if !errors.Is(err, ErrInstall) {
		t.Fatalf("Setup() error = %v, want ErrInstall", err)
	}
	if b.LauncherExists() {
		t.Error("launcher created despite missing manifest")
	}
}

func TestWindowsLauncher(t *testing.T) {
	t.Parallel()

	root := setupRoot(t)
	runner := &fakeRunner{createsEnv: true}
	b := NewForPlatform(root, runner, "windows")

	launcher, err := b.Setup(context.Background())
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}
	if filepath.Base(launcher) != "run_gui.bat" {
		t.Errorf("launcher = %q, want run_gui.bat", launcher)
	}

	content, err := os.ReadFile(launcher)
	if err != nil {
		t.Fatalf("failed to read launcher: %v", err)
	}
	for _, want := range []string{`venv\Scripts\activate.bat`, "python main.py"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("launcher missing %q:\n%s", want, content)
		}
	}
	if !strings.Contains(runner.calls[1], filepath.Join("venv", "Scripts", "pip.exe")) {
		t.Errorf("install command = %q, want pip.exe from Scripts", runner.calls[1])
	}
}

func TestRuntimeVersion(t *testing.T) {
	t.Parallel()

	b := NewForPlatform(t.TempDir(), &fakeRunner{}, "linux")
	got, err := b.RuntimeVersion(context.Background())
	if err != nil {
		t.Fatalf("RuntimeVersion() error: %v", err)
	}
	if got != "Python 3.12.1" {
		t.Errorf("RuntimeVersion() = %q, want the version banner", got)
	}

	missing := NewForPlatform(t.TempDir(), &fakeRunner{missing: true}, "linux")
	if _, err := missing.RuntimeVersion(context.Background()); !errors.Is(err, ErrRuntimeNotFound) {
		t.Errorf("RuntimeVersion() error = %v, want ErrRuntimeNotFound", err)
	}
}

func TestFindRuntimeCandidates(t *testing.T) {
	t.Parallel()

	linux := NewForPlatform(t.TempDir(), &fakeRunner{}, "linux")
	path, err := linux.FindRuntime()
	if err != nil {
		t.Fatalf("FindRuntime() error: %v", err)
	}
	if path != "/usr/bin/python3" {
		t.Errorf("FindRuntime() = %q, want python3 preferred on linux", path)
	}

	windows := NewForPlatform(t.TempDir(), &fakeRunner{}, "windows")
	path, err = windows.FindRuntime()
	if err != nil {
		t.Fatalf("FindRuntime() error: %v", err)
	}
	if path != "/usr/bin/py" {
		t.Errorf("FindRuntime() = %q, want py preferred on windows", path)
	}
}
