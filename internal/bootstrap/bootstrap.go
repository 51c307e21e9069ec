package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/schism-dev/schism/internal/defs"
)

// Bootstrapper runs the environment setup sequence in a project root.
type Bootstrapper struct {
	root   string
	goos   string
	runner Runner
}

// New creates a Bootstrapper for the current platform.
func New(root string, runner Runner) *Bootstrapper {
	return NewForPlatform(root, runner, runtime.GOOS)
}

// NewForPlatform creates a Bootstrapper targeting an explicit GOOS
// value. Tests use this to exercise both launcher variants.
func NewForPlatform(root string, runner Runner, goos string) *Bootstrapper {
	return &Bootstrapper{root: root, goos: goos, runner: runner}
}

// Setup runs the full sequence: locate the runtime, create the virtual
// environment, install the manifest, generate the launcher. The first
// failure aborts; the launcher is only written after a complete
// install. Re-running against an existing environment is harmless.
func (b *Bootstrapper) Setup(ctx context.Context) (string, error) {
	python, err := b.FindRuntime()
	if err != nil {
		return "", err
	}
	if err := b.createEnv(ctx, python); err != nil {
		return "", err
	}
	if err := b.installDeps(ctx); err != nil {
		return "", err
	}
	return WriteLauncher(b.root, b.goos)
}

// FindRuntime locates the platform's Python executable on PATH.
func (b *Bootstrapper) FindRuntime() (string, error) {
	for _, name := range b.runtimeCandidates() {
		if path, err := b.runner.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: tried %v", ErrRuntimeNotFound, b.runtimeCandidates())
}

// RuntimeVersion reports the located runtime's version banner, e.g.
// "Python 3.12.1". Older interpreters print it on stderr, which is why
// combined output is read.
func (b *Bootstrapper) RuntimeVersion(ctx context.Context) (string, error) {
	python, err := b.FindRuntime()
	if err != nil {
		return "", err
	}
	return b.runner.Output(ctx, b.root, python, "--version")
}

func (b *Bootstrapper) runtimeCandidates() []string {
	if b.goos == "windows" {
		return []string{"py", "python", "python3"}
	}
	return []string{"python3", "python"}
}

// createEnv creates the virtual environment directory. python -m venv
// over an existing environment leaves it as is, which keeps setup
// idempotent.
func (b *Bootstrapper) createEnv(ctx context.Context, python string) error {
	if err := b.runner.Run(ctx, b.root, python, "-m", "venv", defs.EnvDir); err != nil {
		return fmt.Errorf("%w: %v", ErrEnvCreate, err)
	}
	return nil
}

// installDeps installs the manifest through the environment's own pip,
// so packages resolve into the environment rather than system-wide.
func (b *Bootstrapper) installDeps(ctx context.Context) error {
	manifest := filepath.Join(b.root, defs.RequirementsTxt)
	if _, err := os.Stat(manifest); err != nil {
		return fmt.Errorf("%w: manifest %s: %v", ErrInstall, defs.RequirementsTxt, err)
	}
	if err := b.runner.Run(ctx, b.root, b.pipPath(), "install", "-r", defs.RequirementsTxt); err != nil {
		return fmt.Errorf("%w: %v", ErrInstall, err)
	}
	return nil
}

// pipPath returns the pip executable inside the virtual environment.
func (b *Bootstrapper) pipPath() string {
	if b.goos == "windows" {
		return filepath.Join(b.root, defs.EnvDir, "Scripts", "pip.exe")
	}
	return filepath.Join(b.root, defs.EnvDir, "bin", "pip")
}

// EnvExists reports whether the virtual environment directory exists.
func (b *Bootstrapper) EnvExists() bool {
	info, err := os.Stat(filepath.Join(b.root, defs.EnvDir))
	return err == nil && info.IsDir()
}

// ManifestExists reports whether the dependency manifest exists.
func (b *Bootstrapper) ManifestExists() bool {
	_, err := os.Stat(filepath.Join(b.root, defs.RequirementsTxt))
	return err == nil
}

// LauncherExists reports whether the platform launcher exists.
func (b *Bootstrapper) LauncherExists() bool {
	_, err := os.Stat(filepath.Join(b.root, LauncherName(b.goos)))
	return err == nil
}
