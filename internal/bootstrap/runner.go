package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner abstracts command lookup and execution so tests never spawn a
// real Python.
type Runner interface {
	// LookPath resolves an executable name against PATH.
	LookPath(name string) (string, error)

	// Run executes the command in dir and returns an error carrying the
	// tail of the combined output on failure.
	Run(ctx context.Context, dir, name string, args ...string) error

	// Output executes the command in dir and returns its trimmed
	// combined output.
	Output(ctx context.Context, dir, name string, args ...string) (string, error)
}

// outputTailLimit bounds how much command output is carried in errors.
const outputTailLimit = 2048

// execRunner is the production Runner backed by os/exec.
type execRunner struct{}

// NewRunner creates the production Runner.
func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (execRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, outputTail(out.Bytes()))
	}
	return nil
}

func (execRunner) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, outputTail(out))
	}
	return strings.TrimSpace(string(out)), nil
}

// outputTail returns the trailing portion of command output, trimmed.
func outputTail(b []byte) string {
	if len(b) > outputTailLimit {
		b = b[len(b)-outputTailLimit:]
	}
	return strings.TrimSpace(string(b))
}
