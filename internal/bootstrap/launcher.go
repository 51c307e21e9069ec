package bootstrap

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/schism-dev/schism/internal/defs"
)

// Launcher templates. Both re-activate the environment created by setup
// and start the GUI entry point.
const (
	launcherShTmpl = `#!/usr/bin/env bash
set -euo pipefail

cd "$(dirname "$0")"
source {{.EnvDir}}/bin/activate
python {{.Entry}} "$@"
`

	launcherBatTmpl = `@echo off
cd /d "%~dp0"
call {{.EnvDir}}\Scripts\activate.bat
python {{.Entry}} %*
`
)

// guiEntry is the fixed GUI entry point the launcher starts.
const guiEntry = "main.py"

// launcherContext is the template data for launcher rendering.
type launcherContext struct {
	EnvDir string
	Entry  string
}

// LauncherName returns the launcher file name for a platform.
func LauncherName(goos string) string {
	if goos == "windows" {
		return defs.LauncherBat
	}
	return defs.LauncherSh
}

// WriteLauncher renders the platform launcher into root and returns its
// path. On POSIX the file is made executable. Rendering is strict: a
// missing template key is an error, not silent empty output.
func WriteLauncher(root, goos string) (string, error) {
	name := LauncherName(goos)
	text := launcherShTmpl
	if goos == "windows" {
		text = launcherBatTmpl
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("launcher template parse: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, launcherContext{EnvDir: defs.EnvDir, Entry: guiEntry}); err != nil {
		return "", fmt.Errorf("launcher template render: %w", err)
	}

	path := filepath.Join(root, name)
	mode := os.FileMode(0o644)
	if goos != "windows" {
		mode = 0o755
	}
	if err := os.WriteFile(path, buf.Bytes(), mode); err != nil {
		return "", fmt.Errorf("launcher write: %w", err)
	}
	// WriteFile does not change the mode of an existing file; re-running
	// setup must still leave the launcher executable.
	if goos != "windows" {
		if err := os.Chmod(path, mode); err != nil {
			return "", fmt.Errorf("launcher chmod: %w", err)
		}
	}
	return path, nil
}
