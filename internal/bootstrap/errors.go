// Package bootstrap provisions the Python environment the mocked
// frontend project runs against: it creates a virtual environment,
// installs the dependency manifest into it, and generates the launcher
// script that starts the GUI entry point. The sequence is strictly
// fail-fast: the first failure aborts setup and no launcher is written.
package bootstrap

import "errors"

// Sentinel errors for the setup sequence. Each maps to a terminal
// diagnostic and exit status 1.
var (
	// ErrRuntimeNotFound indicates no usable Python runtime is on PATH.
	ErrRuntimeNotFound = errors.New("bootstrap: python runtime not found")

	// ErrEnvCreate indicates virtual environment creation failed.
	ErrEnvCreate = errors.New("bootstrap: virtual environment creation failed")

	// ErrInstall indicates dependency installation failed.
	ErrInstall = errors.New("bootstrap: dependency installation failed")
)
