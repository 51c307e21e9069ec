package main

import (
	"os"

	"github.com/schism-dev/schism/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
