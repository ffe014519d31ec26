// Package main provides the entry point for the dirhist CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/dirhist/internal/cli"
)

// version is set at build time.
//
//nolint:gochecknoglobals // Set by the linker
var version = "unknown - unofficial build"

func main() {
	if err := cli.New(version).Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
