package main

import (
	"fmt"
	"os"

	"github.com/sdejongh/imgdiff/internal/cli"
)

func main() {
	if err := run(); err != nil {
		// Any failure that reaches here is fatal: extraction errors,
		// unreadable roots, missing external tools, or anything
		// unexpected. All of them map to a non-zero exit.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return cli.NewRootCommand().Execute()
}
