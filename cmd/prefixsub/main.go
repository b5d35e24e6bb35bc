// Package main provides the CLI entry point for prefixsub.
package main

import (
	"errors"
	"fmt"
	"os"

	"prefixsub/internal/orchestrator"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		var fatal *orchestrator.FatalError
		if !errors.As(err, &fatal) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
