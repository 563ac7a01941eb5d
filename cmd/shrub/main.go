// Package main is the entry point for the shrub CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dbradf/shrub-go/cmd/shrub/commands"
)

func main() {
	if err := run(); err != nil {
		// zerr prints a report with metadata when using %+v
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cli := commands.New()
	return cli.Execute(context.Background())
}
