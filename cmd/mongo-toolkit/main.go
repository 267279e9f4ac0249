// Package main is the entry point for the mongo-toolkit CLI.
package main

import (
	"os"

	"github.com/thoreinstein/mongo-toolkit/cmd/mongo-toolkit/commands"
	"github.com/thoreinstein/mongo-toolkit/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
