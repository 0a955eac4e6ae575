package main

import (
	"os"

	"github.com/hmelo/puckline/cmd/puckline/commands"
)

// main is the entry point for the puckline CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
