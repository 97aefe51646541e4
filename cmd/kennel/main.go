package main

import (
	"os"

	"github.com/kennelbot/kennel/cmd/kennel/commands"
)

// main is the entry point for the kennel CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
