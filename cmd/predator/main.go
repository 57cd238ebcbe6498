package main

import (
	"os"

	"github.com/lp452254117/alpha-predator/cmd/predator/commands"
)

// main is the entry point for the alpha-predator CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
