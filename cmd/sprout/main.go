package main

import (
	"os"

	"github.com/sprout-dev/sprout/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
