package main

import (
	"os"

	"github.com/abhisek/langcoach/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
