package main

import (
	"os"

	"dhlink/cmd/dhlink/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
