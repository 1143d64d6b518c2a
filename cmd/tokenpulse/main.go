package main

import (
	"os"

	"tokenpulse/cmd/tokenpulse/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
