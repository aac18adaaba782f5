package main

import (
	"os"

	"tickerlookup/cmd/tickerlookup/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
