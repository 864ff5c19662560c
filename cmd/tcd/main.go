package main

import (
	"os"

	"github.com/tormodhaugland/treecd/cmd/tcd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
