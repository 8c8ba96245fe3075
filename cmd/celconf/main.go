// Package main is the entry point for the celconf CLI.
package main

import (
	"os"

	"github.com/celconf/celconf/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
