// Package main is the entry point for the hypogen CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/hypogen/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
