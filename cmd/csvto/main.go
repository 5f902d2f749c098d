// Package main is the entry point for the csvto CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/csvto/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
