// Package main is the entry point for laptop-compare.
package main

import (
	"os"

	"github.com/donaldgifford/laptop-compare/cmd/laptop-compare/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
