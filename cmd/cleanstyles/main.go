// Package main is the entry point for the cleanstyles CLI.
package main

import (
	"os"

	"github.com/khawkins98/ckeditor-clean-styles/cmd/cleanstyles/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
