// Command grimoire checks content against the grimoire catalog from the
// command line: slug resolution, hook and caption validation, redaction.
package main

import (
	"errors"
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Validation failures have already been reported.
		if !errors.Is(err, errValidation) {
			color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
