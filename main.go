package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/arbor/cmd"
	"github.com/thenoetrevino/arbor/internal/cli"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Command failures have already been reported by the formatter
		var coded *cli.ExitCodeError
		if !errors.As(err, &coded) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}
