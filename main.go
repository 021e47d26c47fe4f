package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/extframework/extlaunch/internal/cli"
	"github.com/extframework/extlaunch/internal/invoke"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(version, commit, date); err != nil {
		// A failing code unit has already reported on its own streams.
		var exit *invoke.ExitError
		if !errors.As(err, &exit) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}
