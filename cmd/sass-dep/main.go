// sass-dep analyzes SCSS/Sass @use/@forward/@import dependency graphs.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sassdep/sass-dep/internal/cli"
	"github.com/sassdep/sass-dep/internal/diag"
)

var version = "dev"

func main() {
	cli.Version = version
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(reportAndExit(err, os.Stderr))
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	root := cli.NewRootCommand(stdout, stderr)
	root.SetArgs(args)
	return root.Execute()
}

// reportAndExit prints err (unless it is a *checkFailure, whose
// violations were already printed by the check subcommand) and
// returns the process exit code the CLI contract assigns to err's
// dynamic type.
func reportAndExit(err error, stderr io.Writer) int {
	var coder diag.ExitCoder
	if errors.As(err, &coder) {
		if coder.ExitCode() != diag.ExitCheckViolation {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return coder.ExitCode()
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return diag.ExitBadConfig
}
