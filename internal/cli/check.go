package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sassdep/sass-dep/internal/checker"
	"github.com/sassdep/sass-dep/internal/diag"
)

func newCheckCmd(g *globals, stdout, stderr io.Writer) *cobra.Command {
	var (
		noCycles  bool
		maxDepth  int
		maxFanOut int
		maxFanIn  int
	)
	const unset = -1

	cmd := &cobra.Command{
		Use:   "check <ENTRY>...",
		Short: "Build the graph and evaluate it against constraint rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := runPipeline(g, args, false, stderr)
			if err != nil {
				return err
			}

			rules := checker.Rules{NoCycles: noCycles}
			if maxDepth != unset {
				rules.MaxDepth = &maxDepth
			}
			if maxFanOut != unset {
				rules.MaxFanOut = &maxFanOut
			}
			if maxFanIn != unset {
				rules.MaxFanIn = &maxFanIn
			}

			violations := checker.Check(p.graph, rules)
			for _, v := range violations {
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
			}

			if len(violations) > 0 {
				return &checkFailure{count: len(violations)}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCycles, "no-cycles", false, "fail if any dependency cycle exists")
	cmd.Flags().IntVar(&maxDepth, "max-depth", unset, "fail if any reachable node's depth exceeds N")
	cmd.Flags().IntVar(&maxFanOut, "max-fan-out", unset, "fail if any node's fan-out exceeds N")
	cmd.Flags().IntVar(&maxFanIn, "max-fan-in", unset, "fail if any node's fan-in exceeds N")
	return cmd
}

// checkFailure reports that Check found one or more violations; it
// carries no message of its own since each violation was already
// printed to stdout.
type checkFailure struct {
	count int
}

func (e *checkFailure) Error() string { return fmt.Sprintf("%d constraint violation(s)", e.count) }
func (e *checkFailure) ExitCode() int { return diag.ExitCheckViolation }
