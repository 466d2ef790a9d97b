package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sassdep/sass-dep/internal/diag"
	"github.com/sassdep/sass-dep/internal/output"
)

func newAnalyzeCmd(g *globals, stdout, stderr io.Writer) *cobra.Command {
	var (
		outPath        string
		format         string
		includeOrphans bool
		showStats      bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <ENTRY>...",
		Short: "Build the dependency graph from one or more SCSS entry points",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" {
				return diag.NewConfigError("analyze: unsupported --format %q (only \"json\" is supported)", format)
			}

			p, err := runPipeline(g, args, includeOrphans, stderr)
			if err != nil {
				return err
			}

			doc := buildDocument(p)
			data, err := output.Marshal(doc)
			if err != nil {
				return err
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, data, 0o644); err != nil {
					return &diag.IoError{Path: outPath, Err: err}
				}
			} else {
				cmd.OutOrStdout().Write(data)
				cmd.OutOrStdout().Write([]byte("\n"))
			}

			if showStats {
				printStats(stderr, p.stats)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write the JSON document to FILE instead of stdout")
	cmd.Flags().StringVar(&format, "format", "json", "output format (only \"json\" is supported)")
	cmd.Flags().BoolVar(&includeOrphans, "include-orphans", false, "include .scss/.sass files unreachable from any entry point")
	cmd.Flags().BoolVar(&showStats, "stats", false, "print a short statistics summary to stderr")
	return cmd
}
