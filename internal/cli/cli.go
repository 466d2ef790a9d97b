// Package cli wires sass-dep's cobra subcommands to the analysis
// pipeline (builder, analyzer, output, checker, exporter, config).
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sassdep/sass-dep/internal/analyzer"
	"github.com/sassdep/sass-dep/internal/builder"
	"github.com/sassdep/sass-dep/internal/config"
	"github.com/sassdep/sass-dep/internal/depgraph"
	"github.com/sassdep/sass-dep/internal/diag"
	"github.com/sassdep/sass-dep/internal/output"
	"github.com/sassdep/sass-dep/internal/resolve"
)

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	root      string
	cfgPath   string
	loadPaths []string
	quiet     bool
	verbosity int
}

// Version is overridden via -ldflags at release build time.
var Version = "dev"

// NewRootCommand builds the sass-dep cobra command tree.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:           "sass-dep",
		Short:         "Analyze SCSS/Sass @use/@forward/@import dependency graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&g.root, "root", ".", "project root used to resolve relative NodeIds")
	pf.StringVar(&g.cfgPath, "config", "", "path to .sass-dep.toml (default: <root>/.sass-dep.toml, else ./.sass-dep.toml)")
	pf.StringArrayVarP(&g.loadPaths, "load-path", "I", nil, "additional search directory (repeatable)")
	pf.BoolVarP(&g.quiet, "quiet", "q", false, "suppress warning diagnostics")
	pf.CountVarP(&g.verbosity, "verbose", "v", "increase diagnostic verbosity (-v, -vv, -vvv)")

	root.AddCommand(
		newAnalyzeCmd(g, stdout, stderr),
		newCheckCmd(g, stdout, stderr),
		newExportCmd(g, stdout, stderr),
		newInitCmd(g, stdout, stderr),
	)
	return root
}

// pipeline is the shared analyze result used by analyze/check/export
// when they're given raw SCSS entry points rather than a JSON document.
type pipeline struct {
	graph *depgraph.Graph
	stats analyzer.Stats
	cfg   *config.Config
	root  string // absolute
}

func runPipeline(g *globals, entries []string, includeOrphans bool, stderr io.Writer) (*pipeline, error) {
	root, err := filepath.Abs(g.root)
	if err != nil {
		return nil, diag.NewConfigError("resolving --root: %v", err)
	}

	cfgPath := g.cfgPath
	switch {
	case cfgPath != "" && !filepath.IsAbs(cfgPath):
		cfgPath = filepath.Join(root, cfgPath)
	case cfgPath == "":
		if _, err := os.Stat(config.DefaultPath(root)); err == nil {
			cfgPath = config.DefaultPath(root)
		}
	}

	cfg, err := config.Load(cfgPath, config.Overrides{ExtraLoadPaths: g.loadPaths})
	if err != nil {
		return nil, err
	}

	resolver := resolve.New(resolve.Config{LoadPaths: cfg.LoadPaths, Extensions: cfg.Extensions})
	res, err := builder.Build(entries, builder.Options{Root: root, Resolver: resolver, IncludeOrphans: includeOrphans})
	if err != nil {
		return nil, err
	}
	emitDiagnostics(res.Diagnostics, g, stderr)

	stats := analyzer.Analyze(res.Graph, analyzer.Config{
		Thresholds: analyzer.Thresholds{
			HighFanIn:  cfg.Thresholds.HighFanIn,
			HighFanOut: cfg.Thresholds.HighFanOut,
		},
	})

	return &pipeline{graph: res.Graph, stats: stats, cfg: cfg, root: root}, nil
}

// emitDiagnostics prints accumulated build diagnostics to stderr.
// -q suppresses warnings and keeps error-severity diagnostics; the default verbosity
// (0) already shows warnings, and -v/-vv raise the ceiling for
// diagnostic detail a future release might add (per-file timing, for
// instance) without changing what's shown today.
func emitDiagnostics(diags []diag.Diagnostic, g *globals, stderr io.Writer) {
	for _, d := range diags {
		if g.quiet && d.Severity != diag.SeverityError {
			continue
		}
		fmt.Fprintln(stderr, d.String())
	}
}

func buildDocument(p *pipeline) output.Document {
	return output.Build(p.graph, p.stats, time.Now(), p.root, Version)
}

func printStats(w io.Writer, s analyzer.Stats) {
	fmt.Fprintf(w, "nodes=%d edges=%d cycles=%d max_depth=%d max_fan_in=%d max_fan_out=%d\n",
		s.NodeCount, s.EdgeCount, s.CycleCount, s.MaxDepth, s.MaxFanIn, s.MaxFanOut)
}
