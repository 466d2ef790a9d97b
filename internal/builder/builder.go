// Package builder crawls a set of SCSS entry points and constructs the
// dependency graph: an iterative depth-first walk that parses each
// file once, resolves its directives, and inserts nodes and edges in
// canonical sequential-DFS discovery order.
package builder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sassdep/sass-dep/internal/depgraph"
	"github.com/sassdep/sass-dep/internal/diag"
	"github.com/sassdep/sass-dep/internal/resolve"
	"github.com/sassdep/sass-dep/internal/scssparse"
)

// Options configure a single build.
type Options struct {
	Root           string // absolute project root, used to compute NodeIds
	Resolver       *resolve.Resolver
	IncludeOrphans bool
	IgnoreFile     string // optional .sass-depignore path consulted by orphan discovery
}

// Result is the outcome of a build: the graph plus every diagnostic
// accumulated along the way. A Result is always returned even when err
// is non-nil, so partial progress is never silently discarded.
type Result struct {
	Graph       *depgraph.Graph
	Diagnostics []diag.Diagnostic
}

// Build crawls entries (in the given order) and returns the resulting
// graph. Entries are inserted first and flagged EntryPoint; their
// order determines primary ordering ties. err is non-nil only when an
// entry point itself cannot be opened — every other failure mode is
// recorded as a Diagnostic and the build continues.
func Build(entries []string, opts Options) (*Result, error) {
	g := depgraph.New()
	res := &Result{Graph: g}
	visited := make(map[string]bool)

	for _, entry := range entries {
		canon, err := canonicalizeExisting(entry)
		if err != nil {
			return res, &diag.IoError{Path: entry, Err: err}
		}
		id := nodeID(opts.Root, canon)
		g.EnsureNode(id, canon)
		g.MarkEntryPoint(id)

		if !visited[canon] {
			visited[canon] = true
			crawl(g, &res.Diagnostics, opts, canon, id, visited)
		}
	}

	if opts.IncludeOrphans {
		if err := discoverOrphans(g, opts); err != nil {
			res.Diagnostics = append(res.Diagnostics, diag.Diagnostic{
				Severity: diag.SeverityWarning,
				File:     opts.Root,
				Message:  fmt.Sprintf("orphan discovery: %v", err),
			})
		}
	}

	return res, nil
}

// frame is one file's crawl state: its parsed directives and how many
// have been processed so far. An explicit stack of frames reproduces
// the depth-first discovery order of recursive descent without
// recursing through Go's call stack for each directive.
type frame struct {
	path       string
	id         depgraph.NodeId
	directives []scssparse.Directive
	next       int
}

func crawl(g *depgraph.Graph, diags *[]diag.Diagnostic, opts Options, startPath string, startID depgraph.NodeId, visited map[string]bool) {
	stack := []*frame{newFrame(g, diags, opts, startPath, startID)}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.directives) {
			stack = stack[:len(stack)-1]
			continue
		}
		d := top.directives[top.next]
		top.next++

		if resolve.IsBuiltin(d.Specifier) {
			continue
		}

		resolved, ambiguous, err := opts.Resolver.Resolve(top.path, d.Specifier)
		if err != nil {
			*diags = append(*diags, diag.Diagnostic{
				Severity: diag.SeverityWarning,
				File:     string(top.id),
				Line:     d.Location.Line,
				Column:   d.Location.Column,
				Message:  err.Error(),
			})
			continue
		}
		if ambiguous {
			*diags = append(*diags, diag.Diagnostic{
				Severity: diag.SeverityWarning,
				File:     string(top.id),
				Line:     d.Location.Line,
				Column:   d.Location.Column,
				Message:  (&diag.ResolveError{Specifier: d.Specifier, Kind: diag.Ambiguous}).Error(),
			})
		}

		canonTarget, cerr := canonicalizeExisting(resolved)
		if cerr != nil {
			canonTarget = resolved
		}
		targetID := nodeID(opts.Root, canonTarget)
		g.EnsureNode(targetID, canonTarget)
		g.AddEdge(toEdge(top.id, targetID, d))

		if !visited[canonTarget] {
			visited[canonTarget] = true
			stack = append(stack, newFrame(g, diags, opts, canonTarget, targetID))
		}
	}
}

func newFrame(g *depgraph.Graph, diags *[]diag.Diagnostic, opts Options, path string, id depgraph.NodeId) *frame {
	g.EnsureNode(id, path)

	src, err := os.ReadFile(path)
	if err != nil {
		*diags = append(*diags, diag.Diagnostic{
			Severity: diag.SeverityWarning,
			File:     string(id),
			Message:  fmt.Sprintf("read failed: %v", err),
		})
		return &frame{path: path, id: id}
	}

	directives, parseDiags, perr := scssparse.Parse(string(src))
	for _, pd := range parseDiags {
		pd.File = string(id)
		*diags = append(*diags, pd)
	}
	if perr != nil {
		*diags = append(*diags, diag.Diagnostic{
			Severity: diag.SeverityError,
			File:     string(id),
			Line:     perr.Line,
			Column:   perr.Column,
			Message:  perr.Msg,
		})
		return &frame{path: path, id: id}
	}

	return &frame{path: path, id: id, directives: directives}
}

func toEdge(from, to depgraph.NodeId, d scssparse.Directive) depgraph.DependencyEdge {
	return depgraph.DependencyEdge{
		From:           from,
		To:             to,
		DirectiveType:  d.Kind,
		Location:       d.Location,
		Namespace:      d.Namespace,
		Configured:     d.Configured,
		ConfiguredVars: d.ConfiguredVars,
		Forward:        d.Forward,
	}
}

func canonicalizeExisting(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// nodeID relativizes an absolute path to root, forward-slash
// separated, with no leading "./". Files outside root keep ".."
// segments.
func nodeID(root, absPath string) depgraph.NodeId {
	rel, err := filepath.Rel(root, absPath)
	if err != nil {
		rel = absPath
	}
	return depgraph.NodeId(filepath.ToSlash(rel))
}
