package builder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sassdep/sass-dep/internal/depgraph"
	"github.com/sassdep/sass-dep/internal/diag"
	"github.com/sassdep/sass-dep/internal/resolve"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func newOptions(root string) Options {
	return Options{Root: root, Resolver: resolve.New(resolve.DefaultConfig())}
}

func TestBuildSimpleGraph(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.scss"), `@use "variables";`)
	writeFile(t, filepath.Join(dir, "_variables.scss"), ``)

	res, err := Build([]string{filepath.Join(dir, "main.scss")}, newOptions(dir))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Graph.Len() != 2 {
		t.Fatalf("node count = %d, want 2", res.Graph.Len())
	}
	if len(res.Graph.Edges) != 1 {
		t.Fatalf("edge count = %d, want 1", len(res.Graph.Edges))
	}
	if res.Graph.Edges[0].From != "main.scss" || res.Graph.Edges[0].To != "_variables.scss" {
		t.Errorf("edge = %+v, unexpected endpoints", res.Graph.Edges[0])
	}
}

func TestBuildEntryPointFlagged(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.scss"), ``)

	res, err := Build([]string{filepath.Join(dir, "main.scss")}, newOptions(dir))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	n, ok := res.Graph.Node("main.scss")
	if !ok {
		t.Fatalf("node not found")
	}
	if !n.HasFlag(depgraph.FlagEntryPoint) {
		t.Errorf("expected entry point flag")
	}
}

func TestBuildRelativeNodeIDs(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "components", "main.scss"), `@use "../base";`)
	writeFile(t, filepath.Join(dir, "_base.scss"), ``)

	res, err := Build([]string{filepath.Join(dir, "components", "main.scss")}, newOptions(dir))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := res.Graph.Node("components/main.scss"); !ok {
		t.Fatalf("expected node id components/main.scss")
	}
	if _, ok := res.Graph.Node("_base.scss"); !ok {
		t.Fatalf("expected node id _base.scss")
	}
}

func TestBuildAllowsParallelEdges(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.scss"), `
@use "shared";
@forward "shared";
`)
	writeFile(t, filepath.Join(dir, "_shared.scss"), ``)

	res, err := Build([]string{filepath.Join(dir, "main.scss")}, newOptions(dir))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(res.Graph.Edges) != 2 {
		t.Fatalf("edge count = %d, want 2 (use + forward, not deduped)", len(res.Graph.Edges))
	}
}

func TestBuildUnresolvedImportRecordsDiagnostic(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.scss"), `@use "missing";`)

	res, err := Build([]string{filepath.Join(dir, "main.scss")}, newOptions(dir))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(res.Diagnostics) == 0 {
		t.Fatalf("expected a diagnostic for the unresolved specifier")
	}
	if res.Graph.Len() != 1 {
		t.Fatalf("node count = %d, want 1 (missing target not added)", res.Graph.Len())
	}
}

func TestBuildAmbiguousImportRecordsWarningAndStillResolves(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.scss"), `@use "button";`)
	writeFile(t, filepath.Join(dir, "button.scss"), ``)
	writeFile(t, filepath.Join(dir, "_button.scss"), ``)

	res, err := Build([]string{filepath.Join(dir, "main.scss")}, newOptions(dir))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(res.Graph.Edges) != 1 || res.Graph.Edges[0].To != "button.scss" {
		t.Fatalf("expected a single edge to the direct form, got %+v", res.Graph.Edges)
	}
	found := false
	for _, d := range res.Diagnostics {
		if d.Severity == diag.SeverityWarning && strings.Contains(d.Message, "ambiguous") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an ambiguous-resolution warning diagnostic, got %v", res.Diagnostics)
	}
}

func TestBuildCyclicGraphTerminates(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.scss"), `@use "b";`)
	writeFile(t, filepath.Join(dir, "b.scss"), `@use "a";`)

	res, err := Build([]string{filepath.Join(dir, "a.scss")}, newOptions(dir))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Graph.Len() != 2 || len(res.Graph.Edges) != 2 {
		t.Fatalf("got %d nodes / %d edges, want 2/2", res.Graph.Len(), len(res.Graph.Edges))
	}
}

func TestBuildSkipsBuiltinModules(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.scss"), `@use "sass:math";`)

	res, err := Build([]string{filepath.Join(dir, "main.scss")}, newOptions(dir))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Graph.Len() != 1 {
		t.Fatalf("node count = %d, want 1 (no node for a builtin module)", res.Graph.Len())
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("builtin modules should not produce diagnostics, got %v", res.Diagnostics)
	}
}

func TestBuildIncludeOrphans(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.scss"), ``)
	writeFile(t, filepath.Join(dir, "unused.scss"), ``)

	opts := newOptions(dir)
	opts.IncludeOrphans = true
	res, err := Build([]string{filepath.Join(dir, "main.scss")}, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := res.Graph.Node("unused.scss"); !ok {
		t.Fatalf("expected a discovered node for unused.scss")
	}
}

func TestBuildMissingEntryPointReturnsError(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	_, err := Build([]string{filepath.Join(dir, "nope.scss")}, newOptions(dir))
	if err == nil {
		t.Fatalf("expected an error for a missing entry point")
	}
}
