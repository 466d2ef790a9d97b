package resolve

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sassdep/sass-dep/internal/diag"
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

func setupTestFiles(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, "main.scss"), "")
	writeFile(t, filepath.Join(dir, "_variables.scss"), "")
	writeFile(t, filepath.Join(dir, "mixins.scss"), "")
	writeFile(t, filepath.Join(dir, "components", "_index.scss"), "")
	writeFile(t, filepath.Join(dir, "components", "_button.scss"), "")
	writeFile(t, filepath.Join(dir, "utils", "index.scss"), "")
}

func TestResolveSimpleFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	setupTestFiles(t, dir)

	r := New(DefaultConfig())
	got, _, err := r.Resolve(filepath.Join(dir, "main.scss"), "mixins")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !strings.HasSuffix(got, "mixins.scss") {
		t.Errorf("got %q, want suffix mixins.scss", got)
	}
}

func TestResolvePartialFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	setupTestFiles(t, dir)

	r := New(DefaultConfig())
	got, _, err := r.Resolve(filepath.Join(dir, "main.scss"), "variables")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !strings.HasSuffix(got, "_variables.scss") {
		t.Errorf("got %q, want suffix _variables.scss", got)
	}
}

func TestResolveDirectoryWithUnderscoreIndex(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	setupTestFiles(t, dir)

	r := New(DefaultConfig())
	got, _, err := r.Resolve(filepath.Join(dir, "main.scss"), "components")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !strings.HasSuffix(got, "_index.scss") || !strings.Contains(got, "components") {
		t.Errorf("got %q, want a components/_index.scss suffix", got)
	}
}

func TestResolveDirectoryWithIndex(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	setupTestFiles(t, dir)

	r := New(DefaultConfig())
	got, _, err := r.Resolve(filepath.Join(dir, "main.scss"), "utils")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !strings.HasSuffix(got, "index.scss") || !strings.Contains(got, "utils") {
		t.Errorf("got %q, want a utils/index.scss suffix", got)
	}
}

func TestResolveNestedPath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	setupTestFiles(t, dir)

	r := New(DefaultConfig())
	got, _, err := r.Resolve(filepath.Join(dir, "main.scss"), "components/button")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !strings.HasSuffix(got, "_button.scss") {
		t.Errorf("got %q, want suffix _button.scss", got)
	}
}

func TestResolveAmbiguousFileReportsAmbiguousAndPicksDirect(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "button.scss"), "direct")
	writeFile(t, filepath.Join(dir, "_button.scss"), "partial")
	writeFile(t, filepath.Join(dir, "main.scss"), "")

	r := New(DefaultConfig())
	got, ambiguous, err := r.Resolve(filepath.Join(dir, "main.scss"), "button")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !ambiguous {
		t.Error("expected ambiguous=true when both button.scss and _button.scss exist")
	}
	if !strings.HasSuffix(got, "button.scss") || strings.HasSuffix(got, "_button.scss") {
		t.Errorf("got %q, want the direct form to win deterministically", got)
	}
}

func TestResolveNotFound(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	setupTestFiles(t, dir)

	r := New(DefaultConfig())
	_, _, err := r.Resolve(filepath.Join(dir, "main.scss"), "nonexistent")
	if err == nil {
		t.Fatalf("expected an error")
	}
	var resolveErr *diag.ResolveError
	if !asResolveError(err, &resolveErr) || resolveErr.Kind != diag.NotFound {
		t.Errorf("err = %v, want ResolveError{Kind: NotFound}", err)
	}
}

func TestResolveWithLoadPath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "vendor", "_library.scss"), "")
	writeFile(t, filepath.Join(dir, "main.scss"), "")

	r := New(Config{LoadPaths: []string{"vendor"}, Extensions: []string{"scss"}})
	got, _, err := r.Resolve(filepath.Join(dir, "main.scss"), "library")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !strings.HasSuffix(got, "_library.scss") {
		t.Errorf("got %q, want suffix _library.scss", got)
	}
}

func TestResolvePrefersRelativeOverLoadPath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "_library.scss"), "relative")
	writeFile(t, filepath.Join(dir, "vendor", "_library.scss"), "vendor")
	writeFile(t, filepath.Join(dir, "main.scss"), "")

	r := New(Config{LoadPaths: []string{"vendor"}, Extensions: []string{"scss"}})
	got, _, err := r.Resolve(filepath.Join(dir, "main.scss"), "library")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if strings.Contains(got, "vendor") {
		t.Errorf("got %q, expected the relative file, not vendor", got)
	}
}

func TestResolvePrefersScssOverSass(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "styles.scss"), "")
	writeFile(t, filepath.Join(dir, "styles.sass"), "")
	writeFile(t, filepath.Join(dir, "main.scss"), "")

	r := New(DefaultConfig())
	got, _, err := r.Resolve(filepath.Join(dir, "main.scss"), "styles")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !strings.HasSuffix(got, "styles.scss") {
		t.Errorf("got %q, want suffix styles.scss", got)
	}
}

func TestResolveRelativeSpecifierDoesNotFallBackToLoadPath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "vendor", "_helper.scss"), "")
	writeFile(t, filepath.Join(dir, "main.scss"), "")

	r := New(Config{LoadPaths: []string{"vendor"}, Extensions: []string{"scss"}})
	_, _, err := r.Resolve(filepath.Join(dir, "main.scss"), "./helper")
	if err == nil {
		t.Fatalf("expected a NotFound error for a relative specifier with no local match")
	}
}

func TestResolveUnsupportedSpecifiers(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.scss"), "")
	r := New(DefaultConfig())

	cases := []struct {
		specifier string
		reason    diag.UnsupportedReason
	}{
		{"https://fonts.googleapis.com/css", diag.ReasonURL},
		{"pkg:bootstrap", diag.ReasonPkg},
		{"theme.css", diag.ReasonCSS},
	}
	for _, c := range cases {
		_, _, err := r.Resolve(filepath.Join(dir, "main.scss"), c.specifier)
		var resolveErr *diag.ResolveError
		if !asResolveError(err, &resolveErr) {
			t.Fatalf("specifier %q: err = %v, want *diag.ResolveError", c.specifier, err)
		}
		if resolveErr.Kind != diag.Unsupported || resolveErr.Reason != c.reason {
			t.Errorf("specifier %q: got kind=%v reason=%v, want Unsupported/%v", c.specifier, resolveErr.Kind, resolveErr.Reason, c.reason)
		}
	}
}

func TestIsBuiltin(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"sass:math", "sass:color", "sass:list"} {
		if !IsBuiltin(name) {
			t.Errorf("IsBuiltin(%q) = false, want true", name)
		}
	}
	if IsBuiltin("math") || IsBuiltin("sass:unknown") {
		t.Errorf("IsBuiltin should reject non sass: or unknown modules")
	}
}

func asResolveError(err error, target **diag.ResolveError) bool {
	re, ok := err.(*diag.ResolveError)
	if ok {
		*target = re
	}
	return ok
}
