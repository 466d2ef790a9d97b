package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func execute(args []string) (stdout, stderr bytes.Buffer, err error) {
	root := NewRootCommand(&stdout, &stderr)
	root.SetArgs(args)
	err = root.Execute()
	return
}

func TestLoadPathFlagResolvesOutsideDirEntry(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	libDir := t.TempDir()

	writeFile(t, filepath.Join(dir, "main.scss"), "@use \"shared\";\n")
	writeFile(t, filepath.Join(libDir, "_shared.scss"), "$x: 1;\n")

	stdout, stderr, err := execute([]string{
		"--root", dir, "-I", libDir,
		"analyze", filepath.Join(dir, "main.scss"),
	})
	if err != nil {
		t.Fatalf("execute: %v\nstderr: %s", err, stderr.String())
	}
	if stdout.Len() == 0 {
		t.Fatal("expected JSON output")
	}
}

func TestQuietSuppressesWarningDiagnostics(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.scss"), "@use \"missing\";\n")

	_, stderr, err := execute([]string{"--root", dir, "-q", "analyze", filepath.Join(dir, "main.scss")})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stderr.Len() != 0 {
		t.Errorf("expected no diagnostics with -q, got:\n%s", stderr.String())
	}
}

func TestDefaultVerbosityShowsResolveWarnings(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.scss"), "@use \"missing\";\n")

	_, stderr, err := execute([]string{"--root", dir, "analyze", filepath.Join(dir, "main.scss")})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stderr.Len() == 0 {
		t.Error("expected a resolve-warning diagnostic at default verbosity")
	}
}

func TestAnalyzeUsesConfigFileThresholds(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.scss"), "@use \"vars\";\n")
	writeFile(t, filepath.Join(dir, "_vars.scss"), "$x: 1;\n")
	writeFile(t, filepath.Join(dir, ".sass-dep.toml"), "[thresholds]\nhigh_fan_in = 0\n")

	stdout, stderr, err := execute([]string{"--root", dir, "analyze", filepath.Join(dir, "main.scss")})
	if err != nil {
		t.Fatalf("execute: %v\nstderr: %s", err, stderr.String())
	}
	if !bytes.Contains(stdout.Bytes(), []byte("high_fan_in")) {
		t.Errorf("expected _vars.scss to be flagged high_fan_in with threshold 0, got:\n%s", stdout.String())
	}
}
