// Package resolve implements Sass-compliant path resolution: mapping a
// textual import specifier to a concrete file on disk.
package resolve

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sassdep/sass-dep/internal/diag"
)

// Config controls resolution order and candidate extensions.
type Config struct {
	LoadPaths  []string // additional directories searched after the relative directory, in order
	Extensions []string // tried in order per search base; ".scss" wins when ["scss","sass"]
}

// DefaultConfig returns the resolver's zero-configuration defaults.
func DefaultConfig() Config {
	return Config{Extensions: []string{"scss", "sass"}}
}

// Resolver maps (importer, specifier) pairs to canonical absolute
// paths using Sass's resolution order.
type Resolver struct {
	cfg Config
}

// New creates a Resolver with the given configuration.
func New(cfg Config) *Resolver {
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = []string{"scss", "sass"}
	}
	return &Resolver{cfg: cfg}
}

// builtinModules are the sass: built-in module names, which never
// resolve to a file: no edge, no diagnostic.
var builtinModules = map[string]struct{}{
	"math": {}, "color": {}, "list": {}, "map": {}, "meta": {}, "selector": {}, "string": {},
}

// IsBuiltin reports whether specifier names a sass: built-in module.
func IsBuiltin(specifier string) bool {
	name, ok := strings.CutPrefix(specifier, "sass:")
	if !ok {
		return false
	}
	_, known := builtinModules[name]
	return known
}

func isRelative(specifier string) bool {
	return strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../")
}

// classifyUnsupported reports whether specifier is a kind this
// resolver never attempts to resolve on disk: a URL, a .css file, or
// a pkg: reference.
func classifyUnsupported(specifier string) (diag.UnsupportedReason, bool) {
	switch {
	case strings.HasPrefix(specifier, "http://") || strings.HasPrefix(specifier, "https://"):
		return diag.ReasonURL, true
	case strings.HasPrefix(specifier, "pkg:"):
		return diag.ReasonPkg, true
	case strings.HasSuffix(specifier, ".css"):
		return diag.ReasonCSS, true
	default:
		return "", false
	}
}

// Resolve maps specifier, imported from importerAbsPath (a file or
// directory), to a canonicalized absolute path. The returned error, if
// any, is a *diag.ResolveError. ambiguous reports that both a direct
// and partial form existed at the winning search base (spec §4.2):
// resolution still picks a deterministic winner, but the call site
// should surface this as a warning diagnostic.
func (r *Resolver) Resolve(importerAbsPath, specifier string) (resolved string, ambiguous bool, err error) {
	if reason, unsupported := classifyUnsupported(specifier); unsupported {
		return "", false, &diag.ResolveError{Specifier: specifier, Kind: diag.Unsupported, Reason: reason}
	}

	baseDir := importerAbsPath
	if info, statErr := os.Stat(importerAbsPath); statErr == nil && !info.IsDir() {
		baseDir = filepath.Dir(importerAbsPath)
	}

	if found, amb := r.tryDir(baseDir, specifier); found != "" {
		return found, amb, nil
	}

	if isRelative(specifier) {
		return "", false, &diag.ResolveError{Specifier: specifier, Kind: diag.NotFound}
	}

	for _, lp := range r.cfg.LoadPaths {
		dir := lp
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(baseDir, dir)
		}
		if found, amb := r.tryDir(dir, specifier); found != "" {
			return found, amb, nil
		}
	}

	return "", false, &diag.ResolveError{Specifier: specifier, Kind: diag.NotFound}
}

// tryDir attempts every candidate for specifier rooted at dir, in the
// per-extension order spec'd in §4.2: for each extension, a direct
// file, its partial form, then the directory-index forms. ambiguous
// is reported when both the direct and partial forms exist at the
// same base for the winning extension; resolution still proceeds
// deterministically (direct wins).
func (r *Resolver) tryDir(dir, specifier string) (resolved string, ambiguous bool) {
	targetDir, stem := splitSpecifier(specifier)
	searchDir := dir
	if targetDir != "" {
		searchDir = filepath.Join(dir, targetDir)
	}

	for _, ext := range r.cfg.Extensions {
		direct := filepath.Join(searchDir, stem+"."+ext)
		partial := filepath.Join(searchDir, "_"+stem+"."+ext)
		directOK := isRegularFile(direct)
		partialOK := isRegularFile(partial)

		if directOK && partialOK {
			ambiguous = true
		}
		if directOK {
			if canon, err := canonicalize(direct); err == nil {
				return canon, ambiguous
			}
		}
		if partialOK {
			if canon, err := canonicalize(partial); err == nil {
				return canon, ambiguous
			}
		}

		indexDir := filepath.Join(searchDir, stem)
		indexDirect := filepath.Join(indexDir, "index."+ext)
		indexPartial := filepath.Join(indexDir, "_index."+ext)
		indexDirectOK := isRegularFile(indexDirect)
		indexPartialOK := isRegularFile(indexPartial)

		if indexDirectOK && indexPartialOK {
			ambiguous = true
		}
		if indexDirectOK {
			if canon, err := canonicalize(indexDirect); err == nil {
				return canon, ambiguous
			}
		}
		if indexPartialOK {
			if canon, err := canonicalize(indexPartial); err == nil {
				return canon, ambiguous
			}
		}
	}

	return "", ambiguous
}

func splitSpecifier(specifier string) (dir, stem string) {
	clean := filepath.ToSlash(specifier)
	if i := strings.LastIndexByte(clean, '/'); i >= 0 {
		return filepath.FromSlash(clean[:i]), clean[i+1:]
	}
	return "", clean
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// canonicalize resolves "." and ".." segments and follows one symlink
// hop, producing a stable identity for alias detection.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}
