// Package scssparse extracts @use/@forward/@import directives from SCSS
// source text. It is a linear character scanner, not a full SCSS
// grammar: anything that is not a dependency directive is skipped.
package scssparse

import (
	"strings"

	"github.com/sassdep/sass-dep/internal/depgraph"
)

// Directive is one @use/@forward/@import statement found in source
// order, with enough metadata to become a DependencyEdge once its
// specifier has been resolved to a file.
type Directive struct {
	Kind           depgraph.DirectiveType
	Specifier      string
	Location       depgraph.Location
	Namespace      string // @use only: the effective namespace ("*" for "as *", the default derived from the specifier when no "as" clause is present)
	Configured     bool
	ConfiguredVars []string
	Forward        *depgraph.ForwardDetail
}

// DefaultNamespace derives the implicit @use namespace from a
// specifier when no explicit "as" clause is present: the last path
// segment, with a leading partial underscore stripped.
func DefaultNamespace(specifier string) string {
	seg := specifier
	if i := strings.LastIndexByte(seg, '/'); i >= 0 {
		seg = seg[i+1:]
	}
	seg = strings.TrimPrefix(seg, "_")
	return seg
}
