// Package diag defines the error taxonomy and diagnostic records shared
// across the parser, resolver, builder, and CLI.
package diag

import "fmt"

// Severity classifies a Diagnostic's impact on the run.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic is a non-fatal finding recorded during a build: an IO
// failure on a non-entry file, a resolve failure, or a per-directive
// parse failure. Diagnostics never abort a run; they accumulate and are
// reported alongside whatever graph was successfully built.
type Diagnostic struct {
	Severity Severity
	File     string // NodeId or absolute path, depending on when it was recorded
	Line     int    // 0 when not applicable
	Column   int    // 0 when not applicable
	Message  string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s: %s:%d:%d: %s", d.Severity, d.File, d.Line, d.Column, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.File, d.Message)
}

// ExitCoder is implemented by error types that carry an explicit process
// exit code, so main can map a returned error to sass-dep's exit-code
// contract without re-deriving it from the error's dynamic type.
type ExitCoder interface {
	error
	ExitCode() int
}

// Exit codes per the CLI contract: 0 success, 1 check violations,
// 2 bad arguments/config, 3 I/O or file-not-found, 4 parse error.
const (
	ExitSuccess        = 0
	ExitCheckViolation = 1
	ExitBadConfig      = 2
	ExitIO             = 3
	ExitParse          = 4
)

// ConfigError reports an invalid CLI flag or configuration value.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string  { return e.Msg }
func (e *ConfigError) ExitCode() int  { return ExitBadConfig }
func NewConfigError(format string, a ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, a...)}
}

// IoError reports a fatal file read failure at the root of a run
// (an entry point that could not be opened). Non-fatal IO failures on
// dependency files are recorded as Diagnostics instead.
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }
func (e *IoError) Unwrap() error { return e.Err }
func (e *IoError) ExitCode() int { return ExitIO }

// ParseError reports an unrecoverable tokenization failure: an
// unterminated string or comment.
type ParseError struct {
	File   string
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Msg)
}
func (e *ParseError) ExitCode() int { return ExitParse }

// ResolveErrorKind classifies why a specifier failed to resolve.
type ResolveErrorKind string

const (
	NotFound    ResolveErrorKind = "not_found"
	Ambiguous   ResolveErrorKind = "ambiguous"
	Unsupported ResolveErrorKind = "unsupported"
)

// UnsupportedReason further distinguishes an Unsupported ResolveError.
type UnsupportedReason string

const (
	ReasonURL UnsupportedReason = "url"
	ReasonCSS UnsupportedReason = "css"
	ReasonPkg UnsupportedReason = "pkg"
)

// ResolveError reports that a specifier could not be mapped to a file.
// It never aborts a run: the source node is retained and the edge is
// simply omitted in favor of a Diagnostic.
type ResolveError struct {
	Specifier string
	Kind      ResolveErrorKind
	Reason    UnsupportedReason // only set when Kind == Unsupported
}

func (e *ResolveError) Error() string {
	switch e.Kind {
	case Unsupported:
		return fmt.Sprintf("unsupported specifier %q (%s)", e.Specifier, e.Reason)
	case Ambiguous:
		return fmt.Sprintf("ambiguous specifier %q", e.Specifier)
	default:
		return fmt.Sprintf("could not resolve %q", e.Specifier)
	}
}

// CheckViolation reports a single constraint failure from the checker
// subcommand (exit code 1 when any violation is present).
type CheckViolation struct {
	Rule    string
	Node    string
	Message string
}

func (v CheckViolation) String() string {
	return fmt.Sprintf("%s: %s: %s", v.Rule, v.Node, v.Message)
}
