package scssparse

import (
	"strings"
	"unicode"

	"github.com/sassdep/sass-dep/internal/depgraph"
	"github.com/sassdep/sass-dep/internal/diag"
)

// scanner is a linear rune-by-rune reader over one file's source text.
// It tracks 1-indexed line/column (counting Unicode scalar values) and
// whether the current position is at top-of-statement — after a
// newline, ';', '{', or '}', ignoring whitespace and comments — since
// only there does an '@' begin a directive we recognize.
type scanner struct {
	runes  []rune
	pos    int
	line   int
	col    int
	atStmt bool
	fatal  *diag.ParseError
}

// Parse extracts all @use/@forward/@import directives from src in
// source order. Recoverable per-directive grammar failures are
// returned as diagnostics (their File field is left blank for the
// caller to fill in); an unterminated string or comment anywhere in
// the file is fatal and returned as err, with whatever directives were
// found before the failure.
func Parse(src string) (directives []Directive, diags []diag.Diagnostic, err *diag.ParseError) {
	s := &scanner{runes: []rune(src), line: 1, col: 1, atStmt: true}

	for !s.eof() {
		c := s.peek(0)
		switch {
		case c == '/' && s.peek(1) == '/':
			s.skipLineComment()
		case c == '/' && s.peek(1) == '*':
			s.skipBlockComment()
		case c == '"' || c == '\'':
			s.readQuoted()
		case c == '#' && s.peek(1) == '{':
			s.skipInterpolation()
		case c == '@' && s.atStmt:
			loc := s.loc()
			kind, ok := s.matchDirectiveKeyword()
			if !ok {
				s.advance() // '@'
				s.consumeToStatementEnd()
				break
			}
			switch kind {
			case depgraph.DirectiveUse:
				if d, dg, recognized := s.parseUse(loc); recognized {
					directives = append(directives, d)
				} else if s.fatal == nil {
					diags = append(diags, dg)
					s.consumeToStatementEnd()
				}
			case depgraph.DirectiveForward:
				if d, dg, recognized := s.parseForward(loc); recognized {
					directives = append(directives, d)
				} else if s.fatal == nil {
					diags = append(diags, dg)
					s.consumeToStatementEnd()
				}
			case depgraph.DirectiveImport:
				if ds, dg, recognized := s.parseImport(loc); recognized {
					directives = append(directives, ds...)
				} else if s.fatal == nil {
					diags = append(diags, dg)
					s.consumeToStatementEnd()
				}
			}
		default:
			r := s.advance()
			switch {
			case r == ';' || r == '{' || r == '}' || r == '\n':
				s.atStmt = true
			case !unicode.IsSpace(r):
				s.atStmt = false
			}
		}
		if s.fatal != nil {
			return directives, diags, s.fatal
		}
	}
	return directives, diags, nil
}

func (s *scanner) eof() bool { return s.pos >= len(s.runes) }

func (s *scanner) peek(offset int) rune {
	i := s.pos + offset
	if i < 0 || i >= len(s.runes) {
		return 0
	}
	return s.runes[i]
}

func (s *scanner) loc() depgraph.Location { return depgraph.Location{Line: s.line, Column: s.col} }

func (s *scanner) advance() rune {
	c := s.runes[s.pos]
	s.pos++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

func (s *scanner) advanceN(n int) {
	for i := 0; i < n; i++ {
		s.advance()
	}
}

// readQuoted consumes a quoted string starting at the current opening
// quote, handling backslash escapes. A raw newline or EOF before the
// closing quote is an unterminated string: fatal for the whole file.
func (s *scanner) readQuoted() (string, bool) {
	loc := s.loc()
	quote := s.advance()
	var b strings.Builder
	for {
		if s.eof() {
			s.fatal = &diag.ParseError{Line: loc.Line, Column: loc.Column, Msg: "unterminated string literal"}
			return "", false
		}
		c := s.peek(0)
		if c == '\\' {
			s.advance()
			if s.eof() {
				s.fatal = &diag.ParseError{Line: loc.Line, Column: loc.Column, Msg: "unterminated string literal"}
				return "", false
			}
			b.WriteRune(s.advance())
			continue
		}
		if c == '\n' {
			s.fatal = &diag.ParseError{Line: loc.Line, Column: loc.Column, Msg: "unterminated string literal (unescaped newline)"}
			return "", false
		}
		if c == quote {
			s.advance()
			return b.String(), true
		}
		b.WriteRune(s.advance())
	}
}

func (s *scanner) skipLineComment() {
	s.advance()
	s.advance() // "//"
	for !s.eof() && s.peek(0) != '\n' {
		s.advance()
	}
}

// skipBlockComment consumes /* ... */. A nested "/*" is not recognized
// by Sass, so the first "*/" closes the comment.
func (s *scanner) skipBlockComment() {
	loc := s.loc()
	s.advance()
	s.advance() // "/*"
	for {
		if s.eof() {
			s.fatal = &diag.ParseError{Line: loc.Line, Column: loc.Column, Msg: "unterminated block comment"}
			return
		}
		if s.peek(0) == '*' && s.peek(1) == '/' {
			s.advance()
			s.advance()
			return
		}
		s.advance()
	}
}

// skipInterpolation consumes #{ ... }, tracking brace depth so nested
// braces inside the expression don't close it early.
func (s *scanner) skipInterpolation() {
	s.advance()
	s.advance() // "#{"
	depth := 1
	for depth > 0 {
		if s.eof() {
			return
		}
		c := s.peek(0)
		switch {
		case c == '"' || c == '\'':
			if _, ok := s.readQuoted(); !ok {
				return
			}
		case c == '{':
			depth++
			s.advance()
		case c == '}':
			depth--
			s.advance()
		default:
			s.advance()
		}
	}
}

// consumeToStatementEnd discards everything up to and including the
// next top-level ';' or the '}' that closes a block, tracking brace
// depth and skipping nested strings/comments. Used both to discard a
// non-dependency at-rule and to resynchronize after a malformed
// dependency directive.
func (s *scanner) consumeToStatementEnd() {
	depth := 0
	for !s.eof() {
		c := s.peek(0)
		switch {
		case c == '/' && s.peek(1) == '/':
			s.skipLineComment()
		case c == '/' && s.peek(1) == '*':
			s.skipBlockComment()
			if s.fatal != nil {
				return
			}
		case c == '"' || c == '\'':
			if _, ok := s.readQuoted(); !ok {
				return
			}
		case c == '{':
			depth++
			s.advance()
		case c == '}':
			if depth == 0 {
				s.advance()
				s.atStmt = true
				return
			}
			depth--
			s.advance()
			if depth == 0 {
				s.atStmt = true
				return
			}
		case c == ';' && depth == 0:
			s.advance()
			s.atStmt = true
			return
		default:
			s.advance()
		}
	}
	s.atStmt = true
}

func identRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// matchKeywordAt reports whether kw (lowercase ASCII) appears case-
// insensitively at offset from the current position, followed by a
// non-identifier character (so "as" doesn't match "assign").
func (s *scanner) matchKeywordAt(offset int, kw string) bool {
	for i, want := range kw {
		if toLower(s.peek(offset+i)) != want {
			return false
		}
	}
	return !identRune(s.peek(offset + len(kw)))
}

func (s *scanner) matchDirectiveKeyword() (depgraph.DirectiveType, bool) {
	switch {
	case s.matchKeywordAt(1, "use"):
		return depgraph.DirectiveUse, true
	case s.matchKeywordAt(1, "forward"):
		return depgraph.DirectiveForward, true
	case s.matchKeywordAt(1, "import"):
		return depgraph.DirectiveImport, true
	default:
		return "", false
	}
}

func (s *scanner) skipWS0() {
	for unicode.IsSpace(s.peek(0)) {
		s.advance()
	}
}

func (s *scanner) skipWS1() bool {
	n := 0
	for unicode.IsSpace(s.peek(0)) {
		s.advance()
		n++
	}
	return n > 0
}

func (s *scanner) readIdentifier() (string, bool) {
	var b strings.Builder
	for identRune(s.peek(0)) {
		b.WriteRune(s.advance())
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}

func (s *scanner) parseQuotedPath() (string, bool) {
	if c := s.peek(0); c != '"' && c != '\'' {
		return "", false
	}
	return s.readQuoted()
}

// parseParenVars consumes a balanced "(...)" clause, collecting the
// names of any $-prefixed variables found directly inside it. Values
// are not evaluated; only variable names are captured, on a
// best-effort basis (evaluating SCSS expressions is out of scope).
func (s *scanner) parseParenVars() ([]string, bool) {
	if s.peek(0) != '(' {
		return nil, false
	}
	s.advance()
	depth := 1
	var vars []string
	for depth > 0 {
		if s.eof() {
			return nil, false
		}
		c := s.peek(0)
		switch {
		case c == '(':
			depth++
			s.advance()
		case c == ')':
			depth--
			s.advance()
		case c == '"' || c == '\'':
			if _, ok := s.readQuoted(); !ok {
				return nil, false
			}
		case c == '$':
			s.advance()
			if name, ok := s.readIdentifier(); ok {
				vars = append(vars, name)
			}
		default:
			s.advance()
		}
	}
	return vars, true
}

// readPrefixIdentifier reads the "prefix-*" token of a @forward "as"
// clause and returns the prefix with its trailing "*" stripped.
func (s *scanner) readPrefixIdentifier() (string, bool) {
	var b strings.Builder
	for {
		c := s.peek(0)
		if identRune(c) || c == '*' {
			b.WriteRune(s.advance())
			continue
		}
		break
	}
	raw := b.String()
	if !strings.HasSuffix(raw, "-*") {
		return "", false
	}
	return strings.TrimRight(raw, "*"), true
}

func (s *scanner) readMember() (string, bool) {
	var b strings.Builder
	if s.peek(0) == '$' {
		b.WriteRune(s.advance())
	}
	start := b.Len()
	for identRune(s.peek(0)) {
		b.WriteRune(s.advance())
	}
	if b.Len() == start {
		return "", false
	}
	return b.String(), true
}

func (s *scanner) parseMemberList() ([]string, bool) {
	var names []string
	for {
		s.skipWS0()
		name, ok := s.readMember()
		if !ok {
			return nil, false
		}
		names = append(names, name)
		s.skipWS0()
		if s.peek(0) == ',' {
			s.advance()
			continue
		}
		break
	}
	return names, true
}

func errDiag(loc depgraph.Location, msg string) diag.Diagnostic {
	return diag.Diagnostic{Severity: diag.SeverityError, Line: loc.Line, Column: loc.Column, Message: msg}
}

func (s *scanner) parseUse(loc depgraph.Location) (Directive, diag.Diagnostic, bool) {
	s.advance() // '@'
	s.advanceN(len("use"))
	if !s.skipWS1() {
		return Directive{}, errDiag(loc, "@use: expected whitespace after keyword"), false
	}
	path, ok := s.parseQuotedPath()
	if !ok {
		if s.fatal != nil {
			return Directive{}, diag.Diagnostic{}, false
		}
		return Directive{}, errDiag(loc, "@use: expected quoted module path"), false
	}
	s.skipWS0()

	namespace, star := "", false
	if s.matchKeywordAt(0, "as") {
		s.advanceN(2)
		s.skipWS0()
		if s.peek(0) == '*' {
			s.advance()
			star = true
		} else if id, ok2 := s.readIdentifier(); ok2 {
			namespace = id
		} else {
			return Directive{}, errDiag(loc, "@use: expected namespace after 'as'"), false
		}
	}
	s.skipWS0()

	configured := false
	var configuredVars []string
	if s.matchKeywordAt(0, "with") {
		s.advanceN(4)
		s.skipWS0()
		vars, ok2 := s.parseParenVars()
		if !ok2 {
			if s.fatal != nil {
				return Directive{}, diag.Diagnostic{}, false
			}
			return Directive{}, errDiag(loc, "@use: malformed with(...) clause"), false
		}
		configured = true
		configuredVars = vars
	}
	s.skipWS0()
	if s.peek(0) == ';' {
		s.advance()
	}
	s.atStmt = true

	switch {
	case star:
		namespace = "*"
	case namespace == "":
		namespace = DefaultNamespace(path)
	}

	return Directive{
		Kind:           depgraph.DirectiveUse,
		Specifier:      path,
		Location:       loc,
		Namespace:      namespace,
		Configured:     configured,
		ConfiguredVars: configuredVars,
	}, diag.Diagnostic{}, true
}

func (s *scanner) parseForward(loc depgraph.Location) (Directive, diag.Diagnostic, bool) {
	s.advance() // '@'
	s.advanceN(len("forward"))
	if !s.skipWS1() {
		return Directive{}, errDiag(loc, "@forward: expected whitespace after keyword"), false
	}
	path, ok := s.parseQuotedPath()
	if !ok {
		if s.fatal != nil {
			return Directive{}, diag.Diagnostic{}, false
		}
		return Directive{}, errDiag(loc, "@forward: expected quoted module path"), false
	}
	s.skipWS0()

	prefix := ""
	if s.matchKeywordAt(0, "as") {
		s.advanceN(2)
		s.skipWS0()
		p, ok2 := s.readPrefixIdentifier()
		if !ok2 {
			return Directive{}, errDiag(loc, "@forward: malformed 'as' prefix clause"), false
		}
		prefix = p
	}
	s.skipWS0()

	var visibility *depgraph.Visibility
	if s.matchKeywordAt(0, "show") || s.matchKeywordAt(0, "hide") {
		hide := s.matchKeywordAt(0, "hide")
		s.advanceN(4)
		if !s.skipWS1() {
			return Directive{}, errDiag(loc, "@forward: expected member list"), false
		}
		names, ok2 := s.parseMemberList()
		if !ok2 {
			return Directive{}, errDiag(loc, "@forward: malformed show/hide member list"), false
		}
		visibility = &depgraph.Visibility{Hide: hide, Names: names}
	}
	s.skipWS0()

	configured := false
	var configuredVars []string
	if s.matchKeywordAt(0, "with") {
		s.advanceN(4)
		s.skipWS0()
		vars, ok2 := s.parseParenVars()
		if !ok2 {
			if s.fatal != nil {
				return Directive{}, diag.Diagnostic{}, false
			}
			return Directive{}, errDiag(loc, "@forward: malformed with(...) clause"), false
		}
		configured = true
		configuredVars = vars
	}
	s.skipWS0()
	if s.peek(0) == ';' {
		s.advance()
	}
	s.atStmt = true

	var fwd *depgraph.ForwardDetail
	if prefix != "" || visibility != nil {
		fwd = &depgraph.ForwardDetail{Prefix: prefix, Visibility: visibility}
	}

	return Directive{
		Kind:           depgraph.DirectiveForward,
		Specifier:      path,
		Location:       loc,
		Configured:     configured,
		ConfiguredVars: configuredVars,
		Forward:        fwd,
	}, diag.Diagnostic{}, true
}

func (s *scanner) parseImport(loc depgraph.Location) ([]Directive, diag.Diagnostic, bool) {
	s.advance() // '@'
	s.advanceN(len("import"))
	if !s.skipWS1() {
		return nil, errDiag(loc, "@import: expected whitespace after keyword"), false
	}

	var paths []string
	for {
		s.skipWS0()
		p, ok := s.parseQuotedPath()
		if !ok {
			if s.fatal != nil {
				return nil, diag.Diagnostic{}, false
			}
			return nil, errDiag(loc, "@import: expected quoted path"), false
		}
		paths = append(paths, p)
		s.skipWS0()
		if s.peek(0) == ',' {
			s.advance()
			continue
		}
		break
	}
	s.skipWS0()
	if s.peek(0) == ';' {
		s.advance()
	}
	s.atStmt = true

	out := make([]Directive, 0, len(paths))
	for _, p := range paths {
		out = append(out, Directive{Kind: depgraph.DirectiveImport, Specifier: p, Location: loc})
	}
	return out, diag.Diagnostic{}, true
}
