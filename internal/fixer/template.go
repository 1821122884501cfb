// Package fixer generates package documentation files from a line-based
// template. Templates use $-substitution: ${package} or $package is replaced
// by the dotted package name and $$ yields a literal dollar sign. Templates
// are validated when parsed, so a malformed or unknown placeholder fails
// before any file is written.
package fixer

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// PlaceholderPackage is the only identifier a template may reference.
const PlaceholderPackage = "package"

// ErrMalformedPlaceholder is returned for a $ that does not start a valid
// placeholder or escape.
var ErrMalformedPlaceholder = errors.New("malformed placeholder")

// ErrUnresolvedPlaceholder is returned for a well-formed placeholder naming
// something other than PlaceholderPackage.
var ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")

// TemplateError locates a placeholder problem in a template.
type TemplateError struct {
	Line   int    // 1-based
	Column int    // 1-based byte offset of the '$'
	Token  string // offending text
	Err    error  // ErrMalformedPlaceholder or ErrUnresolvedPlaceholder
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template line %d, column %d: %v %q", e.Line, e.Column, e.Err, e.Token)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

// segment is either literal text or a package placeholder.
type segment struct {
	text        string
	placeholder bool
}

// Template is a parsed, validated template.
type Template struct {
	lines [][]segment
}

// LoadTemplate reads the whole template file and parses it. Lines are split
// on \n with a trailing \r dropped, so CRLF templates render with \n.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	lines := strings.Split(string(data), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	tmpl, err := ParseTemplate(lines)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", path, err)
	}
	return tmpl, nil
}

// ParseTemplate validates each line and returns the parsed template.
func ParseTemplate(lines []string) (*Template, error) {
	t := &Template{lines: make([][]segment, 0, len(lines))}
	for i, line := range lines {
		segs, err := parseLine(line)
		if err != nil {
			var te *TemplateError
			if errors.As(err, &te) {
				te.Line = i + 1
			}
			return nil, err
		}
		t.lines = append(t.lines, segs)
	}
	return t, nil
}

// Render substitutes pkg into every placeholder and joins the lines with \n.
func (t *Template) Render(pkg string) string {
	var sb strings.Builder
	for i, segs := range t.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, s := range segs {
			if s.placeholder {
				sb.WriteString(pkg)
			} else {
				sb.WriteString(s.text)
			}
		}
	}
	return sb.String()
}

func parseLine(line string) ([]segment, error) {
	var segs []segment
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(line); {
		if line[i] != '$' {
			lit.WriteByte(line[i])
			i++
			continue
		}

		rest := line[i+1:]
		switch {
		case strings.HasPrefix(rest, "$"):
			lit.WriteByte('$')
			i += 2

		case strings.HasPrefix(rest, "{"):
			end := strings.IndexByte(rest, '}')
			if end < 0 || !isIdentifier(rest[1:end]) {
				return nil, placeholderError(line, i, ErrMalformedPlaceholder)
			}
			name := rest[1:end]
			if name != PlaceholderPackage {
				return nil, &TemplateError{Column: i + 1, Token: "${" + name + "}", Err: ErrUnresolvedPlaceholder}
			}
			flush()
			segs = append(segs, segment{placeholder: true})
			i += end + 2

		default:
			n := identifierLen(rest)
			if n == 0 {
				return nil, placeholderError(line, i, ErrMalformedPlaceholder)
			}
			name := rest[:n]
			if name != PlaceholderPackage {
				return nil, &TemplateError{Column: i + 1, Token: "$" + name, Err: ErrUnresolvedPlaceholder}
			}
			flush()
			segs = append(segs, segment{placeholder: true})
			i += n + 1
		}
	}
	flush()
	return segs, nil
}

// placeholderError reports the text from the '$' at i up to the next blank.
func placeholderError(line string, i int, err error) *TemplateError {
	token := line[i:]
	if j := strings.IndexAny(token, " \t"); j > 0 {
		token = token[:j]
	}
	return &TemplateError{Column: i + 1, Token: token, Err: err}
}

// identifierLen returns the length of the ASCII identifier prefix of s.
func identifierLen(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return i
		}
	}
	return len(s)
}

func isIdentifier(s string) bool {
	return s != "" && identifierLen(s) == len(s)
}
