package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
	"strings"
	"unicode"
)

// DirectivePrefix starts every generator directive comment.
const DirectivePrefix = "//accessor:"

// Directive names understood on type declarations.
const (
	// DirectiveDelegator declares the annotated type as a delegator:
	//
	//	//accessor:delegator source=store.User destination=api.User initialize=Open
	DirectiveDelegator = "delegator"
	// DirectiveAdapter declares a delegator-less pair on any type:
	//
	//	//accessor:adapter destination=api.User
	DirectiveAdapter = "adapter"
)

// Directive is one parsed //accessor: comment line.
type Directive struct {
	Name  string
	Args  map[string]string
	Flags []string
	Pos   token.Position
}

// Arg returns the value of key=value argument key.
func (d Directive) Arg(key string) (string, bool) {
	v, ok := d.Args[key]
	return v, ok
}

// Has reports whether flag was given bare or as flag=true.
func (d Directive) Has(flag string) bool {
	for _, f := range d.Flags {
		if f == flag {
			return true
		}
	}

	v, ok := d.Args[flag]
	if !ok {
		return false
	}

	b, err := strconv.ParseBool(v)

	return err == nil && b
}

// ParseDirective parses a single comment line. It returns false for
// comments that are not directives.
func ParseDirective(text string) (Directive, bool, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(text), DirectivePrefix)
	if !ok {
		return Directive{}, false, nil
	}

	fields, err := directiveFields(rest)
	if err != nil {
		return Directive{}, true, fmt.Errorf("directive %q: %w", text, err)
	}

	if len(fields) == 0 {
		return Directive{}, true, fmt.Errorf("empty directive %q", text)
	}

	d := Directive{Name: fields[0]}

	for _, f := range fields[1:] {
		key, value, hasValue := strings.Cut(f, "=")
		if key == "" {
			return Directive{}, true, fmt.Errorf("directive %s: malformed argument %q", d.Name, f)
		}

		if !hasValue {
			d.Flags = append(d.Flags, key)
			continue
		}

		if strings.HasPrefix(value, `"`) {
			unquoted, err := strconv.Unquote(value)
			if err != nil {
				return Directive{}, true, fmt.Errorf("directive %s: argument %s: %w", d.Name, key, err)
			}

			value = unquoted
		}

		if d.Args == nil {
			d.Args = make(map[string]string)
		}

		if _, dup := d.Args[key]; dup {
			return Directive{}, true, fmt.Errorf("directive %s: duplicate argument %s", d.Name, key)
		}

		d.Args[key] = value
	}

	return d, true, nil
}

// directiveFields splits s on white space, keeping quoted values whole.
func directiveFields(s string) ([]string, error) {
	var fields []string

	for {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		if s == "" {
			return fields, nil
		}

		i := 0
		for i < len(s) && !unicode.IsSpace(rune(s[i])) {
			if s[i] != '"' {
				i++
				continue
			}

			q, err := strconv.QuotedPrefix(s[i:])
			if err != nil {
				return nil, err
			}

			i += len(q)
		}

		fields = append(fields, s[:i])
		s = s[i:]
	}
}

// ParseDirectives parses the directives of a doc comment.
func ParseDirectives(fset *token.FileSet, doc *ast.CommentGroup) ([]Directive, error) {
	if doc == nil {
		return nil, nil
	}

	var out []Directive

	for _, c := range doc.List {
		d, ok, err := ParseDirective(c.Text)
		if !ok {
			continue
		}

		pos := fset.Position(c.Slash)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pos, err)
		}

		d.Pos = pos
		out = append(out, d)
	}

	return out, nil
}
