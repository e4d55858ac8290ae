// Package casing converts identifiers between naming conventions.
package casing

import (
	"regexp"
	"strings"
)

// lineRe matches a run of characters that are not line terminators.
var lineRe = regexp.MustCompile(`[^\n\r\x{2028}\x{2029}]+`)

// Options controls ParseCase.
type Options struct {
	// Separator is written at word boundaries and in place of
	// unrecognized characters. It must not be empty.
	Separator string

	// Escaped characters are copied unchanged and count as a boundary
	// for the character that follows them.
	Escaped []rune
}

func (o Options) escaped(r rune) bool {
	for _, e := range o.Escaped {
		if e == r {
			return true
		}
	}
	return false
}

// ParseCase re-emits s in the convention described by opts.
//
// Uppercase ASCII letters are lowered. A separator is inserted before one
// only when the previous input character is a lowercase letter or a digit
// and the output does not already end with the separator or an escaped
// character. Lowercase letters and digits are copied, escaped characters are
// copied, and anything else becomes the separator.
func ParseCase(s string, opts Options) string {
	if opts.Separator == "" {
		panic("casing: empty separator")
	}

	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)

	afterEscape := false
	for i, r := range runes {
		switch {
		case opts.escaped(r):
			b.WriteRune(r)
			afterEscape = true
			continue
		case isUpper(r):
			if i > 0 && !afterEscape && !strings.HasSuffix(b.String(), opts.Separator) {
				if prev := runes[i-1]; isLower(prev) || isDigit(prev) {
					b.WriteString(opts.Separator)
				}
			}
			b.WriteRune(r + ('a' - 'A'))
		case isLower(r), isDigit(r):
			b.WriteRune(r)
		default:
			b.WriteString(opts.Separator)
		}
		afterEscape = false
	}

	return b.String()
}

// ToKebabCase converts a property-style identifier to attribute casing.
func ToKebabCase(s string, escaped ...rune) string {
	return ParseCase(s, Options{Separator: "-", Escaped: escaped})
}

// ToAttributeCase is ToKebabCase with ':' passed through, so bind
// prefixes such as "update:modelValue" keep their colon.
func ToAttributeCase(s string) string {
	return ToKebabCase(s, ':')
}

// Trimlines trims every line of s and joins the non-empty runs with
// separator. Any line terminator style is accepted and a trailing line
// without a terminator is kept.
func Trimlines(s string, separator string) string {
	lines := lineRe.FindAllString(s, -1)
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, separator)
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }

