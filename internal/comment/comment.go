// Package comment parses documentation comments and merges their text and
// "@keyword" annotations into entries.
package comment

import (
	"strings"

	"github.com/webfansplz/vuedoc-parser/internal/casing"
	"github.com/webfansplz/vuedoc-parser/internal/entry"
)

// Block is a parsed documentation comment.
type Block struct {
	Description string
	Keywords    []entry.Keyword
}

// Parse reads a "/** ... */", "/* ... */" or "//" comment. Lines before
// the first "@name" line form the description; each keyword owns the
// lines up to the next one.
func Parse(raw string) Block {
	var (
		block   Block
		desc    []string
		current *entry.Keyword
		kwLines []string
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Description = casing.Trimlines(strings.Join(kwLines, "\n"), " ")
		block.Keywords = append(block.Keywords, *current)
		current, kwLines = nil, nil
	}

	for _, line := range strings.Split(strip(raw), "\n") {
		line = cleanLine(line)
		if name, rest, ok := keywordLine(line); ok {
			flush()
			current = &entry.Keyword{Name: name}
			kwLines = []string{rest}
			continue
		}
		if current != nil {
			kwLines = append(kwLines, line)
		} else {
			desc = append(desc, line)
		}
	}
	flush()

	block.Description = strings.TrimSpace(strings.Join(desc, "\n"))
	return block
}

// Merge attaches the comment raw to e. Only the first merge into an entry
// has an effect.
//
// Visibility keywords set the visibility, @category, @version and @since
// set the matching metadata, kind specific keywords go to the entry's
// KeywordHandler and everything else is kept in Keywords.
func Merge(e entry.Entry, raw string) {
	m := e.Metadata()
	if !m.MarkCommented() {
		return
	}

	block := Parse(raw)
	if block.Description != "" {
		m.Description = block.Description
	}

	handler, _ := e.(entry.KeywordHandler)
	for _, kw := range block.Keywords {
		if v, ok := entry.ParseVisibility(kw.Name); ok {
			m.Visibility = v
			continue
		}
		switch kw.Name {
		case "category":
			m.Category = kw.Description
			continue
		case "version":
			m.Version = kw.Description
			continue
		case "since":
			m.Since = kw.Description
			continue
		case "description", "desc":
			m.Description = kw.Description
			continue
		}
		if handler != nil && handler.HandleKeyword(kw) {
			continue
		}
		m.Keywords = append(m.Keywords, kw)
	}
}

func strip(raw string) string {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(raw, "/*"):
		raw = strings.TrimPrefix(raw, "/**")
		raw = strings.TrimPrefix(raw, "/*")
		raw = strings.TrimSuffix(raw, "*/")
	case strings.HasPrefix(raw, "//"):
		lines := strings.Split(raw, "\n")
		for i, l := range lines {
			lines[i] = strings.TrimPrefix(strings.TrimSpace(l), "//")
		}
		raw = strings.Join(lines, "\n")
	}
	return strings.ReplaceAll(raw, "\r\n", "\n")
}

func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "*") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
	}
	return line
}

func keywordLine(line string) (name, rest string, ok bool) {
	if !strings.HasPrefix(line, "@") || len(line) < 2 {
		return "", "", false
	}
	name, rest, _ = strings.Cut(line[1:], " ")
	if i := strings.IndexAny(name, "\t{"); i > 0 {
		rest = name[i:] + " " + rest
		name = name[:i]
	}
	return name, strings.TrimSpace(rest), true
}
