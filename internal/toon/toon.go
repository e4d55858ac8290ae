// Package toon implements TOON (Token-Oriented Object Notation) encoding
// of extracted component documentation.
package toon

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/webfansplz/vuedoc-parser/internal/entry"
	"github.com/webfansplz/vuedoc-parser/internal/extract"
)

var (
	needsQuoting = regexp.MustCompile(`[,:"\\{}\[\]]`)
	looksNumeric = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?$`)
	keywords     = map[string]struct{}{
		"true":  {},
		"false": {},
		"null":  {},
	}
)

// section is one table of entries of a single kind.
type section struct {
	name    string
	kind    entry.Kind
	columns []string
	row     func(e entry.Entry) []string
}

var sections = []section{
	{"model", entry.KindModel, []string{"name", "prop", "event"}, func(e entry.Entry) []string {
		m := e.(*entry.ModelEntry)
		return []string{m.Name, m.Prop, m.Event}
	}},
	{"props", entry.KindProp, []string{"name", "type", "default", "required"}, func(e entry.Entry) []string {
		p := e.(*entry.PropEntry)
		return []string{p.Name, p.Type, p.Default, fmt.Sprintf("%t", p.Required)}
	}},
	{"data", entry.KindData, []string{"name", "type", "initial"}, func(e entry.Entry) []string {
		d := e.(*entry.DataEntry)
		return []string{d.Name, d.Type, d.InitialValue}
	}},
	{"computed", entry.KindComputed, []string{"name", "type", "dependencies"}, func(e entry.Entry) []string {
		c := e.(*entry.ComputedEntry)
		return []string{c.Name, c.Type, strings.Join(c.Dependencies, " ")}
	}},
	{"events", entry.KindEvent, []string{"name", "arguments"}, func(e entry.Entry) []string {
		ev := e.(*entry.EventEntry)
		args := make([]string, len(ev.Arguments))
		for i, a := range ev.Arguments {
			args[i] = a.Name
		}
		return []string{ev.Name, strings.Join(args, " ")}
	}},
	{"methods", entry.KindMethod, []string{"name", "syntax"}, func(e entry.Entry) []string {
		m := e.(*entry.MethodEntry)
		return []string{m.Name, strings.Join(m.Syntax, "; ")}
	}},
	{"slots", entry.KindSlot, []string{"name"}, func(e entry.Entry) []string {
		return []string{e.Identifier()}
	}},
}

// Encode converts extracted components into TOON format. Every entry table
// leads with the owning component and trails with visibility and
// description.
func Encode(components []extract.Component) string {
	var parts []string

	var componentRows [][]string
	for i := range components {
		c := &components[i]
		componentRows = append(componentRows, []string{
			c.File,
			fmt.Sprintf("%d", c.Line),
			c.Name,
			c.Description,
		})
	}
	parts = append(parts, formatTabular("components", []string{"file", "line", "name", "description"}, componentRows))

	for _, s := range sections {
		var rows [][]string
		for i := range components {
			c := &components[i]
			for _, e := range c.Of(s.kind) {
				m := e.Metadata()
				row := append([]string{owner(c)}, s.row(e)...)
				row = append(row, string(m.Visibility), m.Description)
				rows = append(rows, row)
			}
		}
		if len(rows) == 0 {
			continue
		}
		columns := append([]string{"component"}, s.columns...)
		columns = append(columns, "visibility", "description")
		parts = append(parts, formatTabular(s.name, columns, rows))
	}

	return strings.Join(parts, "\n")
}

func owner(c *extract.Component) string {
	if c.Name != "" {
		return c.Name
	}
	return c.File
}

func formatTabular(name string, columns []string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]{%s}:", name, len(rows), strings.Join(columns, ","))
	for _, row := range rows {
		encoded := make([]string, len(row))
		for i, cell := range row {
			encoded[i] = encodeValue(cell)
		}
		fmt.Fprintf(&b, "\n  %s", strings.Join(encoded, ","))
	}
	return b.String()
}

func encodeValue(value string) string {
	if value == "" {
		return `""`
	}

	if value != strings.TrimSpace(value) {
		return quote(value)
	}

	if strings.ContainsAny(value, "\n\r\t") {
		return quote(value)
	}

	if _, ok := keywords[strings.ToLower(value)]; ok {
		return quote(value)
	}

	if looksNumeric.MatchString(value) {
		return value
	}

	if needsQuoting.MatchString(value) {
		return quote(value)
	}

	if strings.HasPrefix(value, "-") {
		return quote(value)
	}

	return value
}

func quote(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	escaped = strings.ReplaceAll(escaped, "\r", `\r`)
	escaped = strings.ReplaceAll(escaped, "\t", `\t`)
	return `"` + escaped + `"`
}
