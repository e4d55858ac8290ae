package extract

import (
	"encoding/json"

	"github.com/webfansplz/vuedoc-parser/internal/entry"
)

// Component is the documentation of one class component.
type Component struct {
	File        string
	Line        int
	Name        string
	Description string
	Keywords    []entry.Keyword

	// Entries are the filtered entries in declaration order.
	Entries []entry.Entry
}

// Of returns the entries of the given kind in declaration order.
func (c *Component) Of(kind entry.Kind) []entry.Entry {
	var out []entry.Entry
	for _, e := range c.Entries {
		if e.Kind() == kind {
			out = append(out, e)
		}
	}
	return out
}

// MarshalJSON groups entries into one section per feature.
func (c Component) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		File        string          `json:"file"`
		Line        int             `json:"line"`
		Name        string          `json:"name,omitempty"`
		Description string          `json:"description,omitempty"`
		Keywords    []entry.Keyword `json:"keywords,omitempty"`
		Model       []entry.Entry   `json:"model,omitempty"`
		Props       []entry.Entry   `json:"props,omitempty"`
		Data        []entry.Entry   `json:"data,omitempty"`
		Computed    []entry.Entry   `json:"computed,omitempty"`
		Events      []entry.Entry   `json:"events,omitempty"`
		Methods     []entry.Entry   `json:"methods,omitempty"`
		Slots       []entry.Entry   `json:"slots,omitempty"`
	}{
		File:        c.File,
		Line:        c.Line,
		Name:        c.Name,
		Description: c.Description,
		Keywords:    c.Keywords,
		Model:       c.Of(entry.KindModel),
		Props:       c.Of(entry.KindProp),
		Data:        c.Of(entry.KindData),
		Computed:    c.Of(entry.KindComputed),
		Events:      c.Of(entry.KindEvent),
		Methods:     c.Of(entry.KindMethod),
		Slots:       c.Of(entry.KindSlot),
	})
}
