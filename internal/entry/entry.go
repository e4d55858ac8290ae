// Package entry defines the documentation entries extracted from a
// component: data fields, props, models, events, computed values,
// methods and slots.
package entry

// Kind discriminates entry variants.
type Kind string

const (
	KindData     Kind = "data"
	KindModel    Kind = "model"
	KindProp     Kind = "prop"
	KindEvent    Kind = "event"
	KindComputed Kind = "computed"
	KindMethod   Kind = "method"
	KindSlot     Kind = "slot"
)

// Visibility is the access level of an entry.
type Visibility string

const (
	Public    Visibility = "public"
	Protected Visibility = "protected"
	Private   Visibility = "private"
)

// Visibilities lists every valid visibility.
var Visibilities = []Visibility{Public, Protected, Private}

// ParseVisibility returns the visibility named by s.
func ParseVisibility(s string) (Visibility, bool) {
	switch v := Visibility(s); v {
	case Public, Protected, Private:
		return v, true
	}
	return "", false
}

// Keyword is an "@name description" annotation kept for consumers.
type Keyword struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Meta is the metadata shared by every entry variant.
type Meta struct {
	Visibility  Visibility `json:"visibility"`
	Description string     `json:"description,omitempty"`
	Keywords    []Keyword  `json:"keywords,omitempty"`
	Category    string     `json:"category,omitempty"`
	Version     string     `json:"version,omitempty"`
	Since       string     `json:"since,omitempty"`

	commented bool
}

func newMeta() Meta {
	return Meta{Visibility: Public}
}

// Metadata returns m. It lets every variant satisfy Entry by embedding Meta.
func (m *Meta) Metadata() *Meta {
	return m
}

// MarkCommented records that a comment was merged into the entry and
// reports whether this was the first merge.
func (m *Meta) MarkCommented() bool {
	if m.commented {
		return false
	}
	m.commented = true
	return true
}

// Entry is one documented feature of a component.
type Entry interface {
	// Kind returns the variant tag fixed at construction.
	Kind() Kind

	// Identifier returns the canonical name of the entry.
	Identifier() string

	// Metadata returns the shared, mutable metadata of the entry.
	Metadata() *Meta
}

// KeywordHandler is implemented by entries that consume keywords
// specific to their kind. HandleKeyword reports whether kw was consumed.
type KeywordHandler interface {
	HandleKeyword(kw Keyword) bool
}

// Param describes a method parameter, an event argument or a slot prop.
type Param struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	Default     string `json:"defaultValue,omitempty"`
	Rest        bool   `json:"rest,omitempty"`
}
