package entry

import "github.com/webfansplz/vuedoc-parser/internal/casing"

// PropEntry documents a component prop. Name is attribute-cased.
type PropEntry struct {
	Meta
	Name          string `json:"name"`
	Type          string `json:"type"`
	Default       string `json:"default,omitempty"`
	Required      bool   `json:"required"`
	DescribeModel bool   `json:"describeModel,omitempty"`
}

// NewPropEntry returns a public prop entry for the camelCase name.
func NewPropEntry(nameInCamelCase, typ string) *PropEntry {
	return &PropEntry{
		Meta: newMeta(),
		Name: casing.ToKebabCase(nameInCamelCase),
		Type: typ,
	}
}

func (e *PropEntry) Kind() Kind         { return KindProp }
func (e *PropEntry) Identifier() string { return e.Name }

// HandleKeyword consumes @type and @default.
func (e *PropEntry) HandleKeyword(kw Keyword) bool {
	switch kw.Name {
	case "type":
		if typ, _ := splitType(kw.Description); typ != "" {
			e.Type = typ
		}
		return true
	case "default":
		e.Default = kw.Description
		return true
	}
	return false
}
