package entry

// DataEntry documents a reactive data field.
type DataEntry struct {
	Meta
	Name         string `json:"name"`
	Type         string `json:"type"`
	InitialValue string `json:"initialValue,omitempty"`
}

// NewDataEntry returns a public data entry. An empty initialValue means the
// value could not be resolved statically.
func NewDataEntry(name, typ, initialValue string) *DataEntry {
	return &DataEntry{
		Meta:         newMeta(),
		Name:         name,
		Type:         typ,
		InitialValue: initialValue,
	}
}

func (e *DataEntry) Kind() Kind         { return KindData }
func (e *DataEntry) Identifier() string { return e.Name }

// HandleKeyword consumes @type and @initialValue.
func (e *DataEntry) HandleKeyword(kw Keyword) bool {
	switch kw.Name {
	case "type":
		if typ, _ := splitType(kw.Description); typ != "" {
			e.Type = typ
		} else if kw.Description != "" {
			e.Type = kw.Description
		}
		return true
	case "initialValue":
		e.InitialValue = kw.Description
		return true
	}
	return false
}
