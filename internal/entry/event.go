package entry

// EventEntry documents an event the component emits.
type EventEntry struct {
	Meta
	Name      string  `json:"name"`
	Arguments []Param `json:"arguments,omitempty"`
}

// NewEventEntry returns a public event entry.
func NewEventEntry(name string, args ...Param) *EventEntry {
	return &EventEntry{
		Meta:      newMeta(),
		Name:      name,
		Arguments: args,
	}
}

func (e *EventEntry) Kind() Kind         { return KindEvent }
func (e *EventEntry) Identifier() string { return e.Name }

// HandleKeyword consumes @arg and @argument.
func (e *EventEntry) HandleKeyword(kw Keyword) bool {
	switch kw.Name {
	case "arg", "argument":
		e.Arguments = mergeParam(e.Arguments, parseParam(kw.Description))
		return true
	}
	return false
}

// SlotEntry documents a named slot.
type SlotEntry struct {
	Meta
	Name  string  `json:"name"`
	Props []Param `json:"props,omitempty"`
}

// NewSlotEntry returns a public slot entry.
func NewSlotEntry(name, description string) *SlotEntry {
	e := &SlotEntry{Meta: newMeta(), Name: name}
	e.Description = description
	return e
}

func (e *SlotEntry) Kind() Kind         { return KindSlot }
func (e *SlotEntry) Identifier() string { return e.Name }

// HandleKeyword consumes @prop.
func (e *SlotEntry) HandleKeyword(kw Keyword) bool {
	if kw.Name == "prop" {
		e.Props = mergeParam(e.Props, parseParam(kw.Description))
		return true
	}
	return false
}
