package entry

import "github.com/webfansplz/vuedoc-parser/internal/casing"

// Model naming regimes. Vue 2 binds v-model to the value prop and the input
// event, Vue 3 to modelValue and update:modelValue.
const (
	DefaultModelProp  = "value"
	DefaultModelEvent = "input"
	Vue3ModelProp     = "modelValue"
	Vue3ModelEvent    = "update:modelValue"
)

// DefaultModel returns the prop and event names v-model uses for the given
// framework major version.
func DefaultModel(vueVersion int) (prop, event string) {
	if vueVersion >= 3 {
		return Vue3ModelProp, Vue3ModelEvent
	}
	return DefaultModelProp, DefaultModelEvent
}

// ModelEntry documents a two-way binding between a component and its host.
type ModelEntry struct {
	Meta
	Name  string `json:"name"`
	Prop  string `json:"prop"`
	Event string `json:"event"`
}

// NewModelEntry returns a model entry for the camelCase prop name and the
// update event. Empty arguments fall back to DefaultModelProp and
// DefaultModelEvent. Prop is always the attribute-cased form of the name.
func NewModelEntry(propNameInCamelCase, event string) *ModelEntry {
	if propNameInCamelCase == "" {
		propNameInCamelCase = DefaultModelProp
	}
	if event == "" {
		event = DefaultModelEvent
	}
	return &ModelEntry{
		Meta:  newMeta(),
		Name:  propNameInCamelCase,
		Prop:  casing.ToAttributeCase(propNameInCamelCase),
		Event: event,
	}
}

func (e *ModelEntry) Kind() Kind         { return KindModel }
func (e *ModelEntry) Identifier() string { return e.Name }
