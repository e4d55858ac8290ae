package entry

import "encoding/json"

// Each variant marshals with its kind tag first so consumers can decode
// a heterogeneous list.

func (e *DataEntry) MarshalJSON() ([]byte, error) {
	type plain DataEntry
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*plain
	}{KindData, (*plain)(e)})
}

func (e *ModelEntry) MarshalJSON() ([]byte, error) {
	type plain ModelEntry
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*plain
	}{KindModel, (*plain)(e)})
}

func (e *PropEntry) MarshalJSON() ([]byte, error) {
	type plain PropEntry
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*plain
	}{KindProp, (*plain)(e)})
}

func (e *EventEntry) MarshalJSON() ([]byte, error) {
	type plain EventEntry
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*plain
	}{KindEvent, (*plain)(e)})
}

func (e *ComputedEntry) MarshalJSON() ([]byte, error) {
	type plain ComputedEntry
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*plain
	}{KindComputed, (*plain)(e)})
}

func (e *MethodEntry) MarshalJSON() ([]byte, error) {
	type plain MethodEntry
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*plain
	}{KindMethod, (*plain)(e)})
}

func (e *SlotEntry) MarshalJSON() ([]byte, error) {
	type plain SlotEntry
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*plain
	}{KindSlot, (*plain)(e)})
}
