package parse

import "github.com/webfansplz/vuedoc-parser/internal/entry"

// Filter returns a sink that forwards to next the entries whose kind is
// enabled in features and whose visibility is not ignored.
func Filter(next Sink, features entry.FeatureSet, ignored []entry.Visibility) Sink {
	skip := make(map[entry.Visibility]struct{}, len(ignored))
	for _, v := range ignored {
		skip[v] = struct{}{}
	}
	return func(e entry.Entry) {
		if !features.Has(e.Kind().Feature()) {
			return
		}
		if _, ok := skip[e.Metadata().Visibility]; ok {
			return
		}
		next(e)
	}
}

// Collect returns a sink appending to *entries.
func Collect(entries *[]entry.Entry) Sink {
	return func(e entry.Entry) {
		*entries = append(*entries, e)
	}
}
