package entry

// Feature selects a part of a component to extract.
type Feature string

const (
	FeatureName        Feature = "name"
	FeatureDescription Feature = "description"
	FeatureKeywords    Feature = "keywords"
	FeatureSlots       Feature = "slots"
	FeatureProps       Feature = "props"
	FeatureData        Feature = "data"
	FeatureComputed    Feature = "computed"
	FeatureEvents      Feature = "events"
	FeatureMethods     Feature = "methods"
	FeatureModel       Feature = "model"
)

// Features lists every feature in extraction order.
var Features = []Feature{
	FeatureName,
	FeatureDescription,
	FeatureKeywords,
	FeatureSlots,
	FeatureProps,
	FeatureData,
	FeatureComputed,
	FeatureEvents,
	FeatureMethods,
	FeatureModel,
}

// Feature returns the feature that enables entries of kind k.
func (k Kind) Feature() Feature {
	switch k {
	case KindData:
		return FeatureData
	case KindModel:
		return FeatureModel
	case KindProp:
		return FeatureProps
	case KindEvent:
		return FeatureEvents
	case KindComputed:
		return FeatureComputed
	case KindMethod:
		return FeatureMethods
	case KindSlot:
		return FeatureSlots
	}
	return ""
}

// FeatureSet is a lookup set of enabled features.
type FeatureSet map[Feature]struct{}

// NewFeatureSet builds a set from fs. An empty list enables everything.
func NewFeatureSet(fs []Feature) FeatureSet {
	if len(fs) == 0 {
		fs = Features
	}
	set := make(FeatureSet, len(fs))
	for _, f := range fs {
		set[f] = struct{}{}
	}
	return set
}

// Has reports whether f is enabled.
func (s FeatureSet) Has(f Feature) bool {
	_, ok := s[f]
	return ok
}
