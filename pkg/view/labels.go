package view

// DefaultLabelThreshold is the zoom scale below which edge labels hide.
const DefaultLabelThreshold = 0.6

// LabelRule decides edge label visibility from the current zoom scale.
// It is re-evaluated on every scale change, all labels show or hide together.
type LabelRule struct {
	Threshold float64
}

// NewLabelRule returns a rule with the default threshold.
func NewLabelRule() LabelRule {
	return LabelRule{Threshold: DefaultLabelThreshold}
}

// Visible reports whether edge labels render at the given scale.
func (r LabelRule) Visible(scale float64) bool {
	return scale >= r.Threshold
}
