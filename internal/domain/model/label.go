package model

// Label is the binary sentiment outcome
type Label string

const (
	LabelPositive Label = "Positive"
	LabelNegative Label = "Negative"
)

// String returns the label as served in responses
func (l Label) String() string {
	return string(l)
}

// IsValid reports whether l is one of the two known labels
func (l Label) IsValid() bool {
	return l == LabelPositive || l == LabelNegative
}
