package enums

import "fmt"

// VarianceClassification labels the sign of a reconciliation variance.
type VarianceClassification string

const (
	VarianceShortfall VarianceClassification = "shortfall"
	VarianceOverage   VarianceClassification = "overage"
	VarianceBalanced  VarianceClassification = "balanced"
)

var validVarianceClassifications = []VarianceClassification{
	VarianceShortfall,
	VarianceOverage,
	VarianceBalanced,
}

// String implements fmt.Stringer.
func (v VarianceClassification) String() string {
	return string(v)
}

// IsValid reports whether the value is a known VarianceClassification.
func (v VarianceClassification) IsValid() bool {
	for _, candidate := range validVarianceClassifications {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVarianceClassification converts raw input into a VarianceClassification.
func ParseVarianceClassification(value string) (VarianceClassification, error) {
	for _, candidate := range validVarianceClassifications {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid variance classification %q", value)
}
