package enums

import "fmt"

// DenominationKind separates coins from bills in the cash catalog.
type DenominationKind string

const (
	DenominationKindCoin DenominationKind = "coin"
	DenominationKindBill DenominationKind = "bill"
)

var validDenominationKinds = []DenominationKind{
	DenominationKindCoin,
	DenominationKindBill,
}

// String implements fmt.Stringer.
func (d DenominationKind) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DenominationKind.
func (d DenominationKind) IsValid() bool {
	for _, candidate := range validDenominationKinds {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDenominationKind converts raw input into a DenominationKind.
func ParseDenominationKind(value string) (DenominationKind, error) {
	for _, candidate := range validDenominationKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid denomination kind %q", value)
}
