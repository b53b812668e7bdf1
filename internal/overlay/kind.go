package overlay

import (
	"fmt"
	"strings"
)

// Kind selects when an overlay is applied.
type Kind int

const (
	// Value overlays transform the constructed value once.
	Value Kind = iota
	// Reference overlays transform the value handed back on every lookup.
	Reference
)

// String returns the canonical name used in definition files.
func (k Kind) String() string {
	switch k {
	case Value:
		return "value"
	case Reference:
		return "reference"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses "value" or "reference".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "value":
		return Value, nil
	case "reference":
		return Reference, nil
	default:
		return Value, fmt.Errorf("unknown overlay kind %q: must be 'value' or 'reference'", s)
	}
}
