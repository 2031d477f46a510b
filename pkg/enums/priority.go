package enums

import "fmt"

// Priority ranks an extracted requirement: 1 is high, 3 is low.
type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// String implements fmt.Stringer.
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	}
	return fmt.Sprintf("priority(%d)", int(p))
}

// IsValid reports whether the value is a known Priority.
func (p Priority) IsValid() bool {
	return p >= PriorityHigh && p <= PriorityLow
}
