package enums

// Confidence buckets a match score for quotation statistics.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// String implements fmt.Stringer.
func (c Confidence) String() string {
	return string(c)
}

// ConfidenceForScore buckets a 0-100 match score. Boundary values belong to
// the higher bucket: high >= 80, medium [60,80), low < 60.
func ConfidenceForScore(score float64) Confidence {
	switch {
	case score >= 80:
		return ConfidenceHigh
	case score >= 60:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
