package model

// Classification is the severity label derived from a systolic value.
type Classification int

const (
	Good Classification = iota
	High
	VeryHigh
)

// Classify buckets a systolic value: (150,∞) very high, (140,150] high,
// everything else good.
func Classify(systolic int) Classification {
	switch {
	case systolic > 150:
		return VeryHigh
	case systolic > 140:
		return High
	default:
		return Good
	}
}

func (c Classification) String() string {
	switch c {
	case VeryHigh:
		return "Very High"
	case High:
		return "High"
	default:
		return "Good"
	}
}
