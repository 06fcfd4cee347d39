package view

// Tier is the display risk bucket of a percentage.
type Tier string

const (
	TierNone   Tier = ""
	TierLow    Tier = "low risk"
	TierMedium Tier = "medium risk"
	TierHigh   Tier = "high risk"

	highThreshold   = 70.0
	mediumThreshold = 40.0
)

var tierColors = map[Tier]string{
	TierLow:    "#10b981",
	TierMedium: "#f59e0b",
	TierHigh:   "#ef4444",
}

// TierOf maps a percentage to its tier. Both thresholds are strict, so
// exactly 70 is medium and exactly 40 is low.
func TierOf(p float64) Tier {
	switch {
	case p > highThreshold:
		return TierHigh
	case p > mediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// Color returns the display color of the tier, empty for TierNone.
func (t Tier) Color() string {
	return tierColors[t]
}

// Class returns a CSS friendly name of the tier.
func (t Tier) Class() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	case TierLow:
		return "low"
	default:
		return "none"
	}
}
