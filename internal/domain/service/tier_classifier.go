package service

import (
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/config"
	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/constants"
)

// TierClassifier maps a risk score to a risk tier using two cut points.
// Boundaries are closed on the lower bound of each tier: a score exactly equal
// to the high cut point is HIGH, never MEDIUM.
type TierClassifier struct {
	high   int
	medium int
}

// NewTierClassifier creates a classifier with the given cut points. Cut-point
// ordering is enforced by config validation before this is reached.
func NewTierClassifier(tiers config.TierConfig) *TierClassifier {
	return &TierClassifier{high: tiers.High, medium: tiers.Medium}
}

// Classify returns the tier for a risk score.
func (c *TierClassifier) Classify(score int) constants.RiskTier {
	switch {
	case score >= c.high:
		return constants.RiskTierHigh
	case score >= c.medium:
		return constants.RiskTierMedium
	default:
		return constants.RiskTierLow
	}
}
