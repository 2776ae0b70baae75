// Package service implements the domain services for risk scoring: the signal
// engine, the tier classifier and the delinquency estimator contract.
package service

import (
	"math"

	"github.com/Tudu-hope/credit-card-delinquency-check/internal/config"
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/domain/models"
)

// SignalEngine derives the five behavioral signals and the composite risk
// score from a customer record. It is a pure function of the record and the
// configured thresholds; results are never memoized across threshold changes.
type SignalEngine struct {
	thresholds config.ThresholdConfig
}

// NewSignalEngine creates a signal engine with the given thresholds.
func NewSignalEngine(thresholds config.ThresholdConfig) *SignalEngine {
	return &SignalEngine{thresholds: thresholds}
}

// Evaluate computes the signal set for one record.
//
// A NaN measurement never triggers its signal: an absent value cannot be
// asserted to exceed a threshold, so the policy fails safe toward
// under-flagging rather than erroring out.
func (e *SignalEngine) Evaluate(rec models.CustomerRecord) models.SignalSet {
	return models.SignalSet{
		SpendDecline:    lessThan(rec.RecentSpendChangePct, e.thresholds.SpendDecline),
		HighUtilization: greaterThan(rec.UtilizationPct, e.thresholds.Utilization),
		PaymentDecline:  lessThan(rec.AvgPaymentRatio, e.thresholds.PaymentRatio),
		CashSurge:       greaterThan(rec.CashWithdrawalPct, e.thresholds.CashWithdrawal),
		LowMerchantMix:  lessThan(rec.MerchantMixIndex, e.thresholds.MerchantMix),
	}
}

// Score returns the signal set together with the risk score, which is always
// the count of triggered signals.
func (e *SignalEngine) Score(rec models.CustomerRecord) (models.SignalSet, int) {
	signals := e.Evaluate(rec)
	return signals, signals.Count()
}

// Thresholds returns the thresholds this engine evaluates against.
func (e *SignalEngine) Thresholds() config.ThresholdConfig {
	return e.thresholds
}

func lessThan(value, threshold float64) bool {
	return !math.IsNaN(value) && value < threshold
}

func greaterThan(value, threshold float64) bool {
	return !math.IsNaN(value) && value > threshold
}
