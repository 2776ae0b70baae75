package service

import (
	"math"

	"github.com/Tudu-hope/credit-card-delinquency-check/internal/domain/models"
	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/constants"
)

// FeatureNames is the fixed, documented order of the estimator feature vector:
// the six raw measurements followed by the five signal booleans. This order is
// a wire contract with the externally trained model artifact.
var FeatureNames = []string{
	"utilization_pct",
	"avg_payment_ratio",
	"min_due_paid_frequency",
	"merchant_mix_index",
	"cash_withdrawal_pct",
	"recent_spend_change_pct",
	string(constants.SignalSpendDecline),
	string(constants.SignalHighUtilization),
	string(constants.SignalPaymentDecline),
	string(constants.SignalCashSurge),
	string(constants.SignalLowMerchantMix),
}

// FeatureImportance is one (feature, importance) pair reported by the model.
type FeatureImportance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// DelinquencyEstimator is the narrow capability interface over the externally
// trained probabilistic classifier. Implementations must be stateless at
// inference time and safe for concurrent calls. When no model is loaded,
// Estimate fails with a model-unavailable error; it never substitutes a
// default probability.
type DelinquencyEstimator interface {
	// Estimate returns P(delinquent) in [0, 1] for an assembled feature vector.
	Estimate(features []float64) (float64, error)

	// FeatureImportances returns the model's feature importances, most
	// important first.
	FeatureImportances() ([]FeatureImportance, error)
}

// AssembleFeatures builds the estimator input from a record and its signals,
// in FeatureNames order, with signal booleans encoded as 0/1.
func AssembleFeatures(rec models.CustomerRecord, signals models.SignalSet) []float64 {
	features := make([]float64, 0, len(FeatureNames))
	features = append(features,
		rec.UtilizationPct,
		rec.AvgPaymentRatio,
		rec.MinDuePaidFrequency,
		rec.MerchantMixIndex,
		rec.CashWithdrawalPct,
		rec.RecentSpendChangePct,
	)
	for _, triggered := range signals.Values() {
		if triggered {
			features = append(features, 1)
		} else {
			features = append(features, 0)
		}
	}
	return features
}

// Confidence restates a probability as its distance from the 0.5 decision
// boundary, scaled to [0, 1]. Equivalent to rescaling max(p, 1-p).
func Confidence(p float64) float64 {
	return math.Abs(p-0.5) * 2
}
