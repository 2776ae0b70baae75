// Package models defines the domain entities for delinquency risk scoring.
package models

import (
	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/constants"
)

// CustomerRecord is one row of the customer table. Missing measurements are
// represented as NaN, never zero, so that threshold tests can distinguish
// "absent" from "measured at zero".
type CustomerRecord struct {
	CustomerID           string  `json:"customer_id"`
	UtilizationPct       float64 `json:"utilization_pct"`
	AvgPaymentRatio      float64 `json:"avg_payment_ratio"`
	MinDuePaidFrequency  float64 `json:"min_due_paid_frequency"`
	MerchantMixIndex     float64 `json:"merchant_mix_index"`
	CashWithdrawalPct    float64 `json:"cash_withdrawal_pct"`
	RecentSpendChangePct float64 `json:"recent_spend_change_pct"`
	CreditLimit          float64 `json:"credit_limit"`
	IsDelinquent         bool    `json:"is_delinquent"`
}

// SignalSet holds the five boolean behavioral indicators derived from one
// CustomerRecord. It is recomputed on every evaluation and never persisted.
type SignalSet struct {
	SpendDecline    bool
	HighUtilization bool
	PaymentDecline  bool
	CashSurge       bool
	LowMerchantMix  bool
}

// Values returns the signals in the fixed evaluation order shared with
// constants.SignalCodes and the estimator feature-vector contract.
func (s SignalSet) Values() [constants.SignalCount]bool {
	return [constants.SignalCount]bool{
		s.SpendDecline,
		s.HighUtilization,
		s.PaymentDecline,
		s.CashSurge,
		s.LowMerchantMix,
	}
}

// Count returns the number of triggered signals, which is the risk score.
func (s SignalSet) Count() int {
	n := 0
	for _, v := range s.Values() {
		if v {
			n++
		}
	}
	return n
}

// Triggered returns the display names of triggered signals in evaluation order.
func (s SignalSet) Triggered() []string {
	names := make([]string, 0, constants.SignalCount)
	for i, v := range s.Values() {
		if v {
			names = append(names, constants.SignalDisplayNames[constants.SignalCodes[i]])
		}
	}
	return names
}

// RiskAssessment is the derived, ephemeral scoring result for one customer.
// It is superseded wholesale on every recomputation.
type RiskAssessment struct {
	CustomerID             string             `json:"customer_id"`
	RiskScore              int                `json:"risk_score"`
	RiskTier               constants.RiskTier `json:"risk_tier"`
	TriggeredSignals       []string           `json:"triggered_signals"`
	DelinquencyProbability float64            `json:"delinquency_probability"`
	Confidence             float64            `json:"confidence"`
}

// ScoredRecord pairs a customer record with its derived signals, score and
// tier inside an immutable snapshot row.
type ScoredRecord struct {
	CustomerRecord

	Signals   SignalSet
	RiskScore int
	RiskTier  constants.RiskTier
}
