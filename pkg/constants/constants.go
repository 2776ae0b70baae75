// Package constants defines system-wide constants for the delinquency risk service.
// This package provides type-safe constant definitions used across all modules.
package constants

// ================================================================================
// Risk Tier Constants
// ================================================================================

// RiskTier represents the ordinal risk bucket assigned to a customer.
type RiskTier string

const (
	// RiskTierHigh indicates the customer should receive immediate intervention.
	RiskTierHigh RiskTier = "HIGH"

	// RiskTierMedium indicates the customer should be monitored and nudged.
	RiskTierMedium RiskTier = "MEDIUM"

	// RiskTierLow indicates standard servicing is sufficient.
	RiskTierLow RiskTier = "LOW"
)

// Tiers lists all tiers in severity order, highest first. Aggregations iterate
// this slice so that response ordering stays stable.
var Tiers = []RiskTier{RiskTierHigh, RiskTierMedium, RiskTierLow}

// Valid reports whether the tier is one of the three known values.
func (t RiskTier) Valid() bool {
	switch t {
	case RiskTierHigh, RiskTierMedium, RiskTierLow:
		return true
	}
	return false
}

// ================================================================================
// Behavioral Signal Constants
// ================================================================================

// SignalCode identifies one of the five behavioral signals.
type SignalCode string

const (
	SignalSpendDecline    SignalCode = "signal_spend_decline"
	SignalHighUtilization SignalCode = "signal_high_utilization"
	SignalPaymentDecline  SignalCode = "signal_payment_decline"
	SignalCashSurge       SignalCode = "signal_cash_surge"
	SignalLowMerchantMix  SignalCode = "signal_low_merchant_mix"
)

// SignalCodes lists the signal codes in evaluation order. The order is part of
// the estimator feature-vector contract and must not change between releases.
var SignalCodes = []SignalCode{
	SignalSpendDecline,
	SignalHighUtilization,
	SignalPaymentDecline,
	SignalCashSurge,
	SignalLowMerchantMix,
}

// SignalDisplayNames maps signal codes to the human-readable names used in
// API responses and triggered-signal lists.
var SignalDisplayNames = map[SignalCode]string{
	SignalSpendDecline:    "Spending Decline",
	SignalHighUtilization: "High Utilization",
	SignalPaymentDecline:  "Payment Decline",
	SignalCashSurge:       "Cash Surge",
	SignalLowMerchantMix:  "Low Merchant Mix",
}

// SignalCount is the number of behavioral signals, and therefore the maximum
// attainable risk score.
const SignalCount = 5

// ================================================================================
// Default Scoring Parameters
// ================================================================================

const (
	// DefaultSpendDeclineThreshold triggers when recent spend change falls below it.
	DefaultSpendDeclineThreshold = -10.0

	// DefaultUtilizationThreshold triggers when utilization rises above it.
	DefaultUtilizationThreshold = 80.0

	// DefaultPaymentRatioThreshold triggers when the average payment ratio falls below it.
	DefaultPaymentRatioThreshold = 40.0

	// DefaultCashWithdrawalThreshold triggers when cash withdrawal share rises above it.
	DefaultCashWithdrawalThreshold = 15.0

	// DefaultMerchantMixThreshold triggers when the merchant mix index falls below it.
	DefaultMerchantMixThreshold = 0.4
)

const (
	// DefaultHighTierCutPoint is the minimum risk score for the HIGH tier.
	DefaultHighTierCutPoint = 3

	// DefaultMediumTierCutPoint is the minimum risk score for the MEDIUM tier.
	DefaultMediumTierCutPoint = 2
)

// ================================================================================
// Default Intervention Economics
// ================================================================================

const (
	DefaultHighInterventionCost   = 20.0
	DefaultMediumInterventionCost = 7.50
	DefaultLowInterventionCost    = 0.50

	DefaultHighPreventionRate   = 0.40
	DefaultMediumPreventionRate = 0.25
	DefaultLowPreventionRate    = 0.07

	// DefaultAvgLossPerDefault is the average exposure protected per prevented default.
	DefaultAvgLossPerDefault = 5000.0
)

// ================================================================================
// Query Limits
// ================================================================================

const (
	// DefaultCustomerPageSize is the customer listing page size when no limit is given.
	DefaultCustomerPageSize = 20

	// MaxCustomerPageSize caps the customer listing page size.
	MaxCustomerPageSize = 100

	// DefaultTopFeatures is the number of feature-importance pairs returned.
	DefaultTopFeatures = 10
)

// ================================================================================
// Context Keys
// ================================================================================

// ContextKey is the type used for request-scoped context values.
type ContextKey string

const (
	// ContextKeyRequestID carries the per-request identifier.
	ContextKeyRequestID ContextKey = "request_id"

	// ContextKeyTraceID carries the distributed trace identifier.
	ContextKeyTraceID ContextKey = "trace_id"
)
