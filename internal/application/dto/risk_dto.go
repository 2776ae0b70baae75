// Package dto defines the request and response shapes of the risk analysis API.
package dto

// TierStats summarizes one risk tier inside the portfolio summary.
type TierStats struct {
	Count           int     `json:"count"`
	DelinquencyRate float64 `json:"delinquency_rate"`
}

// PortfolioSummaryResponse is the aggregate portfolio view.
type PortfolioSummaryResponse struct {
	TotalCustomers  int            `json:"total_customers"`
	TotalDelinquent int            `json:"total_delinquent"`
	DelinquencyRate float64        `json:"delinquency_rate"`
	TierBreakdown   map[string]int `json:"tier_breakdown"`
	HighRisk        TierStats      `json:"high_risk"`
	MediumRisk      TierStats      `json:"medium_risk"`
	LowRisk         TierStats      `json:"low_risk"`
}

// SignalStats reports the prevalence and discriminative power of one
// behavioral signal across the portfolio.
type SignalStats struct {
	Name                       string  `json:"name"`
	Code                       string  `json:"code"`
	Prevalence                 int     `json:"prevalence"`
	PrevalencePct              float64 `json:"prevalence_pct"`
	DelinquencyRateWhenPresent float64 `json:"delinquency_rate_when_present"`
	DelinquencyRateWhenAbsent  float64 `json:"delinquency_rate_when_absent"`
	RiskLift                   float64 `json:"risk_lift"`
}

// TierDistribution is one row of the tier histogram with per-tier averages.
type TierDistribution struct {
	Tier              string  `json:"tier"`
	Count             int     `json:"count"`
	Percentage        float64 `json:"percentage"`
	DelinquencyRate   float64 `json:"delinquency_rate"`
	AvgUtilization    float64 `json:"avg_utilization"`
	AvgPaymentRatio   float64 `json:"avg_payment_ratio"`
	AvgSpendChange    float64 `json:"avg_spend_change"`
	AvgCashWithdrawal float64 `json:"avg_cash_withdrawal"`
}

// RiskDistributionResponse pairs the risk score histogram with the tier detail.
type RiskDistributionResponse struct {
	RiskScoreDistribution map[int]int        `json:"risk_score_distribution"`
	TierDistribution      []TierDistribution `json:"tier_distribution"`
}

// ScoreCustomerRequest carries the raw measurements for ad-hoc scoring. Fields
// are pointers so that an omitted measurement fails validation instead of
// silently scoring as zero.
type ScoreCustomerRequest struct {
	CustomerID           string   `json:"customer_id"`
	UtilizationPct       *float64 `json:"utilization_pct" binding:"required"`
	AvgPaymentRatio      *float64 `json:"avg_payment_ratio" binding:"required"`
	MinDuePaidFrequency  *float64 `json:"min_due_paid_frequency" binding:"required"`
	MerchantMixIndex     *float64 `json:"merchant_mix_index" binding:"required"`
	CashWithdrawalPct    *float64 `json:"cash_withdrawal_pct" binding:"required"`
	RecentSpendChangePct *float64 `json:"recent_spend_change_pct" binding:"required"`
}

// ScoreCustomerResponse is the full scoring result for one customer.
type ScoreCustomerResponse struct {
	CustomerID             string   `json:"customer_id"`
	RiskScore              int      `json:"risk_score"`
	RiskTier               string   `json:"risk_tier"`
	DelinquencyProbability float64  `json:"delinquency_probability"`
	TriggeredSignals       []string `json:"triggered_signals"`
	Recommendations        []string `json:"recommendations"`
	Confidence             float64  `json:"confidence"`
}

// CustomerSummary is one row of the customer listing.
type CustomerSummary struct {
	CustomerID   string  `json:"customer_id"`
	RiskTier     string  `json:"risk_tier"`
	RiskScore    int     `json:"risk_score"`
	Utilization  float64 `json:"utilization"`
	PaymentRatio float64 `json:"payment_ratio"`
	SpendChange  float64 `json:"spend_change"`
	IsDelinquent bool    `json:"is_delinquent"`
	CreditLimit  int     `json:"credit_limit"`
}

// FeatureImportancePair is one (feature, importance) entry.
type FeatureImportancePair struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// FeatureImportanceResponse lists the model's top predictive features.
type FeatureImportanceResponse struct {
	TopFeatures []FeatureImportancePair `json:"top_features"`
}

// ProgramCost breaks the intervention program cost down by tier.
type ProgramCost struct {
	HighTier   float64 `json:"high_tier"`
	MediumTier float64 `json:"medium_tier"`
	LowTier    float64 `json:"low_tier"`
	Total      float64 `json:"total"`
}

// ROIResponse is the cost/benefit summary of the intervention program.
type ROIResponse struct {
	ProgramCost       ProgramCost `json:"program_cost"`
	PreventedDefaults float64     `json:"prevented_defaults"`
	RevenueProtected  float64     `json:"revenue_protected"`
	NetBenefit        float64     `json:"net_benefit"`
	ROIPercentage     float64     `json:"roi_percentage"`
	PerDollarYield    float64     `json:"per_dollar_yield"`
}

// DashboardStatsResponse is the combined view backing the dashboard.
type DashboardStatsResponse struct {
	Portfolio  *PortfolioSummaryResponse `json:"portfolio"`
	ROI        *ROIResponse              `json:"roi"`
	TopSignals []SignalStats             `json:"top_signals"`
}

// HealthResponse reports liveness and readiness of the two startup artifacts.
type HealthResponse struct {
	Status       string `json:"status"`
	DataLoaded   bool   `json:"data_loaded"`
	ModelTrained bool   `json:"model_trained"`
}
