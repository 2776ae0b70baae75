package service

import (
	"context"
	"math"
	"testing"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tudu-hope/credit-card-delinquency-check/internal/config"
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/domain/models"
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/infrastructure/dataset"
	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/constants"
	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/logger"
)

func defaultThresholds() config.ThresholdConfig {
	return config.ThresholdConfig{
		SpendDecline:   constants.DefaultSpendDeclineThreshold,
		Utilization:    constants.DefaultUtilizationThreshold,
		PaymentRatio:   constants.DefaultPaymentRatioThreshold,
		CashWithdrawal: constants.DefaultCashWithdrawalThreshold,
		MerchantMix:    constants.DefaultMerchantMixThreshold,
	}
}

func defaultTiers() config.TierConfig {
	return config.TierConfig{
		High:   constants.DefaultHighTierCutPoint,
		Medium: constants.DefaultMediumTierCutPoint,
	}
}

// fixtureRecords builds a four-customer table: one scoring 5 (HIGH,
// delinquent), two scoring 2 (MEDIUM, one delinquent) and one scoring 0
// (LOW, current).
func fixtureRecords() []models.CustomerRecord {
	return []models.CustomerRecord{
		{
			CustomerID: "C-001", UtilizationPct: 85, AvgPaymentRatio: 30,
			MinDuePaidFrequency: 25, MerchantMixIndex: 0.3, CashWithdrawalPct: 20,
			RecentSpendChangePct: -15, CreditLimit: 50000, IsDelinquent: true,
		},
		{
			CustomerID: "C-002", UtilizationPct: 85, AvgPaymentRatio: 30,
			MinDuePaidFrequency: 80, MerchantMixIndex: 0.8, CashWithdrawalPct: 5,
			RecentSpendChangePct: 5, CreditLimit: 80000, IsDelinquent: true,
		},
		{
			CustomerID: "C-003", UtilizationPct: 85, AvgPaymentRatio: 30,
			MinDuePaidFrequency: 80, MerchantMixIndex: 0.8, CashWithdrawalPct: 5,
			RecentSpendChangePct: 5, CreditLimit: 60000, IsDelinquent: false,
		},
		{
			CustomerID: "C-004", UtilizationPct: 50, AvgPaymentRatio: 70,
			MinDuePaidFrequency: 80, MerchantMixIndex: 0.8, CashWithdrawalPct: 5,
			RecentSpendChangePct: 5, CreditLimit: 120000, IsDelinquent: false,
		},
	}
}

func fixtureStore() *dataset.Store {
	store := dataset.NewStore()
	store.Publish(dataset.BuildSnapshot(fixtureRecords(), defaultThresholds(), defaultTiers(), 1))
	return store
}

func newTestCache() *gocache.Cache {
	return gocache.New(5*time.Minute, 10*time.Minute)
}

func TestPortfolioSummary(t *testing.T) {
	svc := NewPortfolioAppService(fixtureStore(), newTestCache(), logger.NewNoopLogger())

	summary, err := svc.GetPortfolioSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalCustomers)
	assert.Equal(t, 2, summary.TotalDelinquent)
	assert.Equal(t, 50.0, summary.DelinquencyRate)

	assert.Equal(t, map[string]int{"HIGH": 1, "MEDIUM": 2, "LOW": 1}, summary.TierBreakdown)
	assert.Equal(t, 1, summary.HighRisk.Count)
	assert.Equal(t, 100.0, summary.HighRisk.DelinquencyRate)
	assert.Equal(t, 2, summary.MediumRisk.Count)
	assert.Equal(t, 50.0, summary.MediumRisk.DelinquencyRate)
	assert.Equal(t, 1, summary.LowRisk.Count)
	assert.Equal(t, 0.0, summary.LowRisk.DelinquencyRate)

	total := summary.TierBreakdown["HIGH"] + summary.TierBreakdown["MEDIUM"] + summary.TierBreakdown["LOW"]
	assert.Equal(t, summary.TotalCustomers, total)
}

func TestPortfolioSummary_UnloadedStore(t *testing.T) {
	svc := NewPortfolioAppService(dataset.NewStore(), newTestCache(), logger.NewNoopLogger())

	_, err := svc.GetPortfolioSummary(context.Background())
	require.Error(t, err)
}

func TestSignalEffectiveness_SortedByLiftWithSentinel(t *testing.T) {
	svc := NewPortfolioAppService(fixtureStore(), newTestCache(), logger.NewNoopLogger())

	stats, err := svc.GetSignalEffectiveness(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, constants.SignalCount)

	// Three signals present only on the delinquent C-001 share lift 3.0; the
	// two signals absent only on never-delinquent C-004 fall back to the
	// neutral lift of 1.
	codes := make([]string, 0, len(stats))
	for _, s := range stats {
		codes = append(codes, s.Code)
	}
	assert.Equal(t, []string{
		"signal_spend_decline",
		"signal_cash_surge",
		"signal_low_merchant_mix",
		"signal_high_utilization",
		"signal_payment_decline",
	}, codes)

	assert.Equal(t, 3.0, stats[0].RiskLift)
	assert.Equal(t, 100.0, stats[0].DelinquencyRateWhenPresent)
	assert.Equal(t, 33.3, stats[0].DelinquencyRateWhenAbsent)
	assert.Equal(t, 1, stats[0].Prevalence)
	assert.Equal(t, 25.0, stats[0].PrevalencePct)

	utilization := stats[3]
	assert.Equal(t, "signal_high_utilization", utilization.Code)
	assert.Equal(t, 0.0, utilization.DelinquencyRateWhenAbsent)
	assert.Equal(t, 1.0, utilization.RiskLift)
}

func TestRiskDistribution(t *testing.T) {
	svc := NewPortfolioAppService(fixtureStore(), newTestCache(), logger.NewNoopLogger())

	dist, err := svc.GetRiskDistribution(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[int]int{0: 1, 2: 2, 5: 1}, dist.RiskScoreDistribution)
	require.Len(t, dist.TierDistribution, 3)

	high := dist.TierDistribution[0]
	assert.Equal(t, "HIGH", high.Tier)
	assert.Equal(t, 1, high.Count)
	assert.Equal(t, 25.0, high.Percentage)
	assert.Equal(t, 100.0, high.DelinquencyRate)
	assert.Equal(t, 85.0, high.AvgUtilization)
	assert.Equal(t, -15.0, high.AvgSpendChange)

	medium := dist.TierDistribution[1]
	assert.Equal(t, "MEDIUM", medium.Tier)
	assert.Equal(t, 2, medium.Count)
	assert.Equal(t, 50.0, medium.DelinquencyRate)
	assert.Equal(t, 85.0, medium.AvgUtilization)
	assert.Equal(t, 30.0, medium.AvgPaymentRatio)
}

func TestRiskDistribution_NaNMeasurementsSkippedInAverages(t *testing.T) {
	records := fixtureRecords()
	records[2].UtilizationPct = math.NaN()

	store := dataset.NewStore()
	store.Publish(dataset.BuildSnapshot(records, defaultThresholds(), defaultTiers(), 1))
	svc := NewPortfolioAppService(store, newTestCache(), logger.NewNoopLogger())

	dist, err := svc.GetRiskDistribution(context.Background())
	require.NoError(t, err)

	// C-003 drops out of the MEDIUM tier (utilization signal no longer
	// triggers), leaving C-002 alone at score 2.
	medium := dist.TierDistribution[1]
	assert.Equal(t, 1, medium.Count)
	assert.Equal(t, 85.0, medium.AvgUtilization)
}

func TestPortfolioSummary_CachedPerSnapshotVersion(t *testing.T) {
	store := fixtureStore()
	svc := NewPortfolioAppService(store, newTestCache(), logger.NewNoopLogger())

	first, err := svc.GetPortfolioSummary(context.Background())
	require.NoError(t, err)

	again, err := svc.GetPortfolioSummary(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, again)

	// A republish under a new version must bypass the cached aggregate.
	store.Publish(dataset.BuildSnapshot(fixtureRecords()[:1], defaultThresholds(), defaultTiers(), 2))
	fresh, err := svc.GetPortfolioSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.TotalCustomers)
}
