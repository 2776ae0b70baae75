package service

import (
	"context"
	"fmt"
	"sort"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/Tudu-hope/credit-card-delinquency-check/internal/application/dto"
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/infrastructure/dataset"
	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/constants"
	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/logger"
)

// PortfolioAppService defines the application service interface for
// portfolio-level aggregation use cases.
type PortfolioAppService interface {
	// GetPortfolioSummary returns totals, the tier breakdown and per-tier
	// delinquency rates.
	GetPortfolioSummary(ctx context.Context) (*dto.PortfolioSummaryResponse, error)

	// GetSignalEffectiveness returns per-signal prevalence and risk lift,
	// strongest lift first.
	GetSignalEffectiveness(ctx context.Context) ([]dto.SignalStats, error)

	// GetRiskDistribution returns the risk score histogram and tier detail.
	GetRiskDistribution(ctx context.Context) (*dto.RiskDistributionResponse, error)
}

// portfolioAppServiceImpl aggregates over the current snapshot. Results are
// cached per snapshot version, so a republish naturally invalidates them, and
// recomputation is deduplicated across concurrent requests.
type portfolioAppServiceImpl struct {
	store  *dataset.Store
	cache  *gocache.Cache
	group  singleflight.Group
	logger logger.Logger
}

// NewPortfolioAppService creates a new instance of PortfolioAppService.
func NewPortfolioAppService(store *dataset.Store, cache *gocache.Cache, log logger.Logger) PortfolioAppService {
	return &portfolioAppServiceImpl{
		store:  store,
		cache:  cache,
		logger: log,
	}
}

func (s *portfolioAppServiceImpl) GetPortfolioSummary(ctx context.Context) (*dto.PortfolioSummaryResponse, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("portfolio-summary:%d", snap.Version)
	if v, ok := s.cache.Get(key); ok {
		return v.(*dto.PortfolioSummaryResponse), nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		out := buildPortfolioSummary(snap)
		s.cache.Set(key, out, gocache.DefaultExpiration)
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.PortfolioSummaryResponse), nil
}

func (s *portfolioAppServiceImpl) GetSignalEffectiveness(ctx context.Context) ([]dto.SignalStats, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("signal-effectiveness:%d", snap.Version)
	if v, ok := s.cache.Get(key); ok {
		return v.([]dto.SignalStats), nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		out := buildSignalEffectiveness(snap)
		s.cache.Set(key, out, gocache.DefaultExpiration)
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dto.SignalStats), nil
}

func (s *portfolioAppServiceImpl) GetRiskDistribution(ctx context.Context) (*dto.RiskDistributionResponse, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("risk-distribution:%d", snap.Version)
	if v, ok := s.cache.Get(key); ok {
		return v.(*dto.RiskDistributionResponse), nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		out := buildRiskDistribution(snap)
		s.cache.Set(key, out, gocache.DefaultExpiration)
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.RiskDistributionResponse), nil
}

func buildPortfolioSummary(snap *dataset.Snapshot) *dto.PortfolioSummaryResponse {
	total := len(snap.Records)
	totalDelinquent := 0
	tierCounts := make(map[constants.RiskTier]int, len(constants.Tiers))
	tierDelinquent := make(map[constants.RiskTier]int, len(constants.Tiers))

	for _, rec := range snap.Records {
		if rec.IsDelinquent {
			totalDelinquent++
			tierDelinquent[rec.RiskTier]++
		}
		tierCounts[rec.RiskTier]++
	}

	tierStats := func(tier constants.RiskTier) dto.TierStats {
		return dto.TierStats{
			Count:           tierCounts[tier],
			DelinquencyRate: roundTo(pctRate(tierDelinquent[tier], tierCounts[tier]), 1),
		}
	}

	return &dto.PortfolioSummaryResponse{
		TotalCustomers:  total,
		TotalDelinquent: totalDelinquent,
		DelinquencyRate: roundTo(pctRate(totalDelinquent, total), 2),
		TierBreakdown: map[string]int{
			string(constants.RiskTierHigh):   tierCounts[constants.RiskTierHigh],
			string(constants.RiskTierMedium): tierCounts[constants.RiskTierMedium],
			string(constants.RiskTierLow):    tierCounts[constants.RiskTierLow],
		},
		HighRisk:   tierStats(constants.RiskTierHigh),
		MediumRisk: tierStats(constants.RiskTierMedium),
		LowRisk:    tierStats(constants.RiskTierLow),
	}
}

func buildSignalEffectiveness(snap *dataset.Snapshot) []dto.SignalStats {
	total := len(snap.Records)
	stats := make([]dto.SignalStats, 0, constants.SignalCount)

	for i, code := range constants.SignalCodes {
		var flagged, flaggedDelinquent, unflagged, unflaggedDelinquent int
		for _, rec := range snap.Records {
			if rec.Signals.Values()[i] {
				flagged++
				if rec.IsDelinquent {
					flaggedDelinquent++
				}
			} else {
				unflagged++
				if rec.IsDelinquent {
					unflaggedDelinquent++
				}
			}
		}

		presentRate := pctRate(flaggedDelinquent, flagged)
		absentRate := pctRate(unflaggedDelinquent, unflagged)

		// A signal nobody lacks, or one whose absence never coincides with
		// delinquency, gets a neutral lift of 1 instead of dividing by zero.
		lift := 1.0
		if absentRate > 0 {
			lift = presentRate / absentRate
		}

		stats = append(stats, dto.SignalStats{
			Name:                       constants.SignalDisplayNames[code],
			Code:                       string(code),
			Prevalence:                 flagged,
			PrevalencePct:              roundTo(pctRate(flagged, total), 1),
			DelinquencyRateWhenPresent: roundTo(presentRate, 1),
			DelinquencyRateWhenAbsent:  roundTo(absentRate, 1),
			RiskLift:                   roundTo(lift, 2),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].RiskLift > stats[j].RiskLift
	})
	return stats
}

func buildRiskDistribution(snap *dataset.Snapshot) *dto.RiskDistributionResponse {
	total := len(snap.Records)
	scoreDist := make(map[int]int)
	for _, rec := range snap.Records {
		scoreDist[rec.RiskScore]++
	}

	tierDist := make([]dto.TierDistribution, 0, len(constants.Tiers))
	for _, tier := range constants.Tiers {
		var count, delinquent int
		var utilization, paymentRatio, spendChange, cashWithdrawal []float64
		for _, rec := range snap.Records {
			if rec.RiskTier != tier {
				continue
			}
			count++
			if rec.IsDelinquent {
				delinquent++
			}
			utilization = append(utilization, rec.UtilizationPct)
			paymentRatio = append(paymentRatio, rec.AvgPaymentRatio)
			spendChange = append(spendChange, rec.RecentSpendChangePct)
			cashWithdrawal = append(cashWithdrawal, rec.CashWithdrawalPct)
		}

		tierDist = append(tierDist, dto.TierDistribution{
			Tier:              string(tier),
			Count:             count,
			Percentage:        roundTo(pctRate(count, total), 1),
			DelinquencyRate:   roundTo(pctRate(delinquent, count), 1),
			AvgUtilization:    roundTo(meanSkipNaN(utilization), 1),
			AvgPaymentRatio:   roundTo(meanSkipNaN(paymentRatio), 1),
			AvgSpendChange:    roundTo(meanSkipNaN(spendChange), 1),
			AvgCashWithdrawal: roundTo(meanSkipNaN(cashWithdrawal), 1),
		})
	}

	return &dto.RiskDistributionResponse{
		RiskScoreDistribution: scoreDist,
		TierDistribution:      tierDist,
	}
}
