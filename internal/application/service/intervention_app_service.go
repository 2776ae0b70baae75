package service

import (
	"context"
	"fmt"

	gocache "github.com/patrickmn/go-cache"

	"github.com/Tudu-hope/credit-card-delinquency-check/internal/application/dto"
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/config"
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/infrastructure/dataset"
	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/constants"
	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/logger"
)

// InterventionAppService defines the application service interface for
// intervention cost/benefit use cases.
type InterventionAppService interface {
	// CalculateROI computes the cost/benefit summary of the tiered
	// intervention program over the current snapshot.
	CalculateROI(ctx context.Context) (*dto.ROIResponse, error)

	// Recommendations returns the intervention playbook for a tier.
	Recommendations(tier constants.RiskTier) []string
}

// tierRecommendations is the fixed intervention playbook per tier.
var tierRecommendations = map[constants.RiskTier][]string{
	constants.RiskTierHigh: {
		"Direct phone outreach within 24-48 hours",
		"Offer payment plan or credit limit review",
		"Connect with financial counselor",
		"Monitor weekly for 3 months",
	},
	constants.RiskTierMedium: {
		"Automated email with account health summary",
		"Offer payment flexibility or rate reduction",
		"Push financial wellness resources",
		"Monitor monthly for 2 months",
	},
	constants.RiskTierLow: {
		"Educational email campaign",
		"Highlight available resources",
		"Quarterly monitoring",
		"Standard customer service",
	},
}

type interventionAppServiceImpl struct {
	store  *dataset.Store
	cfg    config.InterventionConfig
	cache  *gocache.Cache
	logger logger.Logger
}

// NewInterventionAppService creates a new instance of InterventionAppService.
func NewInterventionAppService(store *dataset.Store, cfg config.InterventionConfig, cache *gocache.Cache, log logger.Logger) InterventionAppService {
	return &interventionAppServiceImpl{
		store:  store,
		cfg:    cfg,
		cache:  cache,
		logger: log,
	}
}

func (s *interventionAppServiceImpl) CalculateROI(ctx context.Context) (*dto.ROIResponse, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("intervention-roi:%d", snap.Version)
	if v, ok := s.cache.Get(key); ok {
		return v.(*dto.ROIResponse), nil
	}

	out := s.buildROI(snap)
	s.cache.Set(key, out, gocache.DefaultExpiration)
	return out, nil
}

func (s *interventionAppServiceImpl) Recommendations(tier constants.RiskTier) []string {
	return tierRecommendations[tier]
}

func (s *interventionAppServiceImpl) buildROI(snap *dataset.Snapshot) *dto.ROIResponse {
	tierCounts := make(map[constants.RiskTier]int, len(constants.Tiers))
	for _, rec := range snap.Records {
		tierCounts[rec.RiskTier]++
	}

	highCost := float64(tierCounts[constants.RiskTierHigh]) * s.cfg.HighCost
	mediumCost := float64(tierCounts[constants.RiskTierMedium]) * s.cfg.MediumCost
	lowCost := float64(tierCounts[constants.RiskTierLow]) * s.cfg.LowCost
	totalCost := highCost + mediumCost + lowCost

	prevented := float64(tierCounts[constants.RiskTierHigh])*s.cfg.HighPreventionRate +
		float64(tierCounts[constants.RiskTierMedium])*s.cfg.MediumPreventionRate +
		float64(tierCounts[constants.RiskTierLow])*s.cfg.LowPreventionRate

	revenueProtected := prevented * s.cfg.AvgLossPerDefault

	// An empty program costs nothing and yields nothing; both ratios report 0
	// rather than dividing by zero.
	roi, perDollar := 0.0, 0.0
	if totalCost > 0 {
		roi = (revenueProtected - totalCost) / totalCost * 100
		perDollar = revenueProtected / totalCost
	}

	return &dto.ROIResponse{
		ProgramCost: dto.ProgramCost{
			HighTier:   highCost,
			MediumTier: mediumCost,
			LowTier:    lowCost,
			Total:      totalCost,
		},
		PreventedDefaults: roundTo(prevented, 1),
		RevenueProtected:  revenueProtected,
		NetBenefit:        revenueProtected - totalCost,
		ROIPercentage:     roundTo(roi, 1),
		PerDollarYield:    roundTo(perDollar, 2),
	}
}
