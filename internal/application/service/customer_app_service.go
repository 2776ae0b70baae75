package service

import (
	"context"
	"math"
	"strings"

	"github.com/Tudu-hope/credit-card-delinquency-check/internal/application/dto"
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/domain/models"
	domainservice "github.com/Tudu-hope/credit-card-delinquency-check/internal/domain/service"
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/infrastructure/dataset"
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/infrastructure/monitoring"
	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/constants"
	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/errors"
	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/logger"
)

// CustomerAppService defines the application service interface for single
// customer use cases: ad-hoc scoring, listing and model introspection.
type CustomerAppService interface {
	// ScoreCustomer derives signals, score, tier and a model probability for
	// one set of raw measurements.
	ScoreCustomer(ctx context.Context, req *dto.ScoreCustomerRequest) (*dto.ScoreCustomerResponse, error)

	// ListCustomers returns scored customer rows, optionally filtered by
	// tier, in original table order.
	ListCustomers(ctx context.Context, tier string, limit int) ([]dto.CustomerSummary, error)

	// FeatureImportances returns the model's top predictive features.
	FeatureImportances(ctx context.Context) (*dto.FeatureImportanceResponse, error)

	// Health reports data and model readiness.
	Health(ctx context.Context) *dto.HealthResponse
}

type customerAppServiceImpl struct {
	store        *dataset.Store
	estimator    domainservice.DelinquencyEstimator
	intervention InterventionAppService
	metrics      *monitoring.Metrics
	logger       logger.Logger
}

// NewCustomerAppService creates a new instance of CustomerAppService. The
// metrics argument may be nil.
func NewCustomerAppService(
	store *dataset.Store,
	estimator domainservice.DelinquencyEstimator,
	intervention InterventionAppService,
	metrics *monitoring.Metrics,
	log logger.Logger,
) CustomerAppService {
	return &customerAppServiceImpl{
		store:        store,
		estimator:    estimator,
		intervention: intervention,
		metrics:      metrics,
		logger:       log,
	}
}

func (s *customerAppServiceImpl) ScoreCustomer(ctx context.Context, req *dto.ScoreCustomerRequest) (*dto.ScoreCustomerResponse, error) {
	// Scoring uses the thresholds and cut points the current snapshot was
	// published under, so ad-hoc results stay consistent with the table.
	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}

	rec := models.CustomerRecord{
		CustomerID:           req.CustomerID,
		UtilizationPct:       *req.UtilizationPct,
		AvgPaymentRatio:      *req.AvgPaymentRatio,
		MinDuePaidFrequency:  *req.MinDuePaidFrequency,
		MerchantMixIndex:     *req.MerchantMixIndex,
		CashWithdrawalPct:    *req.CashWithdrawalPct,
		RecentSpendChangePct: *req.RecentSpendChangePct,
		CreditLimit:          math.NaN(),
	}
	if rec.CustomerID == "" {
		rec.CustomerID = "UNKNOWN"
	}

	engine := domainservice.NewSignalEngine(snap.Thresholds)
	classifier := domainservice.NewTierClassifier(snap.Tiers)

	signals, score := engine.Score(rec)
	tier := classifier.Classify(score)

	probability, err := s.estimator.Estimate(domainservice.AssembleFeatures(rec, signals))
	if err != nil {
		s.recordScoring(string(tier), "error")
		s.logger.Error(ctx, "customer scoring failed", err, logger.Fields{
			"customer_id": rec.CustomerID,
		})
		return nil, err
	}
	s.recordScoring(string(tier), "ok")

	s.logger.Debug(ctx, "customer scored", logger.Fields{
		"customer_id": rec.CustomerID,
		"risk_score":  score,
		"risk_tier":   tier,
	})

	return &dto.ScoreCustomerResponse{
		CustomerID:             rec.CustomerID,
		RiskScore:              score,
		RiskTier:               string(tier),
		DelinquencyProbability: roundTo(probability, 3),
		TriggeredSignals:       signals.Triggered(),
		Recommendations:        s.intervention.Recommendations(tier),
		Confidence:             roundTo(domainservice.Confidence(probability), 3),
	}, nil
}

func (s *customerAppServiceImpl) ListCustomers(ctx context.Context, tier string, limit int) ([]dto.CustomerSummary, error) {
	var filter constants.RiskTier
	if tier != "" {
		filter = constants.RiskTier(strings.ToUpper(tier))
		if !filter.Valid() {
			return nil, errors.ErrInvalidFilter("tier", tier)
		}
	}

	if limit <= 0 {
		limit = constants.DefaultCustomerPageSize
	}
	if limit > constants.MaxCustomerPageSize {
		limit = constants.MaxCustomerPageSize
	}

	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}

	customers := make([]dto.CustomerSummary, 0, limit)
	for _, rec := range snap.Records {
		if filter != "" && rec.RiskTier != filter {
			continue
		}
		customers = append(customers, dto.CustomerSummary{
			CustomerID:   rec.CustomerID,
			RiskTier:     string(rec.RiskTier),
			RiskScore:    rec.RiskScore,
			Utilization:  roundTo(rec.UtilizationPct, 1),
			PaymentRatio: roundTo(rec.AvgPaymentRatio, 1),
			SpendChange:  roundTo(rec.RecentSpendChangePct, 1),
			IsDelinquent: rec.IsDelinquent,
			CreditLimit:  intOrZero(rec.CreditLimit),
		})
		if len(customers) == limit {
			break
		}
	}
	return customers, nil
}

func (s *customerAppServiceImpl) FeatureImportances(ctx context.Context) (*dto.FeatureImportanceResponse, error) {
	importances, err := s.estimator.FeatureImportances()
	if err != nil {
		return nil, err
	}

	top := constants.DefaultTopFeatures
	if len(importances) < top {
		top = len(importances)
	}

	pairs := make([]dto.FeatureImportancePair, 0, top)
	for _, imp := range importances[:top] {
		pairs = append(pairs, dto.FeatureImportancePair{
			Feature:    imp.Feature,
			Importance: imp.Importance,
		})
	}
	return &dto.FeatureImportanceResponse{TopFeatures: pairs}, nil
}

func (s *customerAppServiceImpl) Health(ctx context.Context) *dto.HealthResponse {
	_, err := s.estimator.FeatureImportances()
	return &dto.HealthResponse{
		Status:       "healthy",
		DataLoaded:   s.store.Loaded(),
		ModelTrained: err == nil,
	}
}

func (s *customerAppServiceImpl) recordScoring(tier, result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordScoring(tier, result)
	s.metrics.RecordInference(result)
}

// intOrZero truncates to int, mapping a missing measurement to 0.
func intOrZero(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(v)
}
