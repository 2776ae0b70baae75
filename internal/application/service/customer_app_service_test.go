package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tudu-hope/credit-card-delinquency-check/internal/application/dto"
	domainservice "github.com/Tudu-hope/credit-card-delinquency-check/internal/domain/service"
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/infrastructure/dataset"
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/infrastructure/model"
	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/errors"
	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/logger"
)

// stubEstimator returns a fixed probability and a descending importance list
// covering every feature.
type stubEstimator struct {
	probability float64
	lastInput   []float64
}

func (e *stubEstimator) Estimate(features []float64) (float64, error) {
	e.lastInput = features
	return e.probability, nil
}

func (e *stubEstimator) FeatureImportances() ([]domainservice.FeatureImportance, error) {
	importances := make([]domainservice.FeatureImportance, len(domainservice.FeatureNames))
	for i, name := range domainservice.FeatureNames {
		importances[i] = domainservice.FeatureImportance{
			Feature:    name,
			Importance: 1.0 / float64(i+1),
		}
	}
	return importances, nil
}

func newCustomerService(store *dataset.Store, estimator domainservice.DelinquencyEstimator) CustomerAppService {
	intervention := NewInterventionAppService(store, defaultIntervention(), newTestCache(), logger.NewNoopLogger())
	return NewCustomerAppService(store, estimator, intervention, nil, logger.NewNoopLogger())
}

func scoreRequest() *dto.ScoreCustomerRequest {
	f := func(v float64) *float64 { return &v }
	return &dto.ScoreCustomerRequest{
		CustomerID:           "C-100",
		UtilizationPct:       f(85),
		AvgPaymentRatio:      f(30),
		MinDuePaidFrequency:  f(25),
		MerchantMixIndex:     f(0.3),
		CashWithdrawalPct:    f(20),
		RecentSpendChangePct: f(-15),
	}
}

func TestScoreCustomer_AllSignalsTriggered(t *testing.T) {
	estimator := &stubEstimator{probability: 0.82}
	svc := newCustomerService(fixtureStore(), estimator)

	resp, err := svc.ScoreCustomer(context.Background(), scoreRequest())
	require.NoError(t, err)

	assert.Equal(t, "C-100", resp.CustomerID)
	assert.Equal(t, 5, resp.RiskScore)
	assert.Equal(t, "HIGH", resp.RiskTier)
	assert.Equal(t, 0.82, resp.DelinquencyProbability)
	assert.Equal(t, 0.64, resp.Confidence)
	assert.Equal(t, []string{
		"Spending Decline", "High Utilization", "Payment Decline",
		"Cash Surge", "Low Merchant Mix",
	}, resp.TriggeredSignals)
	assert.Equal(t, "Direct phone outreach within 24-48 hours", resp.Recommendations[0])

	// The estimator sees the six raw fields then the five signal flags.
	assert.Equal(t, []float64{85, 30, 25, 0.3, 20, -15, 1, 1, 1, 1, 1}, estimator.lastInput)
}

func TestScoreCustomer_MissingIDDefaultsToUnknown(t *testing.T) {
	svc := newCustomerService(fixtureStore(), &stubEstimator{probability: 0.5})

	req := scoreRequest()
	req.CustomerID = ""
	resp, err := svc.ScoreCustomer(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "UNKNOWN", resp.CustomerID)
	assert.Equal(t, 0.0, resp.Confidence)
}

func TestScoreCustomer_ModelUnavailable(t *testing.T) {
	svc := newCustomerService(fixtureStore(), model.NewUnavailable("not trained"))

	_, err := svc.ScoreCustomer(context.Background(), scoreRequest())
	require.Error(t, err)
	assert.True(t, errors.IsModelUnavailable(err))
}

func TestScoreCustomer_NoDataLoaded(t *testing.T) {
	svc := newCustomerService(dataset.NewStore(), &stubEstimator{probability: 0.5})

	_, err := svc.ScoreCustomer(context.Background(), scoreRequest())
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeDataUnavailable, appErr.Code())
}

func TestListCustomers_TierFilter(t *testing.T) {
	svc := newCustomerService(fixtureStore(), &stubEstimator{})

	customers, err := svc.ListCustomers(context.Background(), "HIGH", 20)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "C-001", customers[0].CustomerID)
	assert.Equal(t, "HIGH", customers[0].RiskTier)
	assert.Equal(t, 5, customers[0].RiskScore)
	assert.Equal(t, 50000, customers[0].CreditLimit)
	assert.True(t, customers[0].IsDelinquent)
}

func TestListCustomers_LowercaseTierAccepted(t *testing.T) {
	svc := newCustomerService(fixtureStore(), &stubEstimator{})

	customers, err := svc.ListCustomers(context.Background(), "medium", 20)
	require.NoError(t, err)
	assert.Len(t, customers, 2)
}

func TestListCustomers_UnknownTierRejected(t *testing.T) {
	svc := newCustomerService(fixtureStore(), &stubEstimator{})

	_, err := svc.ListCustomers(context.Background(), "SEVERE", 20)
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeInvalidFilter, appErr.Code())
}

func TestListCustomers_LimitClampedAndOrderPreserved(t *testing.T) {
	svc := newCustomerService(fixtureStore(), &stubEstimator{})

	customers, err := svc.ListCustomers(context.Background(), "", 2)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "C-001", customers[0].CustomerID)
	assert.Equal(t, "C-002", customers[1].CustomerID)

	all, err := svc.ListCustomers(context.Background(), "", 100000)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestFeatureImportances_TopTen(t *testing.T) {
	svc := newCustomerService(fixtureStore(), &stubEstimator{})

	resp, err := svc.FeatureImportances(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.TopFeatures, 10)

	assert.Equal(t, "utilization_pct", resp.TopFeatures[0].Feature)
	for i := 1; i < len(resp.TopFeatures); i++ {
		assert.LessOrEqual(t, resp.TopFeatures[i].Importance, resp.TopFeatures[i-1].Importance,
			fmt.Sprintf("importances must be non-increasing at index %d", i))
	}
}

func TestHealth(t *testing.T) {
	svc := newCustomerService(fixtureStore(), &stubEstimator{})
	health := svc.Health(context.Background())
	assert.Equal(t, "healthy", health.Status)
	assert.True(t, health.DataLoaded)
	assert.True(t, health.ModelTrained)

	degraded := newCustomerService(dataset.NewStore(), model.NewUnavailable("not trained"))
	health = degraded.Health(context.Background())
	assert.Equal(t, "healthy", health.Status)
	assert.False(t, health.DataLoaded)
	assert.False(t, health.ModelTrained)
}
