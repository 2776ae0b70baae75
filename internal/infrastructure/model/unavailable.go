package model

import (
	domainservice "github.com/Tudu-hope/credit-card-delinquency-check/internal/domain/service"
	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/errors"
)

// UnavailableEstimator stands in when no artifact could be loaded. Every call
// fails with a model-unavailable error; the service keeps serving the
// rule-based endpoints and callers decide whether to degrade.
type UnavailableEstimator struct {
	reason string
}

// NewUnavailable creates an estimator that always reports the given reason.
func NewUnavailable(reason string) *UnavailableEstimator {
	return &UnavailableEstimator{reason: reason}
}

func (u *UnavailableEstimator) Estimate(features []float64) (float64, error) {
	return 0, errors.ErrModelUnavailable(u.reason)
}

func (u *UnavailableEstimator) FeatureImportances() ([]domainservice.FeatureImportance, error) {
	return nil, errors.ErrModelUnavailable(u.reason)
}
