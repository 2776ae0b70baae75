package model

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/errors"
)

// stumpArtifact builds a two-feature artifact with a single decision stump:
// feature 0 below 50 scores -2, at or above scores +2.
func stumpArtifact() *Artifact {
	return &Artifact{
		ModelType:    "gradient_boosted_trees",
		Features:     []string{"utilization_pct", "avg_payment_ratio"},
		BaseScore:    0,
		LearningRate: 1,
		Trees: []Tree{{Nodes: []Node{
			{Feature: 0, Threshold: 50, Left: 1, Right: 2},
			{Feature: -1, Value: -2},
			{Feature: -1, Value: 2},
		}}},
		FeatureImportances: map[string]float64{
			"utilization_pct":   0.8,
			"avg_payment_ratio": 0.2,
		},
	}
}

func TestBoostedTrees_EstimateSplitsOnThreshold(t *testing.T) {
	est, err := New(stumpArtifact())
	require.NoError(t, err)

	low, err := est.Estimate([]float64{30, 0})
	require.NoError(t, err)
	high, err := est.Estimate([]float64{70, 0})
	require.NoError(t, err)

	// sigmoid(-2) and sigmoid(2)
	assert.InDelta(t, 0.1192, low, 1e-4)
	assert.InDelta(t, 0.8808, high, 1e-4)
	assert.Greater(t, high, low)
}

func TestBoostedTrees_ProbabilityStaysInUnitInterval(t *testing.T) {
	artifact := stumpArtifact()
	artifact.BaseScore = 10
	est, err := New(artifact)
	require.NoError(t, err)

	p, err := est.Estimate([]float64{99, 0})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, p, 0.0)
	assert.LessOrEqual(t, p, 1.0)
}

func TestBoostedTrees_NaNFollowsRightBranch(t *testing.T) {
	est, err := New(stumpArtifact())
	require.NoError(t, err)

	withNaN, err := est.Estimate([]float64{math.NaN(), 0})
	require.NoError(t, err)
	atRight, err := est.Estimate([]float64{70, 0})
	require.NoError(t, err)

	assert.Equal(t, atRight, withNaN)
}

func TestBoostedTrees_RejectsWrongVectorLength(t *testing.T) {
	est, err := New(stumpArtifact())
	require.NoError(t, err)

	_, err = est.Estimate([]float64{1, 2, 3})
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeValidation, appErr.Code())
}

func TestBoostedTrees_FeatureImportancesSortedDescending(t *testing.T) {
	est, err := New(stumpArtifact())
	require.NoError(t, err)

	importances, err := est.FeatureImportances()
	require.NoError(t, err)
	require.Len(t, importances, 2)
	assert.Equal(t, "utilization_pct", importances[0].Feature)
	assert.Equal(t, "avg_payment_ratio", importances[1].Feature)
}

func TestLoadArtifact_MissingFileIsModelUnavailable(t *testing.T) {
	_, err := LoadArtifact(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.IsModelUnavailable(err))
}

func TestLoadArtifact_InvalidJSONIsModelUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := LoadArtifact(path)
	require.Error(t, err)
	assert.True(t, errors.IsModelUnavailable(err))
}

func TestLoadArtifact_RoundTrip(t *testing.T) {
	raw, err := json.Marshal(stumpArtifact())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	est, err := LoadArtifact(path)
	require.NoError(t, err)

	p, err := est.Estimate([]float64{70, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.8808, p, 1e-4)
}

func TestNew_RejectsMalformedTrees(t *testing.T) {
	artifact := stumpArtifact()
	artifact.Trees[0].Nodes[0].Left = 5 // out of range

	_, err := New(artifact)
	require.Error(t, err)
	assert.True(t, errors.IsModelUnavailable(err))
}

func TestUnavailableEstimator_AlwaysFails(t *testing.T) {
	est := NewUnavailable("no artifact configured")

	_, err := est.Estimate([]float64{1})
	assert.True(t, errors.IsModelUnavailable(err))

	_, err = est.FeatureImportances()
	assert.True(t, errors.IsModelUnavailable(err))
}
