// Package model loads the externally trained gradient-boosted-tree artifact
// and runs inference over it. Training happens offline; this package only
// evaluates the exported trees.
package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"sync"

	domainservice "github.com/Tudu-hope/credit-card-delinquency-check/internal/domain/service"
	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/errors"
)

// Node is one node of a regression tree in the artifact. Feature < 0 marks a
// leaf, in which case Value is the leaf score; otherwise the split sends
// feature values strictly below Threshold to Left and everything else
// (including NaN) to Right.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// Tree is a flat-array regression tree rooted at node 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Artifact is the JSON model artifact exported by the offline training job.
type Artifact struct {
	ModelType          string             `json:"model_type"`
	Features           []string           `json:"features"`
	BaseScore          float64            `json:"base_score"` // initial log-odds
	LearningRate       float64            `json:"learning_rate"`
	Trees              []Tree             `json:"trees"`
	FeatureImportances map[string]float64 `json:"feature_importances"`
}

// BoostedTreesEstimator implements service.DelinquencyEstimator over a loaded
// artifact. It holds only immutable state after construction and is safe for
// concurrent use.
type BoostedTreesEstimator struct {
	artifact *Artifact

	importancesOnce sync.Once
	importances     []domainservice.FeatureImportance
}

// LoadArtifact reads and validates a model artifact from disk. Any failure
// yields a model-unavailable error so callers surface the condition instead
// of scoring with a silent default.
func LoadArtifact(path string) (*BoostedTreesEstimator, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ErrModelUnavailable(fmt.Sprintf("artifact not readable at %s", path)).WithCause(err)
	}

	var artifact Artifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, errors.ErrModelUnavailable("artifact is not valid JSON").WithCause(err)
	}
	if err := validate(&artifact); err != nil {
		return nil, errors.ErrModelUnavailable(err.Error())
	}

	return &BoostedTreesEstimator{artifact: &artifact}, nil
}

// New constructs an estimator from an in-memory artifact. Used by tests.
func New(artifact *Artifact) (*BoostedTreesEstimator, error) {
	if err := validate(artifact); err != nil {
		return nil, errors.ErrModelUnavailable(err.Error())
	}
	return &BoostedTreesEstimator{artifact: artifact}, nil
}

// Estimate returns P(delinquent) for a feature vector in the artifact's
// feature order: sigmoid(base + learning_rate * sum of leaf values).
func (e *BoostedTreesEstimator) Estimate(features []float64) (float64, error) {
	if len(features) != len(e.artifact.Features) {
		return 0, errors.ErrValidationf("feature vector has %d values, model expects %d",
			len(features), len(e.artifact.Features))
	}

	sum := e.artifact.BaseScore
	for i := range e.artifact.Trees {
		sum += e.artifact.LearningRate * e.artifact.Trees[i].evaluate(features)
	}
	return sigmoid(sum), nil
}

// FeatureImportances returns the artifact importances, most important first.
func (e *BoostedTreesEstimator) FeatureImportances() ([]domainservice.FeatureImportance, error) {
	e.importancesOnce.Do(func() {
		out := make([]domainservice.FeatureImportance, 0, len(e.artifact.FeatureImportances))
		for feature, importance := range e.artifact.FeatureImportances {
			out = append(out, domainservice.FeatureImportance{Feature: feature, Importance: importance})
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Importance != out[j].Importance {
				return out[i].Importance > out[j].Importance
			}
			return out[i].Feature < out[j].Feature
		})
		e.importances = out
	})
	return e.importances, nil
}

// Features returns the artifact's feature order.
func (e *BoostedTreesEstimator) Features() []string {
	return e.artifact.Features
}

func (t *Tree) evaluate(features []float64) float64 {
	idx := 0
	for {
		node := &t.Nodes[idx]
		if node.Feature < 0 {
			return node.Value
		}
		// NaN comparisons are false, so missing values follow the right branch.
		if features[node.Feature] < node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}

func validate(artifact *Artifact) error {
	if len(artifact.Features) == 0 {
		return fmt.Errorf("artifact declares no features")
	}
	if len(artifact.Trees) == 0 {
		return fmt.Errorf("artifact contains no trees")
	}
	for ti, tree := range artifact.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", ti)
		}
		for ni, node := range tree.Nodes {
			if node.Feature >= len(artifact.Features) {
				return fmt.Errorf("tree %d node %d references unknown feature %d", ti, ni, node.Feature)
			}
			if node.Feature >= 0 {
				if node.Left < 0 || node.Left >= len(tree.Nodes) ||
					node.Right < 0 || node.Right >= len(tree.Nodes) {
					return fmt.Errorf("tree %d node %d has out-of-range children", ti, ni)
				}
				if node.Left <= ni || node.Right <= ni {
					return fmt.Errorf("tree %d node %d children must point forward", ti, ni)
				}
			}
		}
	}
	return nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
