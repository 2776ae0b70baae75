// Package dataset owns the in-memory customer table: loading it from the CSV
// data file, deriving per-row signals and tiers, and publishing the result as
// an immutable snapshot behind an atomic pointer.
package dataset

import (
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/config"
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/domain/models"
	domainservice "github.com/Tudu-hope/credit-card-delinquency-check/internal/domain/service"
)

// Snapshot is one immutable, fully scored view of the customer table together
// with the scoring parameters it was derived under. Readers always see one
// consistent snapshot; updates replace the whole value.
type Snapshot struct {
	Version    uint64
	Records    []models.ScoredRecord
	Thresholds config.ThresholdConfig
	Tiers      config.TierConfig
}

// BuildSnapshot scores every record with the given parameters. Row order is
// preserved from the input table.
func BuildSnapshot(records []models.CustomerRecord, thresholds config.ThresholdConfig, tiers config.TierConfig, version uint64) *Snapshot {
	engine := domainservice.NewSignalEngine(thresholds)
	classifier := domainservice.NewTierClassifier(tiers)

	scored := make([]models.ScoredRecord, len(records))
	for i, rec := range records {
		signals, score := engine.Score(rec)
		scored[i] = models.ScoredRecord{
			CustomerRecord: rec,
			Signals:        signals,
			RiskScore:      score,
			RiskTier:       classifier.Classify(score),
		}
	}

	return &Snapshot{
		Version:    version,
		Records:    scored,
		Thresholds: thresholds,
		Tiers:      tiers,
	}
}
