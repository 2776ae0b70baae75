package dataset

import (
	"context"
	"sync"

	"github.com/Tudu-hope/credit-card-delinquency-check/internal/config"
	"github.com/Tudu-hope/credit-card-delinquency-check/internal/domain/models"
	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/logger"
)

// Manager owns the raw table and republishes scored snapshots when the data
// file is loaded or the scoring parameters change. The mutex only serializes
// writers; readers go through the store's atomic pointer.
type Manager struct {
	store *Store
	log   logger.Logger

	mu      sync.Mutex
	raw     []models.CustomerRecord
	version uint64
}

// NewManager creates a manager publishing into the given store.
func NewManager(store *Store, log logger.Logger) *Manager {
	return &Manager{store: store, log: log}
}

// Load reads the data file and publishes the first snapshot.
func (m *Manager) Load(ctx context.Context, path string, thresholds config.ThresholdConfig, tiers config.TierConfig) error {
	records, err := ReadCSV(path)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = records
	m.publishLocked(thresholds, tiers)

	m.log.Info(ctx, "customer table loaded", logger.Fields{
		"path":      path,
		"customers": len(records),
	})
	return nil
}

// Rescore rebuilds the snapshot under new scoring parameters. The whole table
// is reclassified in one publish; no partial-tier state is ever visible.
func (m *Manager) Rescore(ctx context.Context, thresholds config.ThresholdConfig, tiers config.TierConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.raw == nil {
		return
	}
	m.publishLocked(thresholds, tiers)

	m.log.Info(ctx, "customer table rescored", logger.Fields{
		"snapshot_version": m.version,
		"high_cut":         tiers.High,
		"medium_cut":       tiers.Medium,
	})
}

func (m *Manager) publishLocked(thresholds config.ThresholdConfig, tiers config.TierConfig) {
	m.version++
	m.store.Publish(BuildSnapshot(m.raw, thresholds, tiers, m.version))
}
