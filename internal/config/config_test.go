package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "data/cc_delinquency.csv", cfg.Data.CSVPath)
	assert.Equal(t, "models/delinquency_gbt.json", cfg.Model.ArtifactPath)

	assert.Equal(t, -10.0, cfg.Thresholds.SpendDecline)
	assert.Equal(t, 80.0, cfg.Thresholds.Utilization)
	assert.Equal(t, 40.0, cfg.Thresholds.PaymentRatio)
	assert.Equal(t, 15.0, cfg.Thresholds.CashWithdrawal)
	assert.Equal(t, 0.4, cfg.Thresholds.MerchantMix)

	assert.Equal(t, 3, cfg.Tiers.High)
	assert.Equal(t, 2, cfg.Tiers.Medium)

	assert.Equal(t, 20.0, cfg.Intervention.HighCost)
	assert.Equal(t, 0.07, cfg.Intervention.LowPreventionRate)
	assert.Equal(t, 5000.0, cfg.Intervention.AvgLossPerDefault)

	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := []byte("tiers:\n  high: 4\nthresholds:\n  utilization: 90\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Tiers.High)
	assert.Equal(t, 90.0, cfg.Thresholds.Utilization)
	assert.Equal(t, 2, cfg.Tiers.Medium)
}

func TestLoadConfig_InvalidTiersRejected(t *testing.T) {
	dir := t.TempDir()
	content := []byte("tiers:\n  high: 1\n  medium: 3\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))

	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "medium <= high")
}

func TestValidate_MediumEqualHighIsLegal(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	// An empty MEDIUM band is a valid policy choice.
	cfg.Tiers.Medium = cfg.Tiers.High
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Bounds(t *testing.T) {
	base, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 0 }},
		{"csv path required", func(c *Config) { c.Data.CSVPath = "" }},
		{"high cut above max score", func(c *Config) { c.Tiers.High = 6 }},
		{"negative medium cut", func(c *Config) { c.Tiers.Medium = -1; c.Tiers.High = 3 }},
		{"merchant mix above one", func(c *Config) { c.Thresholds.MerchantMix = 1.5 }},
		{"prevention rate above one", func(c *Config) { c.Intervention.HighPreventionRate = 1.2 }},
		{"negative cost", func(c *Config) { c.Intervention.MediumCost = -1 }},
		{"negative loss", func(c *Config) { c.Intervention.AvgLossPerDefault = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("RISK_TIERS_HIGH", "4")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Tiers.High)
}
