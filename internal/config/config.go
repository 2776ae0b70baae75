package config

import (
	"fmt"

	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/constants"
)

// Config holds the application's configuration.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Data         DataConfig         `mapstructure:"data"`
	Model        ModelConfig        `mapstructure:"model"`
	Thresholds   ThresholdConfig    `mapstructure:"thresholds"`
	Tiers        TierConfig         `mapstructure:"tiers"`
	Intervention InterventionConfig `mapstructure:"intervention"`
	Log          LogConfig          `mapstructure:"log"`
	Tracing      TracingConfig      `mapstructure:"tracing"`
	Monitoring   MonitoringConfig   `mapstructure:"monitoring"`
}

type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
}

type DataConfig struct {
	CSVPath string `mapstructure:"csv_path"`
}

type ModelConfig struct {
	ArtifactPath string `mapstructure:"artifact_path"`
}

// ThresholdConfig holds the five behavioral signal thresholds.
type ThresholdConfig struct {
	SpendDecline   float64 `mapstructure:"spend_decline"`
	Utilization    float64 `mapstructure:"utilization"`
	PaymentRatio   float64 `mapstructure:"payment_ratio"`
	CashWithdrawal float64 `mapstructure:"cash_withdrawal"`
	MerchantMix    float64 `mapstructure:"merchant_mix"`
}

// TierConfig holds the risk score cut points. A score at or above High is
// HIGH, at or above Medium is MEDIUM, otherwise LOW.
type TierConfig struct {
	High   int `mapstructure:"high"`
	Medium int `mapstructure:"medium"`
}

// InterventionConfig holds per-tier intervention economics.
type InterventionConfig struct {
	HighCost   float64 `mapstructure:"high_cost"`
	MediumCost float64 `mapstructure:"medium_cost"`
	LowCost    float64 `mapstructure:"low_cost"`

	HighPreventionRate   float64 `mapstructure:"high_prevention_rate"`
	MediumPreventionRate float64 `mapstructure:"medium_prevention_rate"`
	LowPreventionRate    float64 `mapstructure:"low_prevention_rate"`

	AvgLossPerDefault float64 `mapstructure:"avg_loss_per_default"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	ServiceName    string  `mapstructure:"service_name"`
	SamplingRate   float64 `mapstructure:"sampling_rate"`
}

type MonitoringConfig struct {
	PprofEnabled bool `mapstructure:"pprof_enabled"`
}

// Validate checks configuration invariants once at load time so that scoring
// code never re-validates scattered magic numbers.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in (0, 65535], got %d", c.Server.Port)
	}
	if c.Data.CSVPath == "" {
		return fmt.Errorf("data.csv_path must be set")
	}
	// medium == high is legal and yields an empty MEDIUM band.
	if c.Tiers.Medium < 0 || c.Tiers.High < c.Tiers.Medium {
		return fmt.Errorf("tiers: require 0 <= medium <= high, got medium=%d high=%d",
			c.Tiers.Medium, c.Tiers.High)
	}
	if c.Tiers.High > constants.SignalCount {
		return fmt.Errorf("tiers.high must not exceed %d, got %d",
			constants.SignalCount, c.Tiers.High)
	}
	if c.Thresholds.MerchantMix < 0 || c.Thresholds.MerchantMix > 1 {
		return fmt.Errorf("thresholds.merchant_mix must be in [0, 1], got %g",
			c.Thresholds.MerchantMix)
	}
	for name, rate := range map[string]float64{
		"high_prevention_rate":   c.Intervention.HighPreventionRate,
		"medium_prevention_rate": c.Intervention.MediumPreventionRate,
		"low_prevention_rate":    c.Intervention.LowPreventionRate,
	} {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("intervention.%s must be in [0, 1], got %g", name, rate)
		}
	}
	for name, cost := range map[string]float64{
		"high_cost":   c.Intervention.HighCost,
		"medium_cost": c.Intervention.MediumCost,
		"low_cost":    c.Intervention.LowCost,
	} {
		if cost < 0 {
			return fmt.Errorf("intervention.%s must be non-negative, got %g", name, cost)
		}
	}
	if c.Intervention.AvgLossPerDefault < 0 {
		return fmt.Errorf("intervention.avg_loss_per_default must be non-negative, got %g",
			c.Intervention.AvgLossPerDefault)
	}
	return nil
}
