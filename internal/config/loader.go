package config

import (
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads the configuration from file and environment variables.
// Defaults mirror the shipped scoring policy so the service runs with only a
// data file configured.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"/etc/risk-service/", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	v.SetEnvPrefix("RISK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigFileUsed returns the config file viper resolved, if any. Exposed for
// the fsnotify watcher, which needs a concrete path to watch.
func ConfigFileUsed(paths ...string) string {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"/etc/risk-service/", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		return ""
	}
	return v.ConfigFileUsed()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)

	v.SetDefault("data.csv_path", "data/cc_delinquency.csv")
	v.SetDefault("model.artifact_path", "models/delinquency_gbt.json")

	v.SetDefault("thresholds.spend_decline", -10.0)
	v.SetDefault("thresholds.utilization", 80.0)
	v.SetDefault("thresholds.payment_ratio", 40.0)
	v.SetDefault("thresholds.cash_withdrawal", 15.0)
	v.SetDefault("thresholds.merchant_mix", 0.4)

	v.SetDefault("tiers.high", 3)
	v.SetDefault("tiers.medium", 2)

	v.SetDefault("intervention.high_cost", 20.0)
	v.SetDefault("intervention.medium_cost", 7.50)
	v.SetDefault("intervention.low_cost", 0.50)
	v.SetDefault("intervention.high_prevention_rate", 0.40)
	v.SetDefault("intervention.medium_prevention_rate", 0.25)
	v.SetDefault("intervention.low_prevention_rate", 0.07)
	v.SetDefault("intervention.avg_loss_per_default", 5000.0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "delinquency-risk-service")
	v.SetDefault("tracing.sampling_rate", 0.1)

	v.SetDefault("monitoring.pprof_enabled", false)
}
