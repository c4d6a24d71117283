// Package config loads and validates the packsim configuration file.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	coremetrics "github.com/packlab/packsim/core/metrics"
	"github.com/packlab/packsim/core/model"
	"github.com/packlab/packsim/infra/mqtt"
)

// Config is the root configuration document.
type Config struct {
	Pack      PackConfig         `json:"pack"`
	Simulate  SimulateConfig     `json:"simulate"`
	Metrics   coremetrics.Config `json:"metrics"`
	Telemetry TelemetryConfig    `json:"telemetry"`
}

// PackConfig describes the topology to build.
type PackConfig struct {
	Series    int    `json:"series"`
	Parallel  int    `json:"parallel"`
	Chemistry string `json:"chemistry"`
}

// Validate checks the topology parameters and resolves the chemistry tag.
// Errors are the same typed errors the builder raises, so a bad file fails
// identically to a bad programmatic call.
func (c PackConfig) Validate() (model.Chemistry, error) {
	if c.Series < 1 {
		return 0, &model.InvalidConfigurationError{Field: "pack.series", Reason: "must be >= 1"}
	}
	if c.Parallel < 1 {
		return 0, &model.InvalidConfigurationError{Field: "pack.parallel", Reason: "must be >= 1"}
	}
	return model.ParseChemistry(c.Chemistry)
}

// SimulateConfig describes the simulation run.
type SimulateConfig struct {
	// DurationHours is the user-facing time span; the solver receives it in
	// seconds.
	DurationHours float64 `json:"duration_hours"`
	// StepSeconds is the fixed solver step.
	StepSeconds float64 `json:"step_seconds"`
	// CurrentA is the constant discharge current applied to every cell.
	CurrentA float64 `json:"current_a"`
}

// SetDefaults applies sane defaults.
func (c *SimulateConfig) SetDefaults() {
	if c.DurationHours == 0 {
		c.DurationHours = 1
	}
	if c.StepSeconds == 0 {
		c.StepSeconds = 10
	}
	if c.CurrentA == 0 {
		c.CurrentA = 5
	}
}

// Validate checks mandatory fields.
func (c SimulateConfig) Validate() error {
	if c.DurationHours <= 0 {
		return &model.InvalidConfigurationError{Field: "simulate.duration_hours", Reason: "must be positive"}
	}
	if c.StepSeconds <= 0 {
		return &model.InvalidConfigurationError{Field: "simulate.step_seconds", Reason: "must be positive"}
	}
	return nil
}

// TelemetryConfig enables the MQTT telemetry publisher.
type TelemetryConfig struct {
	MQTTEnabled bool        `json:"mqtt_enabled"`
	MQTT        mqtt.Config `json:"mqtt"`
}

// Validate checks mandatory fields.
func (c TelemetryConfig) Validate() error {
	if c.MQTTEnabled && c.MQTT.Broker == "" {
		return &model.InvalidConfigurationError{Field: "telemetry.mqtt.broker", Reason: "is required when mqtt telemetry is enabled"}
	}
	return nil
}

// Load reads the configuration from path (yaml or json by extension) with
// PACKSIM_-prefixed environment overrides, applies defaults and validates.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("PACKSIM_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "packsim_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Simulate.SetDefaults()
	cfg.Telemetry.MQTT.SetDefaults()
	if _, err := cfg.Pack.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Simulate.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Telemetry.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
