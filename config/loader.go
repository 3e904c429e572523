package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultRefreshIntervalSec is the per-source refresh cadence applied
	// when the config omits one.
	DefaultRefreshIntervalSec = 30
	// DefaultTimeoutSec bounds one refresh cycle; it must stay below the
	// refresh interval so cycles never overlap.
	DefaultTimeoutSec = 15

	defaultPort = 8080
)

// Load reads and validates the application configuration from the given path.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Validate checks structural constraints and cross-references between
// sources and departures.
func Validate(cfg *AppConfig) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}
	seen := map[string]struct{}{}
	for _, s := range cfg.Sources {
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("duplicate source name %q", s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	for _, d := range cfg.Departures {
		if _, ok := seen[d.Source]; !ok {
			return fmt.Errorf("departure %q references unknown source %q", d.Name, d.Source)
		}
	}
	return nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	for i := range cfg.Sources {
		if cfg.Sources[i].RefreshIntervalSec == 0 {
			cfg.Sources[i].RefreshIntervalSec = DefaultRefreshIntervalSec
		}
		if cfg.Sources[i].TimeoutSec == 0 {
			cfg.Sources[i].TimeoutSec = DefaultTimeoutSec
		}
	}
}
