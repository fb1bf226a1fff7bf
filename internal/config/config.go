// Package config loads application configuration from environment
// variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Vision    VisionConfig
	Admission AdmissionConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// VisionConfig holds vision backend settings.
type VisionConfig struct {
	// Provider selects the backend: gemini, ollama or llamacpp.
	Provider string `mapstructure:"provider"`
	// APIKey is required for the gemini provider.
	APIKey string `mapstructure:"api_key"`
	// Model is the backend model name.
	Model string `mapstructure:"model"`
	// URL is the server URL for the ollama and llamacpp providers.
	URL string `mapstructure:"url"`
	// TimeoutSecs bounds a single model call.
	TimeoutSecs int `mapstructure:"timeout_secs"`
}

// Timeout returns the model call timeout as a duration.
func (v *VisionConfig) Timeout() time.Duration {
	return time.Duration(v.TimeoutSecs) * time.Second
}

// AdmissionConfig holds upload admission limits.
type AdmissionConfig struct {
	MaxFileSizeMB    int64 `mapstructure:"max_file_size_mb"`
	MinDimension     int   `mapstructure:"min_dimension"`
	TransportMaxSide int   `mapstructure:"transport_max_side"`
	TransportQuality int   `mapstructure:"transport_quality"`
}

// MaxBytes returns the upload size ceiling in bytes.
func (a *AdmissionConfig) MaxBytes() int64 {
	return a.MaxFileSizeMB * 1024 * 1024
}

// Load reads configuration from environment variables with the
// NATURELENS_ prefix, e.g. NATURELENS_VISION_API_KEY.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("NATURELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "330s")

	// Vision defaults
	v.SetDefault("vision.provider", "gemini")
	v.SetDefault("vision.api_key", "")
	v.SetDefault("vision.model", "")
	v.SetDefault("vision.url", "")
	v.SetDefault("vision.timeout_secs", 120)

	// Admission defaults
	v.SetDefault("admission.max_file_size_mb", 5)
	v.SetDefault("admission.min_dimension", 400)
	v.SetDefault("admission.transport_max_side", 1536)
	v.SetDefault("admission.transport_quality", 85)

	var cfg Config
	keys := []string{
		"server.port", "server.read_timeout", "server.write_timeout",
		"vision.provider", "vision.api_key", "vision.model", "vision.url", "vision.timeout_secs",
		"admission.max_file_size_mb", "admission.min_dimension",
		"admission.transport_max_side", "admission.transport_quality",
	}
	for _, key := range keys {
		// Bind explicitly so AutomaticEnv sees keys that have no set value.
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for fatal problems. A missing API key
// for the gemini provider is surfaced here, before any submission is
// possible.
func (c *Config) Validate() error {
	switch c.Vision.Provider {
	case "gemini":
		if c.Vision.APIKey == "" {
			return fmt.Errorf("vision.api_key is required for the gemini provider (set NATURELENS_VISION_API_KEY)")
		}
	case "ollama", "llamacpp":
		// Local backends need no credential.
	default:
		return fmt.Errorf("unknown vision provider: %q (use gemini, ollama or llamacpp)", c.Vision.Provider)
	}

	if c.Admission.MaxFileSizeMB <= 0 {
		return fmt.Errorf("admission.max_file_size_mb must be positive")
	}
	if c.Admission.MinDimension <= 0 {
		return fmt.Errorf("admission.min_dimension must be positive")
	}
	if c.Admission.TransportQuality < 1 || c.Admission.TransportQuality > 100 {
		return fmt.Errorf("admission.transport_quality must be between 1 and 100")
	}
	return nil
}
