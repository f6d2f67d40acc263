// Package config loads travelboard settings from YAML and environment
// variables.
package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/goliatone/go-travelboard/pkg/telemetry"
)

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig        `yaml:"server"`
	Storage StorageConfig       `yaml:"storage"`
	Views   ViewsConfig         `yaml:"views"`
	Latency LatencyConfig       `yaml:"latency"`
	Locale  LocaleConfig        `yaml:"locale"`
	Remote  RemoteConfig        `yaml:"remote"`
	Log     telemetry.LogConfig `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr     string        `yaml:"addr"      env:"SERVER_ADDR"      env-default:":8080"`
	BasePath string        `yaml:"base_path" env:"SERVER_BASE_PATH" env-default:"/travel"`
	ChartTTL time.Duration `yaml:"chart_ttl" env:"SERVER_CHART_TTL" env-default:"5m"`
	// ChartAssets overrides the host ECharts scripts load from.
	ChartAssets string `yaml:"chart_assets" env:"SERVER_CHART_ASSETS"`
}

// StorageConfig selects the preference store.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
	Path   string `yaml:"path"   env:"STORAGE_PATH"   env-default:"travelboard.db"`
}

// ViewsConfig tunes the list views.
type ViewsConfig struct {
	BookingsPageSize int           `yaml:"bookings_page_size" env:"VIEWS_BOOKINGS_PAGE_SIZE" env-default:"5"`
	PaymentsPageSize int           `yaml:"payments_page_size" env:"VIEWS_PAYMENTS_PAGE_SIZE" env-default:"10"`
	CitiesIncrement  int           `yaml:"cities_increment"   env:"VIEWS_CITIES_INCREMENT"   env-default:"8"`
	ReleaseDelay     time.Duration `yaml:"release_delay"      env:"VIEWS_RELEASE_DELAY"      env-default:"300ms"`
}

// LatencyConfig sets the simulated backend delays.
type LatencyConfig struct {
	Auth    time.Duration `yaml:"auth"    env:"LATENCY_AUTH"    env-default:"1s"`
	Booking time.Duration `yaml:"booking" env:"LATENCY_BOOKING" env-default:"1500ms"`
}

// LocaleConfig sets the fallback language.
type LocaleConfig struct {
	Default string `yaml:"default" env:"LOCALE_DEFAULT" env-default:"en"`
}

// RemoteConfig points the auth and booking operations at a live backend.
// An empty BaseURL keeps the simulated backend.
type RemoteConfig struct {
	BaseURL string `yaml:"base_url" env:"REMOTE_BASE_URL"`
	APIKey  string `yaml:"api_key"  env:"REMOTE_API_KEY"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults. The file path comes from CONFIG_PATH
// (fallback "./travelboard.yaml"); a missing default file is not an error.
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = "./travelboard.yaml"
	}
	return LoadFile(path, explicitPath)
}

// LoadFile reads path when it exists. required makes a missing file an error.
func LoadFile(path string, required bool) (*Config, error) {
	var cfg Config
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if required {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks business rules after loading.
func (c *Config) Validate() error {
	if !slices.Contains([]string{"memory", "sqlite"}, c.Storage.Driver) {
		return fmt.Errorf("storage.driver must be memory or sqlite (got %q)", c.Storage.Driver)
	}
	if c.Storage.Driver == "sqlite" && c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required for sqlite")
	}
	if c.Views.BookingsPageSize < 1 || c.Views.PaymentsPageSize < 1 || c.Views.CitiesIncrement < 1 {
		return fmt.Errorf("views: page sizes and increment must be positive")
	}
	if c.Views.ReleaseDelay < 0 || c.Latency.Auth < 0 || c.Latency.Booking < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	return nil
}

// Usage returns the environment variable help text.
func Usage() (string, error) {
	var cfg Config
	return cleanenv.GetDescription(&cfg, nil)
}
