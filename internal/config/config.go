package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration values
type Config struct {
	Addr         string        `yaml:"addr"`
	AdminAPIKey  string        `yaml:"admin_api_key"`
	StateDBPath  string        `yaml:"state_db_path"`
	BackupDir    string        `yaml:"backup_dir"`
	LogLevel     string        `yaml:"log_level"`
	LogFormat    string        `yaml:"log_format"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`

	Backend BackendConfig `yaml:"backend"`
	Pricing PricingConfig `yaml:"pricing"`

	DemoMode bool // load sample data into an empty backend (set via -demo flag)
}

// BackendConfig locates the hosted data store.
type BackendConfig struct {
	URL string `yaml:"url"`
	// APIKey is the embedded credential; see ResolveCredential for the full order.
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// PricingConfig is the rule table of the services price list. Empty fields
// fall back to the built-in rules.
type PricingConfig struct {
	VehicleTypes []string      `yaml:"vehicle_types"`
	Brands       []BrandConfig `yaml:"brands"`
}

type BrandConfig struct {
	Brand               string   `yaml:"brand"`
	ZeroDriverAllowance bool     `yaml:"zero_driver_allowance"`
	ExemptLocations     []string `yaml:"exempt_locations"`
}

// Load loads configuration from YAML file and overrides with env vars if present
func Load(path string) (*Config, error) {
	// Defaults
	cfg := &Config{
		Addr:         ":8080",
		StateDBPath:  "./sbtconsole.db",
		BackupDir:    "./backups",
		LogLevel:     "info",
		LogFormat:    "console",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Load from YAML if file exists
	if f, err := os.Open(path); err == nil {
		defer f.Close()
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(cfg); err != nil {
			return nil, err
		}
	}

	// Override with environment variables
	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	if v := os.Getenv("ADMIN_API_KEY"); v != "" {
		cfg.AdminAPIKey = v
	}
	if v := os.Getenv("BACKEND_URL"); v != "" {
		cfg.Backend.URL = v
	}
	if v := os.Getenv("STATE_DB_PATH"); v != "" {
		cfg.StateDBPath = v
	}
	if v := os.Getenv("BACKUP_DIR"); v != "" {
		cfg.BackupDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	return cfg, nil
}
