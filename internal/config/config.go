package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Analytics AnalyticsConfig
	UI        UIConfig
	Log       LogConfig
	Metrics   MetricsConfig
	// Keys remaps screen actions, e.g. "run-analytics" = ["ctrl+g"].
	Keys      map[string][]string `mapstructure:"keys"`
}

// AnalyticsConfig points at the remote analytics service.
type AnalyticsConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Path    string        `mapstructure:"path"`
	Timeout time.Duration `mapstructure:"timeout"` // 0 disables the client timeout
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	BrowseDir      string `mapstructure:"browse_dir"`
	ExportDir      string `mapstructure:"export_dir"`
}

// LogConfig controls the diagnostic log file.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
	Path  string `mapstructure:"path"`
}

// MetricsConfig controls the optional prometheus listener.
type MetricsConfig struct {
	Address string `mapstructure:"address"`
}

// Load reads configuration from file and env. Env var overrides use prefix CUSTOMERDESK_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("CUSTOMERDESK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "customerdesk"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CUSTOMERDESK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil && !missingFile(err, cfgPath) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return decode(v)
}

// missingFile reports whether err only means there is no config file to read.
func missingFile(err error, cfgPath string) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	if cfgPath == "" {
		return false
	}
	_, statErr := os.Stat(cfgPath)
	return errors.Is(statErr, fs.ErrNotExist)
}

func decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Analytics.BaseURL = strings.TrimRight(strings.TrimSpace(c.Analytics.BaseURL), "/")
	if !strings.HasPrefix(c.Analytics.Path, "/") {
		c.Analytics.Path = "/" + c.Analytics.Path
	}
	if c.Analytics.Timeout < 0 {
		return Config{}, fmt.Errorf("analytics.timeout must not be negative, got %s", c.Analytics.Timeout)
	}
	return c, nil
}

// Path returns the config file location: CUSTOMERDESK_CONFIG, or
// ~/.config/customerdesk/config.toml when unset.
func Path() string {
	if p := os.Getenv("CUSTOMERDESK_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "customerdesk", "config.toml")
}

// WriteDefault saves the built-in defaults when no config file exists yet and
// reports whether it wrote one. An existing file is never touched.
func WriteDefault() (bool, error) {
	if _, err := os.Stat(Path()); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat config: %w", err)
	}
	v := viper.New()
	setDefaults(v)
	cfg, err := decode(v)
	if err != nil {
		return false, err
	}
	if err := Save(cfg); err != nil {
		return false, err
	}
	return true, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("analytics.base_url", "http://localhost:8000")
	v.SetDefault("analytics.path", "/customer-analytics")
	v.SetDefault("analytics.timeout", "0s")
	v.SetDefault("ui.currency_symbol", "Rs")
	v.SetDefault("ui.browse_dir", ".")
	v.SetDefault("ui.export_dir", ".")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "customerdesk", "customerdesk.log"))
	v.SetDefault("metrics.address", "")
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("analytics.base_url", cfg.Analytics.BaseURL)
	v.Set("analytics.path", cfg.Analytics.Path)
	v.Set("analytics.timeout", cfg.Analytics.Timeout.String())
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.browse_dir", cfg.UI.BrowseDir)
	v.Set("ui.export_dir", cfg.UI.ExportDir)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.json", cfg.Log.JSON)
	v.Set("log.path", cfg.Log.Path)
	v.Set("metrics.address", cfg.Metrics.Address)
	if len(cfg.Keys) > 0 {
		v.Set("keys", cfg.Keys)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Endpoint returns the full analytics URL.
func (c AnalyticsConfig) Endpoint() string {
	return c.BaseURL + c.Path
}
