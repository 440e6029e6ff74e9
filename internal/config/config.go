// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Static   StaticConfig   `mapstructure:"static"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// StaticConfig describes the SPA asset directory and routing rules.
type StaticConfig struct {
	// Dir is the root directory holding the SPA's static assets.
	Dir string `mapstructure:"dir"`
	// AppFile is the root application document served for client-side routes.
	AppFile string `mapstructure:"app_file"`
	// Routes are the paths the frontend router owns.
	Routes []string `mapstructure:"routes"`
	// DataPrefix marks paths that must never fall back to the app document.
	DataPrefix string `mapstructure:"data_prefix"`
}

// StorageConfig sets the directory for persisted JSON documents.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// UpstreamConfig points at the external sites the service fetches from.
type UpstreamConfig struct {
	AnimeBaseURL         string `mapstructure:"anime_base_url"`
	PlaylistBaseURL      string `mapstructure:"playlist_base_url"`
	UserAgent            string `mapstructure:"user_agent"`
	ScrapeTimeoutSeconds int    `mapstructure:"scrape_timeout_seconds"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ANIVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("static.dir", "site")
	v.SetDefault("static.app_file", "app.html")
	v.SetDefault("static.routes", []string{"/schedule", "/shows", "/music", "/import"})
	v.SetDefault("static.data_prefix", "/data/")
	v.SetDefault("storage.data_dir", "data")
	v.SetDefault("upstream.anime_base_url", "https://myanimelist.net")
	v.SetDefault("upstream.playlist_base_url", "https://www.youtube.com")
	v.SetDefault("upstream.user_agent", chromeUA)
	v.SetDefault("upstream.scrape_timeout_seconds", 10)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if strings.TrimSpace(c.Static.Dir) == "" {
		return fmt.Errorf("static.dir must be set")
	}
	if strings.TrimSpace(c.Static.AppFile) == "" {
		return fmt.Errorf("static.app_file must be set")
	}
	if strings.TrimSpace(c.Storage.DataDir) == "" {
		return fmt.Errorf("storage.data_dir must be set")
	}
	if c.Upstream.AnimeBaseURL == "" || c.Upstream.PlaylistBaseURL == "" {
		return fmt.Errorf("upstream base URLs must be set")
	}
	if c.Upstream.ScrapeTimeoutSeconds <= 0 {
		return fmt.Errorf("upstream.scrape_timeout_seconds must be > 0")
	}
	return nil
}

// ScrapeTimeout converts the scrape timeout config into a duration.
func (c Config) ScrapeTimeout() time.Duration {
	return time.Duration(c.Upstream.ScrapeTimeoutSeconds) * time.Second
}
