package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniview/aniview/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "site", cfg.Static.Dir)
	assert.Equal(t, "app.html", cfg.Static.AppFile)
	assert.Equal(t, []string{"/schedule", "/shows", "/music", "/import"}, cfg.Static.Routes)
	assert.Equal(t, "/data/", cfg.Static.DataPrefix)
	assert.Equal(t, "data", cfg.Storage.DataDir)
	assert.Equal(t, "https://myanimelist.net", cfg.Upstream.AnimeBaseURL)
	assert.Equal(t, "https://www.youtube.com", cfg.Upstream.PlaylistBaseURL)
	assert.Contains(t, cfg.Upstream.UserAgent, "Chrome")
	assert.Equal(t, 10*time.Second, cfg.ScrapeTimeout())
	assert.True(t, cfg.Logging.Development)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := `
server:
  port: 9090
static:
  dir: /srv/site
upstream:
  scrape_timeout_seconds: 3
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/srv/site", cfg.Static.Dir)
	assert.Equal(t, 3*time.Second, cfg.ScrapeTimeout())
	// Untouched keys keep their defaults.
	assert.Equal(t, "app.html", cfg.Static.AppFile)
	assert.Equal(t, "https://myanimelist.net", cfg.Upstream.AnimeBaseURL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		cfg, err := config.Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:    "valid",
			mutate:  func(*config.Config) {},
			wantErr: "",
		},
		{
			name:    "zero port",
			mutate:  func(c *config.Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "blank static dir",
			mutate:  func(c *config.Config) { c.Static.Dir = "  " },
			wantErr: "static.dir",
		},
		{
			name:    "blank app file",
			mutate:  func(c *config.Config) { c.Static.AppFile = "" },
			wantErr: "static.app_file",
		},
		{
			name:    "blank data dir",
			mutate:  func(c *config.Config) { c.Storage.DataDir = "" },
			wantErr: "storage.data_dir",
		},
		{
			name:    "missing upstream base",
			mutate:  func(c *config.Config) { c.Upstream.AnimeBaseURL = "" },
			wantErr: "upstream base URLs",
		},
		{
			name:    "non-positive scrape timeout",
			mutate:  func(c *config.Config) { c.Upstream.ScrapeTimeoutSeconds = 0 },
			wantErr: "scrape_timeout_seconds",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
