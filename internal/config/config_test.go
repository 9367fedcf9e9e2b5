package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", dir)

	return filepath.Join(dir, "sanpid")
}

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"relative landing url", func(c *Config) { c.LandingURL = "/news" }, ErrInvalidLandingURL},
		{"ftp site base", func(c *Config) { c.SiteBase = "ftp://gamesanpi.com" }, ErrInvalidSiteBase},
		{"zero articles", func(c *Config) { c.MaxArticles = 0 }, ErrInvalidLimit},
		{"zero per article", func(c *Config) { c.IllustsPerArticle = 0 }, ErrInvalidLimit},
		{"zero workers", func(c *Config) { c.ProbeWorkers = 0 }, ErrInvalidWorkers},
		{"negative interval", func(c *Config) { c.ProbeIntervalMs = -1 }, ErrInvalidInterval},
		{"negative timeout", func(c *Config) { c.TimeoutSec = -5 }, ErrInvalidTimeout},
		{"no attempts", func(c *Config) { c.RetryAttempts = 0 }, ErrInvalidRetry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			assert.ErrorIs(t, c.Validate(), tt.want)
		})
	}
}

func TestLoadMergedWithoutProfile(t *testing.T) {
	isolate(t)

	cfg, used, err := LoadMerged(Options{Listen: ":9090", ProbeWorkers: 3})
	require.NoError(t, err)

	assert.Equal(t, "(default config in memory)", used)
	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, 3, cfg.ProbeWorkers)
	assert.Equal(t, "https://www.gamesanpi.com/", cfg.LandingURL)
}

func TestLoadMergedIgnoreConfig(t *testing.T) {
	isolate(t)
	_, err := InitDefaultConfig()
	require.NoError(t, err)

	cfg, used, err := LoadMerged(Options{IgnoreConfig: true, Debug: true})
	require.NoError(t, err)
	assert.Equal(t, "(ignored config)", used)
	assert.True(t, cfg.Debug)
}

func TestLoadMergedActiveProfile(t *testing.T) {
	isolate(t)
	path, err := InitDefaultConfig()
	require.NoError(t, err)

	// keys missing from the file keep their defaults
	require.NoError(t, os.WriteFile(path, []byte("max_articles: 5\nsite_base: https://mirror.example.com\ncanonical_base: \"\"\n"), 0o644))

	cfg, used, err := LoadMerged(Options{Output: "/tmp/illusts", SkipBroken: true})
	require.NoError(t, err)

	assert.Equal(t, path, used)
	assert.Equal(t, 5, cfg.MaxArticles)
	assert.Equal(t, 10, cfg.MaxIllustrations)
	assert.Equal(t, "https://mirror.example.com", cfg.CanonicalBase)
	assert.Equal(t, "/tmp/illusts", cfg.Output)
	assert.True(t, cfg.SkipBroken)
}

func TestLoadMergedInvalidProfile(t *testing.T) {
	isolate(t)
	path, err := InitDefaultConfig()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("probe_workers: 0\n"), 0o644))

	_, _, err = LoadMerged(Options{})
	assert.ErrorIs(t, err, ErrInvalidWorkers)

	require.NoError(t, os.WriteFile(path, []byte("max_articles: [\n"), 0o644))
	_, _, err = LoadMerged(Options{})
	assert.Error(t, err)
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	c := DefaultConfig()
	c.ProbeIntervalMs = 250
	c.Print(&buf)

	out := buf.String()
	assert.Contains(t, out, " -landing_url: https://www.gamesanpi.com/\n")
	assert.Contains(t, out, " -canonical_base: https://gamesanpi.com\n")
	assert.Contains(t, out, " -probe_interval_ms: 250\n")
	assert.NotContains(t, out, "timeout_sec")
}
