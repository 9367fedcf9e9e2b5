package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidLandingURL = errors.New("landing_url must be an absolute http(s) URL")
	ErrInvalidSiteBase   = errors.New("site_base must be an absolute http(s) URL")
	ErrInvalidLimit      = errors.New("max_articles, max_illustrations, max_scan_articles and illusts_per_article must be at least 1")
	ErrInvalidWorkers    = errors.New("probe_workers and download_workers must be at least 1")
	ErrInvalidInterval   = errors.New("probe_interval_ms must be non-negative")
	ErrInvalidTimeout    = errors.New("timeout_sec must be non-negative")
	ErrInvalidRetry      = errors.New("retry_attempts must be at least 1")
)

type Config struct {
	LandingURL    string `yaml:"landing_url"`
	SiteBase      string `yaml:"site_base"`
	CanonicalBase string `yaml:"canonical_base"`
	NewsPath      string `yaml:"news_path"`

	MaxArticles       int `yaml:"max_articles"`
	MaxIllustrations  int `yaml:"max_illustrations"`
	MaxScanArticles   int `yaml:"max_scan_articles"`
	IllustsPerArticle int `yaml:"illusts_per_article"`
	ProbeWorkers      int `yaml:"probe_workers"`
	ProbeIntervalMs   int `yaml:"probe_interval_ms"`

	// 0 leaves the transport default in charge.
	TimeoutSec    int `yaml:"timeout_sec"`
	RetryAttempts int `yaml:"retry_attempts"`

	Cookie           string `yaml:"cookie"`
	CookieFile       string `yaml:"cookie_file"`
	UserAgent        string `yaml:"user_agent"`
	CloudflareBypass bool   `yaml:"cloudflare_bypass"`

	Debug           bool   `yaml:"debug"`
	Listen          string `yaml:"listen"`
	Output          string `yaml:"output"`
	DownloadWorkers int    `yaml:"download_workers"`
	SkipBroken      bool   `yaml:"skip_broken"`
}

// Options carries CLI overrides; zero values mean "not set".
type Options struct {
	IgnoreConfig     bool
	Debug            bool
	LandingURL       string
	Listen           string
	Output           string
	ProbeWorkers     int
	DownloadWorkers  int
	Cookie           string
	CookieFile       string
	UserAgent        string
	CloudflareBypass bool
	SkipBroken       bool
}

func DefaultConfig() *Config {
	return &Config{
		LandingURL:        "https://www.gamesanpi.com/",
		SiteBase:          "https://www.gamesanpi.com",
		CanonicalBase:     "https://gamesanpi.com",
		NewsPath:          "/news/",
		MaxArticles:       10,
		MaxIllustrations:  10,
		MaxScanArticles:   15,
		IllustsPerArticle: 3,
		ProbeWorkers:      1,
		ProbeIntervalMs:   0,
		TimeoutSec:        0,
		RetryAttempts:     1,
		Listen:            ":8080",
		Output:            ".",
		DownloadWorkers:   4,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// loadYAML overlays the file onto the defaults, so keys missing from older
// profiles keep their default values.
func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", cfg.Validate()
	}

	activePath, err := ActiveConfigPath()
	if errors.Is(err, ErrNoConfig) || activePath == "" {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)", cfg.Validate()
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("config %s: %w", activePath, err)
	}

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Debug {
		c.Debug = true
	}
	if o.LandingURL != "" {
		c.LandingURL = o.LandingURL
	}
	if o.Listen != "" {
		c.Listen = o.Listen
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.ProbeWorkers != 0 {
		c.ProbeWorkers = o.ProbeWorkers
	}
	if o.DownloadWorkers != 0 {
		c.DownloadWorkers = o.DownloadWorkers
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.CloudflareBypass {
		c.CloudflareBypass = true
	}
	if o.SkipBroken {
		c.SkipBroken = true
	}
}

func normalizeDefaults(c *Config) {
	if c.Output == "" {
		c.Output = "."
	}
	if c.NewsPath == "" {
		c.NewsPath = "/news/"
	}
	if c.CanonicalBase == "" {
		c.CanonicalBase = c.SiteBase
	}
	if c.Listen == "" {
		c.Listen = ":8080"
	}
}

func (c *Config) Validate() error {
	if !isHTTPURL(c.LandingURL) {
		return ErrInvalidLandingURL
	}
	if !isHTTPURL(c.SiteBase) {
		return ErrInvalidSiteBase
	}
	if c.MaxArticles < 1 || c.MaxIllustrations < 1 || c.MaxScanArticles < 1 || c.IllustsPerArticle < 1 {
		return ErrInvalidLimit
	}
	if c.ProbeWorkers < 1 || c.DownloadWorkers < 1 {
		return ErrInvalidWorkers
	}
	if c.ProbeIntervalMs < 0 {
		return ErrInvalidInterval
	}
	if c.TimeoutSec < 0 {
		return ErrInvalidTimeout
	}
	if c.RetryAttempts < 1 {
		return ErrInvalidRetry
	}

	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (c *Config) Print(w io.Writer) {
	p := func(format string, args ...any) {
		_, _ = fmt.Fprintf(w, format, args...)
	}

	p(" -landing_url: %s\n", c.LandingURL)
	p(" -site_base: %s\n", c.SiteBase)
	if c.CanonicalBase != "" && c.CanonicalBase != c.SiteBase {
		p(" -canonical_base: %s\n", c.CanonicalBase)
	}
	p(" -max_articles: %d\n", c.MaxArticles)
	p(" -max_illustrations: %d\n", c.MaxIllustrations)
	p(" -max_scan_articles: %d\n", c.MaxScanArticles)
	p(" -illusts_per_article: %d\n", c.IllustsPerArticle)
	p(" -probe_workers: %d\n", c.ProbeWorkers)
	if c.ProbeIntervalMs > 0 {
		p(" -probe_interval_ms: %d\n", c.ProbeIntervalMs)
	}
	if c.TimeoutSec > 0 {
		p(" -timeout_sec: %d\n", c.TimeoutSec)
	}
	if c.RetryAttempts > 1 {
		p(" -retry_attempts: %d\n", c.RetryAttempts)
	}
	if c.CookieFile != "" {
		p(" -cookie_file: %s\n", c.CookieFile)
	}
	if c.CloudflareBypass {
		p(" -cloudflare_bypass: %t\n", c.CloudflareBypass)
	}
	if c.Debug {
		p(" -debug: %t\n", c.Debug)
	}
	p(" -listen: %s\n", c.Listen)
	p(" -output: %s\n", c.Output)
	if c.SkipBroken {
		p(" -skip_broken: %t\n", c.SkipBroken)
	}
}
