package cmd

import (
	"net/http"
	"time"

	"github.com/brogergvhs/sanpid/internal/config"
	"github.com/brogergvhs/sanpid/internal/providers/sanpi"
	"github.com/brogergvhs/sanpid/internal/ui"
	"github.com/brogergvhs/sanpid/internal/util"
)

type runtime struct {
	cfg     *config.Config
	cfgPath string
	log     *ui.Logger
	client  *http.Client
	scraper *sanpi.Scraper
}

// newRuntime loads the merged config and builds the HTTP client and scraper
// every command shares.
func newRuntime(opts config.Options) (*runtime, error) {
	opts.IgnoreConfig = flagIgnoreConfig
	opts.Debug = opts.Debug || flagDebug
	if flagLandingURL != "" {
		opts.LandingURL = flagLandingURL
	}

	cfg, usedPath, err := config.LoadMerged(opts)
	if err != nil {
		return nil, err
	}

	logSvc := ui.NewLogger(cfg.Debug)
	logSvc.Debugf("Config: %s\n", usedPath)

	clientOpts := util.HTTPClientOptions{
		Timeout:          time.Duration(cfg.TimeoutSec) * time.Second,
		UserAgent:        util.PickUserAgent(cfg.UserAgent),
		Cookie:           cfg.Cookie,
		CookieFile:       cfg.CookieFile,
		CloudflareBypass: cfg.CloudflareBypass,
	}
	if cfg.Debug {
		clientOpts.DebugLogger = logSvc
	}

	client, err := util.NewHTTPClient(clientOpts)
	if err != nil {
		return nil, err
	}

	return &runtime{
		cfg:     cfg,
		cfgPath: usedPath,
		log:     logSvc,
		client:  client,
		scraper: sanpi.NewScraper(client, logSvc, scraperOptions(cfg)),
	}, nil
}

func scraperOptions(cfg *config.Config) sanpi.Options {
	return sanpi.Options{
		LandingURL:    cfg.LandingURL,
		SiteBase:      cfg.SiteBase,
		CanonicalBase: cfg.CanonicalBase,
		NewsPath:      cfg.NewsPath,
		MaxArticles:   cfg.MaxArticles,
		RetryAttempts: cfg.RetryAttempts,
		Probe: sanpi.ProbeLimits{
			MaxArticles:   cfg.MaxScanArticles,
			PerArticle:    cfg.IllustsPerArticle,
			MaxResults:    cfg.MaxIllustrations,
			Workers:       cfg.ProbeWorkers,
			ProbeInterval: time.Duration(cfg.ProbeIntervalMs) * time.Millisecond,
		},
	}
}
