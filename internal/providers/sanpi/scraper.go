package sanpi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/brogergvhs/sanpid/internal/providers"
	"github.com/brogergvhs/sanpid/internal/util"
)

var (
	ErrFetchFailed = errors.New("could not retrieve content")
	ErrNoArticles  = errors.New("no articles found")
)

const maxPageBytes = 8 << 20

type debugLogger interface {
	Debugf(string, ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}

type Options struct {
	LandingURL    string
	SiteBase      string
	CanonicalBase string
	NewsPath      string
	MaxArticles   int
	RetryAttempts int
	Probe         ProbeLimits
}

func DefaultOptions() Options {
	return Options{
		LandingURL:    "https://www.gamesanpi.com/",
		SiteBase:      "https://www.gamesanpi.com",
		CanonicalBase: "https://gamesanpi.com",
		NewsPath:      "/news/",
		MaxArticles:   10,
		RetryAttempts: 1,
		Probe:         DefaultProbeLimits(),
	}
}

type Scraper struct {
	client *http.Client
	log    debugLogger
	opts   Options
	site   site
	prober *Prober
}

var _ providers.Source = (*Scraper)(nil)

func NewScraper(c *http.Client, log debugLogger, opts Options) *Scraper {
	if log == nil {
		log = nopLogger{}
	}
	if opts.RetryAttempts < 1 {
		opts.RetryAttempts = 1
	}

	s := newSite(opts.SiteBase, opts.CanonicalBase, opts.NewsPath)

	return &Scraper{
		client: c,
		log:    log,
		opts:   opts,
		site:   s,
		prober: newProber(c, log, s, opts.Probe),
	}
}

// OnProbe registers a callback invoked after every illustration probe.
func (s *Scraper) OnProbe(fn ProbeFunc) {
	s.prober.onProbe = fn
}

// FetchArticles returns up to MaxArticles articles, newest first.
func (s *Scraper) FetchArticles(ctx context.Context) ([]providers.Article, error) {
	all, err := s.articles(ctx)
	if err != nil {
		return nil, err
	}

	return truncate(all, s.opts.MaxArticles), nil
}

// FetchIllustrations re-reads the landing page and probes the newest
// articles for illust1..N images. An empty result is not an error.
func (s *Scraper) FetchIllustrations(ctx context.Context) ([]providers.Illustration, error) {
	all, err := s.articles(ctx)
	if err != nil {
		return nil, err
	}

	return s.prober.Probe(ctx, all)
}

func (s *Scraper) articles(ctx context.Context) ([]providers.Article, error) {
	body, err := s.fetchPage(ctx)
	if err != nil {
		return nil, err
	}

	return s.Extract(body)
}

// Extract runs the block scan and, if it yields nothing, the positional
// fallback. The result is deduplicated and sorted but not truncated.
func (s *Scraper) Extract(body string) ([]providers.Article, error) {
	found := s.extractPrimary(body)
	if len(found) == 0 {
		s.log.Debugf("Block scan found no articles, trying fallback\n")
		found = s.extractFallback(body)
	}
	if len(found) == 0 {
		return nil, ErrNoArticles
	}

	return finalizeArticles(found), nil
}

func (s *Scraper) extractPrimary(body string) []providers.Article {
	col := newArticleCollector()
	for _, b := range scanBlocks(strings.NewReader(body), s.site) {
		title, ok := SanitizeTitle(b.Heading)
		if !ok {
			continue
		}

		a := s.site.article(b.Slug, title, b.ImageSrc)
		if !col.add(a) {
			s.log.Debugf("Duplicate article skipped: %s\n", a.URL)
		}
	}
	s.log.Debugf("Block scan: %d articles\n", len(col.items))

	return col.items
}

func (s *Scraper) fetchPage(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.opts.LandingURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := util.DoWithRetry(ctx, s.client, req, s.opts.RetryAttempts, 500*time.Millisecond)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: HTTP %d", ErrFetchFailed, resp.StatusCode)
	}

	r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	data, err := io.ReadAll(io.LimitReader(r, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	s.log.Debugf("Fetched %s (%d bytes)\n", s.opts.LandingURL, len(data))

	return string(data), nil
}
