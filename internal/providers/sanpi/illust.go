package sanpi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/brogergvhs/sanpid/internal/providers"
)

// ProbeLimits bounds an illustration scan. MaxArticles, PerArticle and
// MaxResults are hard caps whatever the worker count.
type ProbeLimits struct {
	MaxArticles   int // articles examined, newest first
	PerArticle    int // illust1..illustN candidates per article
	MaxResults    int // scan stops once this many are found
	Workers       int // concurrent probes within one article; 1 = sequential
	ProbeInterval time.Duration
}

func DefaultProbeLimits() ProbeLimits {
	return ProbeLimits{
		MaxArticles: 15,
		PerArticle:  3,
		MaxResults:  10,
		Workers:     1,
	}
}

// ProbeFunc is called after every existence check.
type ProbeFunc func(url string, exists bool)

type Prober struct {
	client  *http.Client
	log     debugLogger
	site    site
	limits  ProbeLimits
	limiter *hostLimiter
	onProbe ProbeFunc
}

func newProber(c *http.Client, log debugLogger, s site, limits ProbeLimits) *Prober {
	if log == nil {
		log = nopLogger{}
	}
	def := DefaultProbeLimits()
	if limits.MaxArticles < 1 {
		limits.MaxArticles = def.MaxArticles
	}
	if limits.PerArticle < 1 {
		limits.PerArticle = def.PerArticle
	}
	if limits.MaxResults < 1 {
		limits.MaxResults = def.MaxResults
	}
	if limits.Workers < 1 {
		limits.Workers = 1
	}

	return &Prober{
		client:  c,
		log:     log,
		site:    s,
		limits:  limits,
		limiter: newHostLimiter(limits.ProbeInterval),
	}
}

type candidate struct {
	url string
	n   int
}

// Probe looks for illustrations of the given articles, which must already be
// sorted newest first. Probe failures count as "absent" and never abort the
// scan; only a cancelled context is returned as an error.
func (p *Prober) Probe(ctx context.Context, articles []providers.Article) ([]providers.Illustration, error) {
	out := make([]providers.Illustration, 0, p.limits.MaxResults)
	scan := min(len(articles), p.limits.MaxArticles)

	for i := 0; i < scan && len(out) < p.limits.MaxResults; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		a := articles[i]
		key := DeriveDateKey(a.Slug)
		if !key.Valid() {
			p.log.Debugf("No date code in %q, skipping illustration scan\n", a.Slug)
			continue
		}

		cands := make([]candidate, 0, p.limits.PerArticle)
		for n := 1; n <= p.limits.PerArticle; n++ {
			cands = append(cands, candidate{url: p.site.illustURL(key, a.Slug, n), n: n})
		}

		var found []candidate
		if p.limits.Workers > 1 {
			found = p.probeConcurrently(ctx, cands, p.limits.MaxResults-len(out))
		} else {
			found = p.probeSequentially(ctx, cands, p.limits.MaxResults-len(out))
		}

		for _, c := range found {
			out = append(out, providers.Illustration{
				ImageURL:      c.url,
				ArticleURL:    a.URL,
				ArticleTitle:  a.Title,
				PublishedDate: a.PublishedDate,
				IllustIndex:   c.n,
				SortKey:       a.SortKey + "_" + strconv.Itoa(c.n),
			})
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sortIllustrations(out)

	return truncate(out, p.limits.MaxResults), nil
}

// probeSequentially stops as soon as room hits zero.
func (p *Prober) probeSequentially(ctx context.Context, cands []candidate, room int) []candidate {
	var found []candidate
	for _, c := range cands {
		if len(found) >= room {
			break
		}
		if p.exists(ctx, c.url) {
			found = append(found, c)
		}
	}

	return found
}

// probeConcurrently checks every candidate at once, then keeps hits in
// index order up to room, so the result matches the sequential scan.
func (p *Prober) probeConcurrently(ctx context.Context, cands []candidate, room int) []candidate {
	hits := make([]bool, len(cands))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limits.Workers)
	for i, c := range cands {
		g.Go(func() error {
			hits[i] = p.exists(gctx, c.url)
			return nil
		})
	}
	_ = g.Wait()

	var found []candidate
	for i, c := range cands {
		if len(found) >= room {
			break
		}
		if hits[i] {
			found = append(found, c)
		}
	}

	return found
}

func (p *Prober) exists(ctx context.Context, target string) bool {
	ok := p.head(ctx, target)
	if p.onProbe != nil {
		p.onProbe(target, ok)
	}

	return ok
}

func (p *Prober) head(ctx context.Context, target string) bool {
	if err := p.limiter.Wait(ctx, target); err != nil {
		p.log.Debugf("Probe %s not sent: %v\n", target, err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		p.log.Debugf("Probe %s: bad request: %v\n", target, err)
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Debugf("Probe %s failed: %v\n", target, err)
		return false
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		p.log.Debugf("Probe %s: HTTP %d\n", target, resp.StatusCode)
		return false
	}

	return true
}
