package sanpi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brogergvhs/sanpid/internal/providers"
)

// assetServer answers HEAD requests for illustration paths listed in exists
// and counts every probe it sees.
type assetServer struct {
	*httptest.Server
	probes atomic.Int64

	mu     sync.Mutex
	exists map[string]bool
	abort  map[string]bool
}

func newAssetServer(t *testing.T) *assetServer {
	t.Helper()

	as := &assetServer{exists: map[string]bool{}, abort: map[string]bool{}}
	as.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		as.probes.Add(1)
		assert.Equal(t, http.MethodHead, r.Method)

		as.mu.Lock()
		ok, abort := as.exists[r.URL.Path], as.abort[r.URL.Path]
		as.mu.Unlock()

		if abort {
			panic(http.ErrAbortHandler)
		}
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(as.Close)

	return as
}

func (as *assetServer) add(slug string, n int) {
	as.mu.Lock()
	defer as.mu.Unlock()
	k := DeriveDateKey(slug)
	as.exists[fmt.Sprintf("/images/articles/%s/%s/%s/illust%d.png", k.Year, k.Month, slug, n)] = true
}

func (as *assetServer) fail(slug string, n int) {
	as.mu.Lock()
	defer as.mu.Unlock()
	k := DeriveDateKey(slug)
	as.abort[fmt.Sprintf("/images/articles/%s/%s/%s/illust%d.png", k.Year, k.Month, slug, n)] = true
}

// datedArticles returns n articles, newest first, one per day ending on
// 2024-06-28.
func datedArticles(n int) []providers.Article {
	s := newSite("https://www.gamesanpi.com", "https://gamesanpi.com", "/news/")
	out := make([]providers.Article, 0, n)
	for i := 0; i < n; i++ {
		slug := fmt.Sprintf("2406%02d01-game-%d", 28-i, i)
		out = append(out, s.article(slug, fmt.Sprintf("Game news number %d", i), "/thumb.png"))
	}

	return out
}

func testProber(as *assetServer, limits ProbeLimits) *Prober {
	return newProber(as.Client(), nil, newSite(as.URL, "", "/news/"), limits)
}

func TestProbeStopsAtGlobalCap(t *testing.T) {
	as := newAssetServer(t)
	articles := datedArticles(15)
	for _, a := range articles {
		for n := 1; n <= 3; n++ {
			as.add(a.Slug, n)
		}
	}

	p := testProber(as, DefaultProbeLimits())
	var seen atomic.Int64
	p.onProbe = func(string, bool) { seen.Add(1) }

	got, err := p.Probe(context.Background(), articles)
	require.NoError(t, err)
	require.Len(t, got, 10)

	// three full articles plus the first illustration of the fourth
	assert.EqualValues(t, 10, as.probes.Load())
	assert.LessOrEqual(t, as.probes.Load(), int64(34))
	assert.EqualValues(t, as.probes.Load(), seen.Load())

	assert.Equal(t, articles[0].SortKey+"_3", got[0].SortKey)
	assert.Equal(t, 3, got[0].IllustIndex)
	assert.Equal(t, articles[3].SortKey+"_1", got[9].SortKey)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].SortKey, got[i].SortKey)
	}
}

func TestProbeRecordFields(t *testing.T) {
	as := newAssetServer(t)
	articles := datedArticles(2)
	as.add(articles[1].Slug, 2)

	got, err := testProber(as, DefaultProbeLimits()).Probe(context.Background(), articles)
	require.NoError(t, err)
	require.Len(t, got, 1)

	ill := got[0]
	assert.Equal(t, fmt.Sprintf("%s/images/articles/2024/06/%s/illust2.png", as.URL, articles[1].Slug), ill.ImageURL)
	assert.Equal(t, articles[1].URL, ill.ArticleURL)
	assert.Equal(t, articles[1].Title, ill.ArticleTitle)
	assert.Equal(t, "2024年06月27日", ill.PublishedDate)
	assert.Equal(t, 2, ill.IllustIndex)
	assert.Equal(t, "2024062701_2", ill.SortKey)
}

func TestProbeScansAtMostMaxArticles(t *testing.T) {
	as := newAssetServer(t)
	articles := datedArticles(20)
	as.add(articles[17].Slug, 1)

	got, err := testProber(as, DefaultProbeLimits()).Probe(context.Background(), articles)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.EqualValues(t, 15*3, as.probes.Load())
}

func TestProbeToleratesFailures(t *testing.T) {
	as := newAssetServer(t)
	articles := datedArticles(3)
	as.fail(articles[0].Slug, 1)
	as.add(articles[0].Slug, 2)
	as.add(articles[2].Slug, 3)

	got, err := testProber(as, DefaultProbeLimits()).Probe(context.Background(), articles)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, articles[0].SortKey+"_2", got[0].SortKey)
	assert.Equal(t, articles[2].SortKey+"_3", got[1].SortKey)
}

func TestProbeSkipsUndatedSlugs(t *testing.T) {
	as := newAssetServer(t)
	articles := []providers.Article{{Slug: "special-feature", URL: "https://gamesanpi.com/news/special-feature"}}

	got, err := testProber(as, DefaultProbeLimits()).Probe(context.Background(), articles)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, as.probes.Load())
}

func TestProbeConcurrentMatchesSequential(t *testing.T) {
	as := newAssetServer(t)
	articles := datedArticles(15)
	for _, a := range articles {
		for n := 1; n <= 3; n++ {
			as.add(a.Slug, n)
		}
	}

	seq, err := testProber(as, DefaultProbeLimits()).Probe(context.Background(), articles)
	require.NoError(t, err)
	as.probes.Store(0)

	limits := DefaultProbeLimits()
	limits.Workers = 3
	par, err := testProber(as, limits).Probe(context.Background(), articles)
	require.NoError(t, err)

	assert.Equal(t, seq, par)
	// the fourth article is probed in full even though only one hit is kept
	assert.EqualValues(t, 12, as.probes.Load())
}

func TestProbeCancelled(t *testing.T) {
	as := newAssetServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testProber(as, DefaultProbeLimits()).Probe(ctx, datedArticles(3))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIllustURL(t *testing.T) {
	s := newSite("https://www.gamesanpi.com/", "", "news")
	k := DeriveDateKey("24061501-x")

	assert.Equal(t, "https://www.gamesanpi.com/images/articles/2024/06/24061501-x/illust3.png", s.illustURL(k, "24061501-x", 3))
	assert.True(t, strings.HasPrefix(s.articleURL("a"), "https://www.gamesanpi.com/news/"))
}
