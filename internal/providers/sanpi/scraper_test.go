package sanpi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// landingServer serves body at "/" and answers HEAD for the listed asset
// paths.
func landingServer(t *testing.T, status int, body string, assets ...string) *httptest.Server {
	t.Helper()

	known := map[string]bool{}
	for _, a := range assets {
		known[a] = true
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/" && r.Method == http.MethodGet:
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		case r.Method == http.MethodHead && known[r.URL.Path]:
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func scraperFor(srv *httptest.Server) *Scraper {
	opts := DefaultOptions()
	opts.LandingURL = srv.URL + "/"
	opts.SiteBase = srv.URL

	return NewScraper(srv.Client(), nil, opts)
}

func TestFetchArticles(t *testing.T) {
	blocks := make([]string, 0, 12)
	for i := 1; i <= 12; i++ {
		blocks = append(blocks, card(fmt.Sprintf("2406%02d01-news", i), "/thumb.png", fmt.Sprintf("Headline number %02d", i)))
	}
	srv := landingServer(t, http.StatusOK, page(blocks...))

	got, err := scraperFor(srv).FetchArticles(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 10)

	assert.Equal(t, "2024061201", got[0].SortKey)
	assert.Equal(t, "2024060301", got[9].SortKey)
	assert.Equal(t, "https://gamesanpi.com/news/24061201-news", got[0].URL)
	assert.Equal(t, srv.URL+"/thumb.png", got[0].ImageURL)
}

func TestFetchArticlesHTTPError(t *testing.T) {
	srv := landingServer(t, http.StatusInternalServerError, "oops")

	got, err := scraperFor(srv).FetchArticles(context.Background())
	assert.Nil(t, got)
	require.ErrorIs(t, err, ErrFetchFailed)
	assert.NotErrorIs(t, err, ErrNoArticles)
}

func TestFetchArticlesNotFound(t *testing.T) {
	srv := landingServer(t, http.StatusNotFound, "gone")

	_, err := scraperFor(srv).FetchArticles(context.Background())
	require.ErrorIs(t, err, ErrFetchFailed)
	assert.True(t, strings.Contains(err.Error(), "HTTP 404"))
}

func TestFetchArticlesUnreachable(t *testing.T) {
	srv := landingServer(t, http.StatusOK, "")
	s := scraperFor(srv)
	srv.Close()

	_, err := s.FetchArticles(context.Background())
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestFetchArticlesEmptyPage(t *testing.T) {
	srv := landingServer(t, http.StatusOK, `<html><body>nothing here</body></html>`)

	_, err := scraperFor(srv).FetchArticles(context.Background())
	require.ErrorIs(t, err, ErrNoArticles)
	assert.NotErrorIs(t, err, ErrFetchFailed)
}

func TestFetchArticlesRetries(t *testing.T) {
	var calls atomic.Int32
	body := page(card("240615-01", "/a.png", "Some Real Title"))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	s := scraperFor(srv)
	s.opts.RetryAttempts = 2

	got, err := s.FetchArticles(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.EqualValues(t, 2, calls.Load())
}

func TestFetchIllustrations(t *testing.T) {
	body := page(
		card("240615-01", "/a.png", "Some Real Title"),
		card("240610-02", "/b.png", "An older headline"),
	)
	srv := landingServer(t, http.StatusOK, body,
		"/images/articles/2024/06/240615-01/illust1.png",
		"/images/articles/2024/06/240610-02/illust1.png",
		"/images/articles/2024/06/240610-02/illust2.png",
	)

	s := scraperFor(srv)
	var probes atomic.Int32
	s.OnProbe(func(string, bool) { probes.Add(1) })

	got, err := s.FetchIllustrations(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "2024061501_1", got[0].SortKey)
	assert.Equal(t, "Some Real Title", got[0].ArticleTitle)
	assert.Equal(t, "https://gamesanpi.com/news/240615-01", got[0].ArticleURL)
	assert.Equal(t, "2024061002_2", got[1].SortKey)
	assert.Equal(t, "2024061002_1", got[2].SortKey)
	assert.EqualValues(t, 6, probes.Load())
}

func TestFetchIllustrationsNoneFound(t *testing.T) {
	srv := landingServer(t, http.StatusOK, page(card("240615-01", "/a.png", "Some Real Title")))

	got, err := scraperFor(srv).FetchIllustrations(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFetchIllustrationsPageError(t *testing.T) {
	srv := landingServer(t, http.StatusServiceUnavailable, "")

	got, err := scraperFor(srv).FetchIllustrations(context.Background())
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrFetchFailed)
}
