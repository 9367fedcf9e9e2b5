package sanpi

import (
	"sort"

	"github.com/brogergvhs/sanpid/internal/providers"
)

type articleCollector struct {
	seen  map[string]bool
	items []providers.Article
}

func newArticleCollector() *articleCollector {
	return &articleCollector{
		seen:  make(map[string]bool),
		items: make([]providers.Article, 0, 16),
	}
}

// add keeps the first article seen for each URL.
func (c *articleCollector) add(a providers.Article) bool {
	if c.seen[a.URL] {
		return false
	}
	c.seen[a.URL] = true
	c.items = append(c.items, a)

	return true
}

// finalizeArticles dedups by URL and orders newest first. Sort keys are
// equal-width digit strings, so string order is date order; articles with
// no key compare lowest and end up last.
func finalizeArticles(found []providers.Article) []providers.Article {
	col := newArticleCollector()
	for _, a := range found {
		col.add(a)
	}

	out := col.items
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortKey > out[j].SortKey
	})

	return out
}

func sortIllustrations(list []providers.Illustration) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].SortKey > list[j].SortKey
	})
}

func truncate[T any](list []T, limit int) []T {
	if limit > 0 && len(list) > limit {
		return list[:limit]
	}

	return list
}
