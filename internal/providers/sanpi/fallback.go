package sanpi

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/brogergvhs/sanpid/internal/providers"
)

const articleImageMarker = "/images/articles/"

// fallbackScan holds the three independently collected streams.
type fallbackScan struct {
	Slugs  []string
	Images []string
	Titles []string
}

func (f fallbackScan) pairs() int {
	return min(len(f.Slugs), len(f.Images), len(f.Titles))
}

func scanFallback(doc *goquery.Document, s site) fallbackScan {
	var out fallbackScan

	seenSlugs := map[string]bool{}
	doc.Find("[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		slug, ok := s.slugFromHref(href)
		if !ok || seenSlugs[slug] {
			return
		}
		seenSlugs[slug] = true
		out.Slugs = append(out.Slugs, slug)
	})

	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		if len(img.Nodes) == 0 {
			return
		}
		src, ok := lastSrcAttr(img.Nodes[0].Attr)
		if !ok || !strings.Contains(src, articleImageMarker) {
			return
		}
		out.Images = append(out.Images, src)
	})

	seenTitles := map[string]bool{}
	doc.Find("h3").Each(func(_ int, h *goquery.Selection) {
		if h.Children().Length() > 0 {
			return
		}
		title, ok := sanitizeFallbackTitle(h.Text())
		if !ok || seenTitles[title] {
			return
		}
		seenTitles[title] = true
		out.Titles = append(out.Titles, title)
	})

	return out
}

// extractFallback pairs the i-th article link with the i-th article image
// and the i-th heading. Nothing ties a heading to a link except position,
// so results from here are lower confidence than extractPrimary's.
func (s *Scraper) extractFallback(body string) []providers.Article {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		s.log.Debugf("Fallback parse failed: %v\n", err)
		return nil
	}

	scan := scanFallback(doc, s.site)
	s.log.Debugf("Fallback streams: links=%d images=%d titles=%d (positional pairing)\n",
		len(scan.Slugs), len(scan.Images), len(scan.Titles))

	col := newArticleCollector()
	for i := 0; i < scan.pairs(); i++ {
		a := s.site.article(scan.Slugs[i], scan.Titles[i], scan.Images[i])
		if !col.add(a) {
			s.log.Debugf("Fallback duplicate skipped: %s\n", a.URL)
		}
	}

	return col.items
}
