package sanpi

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/brogergvhs/sanpid/internal/providers"
)

// site knows the URL layout of the landing page and its assets.
type site struct {
	base      string // images and relative links resolve here
	canonical string // article URLs are built on this host
	newsPath  string
}

func newSite(base, canonical, newsPath string) site {
	if newsPath == "" {
		newsPath = "/news/"
	}
	if !strings.HasSuffix(newsPath, "/") {
		newsPath += "/"
	}
	if !strings.HasPrefix(newsPath, "/") {
		newsPath = "/" + newsPath
	}
	if canonical == "" {
		canonical = base
	}

	return site{
		base:      strings.TrimRight(base, "/"),
		canonical: strings.TrimRight(canonical, "/"),
		newsPath:  newsPath,
	}
}

// slugFromHref accepts only an exact "/news/{slug}" path where slug is
// [A-Za-z0-9-]+.
func (s site) slugFromHref(href string) (string, bool) {
	if !strings.HasPrefix(href, s.newsPath) {
		return "", false
	}

	slug := href[len(s.newsPath):]
	if slug == "" {
		return "", false
	}
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
		default:
			return "", false
		}
	}

	return slug, true
}

func (s site) articleURL(slug string) string {
	return s.canonical + s.newsPath + slug
}

// resolveImage makes site-relative image paths absolute and leaves
// everything else untouched.
func (s site) resolveImage(src string) string {
	if strings.HasPrefix(src, "/") && !strings.HasPrefix(src, "//") {
		return s.base + src
	}
	if strings.HasPrefix(src, "//") {
		if u, err := url.Parse(s.base); err == nil && u.Scheme != "" {
			return u.Scheme + ":" + src
		}
	}

	return src
}

func (s site) illustURL(key DateKey, slug string, n int) string {
	return fmt.Sprintf("%s/images/articles/%s/%s/%s/illust%d.png", s.base, key.Year, key.Month, slug, n)
}

func (s site) article(slug, title, imageSrc string) providers.Article {
	key := DeriveDateKey(slug)

	return providers.Article{
		Title:         title,
		URL:           s.articleURL(slug),
		ImageURL:      s.resolveImage(imageSrc),
		Slug:          slug,
		PublishedDate: key.PublishedDate,
		SortKey:       key.SortKey,
	}
}

// lastSrcAttr returns the value of the last attribute whose name ends in
// "src", so a lazy-load data-src wins over a placeholder src.
func lastSrcAttr(attrs []html.Attribute) (string, bool) {
	val, found := "", false
	for _, a := range attrs {
		if strings.HasSuffix(strings.ToLower(a.Key), "src") {
			val, found = a.Val, true
		}
	}

	return val, found
}

func attrValue(attrs []html.Attribute, key string) (string, bool) {
	for _, a := range attrs {
		if a.Key == key {
			return a.Val, true
		}
	}

	return "", false
}
