package sanpi

import (
	"strings"
	"unicode/utf8"
)

const (
	minPrimaryTitleLen  = 5
	minFallbackTitleLen = 10
)

// Applied in order, one pass each, so "&amp;lt;" ends up as "<".
var entityChain = []struct{ from, to string }{
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#39;", "'"},
	{"&nbsp;", " "},
	{"&#x27;", "'"},
	{"&#x2F;", "/"},
}

var (
	deniedLabels = map[string]bool{
		"カテゴリー": true,
		"人気記事":  true,
		"ゲーム賛否": true,
		"人気タグ":  true,
	}
	deniedFragments = []string{"span", "記事", "タグ", "カテゴリ"}
)

// DecodeTitle decodes the small entity set the site emits and trims the result.
func DecodeTitle(raw string) string {
	s := raw
	for _, e := range entityChain {
		s = strings.ReplaceAll(s, e.from, e.to)
	}

	return strings.TrimSpace(s)
}

// SanitizeTitle returns the decoded title and whether it looks like an
// article heading rather than page chrome.
func SanitizeTitle(raw string) (string, bool) {
	t := DecodeTitle(raw)
	return t, acceptTitle(t, minPrimaryTitleLen)
}

func sanitizeFallbackTitle(raw string) (string, bool) {
	t := DecodeTitle(raw)
	return t, acceptTitle(t, minFallbackTitleLen)
}

func acceptTitle(t string, minLen int) bool {
	if utf8.RuneCountInString(t) <= minLen {
		return false
	}
	if deniedLabels[t] {
		return false
	}
	for _, f := range deniedFragments {
		if strings.Contains(t, f) {
			return false
		}
	}

	return true
}
