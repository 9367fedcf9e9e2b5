package sanpi

import (
	"io"

	"golang.org/x/net/html"
)

type blockPhase int

const (
	phaseIdle    blockPhase = iota
	phaseImage              // anchor opened, waiting for <img>
	phaseHeading            // image seen, waiting for a text-only <h3>
	phaseClose              // heading seen, waiting for </a>
)

// rawBlock is one anchor block before title validation.
type rawBlock struct {
	Slug     string
	ImageSrc string
	Heading  string
}

// scanBlocks walks the token stream once and returns every
// anchor -> img -> h3 -> </a> sequence, left to right. A block that is open
// ignores further anchors until it closes, so blocks never overlap. Heading
// text is returned raw (entities intact).
func scanBlocks(r io.Reader, s site) []rawBlock {
	z := html.NewTokenizer(r)

	var (
		out   []rawBlock
		cur   rawBlock
		phase = phaseIdle

		inHeading bool
		heading   string
		textRuns  int
	)

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return out

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			// nested markup disqualifies the heading being read
			inHeading = false

			switch {
			case phase == phaseIdle && tag == "a":
				href, ok := attrValue(readAttrs(z, hasAttr), "href")
				if !ok {
					continue
				}
				if slug, ok := s.slugFromHref(href); ok {
					cur = rawBlock{Slug: slug}
					phase = phaseImage
				}

			case phase == phaseImage && tag == "img":
				if src, ok := lastSrcAttr(readAttrs(z, hasAttr)); ok {
					cur.ImageSrc = src
					phase = phaseHeading
				}

			case phase == phaseHeading && tag == "h3" && tt == html.StartTagToken:
				inHeading = true
				heading = ""
				textRuns = 0
			}

		case html.TextToken:
			if inHeading {
				heading = string(z.Raw())
				textRuns++
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)

			switch {
			case inHeading && tag == "h3":
				if textRuns == 1 && heading != "" {
					cur.Heading = heading
					phase = phaseClose
				}
			case phase == phaseClose && tag == "a":
				out = append(out, cur)
				cur = rawBlock{}
				phase = phaseIdle
			}
			inHeading = false

		default:
			inHeading = false
		}
	}
}

func readAttrs(z *html.Tokenizer, more bool) []html.Attribute {
	var attrs []html.Attribute
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		attrs = append(attrs, html.Attribute{Key: string(key), Val: string(val)})
	}

	return attrs
}
