package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mattn/go-runewidth"

	"github.com/brogergvhs/sanpid/internal/providers"
)

const titleWidth = 60

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func printArticles(w io.Writer, list []providers.Article) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "#\tDATE\tTITLE\tURL")
	for i, a := range list {
		date := a.PublishedDate
		if date == "" {
			date = "-"
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, date, runewidth.Truncate(a.Title, titleWidth, "…"), a.URL)
	}

	return tw.Flush()
}

func printIllustrations(w io.Writer, list []providers.Illustration) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "#\tDATE\tN\tTITLE\tIMAGE")
	for i, ill := range list {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n",
			i+1, ill.PublishedDate, ill.IllustIndex, runewidth.Truncate(ill.ArticleTitle, titleWidth, "…"), ill.ImageURL)
	}

	return tw.Flush()
}
