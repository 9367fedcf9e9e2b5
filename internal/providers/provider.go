package providers

import "context"

// Article is one entry extracted from the landing page.
type Article struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	ImageURL      string `json:"imageUrl"`
	Slug          string `json:"slug"`
	PublishedDate string `json:"publishedDate"`
	SortKey       string `json:"sortKey"`
}

// Illustration is an image discovered under an article's asset folder.
type Illustration struct {
	ImageURL      string `json:"imageUrl"`
	ArticleURL    string `json:"articleUrl"`
	ArticleTitle  string `json:"articleTitle"`
	PublishedDate string `json:"publishedDate"`
	IllustIndex   int    `json:"illustIndex"`
	SortKey       string `json:"sortKey"`
}

type Source interface {
	FetchArticles(ctx context.Context) ([]Article, error)
	FetchIllustrations(ctx context.Context) ([]Illustration, error)
}
