package server

import "github.com/brogergvhs/sanpid/internal/providers"

// ArticlesResponse is the envelope for GET /api/v1/articles.
type ArticlesResponse struct {
	Success bool                `json:"success"`
	Data    []providers.Article `json:"data"`
	Count   int                 `json:"count"`
}

// IllustrationsResponse is the envelope for GET /api/v1/illusts.
type IllustrationsResponse struct {
	Success bool                     `json:"success"`
	Data    []providers.Illustration `json:"data"`
	Count   int                      `json:"count"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}
