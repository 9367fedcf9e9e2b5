// Package server exposes a providers.Source over a small JSON API for the
// app screens that render articles and illustrations.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/brogergvhs/sanpid/internal/providers"
	"github.com/brogergvhs/sanpid/internal/providers/sanpi"
)

type logger interface {
	Debugf(string, ...any)
	Errorf(string, ...any)
}

type Handler struct {
	src providers.Source
	log logger
}

func NewRouter(src providers.Source, log logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(config))

	h := &Handler{src: src, log: log}

	api := r.Group("/api/v1")
	{
		api.GET("/articles", h.GetArticles)
		api.GET("/illusts", h.GetIllustrations)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
		})
	}

	return r
}

func (h *Handler) GetArticles(c *gin.Context) {
	articles, err := h.src.FetchArticles(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ArticlesResponse{
		Success: true,
		Data:    articles,
		Count:   len(articles),
	})
}

func (h *Handler) GetIllustrations(c *gin.Context) {
	ills, err := h.src.FetchIllustrations(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if ills == nil {
		ills = []providers.Illustration{}
	}

	c.JSON(http.StatusOK, IllustrationsResponse{
		Success: true,
		Data:    ills,
		Count:   len(ills),
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(err, sanpi.ErrFetchFailed):
		status, code = http.StatusBadGateway, "fetch_failed"
	case errors.Is(err, sanpi.ErrNoArticles):
		status, code = http.StatusNotFound, "no_articles"
	}

	h.log.Errorf("%s %s: %v\n", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(status, ErrorResponse{
		Success: false,
		Error:   code,
		Message: err.Error(),
	})
}
