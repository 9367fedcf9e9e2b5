package sanpi

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// hostLimiter spaces out requests to the same host.
type hostLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	interval time.Duration
}

func newHostLimiter(interval time.Duration) *hostLimiter {
	if interval <= 0 {
		return nil
	}

	return &hostLimiter{
		limiters: make(map[string]*rate.Limiter),
		interval: interval,
	}
}

func (h *hostLimiter) Wait(ctx context.Context, rawURL string) error {
	if h == nil {
		return nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if u.Host == "" {
		return &url.Error{Op: "parse", URL: rawURL, Err: errors.New("missing host in URL")}
	}

	return h.forHost(u.Host).Wait(ctx)
}

func (h *hostLimiter) forHost(host string) *rate.Limiter {
	h.mu.RLock()
	l, ok := h.limiters[host]
	h.mu.RUnlock()
	if ok {
		return l
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if l, ok := h.limiters[host]; ok {
		return l
	}

	l = rate.NewLimiter(rate.Every(h.interval), 1)
	h.limiters[host] = l

	return l
}
