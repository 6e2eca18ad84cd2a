package httpclient

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Config describes the shared settings of a resty client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Headers map[string]string
	// Transport replaces the default round tripper when set.
	Transport http.RoundTripper
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(cfg Config) *resty.Client {
	c := resty.New()
	if cfg.Transport != nil {
		c.SetTransport(cfg.Transport)
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		c.SetBaseURL(base)
	}
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}
	for k, v := range cfg.Headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		c.SetHeader(k, v)
	}
	return c
}
