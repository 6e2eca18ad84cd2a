// Package apiclient is the request/response pipeline used to talk to the
// gallery backend. Every call goes through the same interceptors: the request
// side attaches the bearer credential, the response side unwraps the envelope
// and turns failures into typed errors plus a user notification.
package apiclient

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/samvad-hq/gallery-client/pkg/httpclient"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultToastDuration = 3 * time.Second
	defaultLoginPath     = "/login"
	defaultContentType   = "application/json;charset=utf-8"

	// HeaderRequestID carries a per-request id for log correlation.
	HeaderRequestID = "X-Request-ID"
)

// Options configures a Client. Only BaseURL is required.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// ToastDuration is the default failure toast duration; <= 0 uses 3s.
	ToastDuration time.Duration
	LoginPath     string

	Credentials CredentialProvider
	Notifier    Notifier
	Dialog      Dialog
	Navigator   Navigator
	Loading     Loading
	Logger      Logger

	// Transport replaces the default HTTP round tripper (tests, proxies).
	Transport http.RoundTripper
}

// Client is safe for concurrent use; it is not mutated after New.
type Client struct {
	rc            *resty.Client
	credentials   CredentialProvider
	notifier      Notifier
	dialog        Dialog
	navigator     Navigator
	loading       Loading
	log           Logger
	toastDuration time.Duration
	loginPath     string
}

// New builds a Client with its transport and interceptors installed.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	toast := opts.ToastDuration
	if toast <= 0 {
		toast = defaultToastDuration
	}
	loginPath := strings.TrimSpace(opts.LoginPath)
	if loginPath == "" {
		loginPath = defaultLoginPath
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = noopNotifier{}
	}

	c := &Client{
		credentials:   opts.Credentials,
		notifier:      notifier,
		dialog:        opts.Dialog,
		navigator:     opts.Navigator,
		loading:       opts.Loading,
		log:           ensureLogger(opts.Logger),
		toastDuration: toast,
		loginPath:     loginPath,
	}

	c.rc = httpclient.NewRestyHTTPClient(httpclient.Config{
		BaseURL:   opts.BaseURL,
		Timeout:   timeout,
		Headers:   map[string]string{"Content-Type": defaultContentType},
		Transport: opts.Transport,
	})
	c.rc.OnBeforeRequest(c.authorize)
	return c
}

// send performs the underlying network call.
func (c *Client) send(ctx context.Context, cfg RequestConfig, payload any) (*resty.Response, error) {
	req := c.rc.R().SetContext(ctx)
	if len(cfg.Headers) > 0 {
		req.SetHeaders(cfg.Headers)
	}
	req.SetHeader(HeaderRequestID, cfg.requestID)

	if err := placePayload(req, cfg, payload); err != nil {
		return nil, err
	}
	return req.Execute(cfg.Method, cfg.URL)
}
