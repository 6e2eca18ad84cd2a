package apiclient

import "time"

// RequestConfig is the per-call configuration. It is built from RequestOptions
// for every call and never retained.
type RequestConfig struct {
	Method string
	URL    string
	// SkipErrorHandler disables notifications and the re-auth prompt; errors
	// are returned in their raw form.
	SkipErrorHandler bool
	ShowLoading      bool
	// ToastDuration overrides the client default; a zero value keeps the
	// toast until dismissed. Nil uses the default.
	ToastDuration *time.Duration
	Headers       map[string]string

	multipart bool
	requestID string
}

// RequestOption mutates a RequestConfig.
type RequestOption func(*RequestConfig)

// SkipErrorHandler returns errors to the caller without notifying the user.
func SkipErrorHandler() RequestOption {
	return func(c *RequestConfig) { c.SkipErrorHandler = true }
}

// ShowLoading drives the client's Loading indicator for this call.
func ShowLoading() RequestOption {
	return func(c *RequestConfig) { c.ShowLoading = true }
}

// ToastDuration sets how long a failure toast stays up; 0 keeps it until dismissed.
func ToastDuration(d time.Duration) RequestOption {
	return func(c *RequestConfig) {
		if d < 0 {
			d = 0
		}
		c.ToastDuration = &d
	}
}

// WithHeader adds a request header.
func WithHeader(key, value string) RequestOption {
	return func(c *RequestConfig) {
		if c.Headers == nil {
			c.Headers = make(map[string]string)
		}
		c.Headers[key] = value
	}
}

func multipart() RequestOption {
	return func(c *RequestConfig) { c.multipart = true }
}

func newRequestConfig(method, url string, opts []RequestOption) RequestConfig {
	cfg := RequestConfig{Method: method, URL: url}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (c RequestConfig) toastDuration(def time.Duration) time.Duration {
	if c.ToastDuration == nil {
		return def
	}
	return *c.ToastDuration
}
