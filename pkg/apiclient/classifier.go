package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

const (
	noResponseMessage    = "could not connect to server, check network"
	requestFailedMessage = "request failed"
)

// Failure describes a failed exchange for classification.
type Failure struct {
	// HasResponse is set when a response with a non-2xx status arrived.
	HasResponse bool
	Status      int
	// URL is the request URL as given by the caller.
	URL string
	// HasRequest is set when the request was sent but nothing came back.
	HasRequest bool
	// Cause is the underlying error text for construction failures.
	Cause string
}

// Classify maps a failure to the user-facing message. It is pure.
func Classify(f Failure) string {
	switch {
	case f.HasResponse:
		return statusMessage(f.Status, f.URL)
	case f.HasRequest:
		return noResponseMessage
	case f.Cause != "":
		return f.Cause
	default:
		return requestFailedMessage
	}
}

func statusMessage(status int, rawURL string) string {
	switch status {
	case http.StatusBadRequest:
		return "request error(400)"
	case http.StatusUnauthorized:
		return "unauthorized, please log in again(401)"
	case http.StatusForbidden:
		return "access denied(403)"
	case http.StatusNotFound:
		return fmt.Sprintf("request address error: %s(404)", rawURL)
	case http.StatusRequestTimeout:
		return "request timeout(408)"
	case http.StatusInternalServerError:
		return "internal server error(500)"
	case http.StatusNotImplemented:
		return "service not implemented(501)"
	case http.StatusBadGateway:
		return "network error(502)"
	case http.StatusServiceUnavailable:
		return "service unavailable(503)"
	case http.StatusGatewayTimeout:
		return "network timeout(504)"
	case http.StatusHTTPVersionNotSupported:
		return "HTTP version not supported(505)"
	default:
		return fmt.Sprintf("connection error: %d", status)
	}
}

// failureFromError decides whether a transport error happened before or after
// the request left the client. sent is true when the HTTP round trip started.
func failureFromError(rawURL string, err error, gotResponse bool) (f Failure, sent bool) {
	f.URL = rawURL

	var ce *constructionError
	if errors.As(err, &ce) {
		f.Cause = ce.err.Error()
		return f, false
	}
	if gotResponse {
		f.HasRequest = true
		return f, true
	}

	var uerr *url.Error
	if errors.As(err, &uerr) {
		if uerr.Op == "parse" {
			f.Cause = uerr.Error()
			return f, false
		}
		f.HasRequest = true
		return f, true
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		f.HasRequest = true
		return f, true
	}

	f.Cause = err.Error()
	return f, false
}
