package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
)

func TestClassifyStatusTable(t *testing.T) {
	cases := map[int]string{
		400: "request error(400)",
		401: "unauthorized, please log in again(401)",
		403: "access denied(403)",
		404: "request address error: /photos/9(404)",
		408: "request timeout(408)",
		500: "internal server error(500)",
		501: "service not implemented(501)",
		502: "network error(502)",
		503: "service unavailable(503)",
		504: "network timeout(504)",
		505: "HTTP version not supported(505)",
		418: "connection error: 418",
		302: "connection error: 302",
	}
	for status, want := range cases {
		got := Classify(Failure{HasResponse: true, Status: status, URL: "/photos/9"})
		if got != want {
			t.Errorf("status %d: got %q want %q", status, got, want)
		}
	}
}

func TestClassifyPrecedence(t *testing.T) {
	if got := Classify(Failure{HasResponse: true, Status: 500, HasRequest: true, Cause: "x"}); got != "internal server error(500)" {
		t.Fatalf("response must win, got %q", got)
	}
	if got := Classify(Failure{HasRequest: true, Cause: "dial tcp"}); got != "could not connect to server, check network" {
		t.Fatalf("no-response message wrong: %q", got)
	}
	if got := Classify(Failure{Cause: "bad header"}); got != "bad header" {
		t.Fatalf("cause should pass through, got %q", got)
	}
	if got := Classify(Failure{}); got != "request failed" {
		t.Fatalf("fallback wrong: %q", got)
	}
}

func TestFailureFromError(t *testing.T) {
	netErr := &url.Error{Op: "Get", URL: "http://x", Err: errors.New("connection refused")}
	if f, sent := failureFromError("/a", netErr, false); !sent || !f.HasRequest {
		t.Fatalf("url.Error should count as sent: %+v", f)
	}

	parseErr := &url.Error{Op: "parse", URL: "::", Err: errors.New("missing protocol scheme")}
	if f, sent := failureFromError("/a", parseErr, false); sent || f.Cause == "" {
		t.Fatalf("parse errors are construction failures: %+v", f)
	}

	wrapped := fmt.Errorf("wrapped: %w", context.DeadlineExceeded)
	if _, sent := failureFromError("/a", wrapped, false); !sent {
		t.Fatalf("deadline exceeded should count as sent")
	}

	ce := &constructionError{err: errors.New("no token store")}
	if f, sent := failureFromError("/a", ce, true); sent || f.Cause != "no token store" {
		t.Fatalf("construction errors win over response presence: %+v", f)
	}
}
