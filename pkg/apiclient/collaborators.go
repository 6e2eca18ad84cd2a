package apiclient

import (
	"context"
	"time"
)

// CredentialProvider supplies the bearer token for outgoing requests.
// An empty token means unauthenticated.
type CredentialProvider interface {
	Credential(ctx context.Context) (string, error)
}

// CredentialFunc adapts a function to CredentialProvider.
type CredentialFunc func(ctx context.Context) (string, error)

func (f CredentialFunc) Credential(ctx context.Context) (string, error) { return f(ctx) }

// ToastType is the visual kind of a toast.
type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastFail    ToastType = "fail"
)

// RequestInfo identifies the request a toast was raised for.
type RequestInfo struct {
	ID     string
	Method string
	URL    string
	Status int
	Code   int
}

// Toast is a transient user-facing notification. Duration 0 keeps it until dismissed.
type Toast struct {
	Message  string
	Type     ToastType
	Duration time.Duration
	Request  RequestInfo
}

// Notifier shows toasts.
type Notifier interface {
	Notify(ctx context.Context, t Toast) error
}

// DialogRequest describes a blocking confirmation prompt.
type DialogRequest struct {
	Title       string
	Message     string
	ConfirmText string
	CancelText  string
}

// Dialog asks the user to confirm. It returns true when the user accepts.
type Dialog interface {
	Confirm(ctx context.Context, d DialogRequest) (bool, error)
}

// Navigator performs the redirect to the login surface.
type Navigator interface {
	Redirect(ctx context.Context, path string) error
}

// Loading is an optional busy indicator driven by the ShowLoading option.
type Loading interface {
	ShowLoading(ctx context.Context)
	HideLoading(ctx context.Context)
}

var reauthDialog = DialogRequest{
	Title:       "Confirm logout",
	Message:     "You have been logged out. Cancel to stay on this page, or log in again.",
	ConfirmText: "Log in again",
	CancelText:  "Cancel",
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, Toast) error { return nil }
