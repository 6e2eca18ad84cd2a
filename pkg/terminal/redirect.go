package terminal

import (
	"context"
	"fmt"
	"io"
)

// CredentialClearer removes the stored bearer credential.
type CredentialClearer interface {
	ClearCredential() error
}

// LoginRedirect implements apiclient.Navigator for a CLI: the stored
// credential is dropped and the user is pointed at the login command.
type LoginRedirect struct {
	store CredentialClearer
	out   io.Writer
	// Hook runs after the credential is cleared, e.g. to start an
	// interactive login.
	Hook func(ctx context.Context, path string) error
}

// NewLoginRedirect returns a redirect that clears store and writes to out.
func NewLoginRedirect(store CredentialClearer, out io.Writer) *LoginRedirect {
	if out == nil {
		out = io.Discard
	}
	return &LoginRedirect{store: store, out: out}
}

// Redirect implements apiclient.Navigator.
func (l *LoginRedirect) Redirect(ctx context.Context, path string) error {
	if l.store != nil {
		if err := l.store.ClearCredential(); err != nil {
			return fmt.Errorf("clear credential: %w", err)
		}
	}
	fmt.Fprintf(l.out, "Session ended. Log in again (%s): gallery login\n", path)
	if l.Hook != nil {
		return l.Hook(ctx, path)
	}
	return nil
}
