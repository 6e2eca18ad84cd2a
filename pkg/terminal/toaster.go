// Package terminal implements the user-facing collaborators of the API client
// for a command line: toasts, the confirmation prompt and the login redirect.
package terminal

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/samvad-hq/gallery-client/pkg/apiclient"
)

const defaultSuccessDuration = 3 * time.Second

// Toaster writes toasts as single lines. Writes are serialised and the most
// recent toast replaces the previous one.
type Toaster struct {
	mu     sync.Mutex
	w      io.Writer
	styles styles
	last   apiclient.Toast
	shown  bool
}

// NewToaster returns a Toaster writing to w. Colours are only emitted when w
// is a terminal.
func NewToaster(w io.Writer) *Toaster {
	if w == nil {
		w = io.Discard
	}
	return &Toaster{w: w, styles: newStyles(lipgloss.NewRenderer(w))}
}

// Notify implements apiclient.Notifier.
func (t *Toaster) Notify(_ context.Context, toast apiclient.Toast) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.last = toast
	t.shown = true
	_, err := fmt.Fprintln(t.w, t.styles.toast(toast))
	return err
}

// Success shows a success toast with the default duration.
func (t *Toaster) Success(ctx context.Context, msg string) error {
	return t.Notify(ctx, apiclient.Toast{Message: msg, Type: apiclient.ToastSuccess, Duration: defaultSuccessDuration})
}

// Last returns the toast currently on screen.
func (t *Toaster) Last() (apiclient.Toast, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last, t.shown
}

// Dismiss clears the current toast.
func (t *Toaster) Dismiss() {
	t.mu.Lock()
	t.last = apiclient.Toast{}
	t.shown = false
	t.mu.Unlock()
}
