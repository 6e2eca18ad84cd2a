package terminal

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

const loadingLabel = "loading..."

// Spinner is a minimal busy indicator. Nested calls only print once.
type Spinner struct {
	mu    sync.Mutex
	out   io.Writer
	label string
	depth int
}

// NewSpinner writes the indicator to out.
func NewSpinner(out io.Writer) *Spinner {
	if out == nil {
		out = io.Discard
	}
	return &Spinner{out: out, label: newStyles(lipgloss.NewRenderer(out)).hint.Render(loadingLabel)}
}

// ShowLoading implements apiclient.Loading.
func (s *Spinner) ShowLoading(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.depth == 0 {
		fmt.Fprint(s.out, s.label)
	}
	s.depth++
}

// HideLoading implements apiclient.Loading. The label is blanked in place.
func (s *Spinner) HideLoading(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.depth == 0 {
		return
	}
	s.depth--
	if s.depth == 0 {
		fmt.Fprint(s.out, "\r"+strings.Repeat(" ", lipgloss.Width(s.label))+"\r")
	}
}
