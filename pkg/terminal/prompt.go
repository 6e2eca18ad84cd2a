package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/samvad-hq/gallery-client/pkg/apiclient"
)

// Prompt asks yes/no questions on a line-oriented terminal. An empty answer
// or end of input declines.
type Prompt struct {
	mu     sync.Mutex
	in     *bufio.Reader
	out    io.Writer
	styles styles
	// pending holds a read abandoned by a cancelled Confirm. The next
	// Confirm takes its answer instead of starting a second reader.
	pending chan answer
}

type answer struct {
	line string
	err  error
}

// NewPrompt reads answers from in and writes questions to out.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	if in == nil {
		in = strings.NewReader("")
	}
	if out == nil {
		out = io.Discard
	}
	return &Prompt{in: bufio.NewReader(in), out: out, styles: newStyles(lipgloss.NewRenderer(out))}
}

// Confirm implements apiclient.Dialog.
func (p *Prompt) Confirm(ctx context.Context, d apiclient.DialogRequest) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return false, err
	}

	if d.Title != "" {
		fmt.Fprintln(p.out, p.styles.title.Render(d.Title))
	}
	choices := fmt.Sprintf("[y] %s / [N] %s:", labelOr(d.ConfirmText, "OK"), labelOr(d.CancelText, "Cancel"))
	fmt.Fprintf(p.out, "%s\n%s ", d.Message, p.styles.choice.Render(choices))

	line, err := p.readLine(ctx)
	if err != nil && !errors.Is(err, io.EOF) {
		if ctx.Err() != nil {
			return false, err
		}
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// readLine waits for one line of input or for ctx to end. Callers hold p.mu.
func (p *Prompt) readLine(ctx context.Context) (string, error) {
	if p.pending == nil {
		ch := make(chan answer, 1)
		go func() {
			line, err := p.in.ReadString('\n')
			ch <- answer{line: line, err: err}
		}()
		p.pending = ch
	}
	select {
	case a := <-p.pending:
		p.pending = nil
		return a.line, a.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func labelOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
