package terminal

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/samvad-hq/gallery-client/pkg/apiclient"
)

// styles are bound to one renderer so the colour profile follows the writer.
type styles struct {
	success lipgloss.Style
	fail    lipgloss.Style
	hint    lipgloss.Style
	title   lipgloss.Style
	choice  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		success: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#22C55E")),
		fail:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
		hint:    r.NewStyle().Italic(true).Foreground(lipgloss.Color("#888888")),
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA500")),
		choice:  r.NewStyle().Foreground(lipgloss.Color("#AAAAAA")),
	}
}

func (s styles) toast(t apiclient.Toast) string {
	var line string
	if t.Type == apiclient.ToastSuccess {
		line = s.success.Render("✔ " + t.Message)
	} else {
		line = s.fail.Render("✖ " + t.Message)
	}
	if t.Duration == 0 {
		line += " " + s.hint.Render("(persistent)")
	}
	return line
}
