package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zuo-Peng/chatstat/internal/parse"
	"github.com/Zuo-Peng/chatstat/internal/render"
	"github.com/Zuo-Peng/chatstat/internal/report"
)

// reportRenderedMsg is sent when an async report render completes.
type reportRenderedMsg struct {
	user    string
	content string
	rep     *report.Report
	err     error
}

// loadReportCmd returns a tea.Cmd that builds and renders a user's report async.
func loadReportCmd(records []parse.Record, user string, opts report.Options, width int) tea.Cmd {
	return func() tea.Msg {
		rep, err := report.Build(context.Background(), records, user, opts)
		if err != nil {
			return reportRenderedMsg{user: user, err: err}
		}
		return reportRenderedMsg{
			user:    user,
			rep:     rep,
			content: render.RenderReport(rep, render.ReportOptions{Width: width, Color: true}),
		}
	}
}

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanelBorder
	return vp
}
