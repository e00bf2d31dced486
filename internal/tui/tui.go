package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zuo-Peng/chatstat/internal/analytics"
	"github.com/Zuo-Peng/chatstat/internal/parse"
	"github.com/Zuo-Peng/chatstat/internal/report"
)

type model struct {
	records     []parse.Record
	opts        report.Options
	title       string
	allItems    []userItem
	items       []userItem
	cursor      int
	listOffset  int
	filterInput textinput.Model
	preview     viewport.Model
	previewUser string // user whose report is shown, to avoid duplicate renders
	current     *report.Report
	width       int
	height      int
	ready       bool
	quitting    bool
	chosen      *report.Report
}

func initialModel(records []parse.Record, opts report.Options, title string) model {
	ti := textinput.New()
	ti.Placeholder = "Filter users..."
	ti.Focus()
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	items := buildItems(records)
	return model{
		records:     records,
		opts:        opts,
		title:       title,
		allItems:    items,
		items:       items,
		filterInput: ti,
		preview:     viewport.New(0, 0),
	}
}

// Run starts the TUI and blocks until it exits. If the user presses enter on
// a row, a one-line summary of that user's statistics is copied to the
// clipboard (or printed when no clipboard is available).
func Run(records []parse.Record, opts report.Options, title string) error {
	m := initialModel(records, opts, title)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	fm := finalModel.(model)
	if fm.chosen == nil {
		return nil
	}
	line := summaryLine(fm.chosen.User, fm.chosen.Stats)
	if err := clipboard.WriteAll(line); err != nil {
		fmt.Println(line)
		return nil
	}
	fmt.Printf("Copied to clipboard: %s\n", line)
	return nil
}

// Init renders the Overall report.
func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadCurrentReport())
}

// Update handles messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.preview = newViewport(m.previewWidth(), m.panelHeight())
		// width changed, re-render the current report
		m.previewUser = ""
		cmds = append(cmds, m.loadCurrentReport())
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Enter):
			if m.current != nil && m.cursor < len(m.items) && m.current.User == m.items[m.cursor].Name {
				m.chosen = m.current
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentReport())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentReport())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.PreviewUp):
			m.preview.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PreviewDn):
			m.preview.LineDown(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.preview.LineUp(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.preview.LineDown(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.Bucket):
			m.opts.Granularity = nextGranularity(m.opts.Granularity)
			m.previewUser = ""
			return m, m.loadCurrentReport()
		}

		// Pass remaining keys to text input
		var tiCmd tea.Cmd
		prev := m.filterInput.Value()
		m.filterInput, tiCmd = m.filterInput.Update(msg)
		cmds = append(cmds, tiCmd)

		if v := m.filterInput.Value(); v != prev {
			m.items = filterItems(m.allItems, v)
			m.cursor = 0
			m.listOffset = 0
			cmds = append(cmds, m.loadCurrentReport())
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if !m.ready || len(m.items) == 0 {
			return m, nil
		}

		region, itemIdx := m.hitTest(msg.X, msg.Y)

		switch {
		case region == regionList && msg.Button == tea.MouseButtonWheelUp:
			if m.listOffset > 0 {
				m.listOffset--
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonWheelDown:
			visibleItems := m.panelHeight() / linesPerItem
			maxOffset := max(len(m.items)-visibleItems, 0)
			if m.listOffset < maxOffset {
				m.listOffset++
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			if itemIdx >= 0 && itemIdx < len(m.items) && m.cursor != itemIdx {
				m.cursor = itemIdx
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentReport())
			}
			return m, tea.Batch(cmds...)

		case region == regionPreview && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
			var vpCmd tea.Cmd
			m.preview, vpCmd = m.preview.Update(msg)
			if vpCmd != nil {
				cmds = append(cmds, vpCmd)
			}
			return m, tea.Batch(cmds...)
		}

		return m, nil

	case reportRenderedMsg:
		// drop reports for a user that is no longer selected
		if len(m.items) == 0 || m.cursor >= len(m.items) || m.items[m.cursor].Name != msg.user {
			return m, nil
		}
		if msg.err != nil {
			m.preview.SetContent("Report error: " + msg.err.Error())
			m.current = nil
		} else {
			m.preview.SetContent(msg.content)
			m.preview.GotoTop()
			m.current = msg.rep
		}
		m.previewUser = msg.user
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

// View renders the full TUI.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	previewW := m.previewWidth()
	panelH := m.panelHeight()

	inputRow := m.filterInput.View()

	listPanel := stylePanelBorder.
		Width(listW).
		Height(panelH).
		Render(m.renderList(listW, panelH))

	m.preview.Width = previewW
	m.preview.Height = panelH
	previewPanel := styleActiveBorder.
		Width(previewW).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)

	return lipgloss.JoinVertical(lipgloss.Left, inputRow, panels, m.statusBar())
}

// helper methods

func (m model) listWidth() int {
	if m.width <= 0 {
		return 30
	}
	// 30% for list, minus border padding
	return max(m.width*30/100-4, 20)
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 70
	}
	// 70% for the report, minus border padding
	return max(m.width*70/100-4, 20)
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// Subtract input row (1) + status bar (1) + borders (4)
	return max(m.height-6, 5)
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionPreview
)

// hitTest maps terminal coordinates to a panel region and list item index.
func (m model) hitTest(x, y int) (mouseRegion, int) {
	pH := m.panelHeight()
	contentYStart := 2 // input row (1) + top border (1)
	contentYEnd := contentYStart + pH - 1

	if y < contentYStart || y > contentYEnd {
		return regionNone, -1
	}
	relY := y - contentYStart

	lw := m.listWidth()
	listBoxRight := lw + 1 // col 0=border, 1..lw=content, lw+1=border

	if x >= 1 && x <= lw {
		return regionList, m.listOffset + relY/linesPerItem
	}
	if x > listBoxRight+1 {
		return regionPreview, -1
	}
	return regionNone, -1
}

func (m model) statusBar() string {
	parts := []string{
		m.title,
		fmt.Sprintf("%d users", max(len(m.items)-1, 0)),
		"click/up/dn select",
		"scroll/C-u/C-d report",
		"C-g " + string(granularityOrDefault(m.opts.Granularity)),
		"Enter copy summary",
		"Esc quit",
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

var granularities = []analytics.Granularity{analytics.Daily, analytics.Weekly, analytics.Monthly}

func granularityOrDefault(g analytics.Granularity) analytics.Granularity {
	if g == "" {
		return analytics.Daily
	}
	return g
}

// nextGranularity cycles daily -> weekly -> monthly -> daily.
func nextGranularity(g analytics.Granularity) analytics.Granularity {
	g = granularityOrDefault(g)
	for i, v := range granularities {
		if v == g {
			return granularities[(i+1)%len(granularities)]
		}
	}
	return analytics.Daily
}

func (m model) loadCurrentReport() tea.Cmd {
	if len(m.items) == 0 || m.cursor >= len(m.items) {
		return nil
	}
	user := m.items[m.cursor].Name
	if user == m.previewUser {
		return nil // already showing this report
	}
	return loadReportCmd(m.records, user, m.opts, m.previewWidth())
}
