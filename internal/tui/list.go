package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/chatstat/internal/analytics"
	"github.com/Zuo-Peng/chatstat/internal/parse"
)

// linesPerItem is the number of terminal lines each user occupies.
const linesPerItem = 2

// userItem is one selectable row: Overall or a single sender.
type userItem struct {
	Name     string
	Messages int
	Percent  float64
}

// buildItems returns Overall followed by every sender in parse.UserList order.
func buildItems(records []parse.Record) []userItem {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Sender]++
	}

	users := parse.UserList(records)
	items := make([]userItem, 0, len(users))
	for _, u := range users {
		n := len(records)
		if u != parse.Overall {
			n = counts[u]
		}
		pct := 0.0
		if len(records) > 0 {
			pct = float64(n) / float64(len(records)) * 100
		}
		items = append(items, userItem{Name: u, Messages: n, Percent: pct})
	}
	return items
}

// filterItems keeps items whose name contains filter, case-insensitively.
// Overall is always kept.
func filterItems(items []userItem, filter string) []userItem {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return items
	}
	var out []userItem
	for _, it := range items {
		if it.Name == parse.Overall || strings.Contains(strings.ToLower(it.Name), filter) {
			out = append(out, it)
		}
	}
	return out
}

// renderList renders the left panel: user list with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.items) == 0 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No users")
	}

	var lines []string
	for i, it := range m.items {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, formatUserLine(it, width, i == m.cursor)...)
	}

	// Pad remaining lines
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatUserLine formats a user as two lines:
//
//	line 1: [>] name
//	line 2:    1,234 messages  12.34%
func formatUserLine(it userItem, width int, selected bool) []string {
	name := it.Name
	nameMax := max(width-2, 0)
	if runewidth.StringWidth(name) > nameMax {
		name = runewidth.Truncate(name, nameMax, "")
	}
	if it.Name == parse.Overall {
		name = styleOverall.Render(name)
	} else {
		name = styleUser.Render(name)
	}

	line1 := "  " + name
	if selected {
		line1 = styleListSelected.Render("> ") + name
	}

	detail := fmt.Sprintf("%s messages  %.2f%%", humanize.Comma(int64(it.Messages)), it.Percent)
	if runewidth.StringWidth(detail) > max(width-4, 0) {
		detail = runewidth.Truncate(detail, max(width-4, 0), "")
	}
	line2 := "    " + lipgloss.NewStyle().Foreground(colorDim).Render(detail)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := max(listHeight/linesPerItem, 1)
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}

// summaryLine is the one-line text copied to the clipboard for a user.
func summaryLine(user string, s analytics.Stats) string {
	return fmt.Sprintf("%s: %s messages, %s words, %s media, %s links",
		user,
		humanize.Comma(int64(s.Messages)),
		humanize.Comma(int64(s.Words)),
		humanize.Comma(int64(s.Media)),
		humanize.Comma(int64(s.Links)),
	)
}
