package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tealoop/internal/format/table"
	"github.com/charmbracelet/lipgloss"
)

const (
	// listTopRow is the screen row of the first list item, below the
	// header and the filter prompt.
	listTopRow   = 2
	reservedRows = 4

	filterPlaceholder = "type to filter"
	footerHelp        = "↑/↓ move · enter print · ^t mark · tab heartbeat · ^p pause · ^r date · ^e editor · ^z suspend · esc quit"
)

// View renders the header, the filter prompt, the visible slice of the
// word list with each word's position in the full list, then the status
// line and key help.
func (m *Model) View() string {
	lines := make([]string, 0, m.maxVisibleItems()+reservedRows)
	lines = append(lines, m.header())
	lines = append(lines, m.filterPrompt())
	lines = append(lines, m.listLines()...)
	lines = append(lines, m.statusLine())
	lines = append(lines, render(styles.Footer, footerHelp))
	return strings.Join(lines, "\n")
}

func (m *Model) header() string {
	parts := []string{render(styles.Header, "tealoop")}
	switch {
	case m.countdown <= 0:
	case m.paused:
		parts = append(parts, render(styles.Countdown, fmt.Sprintf("%d left (paused)", m.countdown)))
	default:
		parts = append(parts, render(styles.Countdown, fmt.Sprintf("%d left", m.countdown)))
	}
	if m.beatOn {
		pulse := "♥"
		if m.beats%2 == 1 {
			pulse = "♡"
		}
		parts = append(parts, render(styles.Heartbeat, fmt.Sprintf("%s %d", pulse, m.beats)))
	} else {
		parts = append(parts, render(styles.HeartbeatIdle, fmt.Sprintf("♡ %d (stopped)", m.beats)))
	}
	if !m.focused {
		parts = append(parts, render(styles.Status, "unfocused"))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) filterPrompt() string {
	prompt := render(styles.FilterPrompt, "» ")
	if m.list.Filter == "" {
		return prompt + render(styles.Cursor, " ") + render(styles.FilterPlaceholder, filterPlaceholder)
	}
	runes := []rune(m.list.Filter)
	pos := m.list.FilterCursorPos()
	before := string(runes[:pos])
	at := " "
	after := ""
	if pos < len(runes) {
		at = string(runes[pos])
		after = string(runes[pos+1:])
	}
	return prompt + render(styles.Filter, before) + render(styles.Cursor, at) + render(styles.Filter, after)
}

func (m *Model) listLines() []string {
	items := m.list.Items
	if len(items) == 0 {
		msg := "(no words)"
		if m.list.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", m.list.Filter)
		}
		return []string{render(styles.Info, msg)}
	}
	maxItems := m.maxVisibleItems()
	m.list.EnsureCursorVisible(maxItems)
	start := m.list.ViewportOffset
	end := start + maxItems
	if end > len(items) {
		end = len(items)
	}
	rows := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		item := items[i]
		mark := " "
		if m.list.IsMarked(item.ID) {
			mark = "*"
		}
		rows = append(rows, []string{mark + item.Label, fmt.Sprintf("#%d", m.list.FullIndex(item.ID)+1)})
	}
	cells := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight})
	lines := make([]string, 0, len(cells))
	for n, cell := range cells {
		i := start + n
		switch {
		case i == m.list.Cursor:
			lines = append(lines, render(styles.SelectedIndicator, "▌")+render(styles.SelectedItem, cell))
		case rows[n][0][0] == '*':
			lines = append(lines, render(styles.ItemIndicator, " ")+render(styles.MarkedItem, cell))
		default:
			lines = append(lines, render(styles.ItemIndicator, " ")+render(styles.Item, cell))
		}
	}
	return lines
}

func (m *Model) statusLine() string {
	if m.errMsg != "" {
		return render(styles.Error, m.errMsg)
	}
	parts := make([]string, 0, 4)
	parts = append(parts, fmt.Sprintf("%d/%d", len(m.list.Items), len(m.list.Full)))
	if n := m.list.MarkCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d marked", n))
	}
	if m.infoMsg != "" {
		parts = append(parts, m.infoMsg)
	}
	if m.lastMouse != "" {
		parts = append(parts, "mouse: "+m.lastMouse)
	}
	if m.verbose && m.lastMsg != "" {
		parts = append(parts, "msg: "+m.lastMsg)
	}
	return render(styles.Status, strings.Join(parts, " · "))
}

func render(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}
