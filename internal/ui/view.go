package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/popup-menu/internal/ui/controller"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	menuHeaderSeparator = " → "
	rowIndent           = "  "
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	lines := make([]styledLine, 0, 16)
	if header := m.menuHeader(); header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Header})
	}
	if len(m.rows) == 0 {
		msg := "(no entries)"
		if m.level.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", m.level.Filter)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Info})
	} else {
		start, end := m.visibleRange()
		for _, row := range m.rows[start:end] {
			lines = append(lines, m.buildRowLine(row, m.width))
		}
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.footerText(), style: styles.Footer})
	}
	// Reserve 2 rows for the bottom bar (error/status + prompt).
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	out := renderLines(append(lines, statusLine))
	prompt := m.filterPrompt()
	if m.width > 0 && lipgloss.Width(prompt) > m.width {
		prompt = truncate.StringWithTail(prompt, uint(m.width), "…")
	}
	return out + "\n" + prompt
}

func (m *Model) footerText() string {
	text := "↑/↓ move  →/← open/close  enter select  esc clear/quit"
	if m.multiple {
		text += "  ctrl+d done"
	}
	return text
}

// buildRowLine constructs a single styledLine for a rendered row. width is
// the target column width; when > 0 the active row is padded so its
// background spans the full container.
func (m *Model) buildRowLine(row controller.Row, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	switch {
	case row.Disabled:
		lineStyle = styles.DisabledItem
	case row.Active:
		indicatorStyle = styles.ActiveItemIndicator
		lineStyle = styles.ActiveItem
	}
	mark := ""
	if m.multiple {
		mark = "[ ] "
		if row.Selected {
			mark = "[✓] "
		}
	}
	arrow := ""
	if row.SubMenu {
		arrow = " ▸"
		if row.Open {
			arrow = " ▾"
		}
	}
	fullText := indicator + " " + strings.Repeat(rowIndent, row.Depth) + mark + row.Label + arrow
	if width > 0 && row.Active {
		if pad := width - lipgloss.Width(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

// menuHeader shows the title followed by the labels of the open submenus
// leading to the active row.
func (m *Model) menuHeader() string {
	title := strings.TrimSpace(m.level.Title)
	if title == "" {
		title = defaultRootTitle
	}
	segments := []string{title}
	if idx := deepestActiveRow(m.rows); idx >= 0 {
		labels := m.registry.Labels(m.rows[idx].Key)
		if len(labels) > 1 {
			segments = append(segments, labels[:len(labels)-1]...)
		}
	}
	return strings.Join(segments, menuHeaderSeparator)
}

// listTop is the screen line of the first row.
func (m *Model) listTop() int {
	if m.menuHeader() != "" {
		return 1
	}
	return 0
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // bottom bar: error/status + filter prompt
	if m.menuHeader() != "" {
		used++
	}
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		result[i] = line
		result[i].text = truncateText(line.text, width)
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	if width == 1 {
		return string([]rune(text)[:1])
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
