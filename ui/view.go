package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	return strings.Join([]string{
		m.urlBarView(),
		m.contentView(),
		m.statusView(),
		m.helpView(),
	}, "\n")
}

// urlBarView is the top row: the entry line while typing, otherwise the
// address of the page being shown (or fetched).
func (m Model) urlBarView() string {
	if m.mode == modeInput {
		return m.th.URLBar.Width(m.width).MaxWidth(m.width).Render(m.input.View())
	}
	current := m.currentURL()
	if m.loading && m.pending != "" {
		current = m.pending
	}
	if current == "" {
		current = "wisp://start"
	}
	line := runewidth.Truncate("\U0001F50D "+current, m.width, "…")
	return m.th.URLBar.Width(m.width).Render(line)
}

func (m Model) contentView() string {
	h := m.viewHeight()
	if len(m.overlays) > 0 {
		return m.overlayView(h)
	}
	if m.page == nil {
		msg := m.spin.View() + " loading " + m.pending
		return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, msg)
	}
	rows := make([]string, 0, h)
	for i := m.scroll; i < len(m.lines) && i-m.scroll < h; i++ {
		rows = append(rows, m.lines[i].Text)
	}
	for len(rows) < h {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

// overlayView centers the topmost overlay in the content area.
func (m Model) overlayView(h int) string {
	top := m.overlays[len(m.overlays)-1]
	var body string
	switch top.kind {
	case overlayQuit:
		body = m.th.Title.Render("Quit wisp?") + "\n\n" +
			m.th.HelpBar.Render("y/enter quit · n/esc stay")
	case overlayHelp:
		hv := m.help
		hv.ShowAll = true
		body = m.th.Title.Render("Keys") + "\n\n" + hv.View(m.keys)
	}
	box := m.th.Overlay.Render(body)
	return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) titleText() string {
	if m.page != nil && m.page.Title != "" {
		return m.page.Title
	}
	if cur := m.currentURL(); cur != "" {
		return domain(cur)
	}
	return "wisp"
}

func (m Model) statusView() string {
	left := "\U0001F30D " + m.titleText()
	if max := m.width / 2; lipgloss.Width(left) > max {
		left = runewidth.Truncate(left, max, "…")
	}
	right := fmt.Sprintf("%d%%", m.scrollPercent())
	if m.loading {
		right = m.spin.View() + " " + runewidth.Truncate(domain(m.pending), 24, "…")
	}

	mid := m.status
	avail := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if avail < 0 {
		avail = 0
	}
	if lipgloss.Width(mid) > avail {
		mid = runewidth.Truncate(mid, avail, "…")
	}

	pad := m.width - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right) - 1
	if pad < 1 {
		pad = 1
	}
	line := left + " " + mid + strings.Repeat(" ", pad) + right
	return m.th.StatusBar.Width(m.width).MaxWidth(m.width).Render(line)
}

func (m Model) scrollPercent() int {
	if len(m.lines) <= m.viewHeight() {
		return 100
	}
	return (m.scroll + m.viewHeight()) * 100 / len(m.lines)
}

func (m Model) helpView() string {
	return m.help.View(m.keys)
}
