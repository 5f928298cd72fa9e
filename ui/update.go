package ui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"wisp/fetch"
	"wisp/hypertext"
	"wisp/nav"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if w := msg.Width - 6; w > 10 {
			m.input.Width = w
		}
		return m.reflow().ensureFocusVisible(), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pageMsg:
		return m.handlePage(msg)

	case configMsg:
		m.cfg = msg.cfg
		m.keys = newKeymap(msg.cfg.Keys)
		m.nav.SetRules(msg.cfg.Redirects)
		m.status = "config reloaded"
		if m.reloads == nil {
			return m, nil
		}
		return m, watchCmd(m.reloads)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handlePage applies a finished fetch. Results from superseded
// navigations are dropped so a slow page can never clobber the one the
// user asked for afterwards.
func (m Model) handlePage(msg pageMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		m.logger.Debug("dropping stale page", "url", msg.url)
		return m, nil
	}
	m.loading = false
	m.pending = ""
	page := msg.page
	if msg.err != nil {
		page = &fetch.Page{
			URL:      msg.url,
			FinalURL: msg.url,
			Title:    "error",
			Doc:      hypertext.ErrorDocument(msg.url, msg.err),
		}
	}
	m.page = page
	m.ring = hypertext.NewFocusRing(page.Doc)
	m.scroll = 0
	return m.reflow(), nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Sequence(m.saveSessionCmd(), tea.Quit)
	}
	if len(m.overlays) > 0 {
		return m.overlayKey(msg)
	}
	if m.mode == modeInput {
		return m.inputKey(msg)
	}
	return m.normalKey(msg)
}

// overlayKey gives the topmost overlay exclusive key handling. Keys it
// does not recognise are swallowed rather than leaking to the page.
func (m Model) overlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	top := m.overlays[len(m.overlays)-1]
	switch top.kind {
	case overlayQuit:
		switch msg.String() {
		case "y", "Y", "enter":
			return m, tea.Sequence(m.saveSessionCmd(), tea.Quit)
		case "n", "N", "esc", "q":
			return m.popOverlay(), nil
		}
	case overlayHelp:
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" || msg.String() == "q" {
			return m.popOverlay(), nil
		}
	}
	return m, nil
}

func (m Model) popOverlay() Model {
	top := m.overlays[len(m.overlays)-1]
	m.overlays = m.overlays[:len(m.overlays)-1]
	m.mode = top.under
	return m
}

// inputKey handles the URL entry line. Esc cancels, enter resolves the
// text into a navigation, tab cycles bookmark suggestions, and
// everything else edits the line.
func (m Model) inputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		m.sugg, m.suggIdx = nil, 0
		return m, nil
	case "enter":
		value := m.input.Value()
		m.mode = modeNormal
		m.input.Blur()
		m.sugg, m.suggIdx = nil, 0
		target := nav.Resolve(value, m.cfg.Search.Engine)
		if target == "" {
			return m, nil
		}
		return m.openURL(target)
	case "tab":
		return m.cycleSuggestion(), nil
	}
	m.sugg, m.suggIdx = nil, 0
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// cycleSuggestion fills the entry line from the bookmark store. The
// first tab fuzzy-matches what was typed, repeated tabs walk the
// matches. Typing anything resets the cycle.
func (m Model) cycleSuggestion() Model {
	if len(m.sugg) == 0 {
		if m.marks == nil {
			return m
		}
		if query := strings.TrimSpace(m.input.Value()); query == "" {
			all := m.marks.All()
			if len(all) > 8 {
				all = all[:8]
			}
			m.sugg = all
		} else {
			m.sugg = m.marks.Suggest(query, 8)
		}
		m.suggIdx = 0
	} else {
		m.suggIdx = (m.suggIdx + 1) % len(m.sugg)
	}
	if len(m.sugg) == 0 {
		return m
	}
	m.input.SetValue(m.sugg[m.suggIdx])
	m.input.CursorEnd()
	return m
}

func (m Model) normalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.overlays = append(m.overlays, overlay{kind: overlayQuit, under: m.mode})
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.overlays = append(m.overlays, overlay{kind: overlayHelp, under: m.mode})
		return m, nil

	case key.Matches(msg, m.keys.Open):
		m.mode = modeInput
		m.input.SetValue(m.currentURL())
		m.input.CursorEnd()
		m.sugg, m.suggIdx = nil, 0
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Enter):
		var target string
		m.ring.Activate(func(url string) { target = url })
		if target == "" {
			return m, nil
		}
		return m.openURL(target)

	case key.Matches(msg, m.keys.Back):
		if url, ok := m.nav.Back(); ok {
			return m.fetch(url)
		}
		return m, nil

	case key.Matches(msg, m.keys.Forward):
		if url, ok := m.nav.Forward(); ok {
			return m.fetch(url)
		}
		return m, nil

	case key.Matches(msg, m.keys.Bookmark):
		return m.bookmarkCurrent(), nil

	case key.Matches(msg, m.keys.Copy):
		return m.copyLink(), nil

	case key.Matches(msg, m.keys.NextLine):
		return m.moveFocus(1), nil

	case key.Matches(msg, m.keys.PrevLine):
		return m.moveFocus(-1), nil

	case key.Matches(msg, m.keys.FirstLine):
		if m.ring.Len() > 0 {
			m.ring.First()
			m = m.reflow()
		}
		m.scroll = 0
		return m, nil

	case key.Matches(msg, m.keys.LastLine):
		if m.ring.Len() > 0 {
			m.ring.Last()
			m = m.reflow()
		}
		m.scroll = m.maxScroll()
		return m, nil
	}
	return m, nil
}

func (m Model) bookmarkCurrent() Model {
	url := m.currentURL()
	if url == "" {
		m.status = "nothing to bookmark"
		return m
	}
	if m.marks == nil {
		m.status = "bookmarks unavailable"
		return m
	}
	added, err := m.marks.Add(url)
	switch {
	case err != nil:
		m.logger.Warn("bookmark failed", "err", err)
		m.status = "bookmark failed"
	case added:
		m.status = "bookmarked " + domain(url)
	default:
		m.status = "already bookmarked"
	}
	return m
}

// copyLink puts the focused link's URL on the clipboard, or the current
// page URL when no link is focused.
func (m Model) copyLink() Model {
	text := m.currentURL()
	if link, ok := m.ring.Current(); ok {
		text = link.URL
	}
	if text == "" {
		return m
	}
	if err := clipboard.WriteAll(text); err != nil {
		m.logger.Warn("clipboard write failed", "err", err)
		m.status = "copy failed"
		return m
	}
	m.status = "copied " + text
	return m
}
