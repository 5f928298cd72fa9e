package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"wisp/config"
	"wisp/fetch"
	"wisp/session"
)

// fetchCmd retrieves url off the update loop. The generation it was
// issued under travels with the result.
func fetchCmd(client *fetch.Client, gen uint64, url string) tea.Cmd {
	return func() tea.Msg {
		page, err := client.Fetch(context.Background(), url)
		return pageMsg{gen: gen, url: url, page: page, err: err}
	}
}

// watchCmd waits for the next configuration reload. The receiver
// re-issues it after every delivery to keep the channel pumped.
func watchCmd(ch <-chan *config.Config) tea.Cmd {
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return configMsg{cfg: cfg}
	}
}

// saveSessionCmd persists the navigation history so the next launch
// can pick up where this one left off.
func (m Model) saveSessionCmd() tea.Cmd {
	if m.sessionPath == "" {
		return nil
	}
	path := m.sessionPath
	sess := &session.Session{Stack: m.nav.History.Entries(), Position: m.nav.History.Position()}
	logger := m.logger
	return func() tea.Msg {
		if err := session.SaveTo(path, sess); err != nil {
			logger.Warn("session save failed", "err", err)
		}
		return nil
	}
}
