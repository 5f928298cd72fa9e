// Package ui drives the interactive browser: a bubbletea model that
// owns navigation state, issues fetches, and renders pages through the
// layout engine. All state changes happen on the update loop; fetches
// and file writes run as commands and report back via messages.
package ui

import (
	"io"
	"net/url"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"wisp/bookmarks"
	"wisp/config"
	"wisp/fetch"
	"wisp/hypertext"
	"wisp/layout"
	"wisp/nav"
	"wisp/session"
	"wisp/theme"
)

// inputMode says where keystrokes go when no overlay is open.
type inputMode int

const (
	modeNormal inputMode = iota
	modeInput
)

type overlayKind int

const (
	overlayHelp overlayKind = iota
	overlayQuit
)

// overlay remembers the input mode it interrupted so closing it
// restores the exact prior state rather than recomputing one.
type overlay struct {
	kind  overlayKind
	under inputMode
}

// Options wires the model's collaborators. Zero-value fields fall back
// to sensible defaults so tests can construct models piecemeal.
type Options struct {
	Config      *config.Config
	Theme       *theme.Theme
	Client      *fetch.Client
	Bookmarks   *bookmarks.Store
	Logger      *log.Logger
	Reloads     <-chan *config.Config
	SessionPath string

	// StartURL is opened on launch. When empty, a restored session's
	// current entry is loaded instead, and failing that the landing
	// page is shown.
	StartURL string
	Session  *session.Session
}

type Model struct {
	cfg         *config.Config
	keys        keymap
	th          *theme.Theme
	client      *fetch.Client
	nav         *nav.Navigator
	marks       *bookmarks.Store
	logger      *log.Logger
	reloads     <-chan *config.Config
	sessionPath string

	width  int
	height int

	page   *fetch.Page
	ring   *hypertext.FocusRing
	lines  []layout.Line
	scroll int

	mode    inputMode
	input   textinput.Model
	sugg    []string
	suggIdx int

	overlays []overlay
	help     help.Model

	spin    spinner.Model
	loading bool
	pending string
	gen     uint64

	status string

	initCmds []tea.Cmd
}

func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	th := opts.Theme
	if th == nil {
		th = theme.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	client := opts.Client
	if client == nil {
		client = fetch.New(fetch.Options{UserAgent: cfg.Fetch.UserAgent, TimeoutSeconds: cfg.Fetch.TimeoutSeconds}, logger)
	}

	input := textinput.New()
	input.Prompt = "\U0001F449 "
	input.Placeholder = "type to search, https:// to visit"

	m := Model{
		cfg:         cfg,
		keys:        newKeymap(cfg.Keys),
		th:          th,
		client:      client,
		nav:         nav.New(cfg.Redirects),
		marks:       opts.Bookmarks,
		logger:      logger,
		reloads:     opts.Reloads,
		sessionPath: opts.SessionPath,
		ring:        hypertext.NewFocusRing(nil),
		input:       input,
		help:        help.New(),
		spin:        spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(th.Accent)),
	}

	switch {
	case opts.StartURL != "":
		final := m.nav.Open(opts.StartURL)
		m.prime(final)
	case opts.Session != nil:
		m.nav.History.Restore(opts.Session.Stack, opts.Session.Position)
		if current := m.nav.History.Current(); current != "" {
			m.prime(current)
		} else {
			m.showLanding()
		}
	default:
		m.showLanding()
	}
	return m
}

// prime queues the first fetch for Init to run.
func (m *Model) prime(url string) {
	m.gen++
	m.loading = true
	m.pending = url
	m.initCmds = append(m.initCmds, fetchCmd(m.client, m.gen, url))
}

func (m *Model) showLanding() {
	m.page = landing(m.marks, m.keys)
	m.ring = hypertext.NewFocusRing(m.page.Doc)
	*m = m.reflow()
}

func (m Model) Init() tea.Cmd {
	cmds := m.initCmds
	if m.loading {
		cmds = append(cmds, m.spin.Tick)
	}
	if m.reloads != nil {
		cmds = append(cmds, watchCmd(m.reloads))
	}
	return tea.Batch(cmds...)
}

// contentWidth is the column budget handed to the layout engine. Before
// the first WindowSizeMsg arrives the terminal size is unknown, so a
// conventional 80 keeps early renders sane.
func (m Model) contentWidth() int {
	if m.width < 1 {
		return 80
	}
	return m.width
}

// viewHeight is the number of page lines visible between the URL bar
// and the status and help rows.
func (m Model) viewHeight() int {
	h := m.height - 3
	if h < 1 {
		return 1
	}
	return h
}

func (m Model) maxScroll() int {
	max := len(m.lines) - m.viewHeight()
	if max < 0 {
		return 0
	}
	return max
}

// reflow re-renders the current document at the current width with the
// current focus, then clamps the scroll position to the new extent.
func (m Model) reflow() Model {
	if m.page == nil {
		m.lines = nil
		m.scroll = 0
		return m
	}
	var focused *hypertext.Node
	if m.ring != nil {
		focused, _ = m.ring.Current()
	}
	m.lines = layout.New(m.contentWidth(), m.th).Render(m.page.Doc, focused)
	if m.scroll > m.maxScroll() {
		m.scroll = m.maxScroll()
	}
	return m
}

func (m Model) scrollBy(delta int) Model {
	m.scroll += delta
	if m.scroll < 0 {
		m.scroll = 0
	}
	if m.scroll > m.maxScroll() {
		m.scroll = m.maxScroll()
	}
	return m
}

// focusedLine reports the index of the line containing the focused
// link, or -1 when nothing is focused or the link rendered nowhere.
func (m Model) focusedLine() int {
	cur, ok := m.ring.Current()
	if !ok {
		return -1
	}
	for i, ln := range m.lines {
		for _, l := range ln.Links {
			if l == cur {
				return i
			}
		}
	}
	return -1
}

// ensureFocusVisible scrolls the focused link's line into the viewport.
func (m Model) ensureFocusVisible() Model {
	idx := m.focusedLine()
	if idx < 0 {
		return m
	}
	if idx < m.scroll {
		m.scroll = idx
	} else if idx >= m.scroll+m.viewHeight() {
		m.scroll = idx - m.viewHeight() + 1
	}
	return m
}

// moveFocus steps the focus ring. With no links, or when the ring is
// already clamped at the boundary, it degrades to scrolling by a line
// so the user can keep reading.
func (m Model) moveFocus(delta int) Model {
	if m.ring.Len() == 0 {
		return m.scrollBy(delta)
	}
	prev, _ := m.ring.Current()
	m.ring.Move(delta)
	cur, _ := m.ring.Current()
	if cur == prev {
		return m.scrollBy(delta)
	}
	return m.reflow().ensureFocusVisible()
}

// fetch kicks off a page load under a fresh generation. Any fetch
// still in flight becomes stale and its result will be dropped.
func (m Model) fetch(url string) (Model, tea.Cmd) {
	m.gen++
	m.loading = true
	m.pending = url
	m.status = ""
	return m, tea.Batch(fetchCmd(m.client, m.gen, url), m.spin.Tick)
}

// openURL records a new navigation, applying redirect rules first so
// history only ever holds the URL that was actually requested.
func (m Model) openURL(raw string) (Model, tea.Cmd) {
	final := m.nav.Open(raw)
	m.logger.Info("navigating", "url", final)
	return m.fetch(final)
}

// currentURL is what the address bar shows and what bookmarking saves.
func (m Model) currentURL() string {
	return m.nav.History.Current()
}

func domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
