// Command wisp is a terminal hypertext browser. Pages are fetched over
// HTTP, reduced to their readable content and laid out for a character
// grid; links are followed with the keyboard.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"wisp/bookmarks"
	"wisp/config"
	"wisp/fetch"
	"wisp/layout"
	"wisp/nav"
	"wisp/session"
	"wisp/theme"
	"wisp/ui"
)

var rootCmd = &cobra.Command{
	Use:   "wisp [url]",
	Short: "wisp - a terminal hypertext browser",
	Long: `wisp fetches pages, strips them down to readable hypertext and lets
you follow links with the keyboard. Input that is not an https:// URL
is sent to the configured search engine.

Generate a config file with:  wisp --init-config > ~/.config/wisp/config.toml`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if ok, _ := cmd.Flags().GetBool("init-config"); ok {
			fmt.Print(config.DefaultTOML())
			return nil
		}
		var url string
		if len(args) > 0 {
			url = args[0]
		}
		if ok, _ := cmd.Flags().GetBool("print"); ok {
			width, _ := cmd.Flags().GetInt("width")
			return runPrint(url, width)
		}
		logFile, _ := cmd.Flags().GetString("log")
		return run(url, logFile)
	},
}

func init() {
	rootCmd.Flags().BoolP("print", "p", false, "render the page to stdout and exit")
	rootCmd.Flags().Int("width", 80, "line width for print mode")
	rootCmd.Flags().String("log", "", "append debug logs to this file")
	rootCmd.Flags().Bool("init-config", false, "print the default config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger returns a file-backed logger, or a silent one when no log
// destination is given. The TUI owns the terminal, so logs can never go
// to stderr while it runs.
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := log.New(f)
	logger.SetLevel(log.DebugLevel)
	return logger, func() { f.Close() }, nil
}

// runPrint renders one page to stdout and exits: no TUI, no history, no
// styling, just the laid-out text at the requested width.
func runPrint(rawURL string, width int) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var page *fetch.Page
	if rawURL == "" {
		marks, _ := bookmarks.Load()
		page = ui.Landing(marks)
	} else {
		target := nav.NewRedirector(cfg.Redirects).Apply(nav.Resolve(rawURL, cfg.Search.Engine))
		client := fetch.New(fetch.Options{
			UserAgent:      cfg.Fetch.UserAgent,
			TimeoutSeconds: cfg.Fetch.TimeoutSeconds,
		}, log.New(io.Discard))
		page, err = client.Fetch(context.Background(), target)
		if err != nil {
			return err
		}
	}

	for _, ln := range layout.New(width, theme.Plain()).Render(page.Doc, nil) {
		fmt.Println(ln.Text)
	}
	return nil
}

func run(rawURL, logFile string) error {
	logger, closeLog, err := newLogger(logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	marks, err := bookmarks.Load()
	if err != nil {
		logger.Warn("bookmarks unavailable", "err", err)
	}

	// Startup precedence: explicit argument, then the saved session,
	// then the configured home page, then the landing page.
	startURL := rawURL
	if startURL != "" {
		startURL = nav.Resolve(startURL, cfg.Search.Engine)
	}
	var sess *session.Session
	if startURL == "" && cfg.Session.Restore {
		if s, err := session.Load(); err == nil && len(s.Stack) > 0 {
			sess = s
		}
	}
	if startURL == "" && sess == nil {
		startURL = cfg.General.Home
	}

	client := fetch.New(fetch.Options{
		UserAgent:      cfg.Fetch.UserAgent,
		TimeoutSeconds: cfg.Fetch.TimeoutSeconds,
	}, logger)

	var reloads <-chan *config.Config
	if path, perr := config.Path(); perr == nil {
		ch, stop, werr := config.Watch(path, logger)
		if werr != nil {
			logger.Warn("config watch unavailable", "err", werr)
		} else {
			reloads = ch
			defer stop()
		}
	}

	sessionPath, err := session.Path()
	if err != nil {
		logger.Warn("session persistence unavailable", "err", err)
		sessionPath = ""
	}

	m := ui.New(ui.Options{
		Config:      cfg,
		Theme:       theme.Default(),
		Client:      client,
		Bookmarks:   marks,
		Logger:      logger,
		Reloads:     reloads,
		SessionPath: sessionPath,
		StartURL:    startURL,
		Session:     sess,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
