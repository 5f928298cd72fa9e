// Package config provides configuration loading for wisp using TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// General holds top-level behavior settings.
type General struct {
	Home string `toml:"home"`
}

// Fetch holds HTTP retrieval settings.
type Fetch struct {
	UserAgent      string `toml:"user_agent"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Search holds the search engine template.
type Search struct {
	Engine string `toml:"engine"`
}

// Session holds session restore settings.
type Session struct {
	Restore bool `toml:"restore"`
}

// Config is the main configuration struct.
type Config struct {
	General General `toml:"general"`
	Fetch   Fetch   `toml:"fetch"`
	Search  Search  `toml:"search"`
	Session Session `toml:"session"`

	// Redirects maps a URL substring to its replacement. A [redirects]
	// table in the user config replaces the default table wholesale.
	Redirects map[string]string `toml:"redirects"`

	// Keys maps an action name to the key names bound to it. Actions
	// missing from the user config keep their built-in bindings.
	Keys map[string][]string `toml:"keys"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		General: General{
			Home: "https://simple-web.org/",
		},
		Fetch: Fetch{
			UserAgent:      "Wisp/1.0 (Terminal Browser)",
			TimeoutSeconds: 30,
		},
		Search: Search{
			Engine: "https://lite.duckduckgo.com/lite?q=",
		},
		Session: Session{
			Restore: true,
		},
		Redirects: DefaultRedirects(),
		Keys:      DefaultKeys(),
	}
}

// DefaultRedirects returns the built-in frontend substitution table.
func DefaultRedirects() map[string]string {
	return map[string]string{
		"twitter.com":    "nitter.net",
		"www.reddit.com": "teddit.pussthecat.org",
		"github.com":     "gh.bloatcat.tk",
	}
}

// DefaultKeys returns the built-in key bindings. Key names follow
// bubbletea's key event strings.
func DefaultKeys() map[string][]string {
	return map[string][]string{
		"quit":       {"q", "Q", "esc"},
		"enter":      {"enter"},
		"back":       {"backspace"},
		"forward":    {"tab"},
		"open":       {"i"},
		"help":       {"?"},
		"bookmark":   {"b"},
		"copy":       {"c"},
		"next_line":  {"j", "down", "right"},
		"prev_line":  {"k", "up", "left"},
		"first_line": {"g"},
		"last_line":  {"G"},
	}
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wisp"), nil
}

// Path returns the path to the user's config file.
func Path() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads configuration, layering user config on top of defaults.
// Returns the default config if no user config exists.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom loads configuration from an explicit path. TOML values are
// decoded over the defaults, so anything the file doesn't mention stays
// at its default. Key bindings merge per action; a redirects table
// replaces the default rules.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	cfg.Redirects = nil
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if cfg.Redirects == nil {
		cfg.Redirects = DefaultRedirects()
	}
	return cfg, nil
}

// DefaultTOML returns the default configuration as a TOML string.
// Used for --init-config to generate a user config file.
func DefaultTOML() string {
	return `# Wisp configuration
# Save to ~/.config/wisp/config.toml and customize
# Only include settings you want to change from defaults

[general]
home = "https://simple-web.org/"   # Opened when no URL and no session is given

[search]
# Typed input that is not an https:// URL is appended to this template
# with spaces joined by +
engine = "https://lite.duckduckgo.com/lite?q="

[fetch]
user_agent = "Wisp/1.0 (Terminal Browser)"
timeout_seconds = 30

[session]
restore = true                # Reopen the previous session on startup

# Frontend redirects, applied before every fetch. The first rule whose
# left side occurs in the URL rewrites it once. Defining this table
# replaces the built-in rules.
[redirects]
"twitter.com" = "nitter.net"
"www.reddit.com" = "teddit.pussthecat.org"
"github.com" = "gh.bloatcat.tk"

# Key bindings. Each action takes a list of key names; actions you
# leave out keep their defaults.
[keys]
quit = ["q", "Q", "esc"]
enter = ["enter"]
back = ["backspace"]
forward = ["tab"]
open = ["i"]
help = ["?"]
bookmark = ["b"]
copy = ["c"]
next_line = ["j", "down", "right"]
prev_line = ["k", "up", "left"]
first_line = ["g"]
last_line = ["G"]
`
}
