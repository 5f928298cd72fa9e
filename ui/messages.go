package ui

import (
	"wisp/config"
	"wisp/fetch"
)

// pageMsg delivers a completed fetch to the update loop. gen records
// which navigation issued the request so stale completions can be
// discarded after the user has already moved on.
type pageMsg struct {
	gen  uint64
	url  string
	page *fetch.Page
	err  error
}

// configMsg carries a live-reloaded configuration from the file watcher.
type configMsg struct {
	cfg *config.Config
}
