package config

import (
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config whenever the file at path changes and
// delivers the result on the returned channel. The directory is watched
// rather than the file so editors that replace the file on save still
// trigger a reload. Files that fail to parse are logged and skipped,
// keeping the previous config in effect. The returned stop function
// ends the watch and closes the channel.
func Watch(path string, logger *log.Logger) (<-chan *Config, func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, nil, err
	}

	ch := make(chan *Config, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				cfg, err := LoadFrom(path)
				if err != nil {
					logger.Warn("config reload failed", "err", err)
					continue
				}
				logger.Info("config reloaded", "path", path)
				// Keep only the newest config if the last one was
				// never consumed.
				select {
				case <-ch:
				default:
				}
				ch <- cfg
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher", "err", err)
			}
		}
	}()
	return ch, func() { watcher.Close() }, nil
}
