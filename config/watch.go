// Copyright (c) 2026, The egui-demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the configuration file whenever it changes on disk.
type Watcher struct {
	fw     *fsnotify.Watcher
	path   string
	logger *slog.Logger
	ch     chan *Config
	done   chan struct{}
}

// Watch starts watching path for changes. Each successful reload is
// delivered on C; invalid or unreadable files are logged and skipped.
// The channel holds at most one pending config: an unread config is
// replaced by a newer one.
func Watch(path string, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory, not the file: editors typically replace
	// the file by rename, which drops a watch on the file itself.
	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	w := &Watcher{
		fw:     fw,
		path:   filepath.Clean(path),
		logger: logger,
		ch:     make(chan *Config, 1),
		done:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// C delivers reloaded configurations.
func (w *Watcher) C() <-chan *Config {
	return w.ch
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			c, err := Load(w.path)
			if err != nil {
				w.logger.Error("config reload failed", "err", err)
				continue
			}
			w.logger.Info("config reloaded", "path", w.path)
			// Replace any unread pending config.
			select {
			case <-w.ch:
			default:
			}
			w.ch <- c
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watch error", "err", err)
		}
	}
}
