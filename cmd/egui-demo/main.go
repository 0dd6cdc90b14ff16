// Copyright (c) 2026, The egui-demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command egui-demo opens a window and renders a small immediate-mode
// UI on the GPU until the window is closed or Escape is pressed.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/evopen/egui-demo/app"
	"github.com/evopen/egui-demo/config"
)

func init() {
	// GLFW event processing must stay on the thread that created the
	// window.
	runtime.LockOSThread()
}

func main() {
	cfgPath := flag.String("config", "egui-demo.toml", "configuration file")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose || cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))

	var reload <-chan *config.Config
	watcher, err := config.Watch(*cfgPath, logger)
	if err != nil {
		logger.Error("config watch disabled", "err", err)
	} else {
		reload = watcher.C()
		defer watcher.Close()
	}

	if err := app.Run(cfg, logger, reload); err != nil {
		logger.Error("fatal", "err", err)
		os.Exit(1)
	}
}
