// Copyright (c) 2026, The egui-demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package app drives the presentation shell: it owns the frame engine
// state machine and the GLFW event loop that feeds it.
package app

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/evopen/egui-demo/gpu"
	"github.com/evopen/egui-demo/ui"
	"github.com/evopen/egui-demo/uirender"
)

// State is the engine lifecycle state.
type State int32

const (
	// Uninitialized is the state before Start.
	Uninitialized State = iota

	// Ready means the engine can render a frame.
	Ready

	// Resizing means a resize is pending and will be applied before
	// the next frame is acquired.
	Resizing

	// Rendering means a frame is being produced.
	Rendering

	// Terminated is final: all further events and frames are ignored.
	Terminated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Resizing:
		return "resizing"
	case Rendering:
		return "rendering"
	case Terminated:
		return "terminated"
	}
	return "invalid"
}

// Composer produces one frame of UI output.
type Composer interface {
	// Input forwards a raw UI input event. Input reaches the composer
	// before the engine interprets the underlying window event.
	Input(ev ui.Event)

	// Compose builds the frame for the given screen.
	Compose(screen uirender.ScreenDescriptor) *ui.FrameState
}

// FrameRenderer uploads composed output and turns it into one
// presented frame.
type FrameRenderer interface {
	Upload(frame *ui.FrameState, screen uirender.ScreenDescriptor) error
	EncodeAndSubmit(frame *ui.FrameState, screen uirender.ScreenDescriptor, clearColor color.RGBA) error
}

// Chain is the presentable-image chain the engine resizes.
type Chain interface {
	Resize(size image.Point)
}

// Engine folds window events into lifecycle transitions and renders
// frames. It is single-threaded: Handle, Input and RenderFrame must
// all be called from the event-loop goroutine.
type Engine struct {
	logger   *slog.Logger
	composer Composer
	renderer FrameRenderer
	chain    Chain

	state State
	size  image.Point // current chain size in pixels
	scale float32

	// pending is the coalesced resize target. Only the most recent
	// size survives; it is applied exactly once, before the next
	// frame acquire.
	pending    image.Point
	hasPending bool

	clear color.RGBA
}

// NewEngine returns an engine in the Uninitialized state.
func NewEngine(logger *slog.Logger, composer Composer, renderer FrameRenderer, chain Chain) *Engine {
	return &Engine{
		logger:   logger,
		composer: composer,
		renderer: renderer,
		chain:    chain,
		scale:    1,
		clear:    color.RGBA{B: 255, A: 255},
	}
}

// Start moves the engine to Ready at the given initial size.
func (e *Engine) Start(size image.Point, scale float32) {
	if e.state != Uninitialized {
		return
	}
	e.size = size
	if scale > 0 {
		e.scale = scale
	}
	e.state = Ready
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Size returns the current chain size in pixels.
func (e *Engine) Size() image.Point { return e.size }

// SetClearColor sets the frame background.
func (e *Engine) SetClearColor(c color.RGBA) { e.clear = c }

// SetScale sets the point-to-pixel scale factor.
func (e *Engine) SetScale(s float32) {
	if s > 0 {
		e.scale = s
	}
}

// Input forwards a raw UI event to the composer. Terminated engines
// drop input.
func (e *Engine) Input(ev ui.Event) {
	if e.state == Terminated {
		return
	}
	e.composer.Input(ev)
}

// Handle folds one window event into the engine state. Resizes
// coalesce: only the last size before the next frame is applied.
// Close requests and Escape presses terminate; everything else is
// ignored here (it already reached the composer via Input).
func (e *Engine) Handle(ev Event) {
	if e.state == Terminated {
		return
	}
	switch ev.Kind {
	case KindResize:
		e.pending = ev.Size
		e.hasPending = true
		if e.state == Ready {
			e.state = Resizing
		}
	case KindClose:
		e.logger.Debug("close requested")
		e.state = Terminated
	case KindKeyPress:
		if ev.Key == ui.KeyEscape {
			e.logger.Debug("escape pressed")
			e.state = Terminated
		}
	}
}

// screen returns the descriptor for the current size and scale.
func (e *Engine) screen() uirender.ScreenDescriptor {
	return uirender.ScreenDescriptor{
		PhysicalWidth:  uint32(e.size.X),
		PhysicalHeight: uint32(e.size.Y),
		ScaleFactor:    e.scale,
	}
}

// RenderFrame produces and presents one frame. A pending resize is
// applied first. Zero-size frames are skipped without error. A stale
// chain at submit time is remedied by resizing to the current size
// and retrying once; a second stale result is fatal.
func (e *Engine) RenderFrame() error {
	if e.state == Terminated {
		return nil
	}
	if e.hasPending {
		e.size = e.pending
		e.hasPending = false
		e.chain.Resize(e.size)
		e.state = Ready
	}
	if e.size.X == 0 || e.size.Y == 0 {
		return nil
	}

	e.state = Rendering
	defer func() {
		if e.state == Rendering {
			e.state = Ready
		}
	}()

	screen := e.screen()
	frame := e.composer.Compose(screen)
	for _, a := range frame.Actions {
		e.logger.Info("clicked", "container", a.Container, "widget", a.Widget)
	}
	if err := e.renderer.Upload(frame, screen); err != nil {
		return fmt.Errorf("app: upload: %w", err)
	}

	err := e.renderer.EncodeAndSubmit(frame, screen, e.clear)
	if errors.Is(err, gpu.ErrSurfaceStale) {
		e.logger.Debug("surface stale, reconfiguring", "size", e.size)
		e.chain.Resize(e.size)
		err = e.renderer.EncodeAndSubmit(frame, screen, e.clear)
	}
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gpu.ErrZeroSize):
		return nil
	case errors.Is(err, gpu.ErrSurfaceStale):
		return fmt.Errorf("app: surface stale after reconfigure: %w", err)
	default:
		return fmt.Errorf("app: present: %w", err)
	}
}
