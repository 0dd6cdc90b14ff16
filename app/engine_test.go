// Copyright (c) 2026, The egui-demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"errors"
	"image"
	"image/color"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evopen/egui-demo/gpu"
	"github.com/evopen/egui-demo/ui"
	"github.com/evopen/egui-demo/uirender"
)

type fakeComposer struct {
	events  []ui.Event
	screens []uirender.ScreenDescriptor
	frame   ui.FrameState
}

func (f *fakeComposer) Input(ev ui.Event) { f.events = append(f.events, ev) }

func (f *fakeComposer) Compose(screen uirender.ScreenDescriptor) *ui.FrameState {
	f.screens = append(f.screens, screen)
	return &f.frame
}

type fakeRenderer struct {
	uploads int
	submits []color.RGBA

	// submitErrs is consumed one per EncodeAndSubmit call; exhausted
	// means nil.
	submitErrs []error
}

func (f *fakeRenderer) Upload(frame *ui.FrameState, screen uirender.ScreenDescriptor) error {
	f.uploads++
	return nil
}

func (f *fakeRenderer) EncodeAndSubmit(frame *ui.FrameState, screen uirender.ScreenDescriptor, clear color.RGBA) error {
	f.submits = append(f.submits, clear)
	if len(f.submitErrs) == 0 {
		return nil
	}
	err := f.submitErrs[0]
	f.submitErrs = f.submitErrs[1:]
	return err
}

type fakeChain struct {
	resizes []image.Point
}

func (f *fakeChain) Resize(size image.Point) { f.resizes = append(f.resizes, size) }

func newTestEngine() (*Engine, *fakeComposer, *fakeRenderer, *fakeChain) {
	comp := &fakeComposer{}
	rend := &fakeRenderer{}
	chain := &fakeChain{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := NewEngine(logger, comp, rend, chain)
	e.Start(image.Pt(800, 600), 1)
	return e, comp, rend, chain
}

func TestEngineRendersWhenReady(t *testing.T) {
	e, comp, rend, chain := newTestEngine()
	assert.Equal(t, Ready, e.State())

	assert.NoError(t, e.RenderFrame())
	assert.Equal(t, Ready, e.State())
	assert.Equal(t, 1, rend.uploads)
	assert.Len(t, rend.submits, 1)
	assert.Empty(t, chain.resizes)
	assert.Equal(t, uirender.ScreenDescriptor{
		PhysicalWidth:  800,
		PhysicalHeight: 600,
		ScaleFactor:    1,
	}, comp.screens[0])
}

func TestEngineResizeCoalesces(t *testing.T) {
	e, comp, _, chain := newTestEngine()

	e.Handle(ResizeEvent(image.Pt(100, 100)))
	e.Handle(ResizeEvent(image.Pt(200, 200)))
	e.Handle(ResizeEvent(image.Pt(1024, 768)))
	assert.Equal(t, Resizing, e.State())

	assert.NoError(t, e.RenderFrame())
	// only the final size reaches the chain, exactly once
	assert.Equal(t, []image.Point{image.Pt(1024, 768)}, chain.resizes)
	assert.Equal(t, image.Pt(1024, 768), e.Size())
	assert.Equal(t, uint32(1024), comp.screens[0].PhysicalWidth)

	assert.NoError(t, e.RenderFrame())
	assert.Len(t, chain.resizes, 1)
}

func TestEngineZeroSizeSkipsFrame(t *testing.T) {
	e, comp, rend, chain := newTestEngine()

	e.Handle(ResizeEvent(image.Pt(0, 600)))
	assert.NoError(t, e.RenderFrame())
	assert.Equal(t, []image.Point{image.Pt(0, 600)}, chain.resizes)
	assert.Empty(t, comp.screens)
	assert.Zero(t, rend.uploads)
	assert.Equal(t, Ready, e.State())

	// a later real size resumes rendering
	e.Handle(ResizeEvent(image.Pt(640, 480)))
	assert.NoError(t, e.RenderFrame())
	assert.Len(t, comp.screens, 1)
}

func TestEngineStaleRetriesOnce(t *testing.T) {
	e, _, rend, chain := newTestEngine()
	rend.submitErrs = []error{gpu.ErrSurfaceStale}

	assert.NoError(t, e.RenderFrame())
	assert.Len(t, rend.submits, 2)
	assert.Equal(t, []image.Point{image.Pt(800, 600)}, chain.resizes)
	assert.Equal(t, Ready, e.State())
}

func TestEngineStaleTwiceIsFatal(t *testing.T) {
	e, _, rend, chain := newTestEngine()
	rend.submitErrs = []error{gpu.ErrSurfaceStale, gpu.ErrSurfaceStale}

	err := e.RenderFrame()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, gpu.ErrSurfaceStale))
	assert.Len(t, rend.submits, 2)
	assert.Len(t, chain.resizes, 1)
}

func TestEngineZeroSizeAcquireIsNotFatal(t *testing.T) {
	e, _, rend, _ := newTestEngine()
	rend.submitErrs = []error{gpu.ErrZeroSize}

	assert.NoError(t, e.RenderFrame())
	assert.Equal(t, Ready, e.State())
}

func TestEngineCloseTerminates(t *testing.T) {
	e, comp, rend, _ := newTestEngine()

	e.Handle(Event{Kind: KindClose})
	assert.Equal(t, Terminated, e.State())

	// terminated engines ignore everything
	assert.NoError(t, e.RenderFrame())
	assert.Zero(t, rend.uploads)
	e.Handle(ResizeEvent(image.Pt(10, 10)))
	assert.Equal(t, Terminated, e.State())
	e.Input(ui.Event{Kind: ui.PointerMove})
	assert.Empty(t, comp.events)
}

func TestEngineEscapeTerminates(t *testing.T) {
	e, _, _, _ := newTestEngine()

	e.Handle(KeyPressEvent(ui.KeyEnter))
	assert.Equal(t, Ready, e.State())

	e.Handle(KeyPressEvent(ui.KeyEscape))
	assert.Equal(t, Terminated, e.State())
}

func TestEngineOtherEventsIgnored(t *testing.T) {
	e, _, _, _ := newTestEngine()
	e.Handle(Event{Kind: KindOther})
	assert.Equal(t, Ready, e.State())
}

func TestEngineInputReachesComposer(t *testing.T) {
	e, comp, _, _ := newTestEngine()
	e.Input(ui.Event{Kind: ui.PointerMove, Pos: ui.Vec2{X: 3, Y: 4}})
	e.Input(ui.ButtonPress(ui.ButtonLeft))
	assert.Len(t, comp.events, 2)
	assert.Equal(t, ui.PointerMove, comp.events[0].Kind)
}

func TestEngineClearColor(t *testing.T) {
	e, _, rend, _ := newTestEngine()

	assert.NoError(t, e.RenderFrame())
	assert.Equal(t, color.RGBA{B: 255, A: 255}, rend.submits[0])

	e.SetClearColor(color.RGBA{R: 255, A: 255})
	assert.NoError(t, e.RenderFrame())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, rend.submits[1])
}

func TestEngineStartOnce(t *testing.T) {
	e, _, _, _ := newTestEngine()
	e.Start(image.Pt(1, 1), 2)
	assert.Equal(t, image.Pt(800, 600), e.Size())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "uninitialized", Uninitialized.String())
	assert.Equal(t, "terminated", Terminated.String())
	assert.Equal(t, "resize", KindResize.String())
}
