// Copyright (c) 2026, The egui-demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"image"
	"log/slog"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/evopen/egui-demo/config"
	"github.com/evopen/egui-demo/gpu"
	"github.com/evopen/egui-demo/ui"
	"github.com/evopen/egui-demo/uirender"
)

// scrollStep converts scroll wheel ticks to points.
const scrollStep = 16

// uiComposer adapts a ui.Context plus a build function to the
// Composer interface.
type uiComposer struct {
	ctx   *ui.Context
	build func(*ui.Context)
}

func (u *uiComposer) Input(ev ui.Event) { u.ctx.Input(ev) }

func (u *uiComposer) Compose(screen uirender.ScreenDescriptor) *ui.FrameState {
	u.ctx.SetScale(screen.ScaleFactor)
	w, h := screen.PointsSize()
	u.ctx.Begin(ui.Vec2{X: w, Y: h})
	u.build(u.ctx)
	return u.ctx.End()
}

// demoUI is the built-in demo scene: a full-screen panel of labels and
// buttons plus one floating window.
func demoUI(c *ui.Context) {
	c.Panel("demo", func(l *ui.Layout) {
		l.Label("1234567890")
		l.Button("numerous")
		l.Label("1234567890")
	})
	c.Window("hello", ui.Vec2{X: 320, Y: 120}, func(l *ui.Layout) {
		l.Label("click below")
		l.Button("a button")
	})
}

// Run opens the window, brings up the GPU stack and runs the event
// loop until the window is closed or Escape is pressed. Changed
// configurations arriving on reload are applied between frames; a nil
// reload channel disables live reload. Run must be called from the
// main OS thread.
func Run(cfg *config.Config, logger *slog.Logger, reload <-chan *config.Config) error {
	start := time.Now()

	if err := gpu.Init(); err != nil {
		return err
	}
	defer gpu.Terminate()

	win, err := gpu.NewWindow(image.Pt(cfg.Width, cfg.Height), cfg.Title)
	if err != nil {
		return err
	}
	defer win.Destroy()

	pp, err := gpu.ParsePowerPreference(cfg.PowerPreference)
	if err != nil {
		return err
	}
	pm, err := gpu.ParsePresentMode(cfg.PresentMode)
	if err != nil {
		return err
	}
	gp, sf, err := gpu.NewWindowGPU(win, &gpu.Options{
		PowerPreference: pp,
		Logger:          logger,
	}, pm)
	if err != nil {
		return err
	}
	defer gp.Release()
	defer sf.Release()

	rend, err := uirender.NewRenderer(gp, sf)
	if err != nil {
		return err
	}
	defer rend.Release()

	comp := &uiComposer{ctx: ui.NewContext(), build: demoUI}
	eng := NewEngine(logger, comp, rend, sf)

	fbw, fbh := win.GetFramebufferSize()
	sx, _ := win.GetContentScale()
	eng.Start(image.Pt(fbw, fbh), float32(sx))
	applyConfig(eng, sf, cfg, logger)

	installCallbacks(win, eng)

	logger.Info("initialized", "ms", time.Since(start).Milliseconds())

	for eng.State() != Terminated && !win.ShouldClose() {
		glfw.PollEvents()
		select {
		case c := <-reload:
			applyConfig(eng, sf, c, logger)
		default:
		}
		if err := eng.RenderFrame(); err != nil {
			return err
		}
	}
	logger.Info("shutting down", "state", eng.State())
	return nil
}

// applyConfig applies the live-reloadable parts of c. Window size and
// power preference changes take effect on restart only.
func applyConfig(eng *Engine, sf *gpu.Surface, c *config.Config, logger *slog.Logger) {
	clear, err := c.RGBA()
	if err != nil {
		logger.Error("bad clear color", "err", err)
	} else {
		eng.SetClearColor(clear)
	}
	if c.Scale > 0 {
		eng.SetScale(float32(c.Scale))
	}
	pm, err := gpu.ParsePresentMode(c.PresentMode)
	if err != nil {
		logger.Error("bad present mode", "err", err)
	} else if pm != sf.PresentMode() {
		sf.SetPresentMode(pm)
	}
}

// installCallbacks wires GLFW callbacks to the engine. Raw input is
// forwarded to the composer first, then the shell's own folding runs,
// so the UI sees every event even when the shell also acts on it.
func installCallbacks(win *glfw.Window, eng *Engine) {
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		eng.Input(ui.Event{Kind: ui.PointerMove, Pos: ui.Vec2{X: float32(x), Y: float32(y)}})
	})
	win.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if !entered {
			eng.Input(ui.Event{Kind: ui.PointerLeave})
		}
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		btn, ok := uiButton(b)
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			eng.Input(ui.ButtonPress(btn))
		case glfw.Release:
			eng.Input(ui.ButtonRelease(btn))
		}
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		eng.Input(ui.Event{Kind: ui.Scroll, Delta: ui.Vec2{
			X: float32(xoff) * scrollStep,
			Y: float32(yoff) * scrollStep,
		}})
	})
	win.SetCharCallback(func(_ *glfw.Window, r rune) {
		eng.Input(ui.Event{Kind: ui.Text, Rune: r})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		k := uiKey(key)
		switch action {
		case glfw.Press, glfw.Repeat:
			eng.Input(ui.Event{Kind: ui.KeyDown, Key: k, Pressed: true})
			if action == glfw.Press {
				eng.Handle(KeyPressEvent(k))
			}
		case glfw.Release:
			eng.Input(ui.Event{Kind: ui.KeyUp, Key: k})
		}
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		eng.Handle(ResizeEvent(image.Pt(w, h)))
	})
	win.SetContentScaleCallback(func(_ *glfw.Window, x, _ float32) {
		eng.SetScale(x)
	})
	win.SetCloseCallback(func(_ *glfw.Window) {
		eng.Handle(Event{Kind: KindClose})
	})
}

func uiButton(b glfw.MouseButton) (ui.Button, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return ui.ButtonLeft, true
	case glfw.MouseButtonRight:
		return ui.ButtonRight, true
	case glfw.MouseButtonMiddle:
		return ui.ButtonMiddle, true
	}
	return 0, false
}

func uiKey(key glfw.Key) ui.Key {
	switch key {
	case glfw.KeyEscape:
		return ui.KeyEscape
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return ui.KeyEnter
	case glfw.KeyTab:
		return ui.KeyTab
	}
	return ui.KeyUnknown
}
