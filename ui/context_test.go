// Copyright (c) 2026, The egui-demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	screenW = 800
	screenH = 600
)

func compose(c *Context, build func(*Context)) *FrameState {
	c.Begin(Vec2{screenW, screenH})
	build(c)
	return c.End()
}

func demoScene(c *Context) {
	c.Panel("demo", func(l *Layout) {
		l.Label("hello")
		l.Button("ok")
	})
	c.Window("win", Vec2{300, 100}, func(l *Layout) {
		l.Button("go")
	})
}

func TestComposeIdempotent(t *testing.T) {
	c := NewContext()
	c.Input(Event{Kind: PointerMove, Pos: Vec2{10, 10}})

	a := compose(c, demoScene)
	b := compose(c, demoScene)

	// with no input between frames the geometry must be identical
	assert.Equal(t, a.PaintJobs, b.PaintJobs)
	assert.Empty(t, a.Actions)
	assert.Empty(t, b.Actions)
}

func TestComposeElapsedMonotone(t *testing.T) {
	c := NewContext()
	var last float64 = -1
	for i := 0; i < 5; i++ {
		fs := compose(c, demoScene)
		assert.GreaterOrEqual(t, fs.Elapsed, last)
		last = fs.Elapsed
	}
}

func TestButtonClick(t *testing.T) {
	c := NewContext()

	// the "ok" button sits at the panel padding offset
	pad := c.Style().Padding
	labelH := c.Atlas().LineHeight() + c.Style().Spacing
	inside := Vec2{pad + 5, pad + labelH + 5}

	c.Input(Event{Kind: PointerMove, Pos: inside})
	c.Input(ButtonPress(ButtonLeft))
	c.Input(ButtonRelease(ButtonLeft))

	fs := compose(c, demoScene)
	assert.Equal(t, []Action{{Container: "demo", Widget: "ok"}}, fs.Actions)

	// the click is consumed with the frame
	fs = compose(c, demoScene)
	assert.Empty(t, fs.Actions)
}

func TestButtonDragOffNoClick(t *testing.T) {
	c := NewContext()

	pad := c.Style().Padding
	labelH := c.Atlas().LineHeight() + c.Style().Spacing
	inside := Vec2{pad + 5, pad + labelH + 5}

	// press on the button, drag away, release elsewhere
	c.Input(Event{Kind: PointerMove, Pos: inside})
	c.Input(ButtonPress(ButtonLeft))
	c.Input(Event{Kind: PointerMove, Pos: Vec2{500, 500}})
	c.Input(ButtonRelease(ButtonLeft))

	fs := compose(c, demoScene)
	assert.Empty(t, fs.Actions)
}

func TestButtonPressElsewhereReleaseOverNoClick(t *testing.T) {
	c := NewContext()

	pad := c.Style().Padding
	labelH := c.Atlas().LineHeight() + c.Style().Spacing
	inside := Vec2{pad + 5, pad + labelH + 5}

	c.Input(Event{Kind: PointerMove, Pos: Vec2{500, 500}})
	c.Input(ButtonPress(ButtonLeft))
	c.Input(Event{Kind: PointerMove, Pos: inside})
	c.Input(ButtonRelease(ButtonLeft))

	fs := compose(c, demoScene)
	assert.Empty(t, fs.Actions)
}

func TestHoverChangesButtonColor(t *testing.T) {
	c := NewContext()

	plain := compose(c, demoScene)

	pad := c.Style().Padding
	labelH := c.Atlas().LineHeight() + c.Style().Spacing
	c.Input(Event{Kind: PointerMove, Pos: Vec2{pad + 5, pad + labelH + 5}})

	hovered := compose(c, demoScene)
	assert.NotEqual(t, plain.PaintJobs, hovered.PaintJobs)
}

func TestBeginTwicePanics(t *testing.T) {
	c := NewContext()
	c.Begin(Vec2{100, 100})
	assert.Panics(t, func() { c.Begin(Vec2{100, 100}) })
	c.End()
	assert.Panics(t, func() { c.End() })
}

func TestWindowGrowsWithContent(t *testing.T) {
	c := NewContext()

	one := compose(c, func(c *Context) {
		c.Window("w", Vec2{100, 100}, func(l *Layout) {
			l.Button("a")
		})
	})
	two := compose(c, func(c *Context) {
		c.Window("w", Vec2{100, 100}, func(l *Layout) {
			l.Button("a")
			l.Button("b")
		})
	})

	bottom := func(fs *FrameState) float32 {
		var m float32
		for _, j := range fs.PaintJobs {
			for _, v := range j.Mesh.Vertices {
				if v.Pos.Y > m {
					m = v.Pos.Y
				}
			}
		}
		return m
	}
	assert.Greater(t, bottom(two), bottom(one))
}
