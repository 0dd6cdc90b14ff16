// Copyright (c) 2026, The egui-demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ui

// Style holds the shared widget colors and metrics. Colors are the
// default dark theme; all values may be adjusted before composing.
type Style struct {
	PanelBG      Color
	WindowBG     Color
	TitleBG      Color
	TitleText    Color
	ButtonBG     Color
	ButtonHover  Color
	ButtonActive Color
	ButtonBorder Color
	ButtonText   Color
	LabelText    Color

	// Padding insets container content; Spacing separates stacked
	// widgets; ButtonPad insets a button label from its frame.
	Padding   float32
	Spacing   float32
	ButtonPad float32

	// TitleHeight is the window title bar height.
	TitleHeight float32

	// WindowWidth is the fixed width of floating windows.
	WindowWidth float32
}

// DefaultStyle returns the dark theme.
func DefaultStyle() Style {
	return Style{
		PanelBG:      RGB(0.10, 0.10, 0.11),
		WindowBG:     RGB(0.15, 0.15, 0.17),
		TitleBG:      RGB(0.23, 0.23, 0.28),
		TitleText:    RGB(0.92, 0.92, 0.92),
		ButtonBG:     RGB(0.20, 0.20, 0.23),
		ButtonHover:  RGB(0.28, 0.28, 0.33),
		ButtonActive: RGB(0.35, 0.35, 0.42),
		ButtonBorder: RGB(0.42, 0.42, 0.47),
		ButtonText:   RGB(0.92, 0.92, 0.92),
		LabelText:    RGB(0.80, 0.80, 0.80),
		Padding:      8,
		Spacing:      4,
		ButtonPad:    4,
		TitleHeight:  20,
		WindowWidth:  200,
	}
}

// Context is the immediate-mode UI context. Input events accumulate on
// it between frames; Begin snapshots them, widget calls between Begin
// and End declare this frame's tree, and End extracts the paint jobs.
//
// Begin/End must be called exactly once per rendered frame: Begin
// advances the frame clock, which is the context's only cross-frame
// side effect besides input bookkeeping.
type Context struct {
	atlas *Atlas
	clock *Clock
	style Style
	scale float32

	input inputState

	// in-frame state, valid between Begin and End
	building bool
	fi       frameInput
	dl       *DrawList
	screen   Vec2
	actions  []Action
}

// NewContext returns a context with the default style and a fresh
// atlas and clock.
func NewContext() *Context {
	return &Context{
		atlas: NewAtlas(),
		clock: NewClock(),
		style: DefaultStyle(),
		scale: 1,
	}
}

// Atlas returns the context's font atlas.
func (c *Context) Atlas() *Atlas { return c.atlas }

// Style returns the mutable style.
func (c *Context) Style() *Style { return &c.style }

// Scale returns the current point-to-pixel scale factor.
func (c *Context) Scale() float32 { return c.scale }

// SetScale sets the point-to-pixel scale factor. Non-positive values
// are ignored.
func (c *Context) SetScale(s float32) {
	if s > 0 {
		c.scale = s
	}
}

// Input feeds one platform event into the accumulator. Every delivered
// event is applied exactly once, in delivery order; there is no
// filtering and no failure mode.
func (c *Context) Input(ev Event) {
	c.input.apply(ev)
}

// Begin starts a new frame covering screen points. It snapshots the
// accumulated input and advances the frame clock.
func (c *Context) Begin(screen Vec2) {
	if c.building {
		panic("ui: Begin called twice without End")
	}
	c.building = true
	c.screen = screen
	c.fi = c.input.take()
	c.clock.Tick()
	c.dl = NewDrawList(c.atlas, Rect{Max: screen})
	c.actions = nil
}

// End finishes the frame and returns its complete output.
func (c *Context) End() *FrameState {
	if !c.building {
		panic("ui: End called without Begin")
	}
	c.building = false
	return &FrameState{
		PaintJobs:   c.dl.Jobs(),
		Atlas:       c.atlas,
		ScaleFactor: c.scale,
		Elapsed:     c.clock.Elapsed(),
		Actions:     c.actions,
	}
}

// Layout places widgets in a vertical stack inside a container.
type Layout struct {
	ctx       *Context
	container string
	cursor    Vec2
}

// Panel fills the whole screen with the panel background and lays out
// its content inside the padding.
func (c *Context) Panel(id string, build func(*Layout)) {
	if !c.building {
		panic("ui: Panel outside Begin/End")
	}
	r := Rect{Max: c.screen}
	c.dl.PushClip(r)
	c.dl.AddRectFilled(r, c.style.PanelBG)
	l := &Layout{
		ctx:       c,
		container: id,
		cursor:    Vec2{c.style.Padding, c.style.Padding},
	}
	build(l)
	c.dl.PopClip()
}

// Window draws a fixed-width floating window with a title bar at pos.
// The window height grows with its content; the background is patched
// to the final extent after the content has been laid out.
func (c *Context) Window(title string, pos Vec2, build func(*Layout)) {
	if !c.building {
		panic("ui: Window outside Begin/End")
	}
	st := &c.style
	pos = pos.Round()
	maxBounds := Rect{Min: pos, Max: c.screen}
	c.dl.PushClip(maxBounds)

	// placeholder extent, fixed up below once the content height is known
	c.dl.AddRectFilled(RectWH(pos.X, pos.Y, st.WindowWidth, st.TitleHeight), st.WindowBG)
	bgJob := len(c.dl.jobs) - 1
	bgBase := len(c.dl.jobs[bgJob].Mesh.Vertices) - 4
	c.dl.AddRectFilled(RectWH(pos.X, pos.Y, st.WindowWidth, st.TitleHeight), st.TitleBG)
	titleSize := c.atlas.Measure(title)
	c.dl.AddText(Vec2{pos.X + st.Padding, pos.Y + (st.TitleHeight-titleSize.Y)/2}, title, st.TitleText)

	l := &Layout{
		ctx:       c,
		container: title,
		cursor:    Vec2{pos.X + st.Padding, pos.Y + st.TitleHeight + st.Padding},
	}
	build(l)

	bottom := l.cursor.Y - st.Spacing + st.Padding
	if bottom < pos.Y+st.TitleHeight {
		bottom = pos.Y + st.TitleHeight
	}
	final := Rect{Min: pos, Max: Vec2{pos.X + st.WindowWidth, bottom}}
	// patch the background quad to the final window rect
	v := c.dl.jobs[bgJob].Mesh.Vertices[bgBase : bgBase+4]
	v[2].Pos.Y = final.Max.Y
	v[3].Pos.Y = final.Max.Y
	c.dl.AddRectStroke(final, st.ButtonBorder, 1)
	c.dl.PopClip()
}

// Label draws a line of text and advances the cursor.
func (l *Layout) Label(text string) {
	st := &l.ctx.style
	sz := l.ctx.dl.AddText(l.cursor, text, st.LabelText)
	l.cursor.Y += sz.Y + st.Spacing
}

// Button draws a push button and reports whether it was clicked this
// frame. A click is a left-button release over the button whose press
// also started on it. Clicks are also recorded as frame actions.
func (l *Layout) Button(label string) bool {
	c := l.ctx
	st := &c.style
	text := c.atlas.Measure(label)
	r := RectWH(l.cursor.X, l.cursor.Y, text.X+2*st.ButtonPad, text.Y+2*st.ButtonPad)
	r.Min = r.Min.Round()
	r.Max = r.Max.Round()

	fi := &c.fi
	hovered := fi.pointerIn && r.Contains(fi.pointer)
	pressStarted := r.Contains(fi.pressPos[ButtonLeft])
	held := hovered && fi.down[ButtonLeft] && pressStarted
	clicked := hovered && fi.released[ButtonLeft] && pressStarted

	bg := st.ButtonBG
	switch {
	case held:
		bg = st.ButtonActive
	case hovered:
		bg = st.ButtonHover
	}
	c.dl.AddRectFilled(r, bg)
	c.dl.AddRectStroke(r, st.ButtonBorder, 1)
	c.dl.AddText(Vec2{r.Min.X + st.ButtonPad, r.Min.Y + st.ButtonPad}, label, st.ButtonText)

	l.cursor.Y = r.Max.Y + st.Spacing
	if clicked {
		c.actions = append(c.actions, Action{Container: l.container, Widget: label})
	}
	return clicked
}
