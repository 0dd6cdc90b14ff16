// Copyright (c) 2026, The egui-demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ui

// DrawList builds the frame's paint jobs. Primitives are appended to
// the current job; pushing or popping a clip rect closes the current
// job and starts a new one, so each job carries exactly one scissor
// rect. Append order is draw order.
type DrawList struct {
	atlas     *Atlas
	jobs      []PaintJob
	clipStack []Rect
	screen    Rect
}

// NewDrawList returns a drawlist clipped to the screen rect.
func NewDrawList(atlas *Atlas, screen Rect) *DrawList {
	return &DrawList{
		atlas:     atlas,
		clipStack: []Rect{screen},
		screen:    screen,
	}
}

func (dl *DrawList) clip() Rect { return dl.clipStack[len(dl.clipStack)-1] }

// cur returns the open paint job for the current clip, starting one if
// needed.
func (dl *DrawList) cur() *PaintJob {
	n := len(dl.jobs)
	if n > 0 && dl.jobs[n-1].Clip == dl.clip() {
		return &dl.jobs[n-1]
	}
	dl.jobs = append(dl.jobs, PaintJob{Clip: dl.clip()})
	return &dl.jobs[len(dl.jobs)-1]
}

// PushClip restricts subsequent primitives to r intersected with the
// current clip.
func (dl *DrawList) PushClip(r Rect) {
	dl.clipStack = append(dl.clipStack, dl.clip().Intersect(r))
}

// PopClip restores the clip rect in effect before the matching
// PushClip.
func (dl *DrawList) PopClip() {
	if len(dl.clipStack) > 1 {
		dl.clipStack = dl.clipStack[:len(dl.clipStack)-1]
	}
}

// AddQuad appends two triangles covering r, textured by the normalized
// uv rect and modulated by c.
func (dl *DrawList) AddQuad(r Rect, uv Rect, c Color) {
	job := dl.cur()
	m := &job.Mesh
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		Vertex{Pos: r.Min, UV: uv.Min, Color: c},
		Vertex{Pos: Vec2{r.Max.X, r.Min.Y}, UV: Vec2{uv.Max.X, uv.Min.Y}, Color: c},
		Vertex{Pos: r.Max, UV: uv.Max, Color: c},
		Vertex{Pos: Vec2{r.Min.X, r.Max.Y}, UV: Vec2{uv.Min.X, uv.Max.Y}, Color: c},
	)
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}

// AddRectFilled fills r with a solid color.
func (dl *DrawList) AddRectFilled(r Rect, c Color) {
	if r.IsEmpty() {
		return
	}
	white := dl.atlas.WhiteUV()
	dl.AddQuad(r, Rect{Min: white, Max: white}, c)
}

// AddRectStroke outlines r with four bars of the given thickness,
// drawn inside the rect.
func (dl *DrawList) AddRectStroke(r Rect, c Color, thickness float32) {
	if r.IsEmpty() || thickness <= 0 {
		return
	}
	t := thickness
	dl.AddRectFilled(Rect{Min: r.Min, Max: Vec2{r.Max.X, r.Min.Y + t}}, c)
	dl.AddRectFilled(Rect{Min: Vec2{r.Min.X, r.Max.Y - t}, Max: r.Max}, c)
	dl.AddRectFilled(Rect{Min: Vec2{r.Min.X, r.Min.Y + t}, Max: Vec2{r.Min.X + t, r.Max.Y - t}}, c)
	dl.AddRectFilled(Rect{Min: Vec2{r.Max.X - t, r.Min.Y + t}, Max: r.Max.Sub(Vec2{0, t})}, c)
}

// AddText draws s on one line with its top-left corner at pos.
// Returns the advance consumed.
func (dl *DrawList) AddText(pos Vec2, s string, c Color) Vec2 {
	pen := pos.Round()
	for _, r := range s {
		g, ok := dl.atlas.Glyph(r)
		if ok {
			dl.AddQuad(Rect{Min: pen, Max: pen.Add(g.Size)}, g.UV, c)
		}
		pen.X += dl.atlas.advance
	}
	return Vec2{pen.X - pos.Round().X, dl.atlas.height}
}

// Jobs returns the accumulated paint jobs in draw order. Jobs whose
// clip is empty are dropped; they cannot produce pixels.
func (dl *DrawList) Jobs() []PaintJob {
	out := dl.jobs[:0]
	for _, j := range dl.jobs {
		if j.Clip.IsEmpty() || len(j.Mesh.Indices) == 0 {
			continue
		}
		out = append(out, j)
	}
	dl.jobs = out
	return dl.jobs
}
