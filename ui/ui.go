// Copyright (c) 2026, The egui-demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ui is a small immediate-mode UI library: the widget tree is
// re-declared every frame and turned into an ordered list of paint jobs
// (triangle meshes plus a shared font atlas texture) that a renderer
// draws back-to-front. There are no retained widget objects; all
// interaction state is derived from the accumulated input of the
// current frame.
package ui

import "github.com/chewxy/math32"

// Vec2 is a 2D point or extent in logical (scale-independent) points.
type Vec2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// MulScalar returns v scaled by s.
func (v Vec2) MulScalar(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Round returns v with both components rounded to the nearest integer.
// Widget rects are rounded so that text lands on pixel boundaries.
func (v Vec2) Round() Vec2 { return Vec2{math32.Round(v.X), math32.Round(v.Y)} }

// Rect is an axis-aligned rectangle with Min inclusive, Max exclusive.
type Rect struct {
	Min, Max Vec2
}

// RectWH returns a rect at (x, y) with the given width and height.
func RectWH(x, y, w, h float32) Rect {
	return Rect{Min: Vec2{x, y}, Max: Vec2{x + w, y + h}}
}

// W returns the rect width.
func (r Rect) W() float32 { return r.Max.X - r.Min.X }

// H returns the rect height.
func (r Rect) H() float32 { return r.Max.Y - r.Min.Y }

// Size returns the rect extents.
func (r Rect) Size() Vec2 { return Vec2{r.W(), r.H()} }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Intersect returns the intersection of r and o; the result may be
// empty (non-positive width or height).
func (r Rect) Intersect(o Rect) Rect {
	return Rect{
		Min: Vec2{math32.Max(r.Min.X, o.Min.X), math32.Max(r.Min.Y, o.Min.Y)},
		Max: Vec2{math32.Min(r.Max.X, o.Max.X), math32.Min(r.Max.Y, o.Max.Y)},
	}
}

// IsEmpty reports whether r encloses no area.
func (r Rect) IsEmpty() bool { return r.W() <= 0 || r.H() <= 0 }

// Shrink returns r inset by d on all sides.
func (r Rect) Shrink(d float32) Rect {
	return Rect{Min: Vec2{r.Min.X + d, r.Min.Y + d}, Max: Vec2{r.Max.X - d, r.Max.Y - d}}
}

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// RGB returns an opaque color.
func RGB(r, g, b float32) Color { return Color{r, g, b, 1} }

// RGBA returns a color with the given alpha.
func RGBA(r, g, b, a float32) Color { return Color{r, g, b, a} }

// Vertex is one UI mesh vertex: position in points, texture
// coordinates into the atlas, and a straight-alpha color that
// modulates the sampled texel.
type Vertex struct {
	Pos   Vec2
	UV    Vec2
	Color Color
}

// Mesh is indexed triangle geometry for one paint job.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// PaintJob is one batch of UI geometry, scissored to Clip when drawn.
// Jobs must be drawn in slice order: later jobs are painted on top of
// earlier ones, mirroring widget z-order.
type PaintJob struct {
	Clip Rect
	Mesh Mesh
}

// Action identifies a widget interaction collected during composition.
// Composition never performs side effects itself; the caller decides
// what an action means.
type Action struct {
	// Container is the panel or window the widget belongs to.
	Container string

	// Widget is the label of the activated widget.
	Widget string
}

// FrameState is the complete output of composing one frame. It is
// consumed by the renderer and discarded; only the atlas (by pointer)
// outlives the frame.
type FrameState struct {
	// PaintJobs in draw order.
	PaintJobs []PaintJob

	// Atlas is the texture all jobs sample from.
	Atlas *Atlas

	// ScaleFactor maps points to physical pixels.
	ScaleFactor float32

	// Elapsed is seconds since the context was created, advanced once
	// per composed frame.
	Elapsed float64

	// Actions collected this frame, in declaration order.
	Actions []Action
}
