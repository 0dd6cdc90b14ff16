// Copyright (c) 2026, The egui-demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uirender

import (
	"github.com/chewxy/math32"

	"github.com/evopen/egui-demo/ui"
)

// ScreenDescriptor maps UI points to the current surface resolution.
// It is derived per frame from the window's physical size and the UI
// scale factor and passed to both the upload and encode steps.
type ScreenDescriptor struct {
	PhysicalWidth  uint32
	PhysicalHeight uint32
	ScaleFactor    float32
}

// PointsSize returns the logical size of the screen in points.
func (s ScreenDescriptor) PointsSize() (w, h float32) {
	return float32(s.PhysicalWidth) / s.ScaleFactor, float32(s.PhysicalHeight) / s.ScaleFactor
}

// Scissor converts a clip rect in points to a pixel scissor rect
// clamped to the physical surface. ok is false when nothing remains.
func (s ScreenDescriptor) Scissor(clip ui.Rect) (x, y, w, h uint32, ok bool) {
	x0 := clamp32(math32.Floor(clip.Min.X*s.ScaleFactor), 0, float32(s.PhysicalWidth))
	y0 := clamp32(math32.Floor(clip.Min.Y*s.ScaleFactor), 0, float32(s.PhysicalHeight))
	x1 := clamp32(math32.Ceil(clip.Max.X*s.ScaleFactor), 0, float32(s.PhysicalWidth))
	y1 := clamp32(math32.Ceil(clip.Max.Y*s.ScaleFactor), 0, float32(s.PhysicalHeight))
	if x1 <= x0 || y1 <= y0 {
		return 0, 0, 0, 0, false
	}
	return uint32(x0), uint32(y0), uint32(x1 - x0), uint32(y1 - y0), true
}

func clamp32(v, lo, hi float32) float32 {
	return math32.Min(math32.Max(v, lo), hi)
}
