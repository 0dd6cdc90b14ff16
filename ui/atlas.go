// Copyright (c) 2026, The egui-demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ui

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Atlas is the single texture the UI samples from: a grid of
// pre-rasterized ASCII glyphs plus a small solid-white region used for
// untextured fills. It is built once and shared by every frame;
// Version lets the renderer detect when a re-upload is needed.
type Atlas struct {
	// Image holds premultiplied-alpha pixels, white with glyph
	// coverage in alpha.
	Image *image.RGBA

	// Version increments whenever Image changes. The renderer keeps
	// the texture from the last version it uploaded.
	Version uint32

	glyphs  map[rune]Glyph
	whiteUV Vec2

	// glyph cell metrics, in texels == points.
	advance float32
	height  float32
}

// Glyph locates one rune in the atlas.
type Glyph struct {
	// UV is the normalized texture rect of the glyph cell.
	UV Rect

	// Size is the rendered quad extent in points.
	Size Vec2
}

const (
	atlasCols    = 16
	atlasFirst   = ' '
	atlasLast    = '~'
	atlasPad     = 1 // texel gap between cells against sampler bleed
	whiteExtent  = 2
	whitePadding = 1
)

// NewAtlas rasterizes the built-in 7x13 bitmap font into a fresh atlas.
func NewAtlas() *Atlas {
	face := basicfont.Face7x13
	adv := face.Advance
	asc := face.Ascent
	cellW := adv + atlasPad
	cellH := face.Height + atlasPad

	nglyphs := int(atlasLast-atlasFirst) + 1
	rows := (nglyphs + atlasCols - 1) / atlasCols
	top := whiteExtent + whitePadding
	w := atlasCols * cellW
	h := top + rows*cellH

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < whiteExtent; y++ {
		for x := 0; x < whiteExtent; x++ {
			img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
		}
	}

	a := &Atlas{
		Image:   img,
		Version: 1,
		glyphs:  make(map[rune]Glyph, nglyphs),
		whiteUV: Vec2{0.5 / float32(w), 0.5 / float32(h)},
		advance: float32(adv),
		height:  float32(face.Height),
	}

	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
	}
	for i := 0; i < nglyphs; i++ {
		r := rune(atlasFirst + i)
		cx := (i % atlasCols) * cellW
		cy := top + (i/atlasCols)*cellH
		d.Dot = fixed.P(cx, cy+asc)
		d.DrawString(string(r))
		a.glyphs[r] = Glyph{
			UV: Rect{
				Min: Vec2{float32(cx) / float32(w), float32(cy) / float32(h)},
				Max: Vec2{float32(cx+adv) / float32(w), float32(cy+face.Height) / float32(h)},
			},
			Size: Vec2{float32(adv), float32(face.Height)},
		}
	}
	return a
}

// Glyph returns the atlas entry for r. Runes outside the atlas report
// ok == false and are skipped by the drawlist (their advance is still
// consumed, so missing runes leave a gap rather than reflowing text).
func (a *Atlas) Glyph(r rune) (Glyph, bool) {
	g, ok := a.glyphs[r]
	return g, ok
}

// WhiteUV returns texture coordinates inside the solid-white region.
func (a *Atlas) WhiteUV() Vec2 { return a.whiteUV }

// LineHeight returns the glyph cell height in points.
func (a *Atlas) LineHeight() float32 { return a.height }

// Measure returns the extent of s rendered on a single line.
func (a *Atlas) Measure(s string) Vec2 {
	n := 0
	for range s {
		n++
	}
	return Vec2{float32(n) * a.advance, a.height}
}

// Size returns the atlas pixel dimensions.
func (a *Atlas) Size() image.Point { return a.Image.Rect.Size() }
