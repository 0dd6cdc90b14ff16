// Copyright (c) 2026, The egui-demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAtlasGlyphs(t *testing.T) {
	a := NewAtlas()

	for r := rune(' '); r <= '~'; r++ {
		g, ok := a.Glyph(r)
		assert.True(t, ok, "missing glyph %q", r)
		assert.True(t, g.UV.Min.X >= 0 && g.UV.Max.X <= 1, "u out of range for %q", r)
		assert.True(t, g.UV.Min.Y >= 0 && g.UV.Max.Y <= 1, "v out of range for %q", r)
		assert.Equal(t, Vec2{7, 13}, g.Size)
	}

	_, ok := a.Glyph('€')
	assert.False(t, ok)
}

func TestAtlasWhiteRegion(t *testing.T) {
	a := NewAtlas()

	for y := 0; y < whiteExtent; y++ {
		for x := 0; x < whiteExtent; x++ {
			r, g, b, al := a.Image.At(x, y).RGBA()
			assert.Equal(t, uint32(0xffff), r)
			assert.Equal(t, uint32(0xffff), g)
			assert.Equal(t, uint32(0xffff), b)
			assert.Equal(t, uint32(0xffff), al)
		}
	}

	// WhiteUV must sample strictly inside the white region.
	sz := a.Size()
	uv := a.WhiteUV()
	assert.Less(t, uv.X*float32(sz.X), float32(whiteExtent))
	assert.Less(t, uv.Y*float32(sz.Y), float32(whiteExtent))
}

func TestAtlasMeasure(t *testing.T) {
	a := NewAtlas()

	assert.Equal(t, Vec2{0, 13}, a.Measure(""))
	assert.Equal(t, Vec2{21, 13}, a.Measure("abc"))
	assert.Equal(t, float32(13), a.LineHeight())
}

func TestAtlasPremultiplied(t *testing.T) {
	a := NewAtlas()

	// image.RGBA stores premultiplied alpha: no channel may exceed it.
	pix := a.Image.Pix
	for i := 0; i < len(pix); i += 4 {
		al := pix[i+3]
		assert.LessOrEqual(t, pix[i+0], al)
		assert.LessOrEqual(t, pix[i+1], al)
		assert.LessOrEqual(t, pix[i+2], al)
	}
}
