// Copyright (c) 2026, The egui-demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testDrawList() *DrawList {
	return NewDrawList(NewAtlas(), Rect{Max: Vec2{800, 600}})
}

func TestDrawListQuad(t *testing.T) {
	dl := testDrawList()
	dl.AddQuad(RectWH(10, 20, 30, 40), Rect{}, RGB(1, 0, 0))

	jobs := dl.Jobs()
	assert.Len(t, jobs, 1)
	m := jobs[0].Mesh
	assert.Len(t, m.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices)
	assert.Equal(t, Vec2{10, 20}, m.Vertices[0].Pos)
	assert.Equal(t, Vec2{40, 60}, m.Vertices[2].Pos)
}

func TestDrawListOneJobPerClip(t *testing.T) {
	dl := testDrawList()
	dl.AddRectFilled(RectWH(0, 0, 10, 10), RGB(1, 1, 1))
	dl.AddRectFilled(RectWH(20, 0, 10, 10), RGB(1, 1, 1))
	dl.PushClip(RectWH(0, 0, 100, 100))
	dl.AddRectFilled(RectWH(0, 0, 10, 10), RGB(1, 1, 1))
	dl.PopClip()
	dl.AddRectFilled(RectWH(40, 0, 10, 10), RGB(1, 1, 1))

	jobs := dl.Jobs()
	assert.Len(t, jobs, 3)
	assert.Equal(t, RectWH(0, 0, 100, 100), jobs[1].Clip)
	// primitives under the same clip batch into one mesh
	assert.Len(t, jobs[0].Mesh.Vertices, 8)
}

func TestDrawListClipIntersects(t *testing.T) {
	dl := testDrawList()
	dl.PushClip(RectWH(0, 0, 100, 100))
	dl.PushClip(RectWH(50, 50, 100, 100))
	assert.Equal(t, RectWH(50, 50, 50, 50), dl.clip())
	dl.PopClip()
	assert.Equal(t, RectWH(0, 0, 100, 100), dl.clip())
}

func TestDrawListDropsEmptyJobs(t *testing.T) {
	dl := testDrawList()
	// clip fully outside the previous one is empty
	dl.PushClip(RectWH(0, 0, 100, 100))
	dl.PushClip(RectWH(200, 200, 50, 50))
	dl.AddRectFilled(RectWH(0, 0, 10, 10), RGB(1, 1, 1))
	dl.PopClip()
	dl.PopClip()

	assert.Empty(t, dl.Jobs())
}

func TestDrawListStroke(t *testing.T) {
	dl := testDrawList()
	dl.AddRectStroke(RectWH(0, 0, 50, 50), RGB(1, 1, 1), 1)

	jobs := dl.Jobs()
	assert.Len(t, jobs, 1)
	// four bars, one quad each
	assert.Len(t, jobs[0].Mesh.Vertices, 16)
	assert.Len(t, jobs[0].Mesh.Indices, 24)
}

func TestDrawListText(t *testing.T) {
	dl := testDrawList()
	sz := dl.AddText(Vec2{10, 10}, "ab", RGB(1, 1, 1))
	assert.Equal(t, Vec2{14, 13}, sz)

	jobs := dl.Jobs()
	assert.Len(t, jobs[0].Mesh.Vertices, 8)
	assert.Equal(t, Vec2{10, 10}, jobs[0].Mesh.Vertices[0].Pos)
	assert.Equal(t, Vec2{17, 10}, jobs[0].Mesh.Vertices[4].Pos)
}

func TestDrawListTextSkipsUnknownRune(t *testing.T) {
	dl := testDrawList()
	// the unknown rune draws nothing but still consumes its advance
	sz := dl.AddText(Vec2{0, 0}, "a€b", RGB(1, 1, 1))
	assert.Equal(t, Vec2{21, 13}, sz)

	jobs := dl.Jobs()
	assert.Len(t, jobs[0].Mesh.Vertices, 8)
	assert.Equal(t, Vec2{14, 0}, jobs[0].Mesh.Vertices[4].Pos)
}
