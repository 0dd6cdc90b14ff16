// Copyright (c) 2026, The egui-demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uirender

import (
	"encoding/binary"
	"math"

	"github.com/evopen/egui-demo/ui"
)

// vertexStride is the GPU footprint of one ui.Vertex: pos (2 f32),
// uv (2 f32), color (4 f32), little-endian.
const vertexStride = 8 * 4

// packVertices appends the wire form of vs to dst and returns the
// extended slice.
func packVertices(dst []byte, vs []ui.Vertex) []byte {
	for i := range vs {
		v := &vs[i]
		dst = putF32(dst, v.Pos.X)
		dst = putF32(dst, v.Pos.Y)
		dst = putF32(dst, v.UV.X)
		dst = putF32(dst, v.UV.Y)
		dst = putF32(dst, v.Color.R)
		dst = putF32(dst, v.Color.G)
		dst = putF32(dst, v.Color.B)
		dst = putF32(dst, v.Color.A)
	}
	return dst
}

// packIndices appends idx as little-endian uint32s to dst.
func packIndices(dst []byte, idx []uint32) []byte {
	for _, i := range idx {
		dst = binary.LittleEndian.AppendUint32(dst, i)
	}
	return dst
}

func putF32(dst []byte, f float32) []byte {
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
}

// packScreenUniform encodes the screen-size uniform block: the screen
// extent in points followed by padding to a 16-byte boundary.
func packScreenUniform(w, h float32) [uniformSize]byte {
	var out [uniformSize]byte
	binary.LittleEndian.PutUint32(out[0:], math.Float32bits(w))
	binary.LittleEndian.PutUint32(out[4:], math.Float32bits(h))
	return out
}
