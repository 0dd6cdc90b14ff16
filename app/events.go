// Copyright (c) 2026, The egui-demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"image"

	"github.com/evopen/egui-demo/ui"
)

// Kind classifies the window events the engine reacts to. Everything
// the shell does not interpret itself is KindOther: it still reaches
// the UI context through Input, but drives no state transition.
type Kind int32

const (
	// KindOther is an event the engine forwards but does not act on.
	KindOther Kind = iota

	// KindResize reports a new framebuffer size in pixels.
	KindResize

	// KindClose is a window close request.
	KindClose

	// KindKeyPress is a key press (not release).
	KindKeyPress
)

func (k Kind) String() string {
	switch k {
	case KindOther:
		return "other"
	case KindResize:
		return "resize"
	case KindClose:
		return "close"
	case KindKeyPress:
		return "key-press"
	}
	return "invalid"
}

// Event is a window event folded down to what the engine needs.
type Event struct {
	Kind Kind

	// Size is the new framebuffer size for KindResize.
	Size image.Point

	// Key is the pressed key for KindKeyPress.
	Key ui.Key
}

// ResizeEvent returns a KindResize event for the given pixel size.
func ResizeEvent(size image.Point) Event {
	return Event{Kind: KindResize, Size: size}
}

// KeyPressEvent returns a KindKeyPress event for the given key.
func KeyPressEvent(key ui.Key) Event {
	return Event{Kind: KindKeyPress, Key: key}
}
