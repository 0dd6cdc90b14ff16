// Copyright (c) 2026, The egui-demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ui

// EventKind discriminates the input events the UI understands.
type EventKind int32

const (
	// PointerMove reports a new pointer position.
	PointerMove EventKind = iota

	// PointerButton reports a pointer button press or release at the
	// current pointer position.
	PointerButton

	// PointerLeave reports the pointer leaving the surface.
	PointerLeave

	// Scroll reports a scroll delta in points.
	Scroll

	// KeyDown and KeyUp report physical key transitions.
	KeyDown
	KeyUp

	// Text reports one rune of character input.
	Text
)

// Button identifies a pointer button.
type Button int32

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Key identifies the few keys the UI itself reacts to. Everything else
// arrives as KeyUnknown.
type Key int32

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeyTab
)

// Event is one platform input event, already translated out of the
// windowing library's vocabulary. Unused fields are zero.
type Event struct {
	Kind    EventKind
	Pos     Vec2 // PointerMove
	Button  Button
	Pressed bool // PointerButton, KeyDown/KeyUp
	Delta   Vec2 // Scroll
	Key     Key
	Rune    rune // Text
}

// ButtonPress returns a press event for b.
func ButtonPress(b Button) Event {
	return Event{Kind: PointerButton, Button: b, Pressed: true}
}

// ButtonRelease returns a release event for b.
func ButtonRelease(b Button) Event {
	return Event{Kind: PointerButton, Button: b}
}

// inputState accumulates events between frames. The context snapshots
// and partially resets it at Begin: transient data (presses, releases,
// scroll, text) belongs to exactly one composed frame, while the
// persistent data (pointer position, held buttons) carries over.
type inputState struct {
	pointer     Vec2
	pointerIn   bool
	down        [3]bool
	pressed     [3]bool // went down since last snapshot
	released    [3]bool // went up since last snapshot
	pressPos    [3]Vec2
	scroll      Vec2
	text        []rune
	keysPressed []Key
}

func (in *inputState) apply(ev Event) {
	switch ev.Kind {
	case PointerMove:
		in.pointer = ev.Pos
		in.pointerIn = true
	case PointerLeave:
		in.pointerIn = false
	case PointerButton:
		b := ev.Button
		if b < 0 || int(b) >= len(in.down) {
			return
		}
		if ev.Pressed {
			in.down[b] = true
			in.pressed[b] = true
			in.pressPos[b] = in.pointer
		} else {
			in.down[b] = false
			in.released[b] = true
		}
	case Scroll:
		in.scroll = in.scroll.Add(ev.Delta)
	case KeyDown:
		in.keysPressed = append(in.keysPressed, ev.Key)
	case KeyUp:
		// nothing retained
	case Text:
		in.text = append(in.text, ev.Rune)
	}
}

// frameInput is the per-frame snapshot the widgets read from.
type frameInput struct {
	pointer   Vec2
	pointerIn bool
	down      [3]bool
	pressed   [3]bool
	released  [3]bool
	pressPos  [3]Vec2
	scroll    Vec2
	text      []rune
	keys      []Key
}

// take snapshots the accumulated input and clears the transient parts.
func (in *inputState) take() frameInput {
	fi := frameInput{
		pointer:   in.pointer,
		pointerIn: in.pointerIn,
		down:      in.down,
		pressed:   in.pressed,
		released:  in.released,
		pressPos:  in.pressPos,
		scroll:    in.scroll,
		text:      append([]rune(nil), in.text...),
		keys:      append([]Key(nil), in.keysPressed...),
	}
	in.pressed = [3]bool{}
	in.released = [3]bool{}
	in.scroll = Vec2{}
	in.text = in.text[:0]
	in.keysPressed = in.keysPressed[:0]
	return fi
}
