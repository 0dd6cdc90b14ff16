// Copyright (c) 2026, The egui-demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ui

import "time"

// Clock tracks UI time as an explicit value instead of package-level
// state. The context advances it exactly once per composed frame, so
// animation time never jumps within a frame and composing a frame is
// the only thing that moves it.
type Clock struct {
	start   time.Time
	elapsed float64

	// now is swappable for tests.
	now func() time.Time
}

// NewClock returns a clock starting at zero elapsed time.
func NewClock() *Clock {
	c := &Clock{now: time.Now}
	c.start = c.now()
	return c
}

// Tick advances the clock to the current time and returns the elapsed
// seconds since creation. Elapsed time is monotonically non-decreasing.
func (c *Clock) Tick() float64 {
	e := c.now().Sub(c.start).Seconds()
	if e > c.elapsed {
		c.elapsed = e
	}
	return c.elapsed
}

// Elapsed returns the elapsed seconds as of the last Tick.
func (c *Clock) Elapsed() float64 { return c.elapsed }
