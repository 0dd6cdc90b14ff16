// Copyright (c) 2026, The egui-demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockMonotone(t *testing.T) {
	now := time.Unix(100, 0)
	c := &Clock{now: func() time.Time { return now }}
	c.start = now

	assert.Equal(t, 0.0, c.Elapsed())

	now = now.Add(time.Second)
	assert.Equal(t, 1.0, c.Tick())

	now = now.Add(500 * time.Millisecond)
	assert.Equal(t, 1.5, c.Tick())
	assert.Equal(t, 1.5, c.Elapsed())

	// a clock stepping backwards must not roll elapsed time back
	now = now.Add(-time.Second)
	assert.Equal(t, 1.5, c.Tick())
}

func TestClockTickOnlyAdvances(t *testing.T) {
	now := time.Unix(0, 0)
	c := &Clock{now: func() time.Time { return now }}
	c.start = now

	now = now.Add(2 * time.Second)
	// Elapsed reflects the last Tick, not the current time.
	assert.Equal(t, 0.0, c.Elapsed())
	c.Tick()
	assert.Equal(t, 2.0, c.Elapsed())
}
