// Copyright (c) 2026, The egui-demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// This file contains the glfw dependencies, for desktop platforms.

// Init initializes the windowing system. Must be called on the main
// thread before any other gpu function.
func Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("gpu: glfw init: %w", err)
	}
	return nil
}

// Terminate shuts the windowing system down; call last, on the main
// thread.
func Terminate() {
	glfw.Terminate()
}

// NewWindow creates a glfw window without a client API context, sized
// in screen coordinates.
func NewWindow(size image.Point, title string) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	w, err := glfw.CreateWindow(size.X, size.Y, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("gpu: create window: %w", err)
	}
	return w, nil
}

// NewWindowGPU creates the wgpu surface for the window and acquires
// the graphics context against it, returning both plus the configured
// presentation chain at the window's current framebuffer size.
//
// This is the single blocking initialization step: it suspends until
// the driver responds, and everything else in the program depends on
// its result.
func NewWindowGPU(w *glfw.Window, opts *Options, present wgpu.PresentMode) (*GPU, *Surface, error) {
	instance := wgpu.CreateInstance(nil)
	wsurf := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(w))

	gp, err := NewGPU(instance, wsurf, opts)
	if err != nil {
		wsurf.Release()
		instance.Release()
		return nil, nil, err
	}

	fbw, fbh := w.GetFramebufferSize()
	sf, err := NewSurface(gp, wsurf, image.Point{X: fbw, Y: fbh}, present)
	if err != nil {
		gp.Release()
		wsurf.Release()
		instance.Release()
		return nil, nil, err
	}
	return gp, sf, nil
}
