// Copyright (c) 2026, The egui-demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrSurfaceStale is returned by AcquireFrame when the presentation
// chain no longer matches the window state (lost or outdated surface).
// The caller's remedy is to Resize to the window's current framebuffer
// size and retry once; a second failure is fatal.
var ErrSurfaceStale = errors.New("gpu: surface stale")

// ErrZeroSize is returned by AcquireFrame while the window has a zero
// dimension (e.g. minimized). There is nothing to present; skip the
// frame.
var ErrZeroSize = errors.New("gpu: zero-size surface")

// Surface owns the swappable image chain of one window surface,
// described by a wgpu surface configuration. The configuration's width
// and height always equal the last size passed to NewSurface or
// Resize; the chain is invalid between a window size change and the
// Resize call applying it, which the event loop guarantees happens
// before the next AcquireFrame.
type Surface struct {
	gp      *GPU
	surface *wgpu.Surface

	config wgpu.SurfaceConfiguration

	// configured is false while either dimension is zero.
	configured bool
}

// NewSurface configures the presentation chain for the given window
// surface at the given physical size. The color format is taken from
// the surface capabilities, preferring BGRA8 sRGB.
func NewSurface(gp *GPU, surface *wgpu.Surface, size image.Point, present wgpu.PresentMode) (*Surface, error) {
	caps := surface.GetCapabilities(gp.Adapter)
	if len(caps.Formats) == 0 {
		return nil, fmt.Errorf("gpu: surface reports no formats")
	}
	format := caps.Formats[0]
	for _, f := range caps.Formats {
		if f == wgpu.TextureFormatBGRA8UnormSrgb {
			format = f
			break
		}
	}

	sf := &Surface{
		gp:      gp,
		surface: surface,
		config: wgpu.SurfaceConfiguration{
			Usage:       wgpu.TextureUsageRenderAttachment,
			Format:      format,
			Width:       uint32(size.X),
			Height:      uint32(size.Y),
			PresentMode: present,
			AlphaMode:   caps.AlphaModes[0],
		},
	}
	sf.Resize(size)
	return sf, nil
}

// Format returns the chain's color format.
func (sf *Surface) Format() wgpu.TextureFormat { return sf.config.Format }

// Size returns the configured physical size.
func (sf *Surface) Size() image.Point {
	return image.Point{X: int(sf.config.Width), Y: int(sf.config.Height)}
}

// PresentMode returns the configured present mode.
func (sf *Surface) PresentMode() wgpu.PresentMode { return sf.config.PresentMode }

// Resize rewrites the configured extent and rebuilds the chain against
// the unchanged surface and device. It is synchronous and must be
// called before the next AcquireFrame once the window size changed.
// A zero dimension leaves the chain unconfigured until the next
// non-zero Resize.
func (sf *Surface) Resize(size image.Point) {
	sf.config.Width = uint32(max(size.X, 0))
	sf.config.Height = uint32(max(size.Y, 0))
	if size.X <= 0 || size.Y <= 0 {
		sf.configured = false
		return
	}
	sf.surface.Configure(sf.gp.Adapter, sf.gp.Device, &sf.config)
	sf.configured = true
	sf.gp.logger.Debug("surface resized", "width", size.X, "height", size.Y)
}

// SetPresentMode reconfigures the chain with a new present mode,
// keeping the current size.
func (sf *Surface) SetPresentMode(pm wgpu.PresentMode) {
	if pm == sf.config.PresentMode {
		return
	}
	sf.config.PresentMode = pm
	if sf.configured {
		sf.surface.Configure(sf.gp.Adapter, sf.gp.Device, &sf.config)
	}
}

// Release frees the underlying window surface.
func (sf *Surface) Release() {
	if sf.surface != nil {
		sf.surface.Release()
		sf.surface = nil
	}
	sf.configured = false
}

// Frame is one acquired presentable image. Exactly one of Present or
// Discard must be called, on the loop thread, before the next
// AcquireFrame.
type Frame struct {
	sf      *Surface
	texture *wgpu.Texture

	// View is the render-attachment view of the presentable image.
	View *wgpu.TextureView
}

// AcquireFrame returns the chain's current presentable image. Failures
// caused by a lost or outdated surface are reported as
// ErrSurfaceStale; an unconfigured (zero-size) chain reports
// ErrZeroSize.
func (sf *Surface) AcquireFrame() (*Frame, error) {
	if !sf.configured {
		return nil, ErrZeroSize
	}
	tex, err := sf.surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSurfaceStale, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("%w: %v", ErrSurfaceStale, err)
	}
	return &Frame{sf: sf, texture: tex, View: view}, nil
}

// Present shows the frame and releases its resources.
func (f *Frame) Present() {
	f.sf.surface.Present()
	f.release()
}

// Discard releases the frame without presenting it, for error paths.
func (f *Frame) Discard() {
	f.release()
}

func (f *Frame) release() {
	if f.View != nil {
		f.View.Release()
		f.View = nil
	}
	if f.texture != nil {
		f.texture.Release()
		f.texture = nil
	}
}
