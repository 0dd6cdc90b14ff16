// Copyright (c) 2026, The egui-demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu owns the WebGPU graphics context (instance, adapter,
// logical device, command queue) and the window surface's presentation
// chain. The context is acquired once, blocking, at startup; there is
// no degraded mode if no compatible adapter exists. All other
// operations are synchronous and must run on the event-loop thread.
package gpu

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// Options configures context acquisition.
type Options struct {
	// PowerPreference selects the adapter class. The default is
	// a high-performance (discrete) adapter.
	PowerPreference wgpu.PowerPreference

	// ForceFallbackAdapter requests the software rasterizer, for
	// testing on machines without a GPU.
	ForceFallbackAdapter bool

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

func (o *Options) defaults() {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// GPU bundles the WebGPU objects shared by the presentation chain and
// the frame renderer. It is acquired once per process and owns the
// device and queue for the process lifetime.
type GPU struct {
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue

	logger *slog.Logger
}

// NewGPU requests an adapter compatible with the given surface, then a
// logical device and queue from it. The call blocks until the driver
// responds; it is the process's only suspension point and must
// complete before any other graphics component initializes. A nil
// surface requests any adapter (headless use).
//
// Instance must have created surface, and stays owned by the caller
// until Release.
func NewGPU(instance *wgpu.Instance, surface *wgpu.Surface, opts *Options) (*GPU, error) {
	if opts == nil {
		opts = &Options{}
	}
	opts.defaults()
	if opts.PowerPreference == wgpu.PowerPreferenceUndefined {
		opts.PowerPreference = wgpu.PowerPreferenceHighPerformance
	}

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference:      opts.PowerPreference,
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
		CompatibleSurface:    surface,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: no compatible adapter: %w", err)
	}
	info := adapter.GetInfo()
	opts.Logger.Info("using adapter",
		"name", info.Name,
		"driver", info.DriverDescription)

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "egui-demo device",
	})
	if err != nil {
		adapter.Release()
		return nil, fmt.Errorf("gpu: request device: %w", err)
	}

	return &GPU{
		Instance: instance,
		Adapter:  adapter,
		Device:   device,
		Queue:    device.GetQueue(),
		logger:   opts.Logger,
	}, nil
}

// Logger returns the logger the context was acquired with.
func (gp *GPU) Logger() *slog.Logger { return gp.logger }

// Release frees the device, queue and adapter. The instance is the
// caller's to release.
func (gp *GPU) Release() {
	if gp.Queue != nil {
		gp.Queue.Release()
		gp.Queue = nil
	}
	if gp.Device != nil {
		gp.Device.Release()
		gp.Device = nil
	}
	if gp.Adapter != nil {
		gp.Adapter.Release()
		gp.Adapter = nil
	}
}

// ParsePowerPreference maps a configuration string to a wgpu power
// preference.
func ParsePowerPreference(s string) (wgpu.PowerPreference, error) {
	switch s {
	case "", "high-performance":
		return wgpu.PowerPreferenceHighPerformance, nil
	case "low-power":
		return wgpu.PowerPreferenceLowPower, nil
	default:
		return wgpu.PowerPreferenceUndefined, fmt.Errorf("gpu: unknown power preference %q", s)
	}
}

// ParsePresentMode maps a configuration string to a wgpu present mode.
// Fifo is the vsync-locked default every surface supports.
func ParsePresentMode(s string) (wgpu.PresentMode, error) {
	switch s {
	case "", "fifo", "vsync":
		return wgpu.PresentModeFifo, nil
	case "immediate", "uncapped":
		return wgpu.PresentModeImmediate, nil
	case "mailbox":
		return wgpu.PresentModeMailbox, nil
	default:
		return wgpu.PresentModeFifo, fmt.Errorf("gpu: unknown present mode %q", s)
	}
}
