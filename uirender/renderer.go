// Copyright (c) 2026, The egui-demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package uirender uploads a composed UI frame to the GPU and encodes
// one command buffer per frame: a single render pass that clears the
// target and draws the frame's paint jobs in z-order on top.
package uirender

import (
	"embed"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/evopen/egui-demo/gpu"
	"github.com/evopen/egui-demo/ui"
)

//go:embed shaders/*.wgsl
var shaders embed.FS

// uniform block: screen size in points, padded to 16 bytes
const uniformSize = 16

// Renderer draws composed UI frames to a presentation chain. Upload
// and EncodeAndSubmit form one frame; both run synchronously on the
// loop thread.
//
// Vertex and index buffers grow to fit the largest frame seen and are
// never shrunk, trading memory for zero steady-state reallocation.
type Renderer struct {
	gp     *gpu.GPU
	sf     *gpu.Surface
	logger *slog.Logger

	pipeline     *wgpu.RenderPipeline
	sampler      *wgpu.Sampler
	uniformBuf   *wgpu.Buffer
	uniformGroup *wgpu.BindGroup
	texLayout    *wgpu.BindGroupLayout

	texture    *wgpu.Texture
	texView    *wgpu.TextureView
	texGroup   *wgpu.BindGroup
	texVersion uint32

	vertexBuf *wgpu.Buffer
	indexBuf  *wgpu.Buffer
	vertexCap uint64
	indexCap  uint64

	vertexScratch []byte
	indexScratch  []byte
	draws         []drawSpan
}

// drawSpan is one paint job's slice of the shared buffers.
type drawSpan struct {
	firstIndex uint32
	indexCount uint32
	baseVertex int32
	clip       ui.Rect
}

// NewRenderer builds the UI pipeline against the surface's color
// format.
func NewRenderer(gp *gpu.GPU, sf *gpu.Surface) (*Renderer, error) {
	r := &Renderer{gp: gp, sf: sf, logger: gp.Logger()}

	src, err := shaders.ReadFile("shaders/ui.wgsl")
	if err != nil {
		return nil, fmt.Errorf("uirender: shader source: %w", err)
	}
	module, err := gp.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "ui",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: string(src)},
	})
	if err != nil {
		return nil, fmt.Errorf("uirender: shader module: %w", err)
	}
	defer module.Release()

	r.uniformBuf, err = gp.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "ui uniforms",
		Size:  uniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("uirender: uniform buffer: %w", err)
	}

	uniformLayout, err := gp.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "ui uniforms",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex,
			Buffer: wgpu.BufferBindingLayout{
				Type: wgpu.BufferBindingTypeUniform,
			},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("uirender: uniform layout: %w", err)
	}
	defer uniformLayout.Release()

	r.uniformGroup, err = gp.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "ui uniforms",
		Layout: uniformLayout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  r.uniformBuf,
			Size:    uniformSize,
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("uirender: uniform bind group: %w", err)
	}

	r.texLayout, err = gp.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "ui atlas",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("uirender: texture layout: %w", err)
	}

	r.sampler, err = gp.Device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "ui atlas",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("uirender: sampler: %w", err)
	}

	layout, err := gp.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "ui",
		BindGroupLayouts: []*wgpu.BindGroupLayout{uniformLayout, r.texLayout},
	})
	if err != nil {
		return nil, fmt.Errorf("uirender: pipeline layout: %w", err)
	}
	defer layout.Release()

	premultiplied := wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
	}
	r.pipeline, err = gp.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "ui",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: vertexStride,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
					{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    sf.Format(),
				Blend:     &premultiplied,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("uirender: pipeline: %w", err)
	}
	return r, nil
}

// Upload writes the frame's atlas texture (when its version changed)
// and all paint-job geometry into GPU buffers, and refreshes the
// screen uniform.
func (r *Renderer) Upload(frame *ui.FrameState, screen ScreenDescriptor) error {
	w, h := screen.PointsSize()
	uni := packScreenUniform(w, h)
	r.gp.Queue.WriteBuffer(r.uniformBuf, 0, uni[:])

	if frame.Atlas != nil && frame.Atlas.Version != r.texVersion {
		if err := r.uploadAtlas(frame.Atlas); err != nil {
			return err
		}
	}

	r.draws = r.draws[:0]
	r.vertexScratch = r.vertexScratch[:0]
	r.indexScratch = r.indexScratch[:0]
	var nverts, nidx uint32
	for _, job := range frame.PaintJobs {
		r.draws = append(r.draws, drawSpan{
			firstIndex: nidx,
			indexCount: uint32(len(job.Mesh.Indices)),
			baseVertex: int32(nverts),
			clip:       job.Clip,
		})
		r.vertexScratch = packVertices(r.vertexScratch, job.Mesh.Vertices)
		r.indexScratch = packIndices(r.indexScratch, job.Mesh.Indices)
		nverts += uint32(len(job.Mesh.Vertices))
		nidx += uint32(len(job.Mesh.Indices))
	}
	if len(r.draws) == 0 {
		return nil
	}

	var err error
	r.vertexBuf, r.vertexCap, err = r.ensureBuffer(r.vertexBuf, r.vertexCap,
		uint64(len(r.vertexScratch)), wgpu.BufferUsageVertex, "ui vertices")
	if err != nil {
		return err
	}
	r.indexBuf, r.indexCap, err = r.ensureBuffer(r.indexBuf, r.indexCap,
		uint64(len(r.indexScratch)), wgpu.BufferUsageIndex, "ui indices")
	if err != nil {
		return err
	}
	r.gp.Queue.WriteBuffer(r.vertexBuf, 0, r.vertexScratch)
	r.gp.Queue.WriteBuffer(r.indexBuf, 0, r.indexScratch)
	return nil
}

// ensureBuffer returns a buffer of at least need bytes, growing by
// doubling and never shrinking.
func (r *Renderer) ensureBuffer(buf *wgpu.Buffer, have, need uint64, usage wgpu.BufferUsage, label string) (*wgpu.Buffer, uint64, error) {
	if buf != nil && have >= need {
		return buf, have, nil
	}
	newCap := max(have, 1024)
	for newCap < need {
		newCap *= 2
	}
	if buf != nil {
		buf.Release()
	}
	nb, err := r.gp.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  newCap,
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("uirender: %s buffer: %w", label, err)
	}
	r.logger.Debug("buffer grown", "label", label, "bytes", newCap)
	return nb, newCap, nil
}

// uploadAtlas (re)creates the atlas texture and its bind group.
func (r *Renderer) uploadAtlas(atlas *ui.Atlas) error {
	size := atlas.Size()
	if r.texGroup != nil {
		r.texGroup.Release()
		r.texGroup = nil
	}
	if r.texView != nil {
		r.texView.Release()
		r.texView = nil
	}
	if r.texture != nil {
		r.texture.Release()
		r.texture = nil
	}

	tex, err := r.gp.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "ui atlas",
		Size: wgpu.Extent3D{
			Width:              uint32(size.X),
			Height:             uint32(size.Y),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("uirender: atlas texture: %w", err)
	}
	r.gp.Queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		atlas.Image.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(4 * size.X),
			RowsPerImage: uint32(size.Y),
		},
		&wgpu.Extent3D{
			Width:              uint32(size.X),
			Height:             uint32(size.Y),
			DepthOrArrayLayers: 1,
		},
	)
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("uirender: atlas view: %w", err)
	}
	group, err := r.gp.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "ui atlas",
		Layout: r.texLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: r.sampler},
		},
	})
	if err != nil {
		view.Release()
		tex.Release()
		return fmt.Errorf("uirender: atlas bind group: %w", err)
	}
	r.texture = tex
	r.texView = view
	r.texGroup = group
	r.texVersion = atlas.Version
	r.logger.Debug("atlas uploaded", "width", size.X, "height", size.Y, "version", atlas.Version)
	return nil
}

// EncodeAndSubmit acquires the current presentable image, records one
// command buffer that clears it to clearColor and draws every uploaded
// paint job in order, then submits and presents. Acquisition failures
// propagate gpu.ErrSurfaceStale / gpu.ErrZeroSize unchanged so the
// caller can apply its resize-and-retry remedy.
func (r *Renderer) EncodeAndSubmit(frame *ui.FrameState, screen ScreenDescriptor, clearColor color.RGBA) error {
	target, err := r.sf.AcquireFrame()
	if err != nil {
		return err
	}

	encoder, err := r.gp.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: "ui frame",
	})
	if err != nil {
		target.Discard()
		return fmt.Errorf("uirender: command encoder: %w", err)
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "ui",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:    target.View,
			LoadOp:  wgpu.LoadOpClear,
			StoreOp: wgpu.StoreOpStore,
			ClearValue: wgpu.Color{
				R: float64(clearColor.R) / 255,
				G: float64(clearColor.G) / 255,
				B: float64(clearColor.B) / 255,
				A: float64(clearColor.A) / 255,
			},
		}},
	})
	if len(r.draws) > 0 && r.texGroup != nil {
		pass.SetPipeline(r.pipeline)
		pass.SetBindGroup(0, r.uniformGroup, nil)
		pass.SetBindGroup(1, r.texGroup, nil)
		pass.SetVertexBuffer(0, r.vertexBuf, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(r.indexBuf, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		for _, d := range r.draws {
			x, y, w, h, ok := screen.Scissor(d.clip)
			if !ok {
				continue
			}
			pass.SetScissorRect(x, y, w, h)
			pass.DrawIndexed(d.indexCount, 1, d.firstIndex, d.baseVertex, 0)
		}
	}
	pass.End()
	pass.Release()

	cmd, err := encoder.Finish(nil)
	encoder.Release()
	if err != nil {
		target.Discard()
		return fmt.Errorf("uirender: encode: %w", err)
	}
	r.gp.Queue.Submit(cmd)
	cmd.Release()
	target.Present()
	return nil
}

// Release frees all GPU resources owned by the renderer.
func (r *Renderer) Release() {
	if r.texGroup != nil {
		r.texGroup.Release()
		r.texGroup = nil
	}
	if r.texView != nil {
		r.texView.Release()
		r.texView = nil
	}
	if r.texture != nil {
		r.texture.Release()
		r.texture = nil
	}
	if r.vertexBuf != nil {
		r.vertexBuf.Release()
		r.vertexBuf = nil
	}
	if r.indexBuf != nil {
		r.indexBuf.Release()
		r.indexBuf = nil
	}
	if r.uniformGroup != nil {
		r.uniformGroup.Release()
		r.uniformGroup = nil
	}
	if r.uniformBuf != nil {
		r.uniformBuf.Release()
		r.uniformBuf = nil
	}
	if r.texLayout != nil {
		r.texLayout.Release()
		r.texLayout = nil
	}
	if r.sampler != nil {
		r.sampler.Release()
		r.sampler = nil
	}
	if r.pipeline != nil {
		r.pipeline.Release()
		r.pipeline = nil
	}
}
