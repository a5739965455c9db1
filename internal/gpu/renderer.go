//go:build !nogpu

package gpu

import (
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/marks"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// fenceTimeout bounds the wait for a submitted frame.
const fenceTimeout = 5 * time.Second

// Renderer owns the GPU resources for drawing circle and line
// primitives into an offscreen RGBA8 texture, read back into a CPU
// pixmap after each frame.
//
// Both primitive pipelines share one bind group layout (the camera
// uniform at binding 0) and one render pass per frame: line segments
// draw first, circles on top, matching the software rasterizer's
// compositing order.
type Renderer struct {
	mu sync.Mutex

	instance       hal.Instance
	device         hal.Device
	queue          hal.Queue
	externalDevice bool // true when using a shared device (don't destroy on Close)

	circleShader  hal.ShaderModule
	lineShader    hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout

	circlePipeline    hal.RenderPipeline
	linePipeline      hal.RenderPipeline // LineList topology
	lineStripPipeline hal.RenderPipeline // LineStrip topology

	// quadBuf holds the constant unit quad the circle pipeline
	// instances over, uploaded once at init.
	quadBuf hal.Buffer

	targetTex  hal.Texture
	targetView hal.TextureView

	width, height uint32
	radiusMode    marks.RadiusMode
}

// New creates a renderer with its own GPU device, selecting a discrete
// or integrated adapter from the Vulkan backend.
func New(mode marks.RadiusMode) (*Renderer, error) {
	r := &Renderer{radiusMode: mode}
	if err := r.initGPU(); err != nil {
		return nil, err
	}
	return r, nil
}

// NewWithProvider creates a renderer on a shared GPU device from an
// external provider (e.g. gogpu). The provider must implement
// HalDevice() any and HalQueue() any returning hal.Device and
// hal.Queue.
func NewWithProvider(provider any, mode marks.RadiusMode) (*Renderer, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("marks-gpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("marks-gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("marks-gpu: provider HalQueue is not hal.Queue")
	}

	r := &Renderer{
		device:         device,
		queue:          queue,
		externalDevice: true,
		radiusMode:     mode,
	}
	if err := r.createPipelines(); err != nil {
		return nil, fmt.Errorf("marks-gpu: create pipelines with shared device: %w", err)
	}
	slogger().Info("marks-gpu: using shared GPU device")
	return r, nil
}

func (r *Renderer) initGPU() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	r.instance = instance
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		r.instance = nil
		return fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		r.instance = nil
		return fmt.Errorf("open device: %w", err)
	}
	r.device = openDev.Device
	r.queue = openDev.Queue
	if err := r.createPipelines(); err != nil {
		r.device.Destroy()
		r.device = nil
		r.queue = nil
		instance.Destroy()
		r.instance = nil
		return fmt.Errorf("create pipelines: %w", err)
	}
	slogger().Info("marks-gpu: renderer initialized", "adapter", selected.Info.Name)
	return nil
}

// Close releases all GPU resources. Safe to call multiple times.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.destroyTarget()
	r.destroyPipelines()
	if !r.externalDevice {
		if r.device != nil {
			r.device.Destroy()
		}
		if r.instance != nil {
			r.instance.Destroy()
		}
	}
	r.device = nil
	r.queue = nil
	r.instance = nil
	r.externalDevice = false
}

// createPipelines compiles both shaders and creates the three render
// pipelines sharing one pipeline layout.
func (r *Renderer) createPipelines() error {
	circleShader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "marks_circles_shader",
		Source: hal.ShaderSource{WGSL: circleShaderSource(r.radiusMode)},
	})
	if err != nil {
		return fmt.Errorf("compile circle shader: %w", err)
	}
	r.circleShader = circleShader

	lineShader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "marks_lines_shader",
		Source: hal.ShaderSource{WGSL: lineShaderSource()},
	})
	if err != nil {
		return fmt.Errorf("compile line shader: %w", err)
	}
	r.lineShader = lineShader

	uniformLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "marks_camera_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create camera layout: %w", err)
	}
	r.uniformLayout = uniformLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "marks_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	blend := straightAlphaBlend()

	circlePipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "marks_circles_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.circleShader,
			EntryPoint: "vs_main",
			Buffers:    circleVertexLayouts(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.circleShader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatRGBA8Unorm,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeBack,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create circle pipeline: %w", err)
	}
	r.circlePipeline = circlePipeline

	linePipeline, err := r.createLinePipeline("marks_lines_pipeline", gputypes.PrimitiveTopologyLineList, blend)
	if err != nil {
		return fmt.Errorf("create line pipeline: %w", err)
	}
	r.linePipeline = linePipeline

	lineStripPipeline, err := r.createLinePipeline("marks_line_strip_pipeline", gputypes.PrimitiveTopologyLineStrip, blend)
	if err != nil {
		return fmt.Errorf("create line strip pipeline: %w", err)
	}
	r.lineStripPipeline = lineStripPipeline

	quadBuf, err := r.createAndUploadBuffer("marks_quad_verts", packQuadVertices(),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("create quad buffer: %w", err)
	}
	r.quadBuf = quadBuf

	return nil
}

// createLinePipeline builds one line pipeline for the given topology.
// Both variants differ only in primitive assembly.
func (r *Renderer) createLinePipeline(label string, topo gputypes.PrimitiveTopology, blend gputypes.BlendState) (hal.RenderPipeline, error) {
	return r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label,
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.lineShader,
			EntryPoint: "vs_main",
			Buffers:    lineVertexLayouts(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.lineShader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatRGBA8Unorm,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: topo,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
}

func (r *Renderer) destroyPipelines() {
	if r.device == nil {
		return
	}
	if r.quadBuf != nil {
		r.device.DestroyBuffer(r.quadBuf)
		r.quadBuf = nil
	}
	if r.lineStripPipeline != nil {
		r.device.DestroyRenderPipeline(r.lineStripPipeline)
		r.lineStripPipeline = nil
	}
	if r.linePipeline != nil {
		r.device.DestroyRenderPipeline(r.linePipeline)
		r.linePipeline = nil
	}
	if r.circlePipeline != nil {
		r.device.DestroyRenderPipeline(r.circlePipeline)
		r.circlePipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.uniformLayout != nil {
		r.device.DestroyBindGroupLayout(r.uniformLayout)
		r.uniformLayout = nil
	}
	if r.lineShader != nil {
		r.device.DestroyShaderModule(r.lineShader)
		r.lineShader = nil
	}
	if r.circleShader != nil {
		r.device.DestroyShaderModule(r.circleShader)
		r.circleShader = nil
	}
}

// ensureTarget creates or recreates the offscreen color target when
// the requested dimensions change.
func (r *Renderer) ensureTarget(w, h uint32) error {
	if r.width == w && r.height == h && r.targetTex != nil {
		return nil
	}
	r.destroyTarget()

	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "marks_target",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create target texture: %w", err)
	}
	r.targetTex = tex

	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "marks_target_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		r.destroyTarget()
		return fmt.Errorf("create target view: %w", err)
	}
	r.targetView = view

	r.width = w
	r.height = h
	return nil
}

func (r *Renderer) destroyTarget() {
	if r.device == nil {
		return
	}
	if r.targetView != nil {
		r.device.DestroyTextureView(r.targetView)
		r.targetView = nil
	}
	if r.targetTex != nil {
		r.device.DestroyTexture(r.targetTex)
		r.targetTex = nil
	}
	r.width = 0
	r.height = 0
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (r *Renderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	r.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// RenderFrame draws one frame and reads the pixels back into dst.
// Lines draw before circles so circles composite on top. The clear
// color fills the target before either pass.
func (r *Renderer) RenderFrame(
	u marks.CameraUniform, clear marks.Color,
	circles []marks.CircleInstance,
	lines []marks.LineVertex, topo marks.LineTopology,
	dst *marks.Pixmap,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.device == nil {
		return fmt.Errorf("marks-gpu: renderer is closed")
	}

	w, h := uint32(dst.Width()), uint32(dst.Height()) //nolint:gosec // dimensions always fit uint32
	if w == 0 || h == 0 {
		return fmt.Errorf("marks-gpu: empty target %dx%d", w, h)
	}
	if err := r.ensureTarget(w, h); err != nil {
		return err
	}

	uniformBuf, err := r.createAndUploadBuffer("marks_camera", packCameraUniform(u),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("create uniform buffer: %w", err)
	}
	defer r.device.DestroyBuffer(uniformBuf)

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "marks_camera_bind",
		Layout: r.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: cameraUniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	defer r.device.DestroyBindGroup(bindGroup)

	var lineBuf hal.Buffer
	lineVertexCount := effectiveLineVertexCount(len(lines), topo)
	if lineVertexCount > 0 {
		lineBuf, err = r.createAndUploadBuffer("marks_line_verts", packLineVertices(lines),
			gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return fmt.Errorf("create line buffer: %w", err)
		}
		defer r.device.DestroyBuffer(lineBuf)
	}

	var instBuf hal.Buffer
	if len(circles) > 0 {
		instBuf, err = r.createAndUploadBuffer("marks_circle_instances", packCircleInstances(circles),
			gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return fmt.Errorf("create instance buffer: %w", err)
		}
		defer r.device.DestroyBuffer(instBuf)
	}

	slogger().Debug("marks-gpu: frame",
		"size", fmt.Sprintf("%dx%d", w, h),
		"circles", len(circles), "line_verts", lineVertexCount, "topology", topo)

	return r.encodeAndReadback(w, h, clear, bindGroup,
		lineBuf, lineVertexCount, topo,
		instBuf, uint32(len(circles)), //nolint:gosec // instance count fits uint32
		dst)
}

// effectiveLineVertexCount returns how many vertices the line pass
// draws: an odd trailing vertex is dropped in list topology, and a
// strip needs at least two vertices to produce a segment.
func effectiveLineVertexCount(n int, topo marks.LineTopology) uint32 {
	if topo == marks.LineList {
		n -= n % 2
	} else if n < 2 {
		n = 0
	}
	return uint32(n) //nolint:gosec // vertex count fits uint32
}

// encodeAndReadback encodes the render pass, copies the target to a
// staging buffer, submits, waits, and reads pixels into dst.
func (r *Renderer) encodeAndReadback(
	w, h uint32, clear marks.Color, bindGroup hal.BindGroup,
	lineBuf hal.Buffer, lineVertexCount uint32, topo marks.LineTopology,
	instBuf hal.Buffer, instanceCount uint32,
	dst *marks.Pixmap,
) error {
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "marks_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("marks_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "marks_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:    r.targetView,
				LoadOp:  gputypes.LoadOpClear,
				StoreOp: gputypes.StoreOpStore,
				ClearValue: gputypes.Color{
					R: float64(clear.R), G: float64(clear.G),
					B: float64(clear.B), A: float64(clear.A),
				},
			},
		},
	})
	if lineVertexCount > 0 {
		if topo == marks.LineStrip {
			rp.SetPipeline(r.lineStripPipeline)
		} else {
			rp.SetPipeline(r.linePipeline)
		}
		rp.SetBindGroup(0, bindGroup, nil)
		rp.SetVertexBuffer(0, lineBuf, 0)
		rp.Draw(lineVertexCount, 1, 0, 0)
	}
	if instanceCount > 0 {
		rp.SetPipeline(r.circlePipeline)
		rp.SetBindGroup(0, bindGroup, nil)
		rp.SetVertexBuffer(0, r.quadBuf, 0)
		rp.SetVertexBuffer(1, instBuf, 0)
		rp.Draw(6, instanceCount, 0, 0)
	}
	rp.End()

	// After the pass the texture is in color-attachment layout;
	// CopyTextureToBuffer requires transfer-src. Vulkan needs an
	// explicit transition, other backends treat this as a no-op.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.targetTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	pixelBufSize := uint64(w) * uint64(h) * 4
	stagingBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "marks_staging",
		Size:  pixelBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer r.device.DestroyBuffer(stagingBuf)

	encoder.CopyTextureToBuffer(r.targetTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: w * 4, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: r.targetTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := r.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	if err := r.queue.ReadBuffer(stagingBuf, 0, dst.Data()); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	return nil
}
