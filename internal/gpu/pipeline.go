//go:build !nogpu

package gpu

import "github.com/gogpu/gputypes"

// circleVertexLayouts returns the two vertex buffers of the circle
// pipeline: slot 0 holds the shared unit quad, slot 1 the per-instance
// data advancing once per circle.
func circleVertexLayouts() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: quadVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // quad_pos
			},
		},
		{
			ArrayStride: circleInstanceStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 1},  // center
				{Format: gputypes.VertexFormatFloat32, Offset: 8, ShaderLocation: 2},    // radius_scale
				{Format: gputypes.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 3}, // color
			},
		},
	}
}

// lineVertexLayouts returns the single vertex buffer of the line
// pipeline.
func lineVertexLayouts() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: lineVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: 8, ShaderLocation: 1}, // color
			},
		},
	}
}

// straightAlphaBlend returns the blend state for straight
// (non-premultiplied) alpha: color channels weighted by source alpha,
// the alpha channel accumulated with source-over.
func straightAlphaBlend() gputypes.BlendState {
	return gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorSrcAlpha,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
	}
}
