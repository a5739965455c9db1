package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/marks"
)

// GPU buffer strides and sizes. These must match the vertex layouts in
// pipeline.go and the struct declarations in the WGSL sources.
const (
	// quadVertexStride is the byte stride of the shared unit quad
	// buffer: one vec2<f32> position per vertex.
	quadVertexStride = 8

	// circleInstanceStride is the byte stride per circle instance:
	// center (vec2<f32>) + radius_scale (f32) + color (vec4<f32>).
	circleInstanceStride = 28

	// lineVertexStride is the byte stride per line vertex:
	// position (vec2<f32>) + color (vec4<f32>).
	lineVertexStride = 24

	// cameraUniformSize is the byte size of the camera uniform block:
	// view_proj (mat4x4<f32>) + srgb_flag (u32) + 12 bytes padding to
	// the 16-byte uniform alignment.
	cameraUniformSize = 80
)

func putF32(buf []byte, v float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
}

// packCameraUniform serializes the camera uniform block. The matrix is
// already column-major, so its array order is uploaded as-is.
func packCameraUniform(u marks.CameraUniform) []byte {
	buf := make([]byte, cameraUniformSize)
	for i, v := range u.ViewProj {
		putF32(buf[i*4:], v)
	}
	binary.LittleEndian.PutUint32(buf[64:], u.SRGBFlag)
	// Padding bytes 68..79 remain zero.
	return buf
}

// packQuadVertices serializes the shared unit quad.
func packQuadVertices() []byte {
	buf := make([]byte, len(marks.QuadVertices)*quadVertexStride)
	for i, v := range marks.QuadVertices {
		putF32(buf[i*quadVertexStride:], v.X)
		putF32(buf[i*quadVertexStride+4:], v.Y)
	}
	return buf
}

// packCircleInstances serializes circle instances for the instance
// buffer.
func packCircleInstances(circles []marks.CircleInstance) []byte {
	buf := make([]byte, len(circles)*circleInstanceStride)
	for i := range circles {
		c := &circles[i]
		o := i * circleInstanceStride
		putF32(buf[o:], c.Center.X)
		putF32(buf[o+4:], c.Center.Y)
		putF32(buf[o+8:], c.RadiusScale)
		putF32(buf[o+12:], c.Color.R)
		putF32(buf[o+16:], c.Color.G)
		putF32(buf[o+20:], c.Color.B)
		putF32(buf[o+24:], c.Color.A)
	}
	return buf
}

// packLineVertices serializes line vertices for the vertex buffer.
func packLineVertices(verts []marks.LineVertex) []byte {
	buf := make([]byte, len(verts)*lineVertexStride)
	for i := range verts {
		v := &verts[i]
		o := i * lineVertexStride
		putF32(buf[o:], v.Position.X)
		putF32(buf[o+4:], v.Position.Y)
		putF32(buf[o+8:], v.Color.R)
		putF32(buf[o+12:], v.Color.G)
		putF32(buf[o+16:], v.Color.B)
		putF32(buf[o+20:], v.Color.A)
	}
	return buf
}
