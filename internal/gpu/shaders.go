// Shader assembly. This file carries no build tag so the WGSL sources
// stay testable under nogpu builds.

package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/marks"
)

// Embedded WGSL shader chunks. Each pipeline shader is assembled from
// the shared shading chunk plus a per-primitive body so the camera
// uniform, coverage ramp, and output transfer are defined exactly once.

//go:embed shaders/shading.wgsl
var shadingChunkSource string

//go:embed shaders/circles.wgsl
var circleBodySource string

//go:embed shaders/lines.wgsl
var lineBodySource string

// circleShaderSource assembles the circle shader for the given radius
// mode. The mode becomes a WGSL constant so the vertex stage needs no
// extra uniform traffic.
func circleShaderSource(mode marks.RadiusMode) string {
	return fmt.Sprintf("const quad_scale: f32 = %.1f;\n\n", mode.Scale()) +
		shadingChunkSource + "\n" + circleBodySource
}

// lineShaderSource assembles the line shader.
func lineShaderSource() string {
	return shadingChunkSource + "\n" + lineBodySource
}
