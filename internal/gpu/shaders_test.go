package gpu

import (
	"strings"
	"testing"

	"github.com/gogpu/marks"
	"github.com/gogpu/naga"
)

// spirvMagic is the first word of any valid SPIR-V module.
const spirvMagic = 0x07230203

func compileWGSL(t *testing.T, source string) []byte {
	t.Helper()
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "not yet implemented") || strings.Contains(errStr, "not supported") {
			t.Skipf("Skipping: naga feature not yet implemented: %v", err)
		}
		t.Fatalf("failed to compile shader: %v", err)
	}
	return spirvBytes
}

func checkSPIRV(t *testing.T, spirvBytes []byte) {
	t.Helper()
	if len(spirvBytes) < 20 {
		t.Fatalf("SPIR-V output too short: %d bytes", len(spirvBytes))
	}
	if len(spirvBytes)%4 != 0 {
		t.Fatalf("SPIR-V length %d is not word-aligned", len(spirvBytes))
	}
	magic := uint32(spirvBytes[0]) | uint32(spirvBytes[1])<<8 |
		uint32(spirvBytes[2])<<16 | uint32(spirvBytes[3])<<24
	if magic != spirvMagic {
		t.Errorf("SPIR-V magic = %#x, want %#x", magic, spirvMagic)
	}
}

func TestCircleShaderCompiles(t *testing.T) {
	modes := []marks.RadiusMode{marks.RadiusModeRadius, marks.RadiusModeDiameter}
	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			checkSPIRV(t, compileWGSL(t, circleShaderSource(mode)))
		})
	}
}

func TestLineShaderCompiles(t *testing.T) {
	checkSPIRV(t, compileWGSL(t, lineShaderSource()))
}

func TestCircleShaderQuadScale(t *testing.T) {
	tests := []struct {
		mode marks.RadiusMode
		want string
	}{
		{marks.RadiusModeRadius, "const quad_scale: f32 = 2.0;"},
		{marks.RadiusModeDiameter, "const quad_scale: f32 = 1.0;"},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			src := circleShaderSource(tt.mode)
			if !strings.Contains(src, tt.want) {
				t.Errorf("circle shader missing %q", tt.want)
			}
		})
	}
}

// TestSharedShadingChunk verifies both pipeline shaders are assembled
// around the same camera uniform and transfer functions, so the two
// primitives cannot drift apart in shading behavior.
func TestSharedShadingChunk(t *testing.T) {
	sources := map[string]string{
		"circles": circleShaderSource(marks.RadiusModeRadius),
		"lines":   lineShaderSource(),
	}
	for name, src := range sources {
		if !strings.Contains(src, shadingChunkSource) {
			t.Errorf("%s shader does not embed the shared shading chunk", name)
		}
		if !strings.Contains(src, "fn output_transfer") {
			t.Errorf("%s shader missing output_transfer", name)
		}
		if strings.Count(src, "var<uniform> camera") != 1 {
			t.Errorf("%s shader must declare the camera uniform exactly once", name)
		}
	}

	if !strings.Contains(sources["circles"], "fn circle_coverage") {
		t.Error("circle shader missing circle_coverage")
	}
	if !strings.Contains(sources["circles"], "discard") {
		t.Error("circle shader missing low-coverage discard")
	}
}
