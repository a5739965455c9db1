package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/marks"
)

func f32At(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestPackCameraUniform(t *testing.T) {
	u := marks.CameraUniform{SRGBFlag: 1}
	for i := range u.ViewProj {
		u.ViewProj[i] = float32(i) * 0.5
	}
	buf := packCameraUniform(u)

	if len(buf) != cameraUniformSize {
		t.Fatalf("uniform size = %d, want %d", len(buf), cameraUniformSize)
	}
	for i, want := range u.ViewProj {
		if got := f32At(buf, i*4); got != want {
			t.Errorf("matrix element %d = %v, want %v", i, got, want)
		}
	}
	if got := binary.LittleEndian.Uint32(buf[64:]); got != 1 {
		t.Errorf("srgb flag = %d, want 1", got)
	}
	for i := 68; i < 80; i++ {
		if buf[i] != 0 {
			t.Errorf("padding byte %d = %d, want 0", i, buf[i])
		}
	}
}

func TestPackQuadVertices(t *testing.T) {
	buf := packQuadVertices()
	if len(buf) != 6*quadVertexStride {
		t.Fatalf("quad buffer size = %d, want %d", len(buf), 6*quadVertexStride)
	}
	for i, v := range marks.QuadVertices {
		if got := f32At(buf, i*quadVertexStride); got != v.X {
			t.Errorf("vertex %d x = %v, want %v", i, got, v.X)
		}
		if got := f32At(buf, i*quadVertexStride+4); got != v.Y {
			t.Errorf("vertex %d y = %v, want %v", i, got, v.Y)
		}
	}
}

func TestPackCircleInstances(t *testing.T) {
	circles := []marks.CircleInstance{
		{Center: marks.V2(1, -2), RadiusScale: 0.25, Color: marks.RGBA(0.1, 0.2, 0.3, 0.4)},
		{Center: marks.V2(-5, 7), RadiusScale: 3, Color: marks.RGB(1, 0, 0)},
	}
	buf := packCircleInstances(circles)
	if len(buf) != len(circles)*circleInstanceStride {
		t.Fatalf("instance buffer size = %d, want %d", len(buf), len(circles)*circleInstanceStride)
	}
	for i, c := range circles {
		o := i * circleInstanceStride
		got := marks.CircleInstance{
			Center:      marks.V2(f32At(buf, o), f32At(buf, o+4)),
			RadiusScale: f32At(buf, o+8),
			Color: marks.RGBA(f32At(buf, o+12), f32At(buf, o+16),
				f32At(buf, o+20), f32At(buf, o+24)),
		}
		if got != c {
			t.Errorf("instance %d = %+v, want %+v", i, got, c)
		}
	}
}

func TestPackLineVertices(t *testing.T) {
	verts := []marks.LineVertex{
		{Position: marks.V2(0, 0), Color: marks.RGB(0, 1, 0)},
		{Position: marks.V2(10, -4.5), Color: marks.RGBA(0.5, 0.5, 0.5, 0.25)},
	}
	buf := packLineVertices(verts)
	if len(buf) != len(verts)*lineVertexStride {
		t.Fatalf("line buffer size = %d, want %d", len(buf), len(verts)*lineVertexStride)
	}
	for i, v := range verts {
		o := i * lineVertexStride
		got := marks.LineVertex{
			Position: marks.V2(f32At(buf, o), f32At(buf, o+4)),
			Color: marks.RGBA(f32At(buf, o+8), f32At(buf, o+12),
				f32At(buf, o+16), f32At(buf, o+20)),
		}
		if got != v {
			t.Errorf("vertex %d = %+v, want %+v", i, got, v)
		}
	}
}

func TestPackEmptySlices(t *testing.T) {
	if got := packCircleInstances(nil); len(got) != 0 {
		t.Errorf("packCircleInstances(nil) length = %d, want 0", len(got))
	}
	if got := packLineVertices(nil); len(got) != 0 {
		t.Errorf("packLineVertices(nil) length = %d, want 0", len(got))
	}
}
