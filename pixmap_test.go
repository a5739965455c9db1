package marks

import (
	"math"
	"testing"
)

func TestPixmapSetGetPixel(t *testing.T) {
	p := NewPixmap(4, 4)
	c := RGBA(1, 0.5, 0, 0.25)
	p.SetPixel(2, 1, c)

	got := p.GetPixel(2, 1)
	// Quantization through 8 bits: round-half-up lands exactly half a
	// step away from 0.5, so allow a full step of error.
	const eps = 1.0 / 255
	if math.Abs(float64(got.R-1)) > eps || math.Abs(float64(got.G-0.5)) > eps ||
		math.Abs(float64(got.B)) > eps || math.Abs(float64(got.A-0.25)) > eps {
		t.Errorf("GetPixel = %+v, want approx %+v", got, c)
	}
}

func TestPixmapOutOfBounds(t *testing.T) {
	p := NewPixmap(2, 2)
	// Writes outside the buffer are dropped, reads return zero.
	p.SetPixel(-1, 0, RGB(1, 1, 1))
	p.SetPixel(2, 0, RGB(1, 1, 1))
	p.SetPixel(0, 5, RGB(1, 1, 1))
	for _, b := range p.Data() {
		if b != 0 {
			t.Fatal("out-of-bounds SetPixel modified the buffer")
		}
	}
	if got := p.GetPixel(-3, 7); got != (Color{}) {
		t.Errorf("out-of-bounds GetPixel = %+v, want zero", got)
	}
}

func TestPixmapSetPixelClamps(t *testing.T) {
	p := NewPixmap(1, 1)
	p.SetPixel(0, 0, RGBA(2, -1, 0.5, 3))
	d := p.Data()
	if d[0] != 255 || d[1] != 0 || d[3] != 255 {
		t.Errorf("clamped channels = [%d %d _ %d], want [255 0 _ 255]", d[0], d[1], d[3])
	}
}

func TestPixmapClear(t *testing.T) {
	p := NewPixmap(3, 2)
	p.Clear(RGBA(0, 0, 1, 1))
	for i := 0; i < len(p.Data()); i += 4 {
		if p.Data()[i+2] != 255 || p.Data()[i+3] != 255 || p.Data()[i] != 0 {
			t.Fatalf("pixel %d = %v after Clear", i/4, p.Data()[i:i+4])
		}
	}
}

func TestPixmapBlendPixel(t *testing.T) {
	p := NewPixmap(1, 1)
	p.Clear(RGBA(0, 0, 0, 1))

	// 50% red over opaque black: color = src*a + dst*(1-a),
	// alpha = src.a + dst.a*(1-src.a).
	p.BlendPixel(0, 0, RGBA(1, 0, 0, 0.5))
	got := p.GetPixel(0, 0)
	const eps = 1.0 / 255
	if math.Abs(float64(got.R-0.5)) > eps {
		t.Errorf("blended R = %v, want 0.5", got.R)
	}
	if math.Abs(float64(got.A-1)) > eps {
		t.Errorf("blended A = %v, want 1", got.A)
	}
}

func TestPixmapBlendOpaqueReplaces(t *testing.T) {
	p := NewPixmap(1, 1)
	p.Clear(RGBA(0, 1, 0, 1))
	p.BlendPixel(0, 0, RGBA(1, 0, 0, 1))
	got := p.GetPixel(0, 0)
	if got.R != 1 || got.G != 0 {
		t.Errorf("opaque blend = %+v, want pure red", got)
	}
}

func TestPixmapToImage(t *testing.T) {
	p := NewPixmap(2, 1)
	p.SetPixel(1, 0, RGB(1, 0, 0))
	img := p.ToImage()
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Fatalf("image bounds = %v", img.Bounds())
	}
	if img.Pix[4] != 255 || img.Pix[7] != 255 {
		t.Errorf("pixel (1,0) = %v, want opaque red", img.Pix[4:8])
	}
}
