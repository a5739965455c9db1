package marks

import (
	"image"
	stdcolor "image/color"
	"image/png"
	"os"
)

// Pixmap is a rectangular RGBA8 pixel buffer, the render target for
// both the software and GPU backends. Channel values are straight
// (non-premultiplied) alpha; whether RGB is linear or sRGB-encoded
// depends on the renderer Variant that produced it.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA, 4 bytes per pixel, row-major top-down
}

// NewPixmap creates a new pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetPixel sets the color of a single pixel, clamping each component
// to [0, 1] before quantizing.
func (p *Pixmap) SetPixel(x, y int, c Color) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = quantize(c.R)
	p.data[i+1] = quantize(c.G)
	p.data[i+2] = quantize(c.B)
	p.data[i+3] = quantize(c.A)
}

// GetPixel returns the color of a single pixel.
func (p *Pixmap) GetPixel(x, y int) Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Color{}
	}
	i := (y*p.width + x) * 4
	return Color{
		R: float32(p.data[i+0]) / 255,
		G: float32(p.data[i+1]) / 255,
		B: float32(p.data[i+2]) / 255,
		A: float32(p.data[i+3]) / 255,
	}
}

// BlendPixel composites a straight-alpha source color over the pixel.
// Color channels use src-alpha / one-minus-src-alpha, the alpha
// channel uses one / one-minus-src-alpha, matching the GPU blend
// state.
func (p *Pixmap) BlendPixel(x, y int, src Color) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	dst := p.GetPixel(x, y)
	inv := 1 - src.A
	p.SetPixel(x, y, Color{
		R: src.R*src.A + dst.R*inv,
		G: src.G*src.A + dst.G*inv,
		B: src.B*src.A + dst.B*inv,
		A: src.A + dst.A*inv,
	})
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c Color) {
	r := quantize(c.R)
	g := quantize(c.G)
	b := quantize(c.B)
	a := quantize(c.A)

	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// ToImage converts the pixmap to an image.RGBA.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, p.ToImage())
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) stdcolor.Color {
	c := p.GetPixel(x, y)
	return stdcolor.NRGBA{R: quantize(c.R), G: quantize(c.G), B: quantize(c.B), A: quantize(c.A)}
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() stdcolor.Model {
	return stdcolor.NRGBAModel
}

// quantize converts a [0, 1] float component to an 8-bit channel with
// rounding, clamping out-of-range input.
func quantize(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
