// Package color provides the sRGB transfer functions shared by the
// renderers, both as exact scalar conversions and as lookup tables
// for per-pixel work.
//
// Blending happens in linear light for physically correct results;
// sRGB is only an encoding applied at the edges. The lookup tables
// replace math.Pow with O(1) array lookups on the byte-quantized
// paths.
//
// References:
//   - sRGB specification: https://www.w3.org/Graphics/Color/sRGB
package color

// sRGBToLinearLUT converts an sRGB byte [0-255] to linear float32.
// Pre-computed 256 entries, 1KB memory cost.
var sRGBToLinearLUT [256]float32

// linearToSRGBLUT converts linear float32 [0.0-1.0] to an sRGB byte.
// Uses 4096 entries for 12-bit precision (sufficient for 8-bit sRGB).
var linearToSRGBLUT [4096]uint8

func init() {
	for i := 0; i < 256; i++ {
		sRGBToLinearLUT[i] = SRGBToLinear(float32(i) / 255.0)
	}

	for i := 0; i < 4096; i++ {
		s := LinearToSRGB(float32(i) / 4095.0)
		srgb := int(s*255.0 + 0.5)
		if srgb < 0 {
			srgb = 0
		}
		if srgb > 255 {
			srgb = 255
		}
		//nolint:gosec // G115: srgb is clamped to [0,255] range
		linearToSRGBLUT[i] = uint8(srgb)
	}
}

// SRGB8ToLinear converts an sRGB byte to linear float32 using the
// lookup table. This is ~20x faster than computing with math.Pow for
// each pixel.
func SRGB8ToLinear(s uint8) float32 {
	return sRGBToLinearLUT[s]
}

// LinearToSRGB8 converts a linear float32 to an sRGB byte using the
// lookup table. Input is clamped to [0.0, 1.0]; 12-bit table
// precision is more than sufficient for 8-bit output.
func LinearToSRGB8(l float32) uint8 {
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	index := int(l*4095.0 + 0.5)
	if index > 4095 {
		index = 4095
	}
	return linearToSRGBLUT[index]
}
