package color

import "math"

// SRGBToLinear converts an sRGB component to linear (EOTF - Electro-Optical Transfer Function).
// Formula: if s <= 0.04045: s/12.92; else: pow((s+0.055)/1.055, 2.4)
//
// The input is not clamped: values below the threshold follow the
// linear branch (so negatives stay negative), values above 1 follow
// the power branch.
func SRGBToLinear(s float32) float32 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return float32(math.Pow(float64((s+0.055)/1.055), 2.4))
}

// LinearToSRGB converts a linear component to sRGB (OETF - Opto-Electronic Transfer Function).
// Formula: if l < 0.0031308: l*12.92; else: 1.055*pow(l, 1/2.4)-0.055
//
// The input is not clamped, mirroring the shader's output transfer:
// out-of-range values pass through the matching branch unchanged in
// shape, and quantization to 8 bits is left to the caller.
func LinearToSRGB(l float32) float32 {
	if l < 0.0031308 {
		return l * 12.92
	}
	return 1.055*float32(math.Pow(float64(l), 1.0/2.4)) - 0.055
}
