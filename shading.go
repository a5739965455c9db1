package marks

// RadiusMode controls how a CircleInstance's RadiusScale maps to the
// side length of the camera-space quad the circle is shaded on.
type RadiusMode int

const (
	// RadiusModeRadius treats RadiusScale as the circle radius in
	// world units: the quad side is 2*RadiusScale so the silhouette
	// diameter matches 2*radius. This is the default.
	RadiusModeRadius RadiusMode = iota
	// RadiusModeDiameter treats RadiusScale as the quad side length
	// directly, so the shaded silhouette diameter is RadiusScale
	// (scaled by the 0.98 coverage edge).
	RadiusModeDiameter
)

// Scale returns the factor multiplying RadiusScale to obtain the quad
// side length.
func (m RadiusMode) Scale() float32 {
	if m == RadiusModeRadius {
		return 2
	}
	return 1
}

// String implements fmt.Stringer for log output.
func (m RadiusMode) String() string {
	switch m {
	case RadiusModeRadius:
		return "radius"
	case RadiusModeDiameter:
		return "diameter"
	default:
		return "unknown"
	}
}

// Variant selects the output transfer applied by a renderer.
type Variant int

const (
	// VariantPlain writes shaded linear values to the target
	// unchanged. Use when the surface or compositor applies the
	// sRGB conversion itself.
	VariantPlain Variant = iota
	// VariantSRGBCorrected applies the sRGB transfer curve to the
	// RGB channels before output. Alpha is never converted.
	VariantSRGBCorrected
)

// String implements fmt.Stringer for log output.
func (v Variant) String() string {
	switch v {
	case VariantPlain:
		return "plain"
	case VariantSRGBCorrected:
		return "srgb-corrected"
	default:
		return "unknown"
	}
}

// Coverage edge constants for the circle fragment shading. Coverage
// ramps from 0 at normalized distance 1.0 (the quad edge) to 1 at
// 0.98, leaving a one-sided anti-aliasing band just inside the
// silhouette.
const (
	// CoverageEdgeOuter is the normalized distance at which coverage
	// reaches zero.
	CoverageEdgeOuter = 1.0
	// CoverageEdgeInner is the normalized distance at which coverage
	// reaches one.
	CoverageEdgeInner = 0.98
	// CoverageDiscardThreshold is the coverage below which a circle
	// fragment produces no output at all, leaving the destination
	// pixel untouched rather than blending a near-zero contribution.
	CoverageDiscardThreshold = 0.01
)

// CircleCoverage returns the anti-aliased coverage for a circle
// fragment at the given normalized distance from the center, where
// 1.0 is the quad edge. It is the smoothstep Hermite ramp between the
// outer and inner coverage edges, evaluated with reversed edges so
// coverage rises as distance falls.
//
// This is the exact CPU counterpart of the fragment shader's
// circle_coverage function; the software renderer uses it so both
// backends shade identically.
func CircleCoverage(dist float32) float32 {
	t := (dist - CoverageEdgeOuter) / (CoverageEdgeInner - CoverageEdgeOuter)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}
