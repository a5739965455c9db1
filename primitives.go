package marks

// CircleInstance describes one filled circle as consumed by the
// instanced circle pipeline. Center is in world units; RadiusScale is
// the per-instance size parameter whose interpretation depends on the
// renderer's RadiusMode. The in-memory field order matches the GPU
// instance buffer layout (28-byte stride).
type CircleInstance struct {
	Center      Vec2
	RadiusScale float32
	Color       Color
}

// Circle constructs a CircleInstance.
func Circle(center Vec2, radiusScale float32, c Color) CircleInstance {
	return CircleInstance{Center: center, RadiusScale: radiusScale, Color: c}
}

// LineVertex is one endpoint of a line segment with its own color.
// Colors interpolate linearly along a segment. The field order matches
// the GPU vertex buffer layout (24-byte stride).
type LineVertex struct {
	Position Vec2
	Color    Color
}

// LineTopology selects how a line vertex stream is assembled into
// segments.
type LineTopology int

const (
	// LineList treats consecutive vertex pairs (0-1, 2-3, ...) as
	// independent segments. An odd trailing vertex is ignored.
	LineList LineTopology = iota
	// LineStrip connects every vertex to the next, drawing n-1
	// segments from n vertices.
	LineStrip
)

// String implements fmt.Stringer for log output.
func (t LineTopology) String() string {
	switch t {
	case LineList:
		return "line-list"
	case LineStrip:
		return "line-strip"
	default:
		return "unknown"
	}
}

// QuadVertices is the unit quad each circle instance is stretched
// over, spanning [-0.5, 0.5] in both axes. Two counter-clockwise
// triangles, six vertices, drawn non-indexed.
var QuadVertices = [6]Vec2{
	{-0.5, -0.5},
	{0.5, -0.5},
	{0.5, 0.5},
	{-0.5, -0.5},
	{0.5, 0.5},
	{-0.5, 0.5},
}
