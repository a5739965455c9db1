package marks

// Zoom limits for Camera.ZoomBy. Outside this range the float32
// orthographic extents lose too much precision to be useful.
const (
	MinZoom float32 = 0.001
	MaxZoom float32 = 1000
)

// Camera is a 2D pan/zoom camera over the world plane. At Zoom 1 the
// visible world spans [-AspectRatio, AspectRatio] horizontally and
// [-1, 1] vertically around Position; larger Zoom shows less world.
type Camera struct {
	// Position is the world point at the center of the view.
	Position Vec2
	// Zoom is the magnification factor, clamped to [MinZoom, MaxZoom]
	// by ZoomBy. Direct writes are not clamped.
	Zoom float32
	// AspectRatio is viewport width over height, kept in sync by
	// SetViewport.
	AspectRatio float32
	// Viewport is the target size in pixels.
	Viewport Vec2

	panning   bool
	panAnchor Vec2 // screen position where the current pan started
	panOrigin Vec2 // camera position at pan start
}

// NewCamera creates a camera centered on the origin at zoom 1 for a
// target of the given pixel size.
func NewCamera(width, height float32) *Camera {
	c := &Camera{Zoom: 1}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the target size and the derived aspect ratio.
func (c *Camera) SetViewport(width, height float32) {
	c.Viewport = Vec2{X: width, Y: height}
	if height != 0 {
		c.AspectRatio = width / height
	}
}

// ViewProjection returns the combined view-projection matrix: a
// translation moving Position to the origin followed by a right-handed
// orthographic projection sized by Zoom and AspectRatio.
func (c *Camera) ViewProjection() Mat4 {
	halfW := c.AspectRatio / c.Zoom
	halfH := 1 / c.Zoom
	proj := Orthographic(-halfW, halfW, -halfH, halfH, -100, 100)
	view := Translation(-c.Position.X, -c.Position.Y, 0)
	return proj.Mul(view)
}

// Uniform captures the camera state for the given output variant as a
// CameraUniform ready for upload.
func (c *Camera) Uniform(v Variant) CameraUniform {
	u := CameraUniform{ViewProj: c.ViewProjection()}
	if v == VariantSRGBCorrected {
		u.SRGBFlag = 1
	}
	return u
}

// ScreenToWorld converts a pixel position (origin top-left, Y down)
// to world coordinates by inverting the view-projection transform.
// Returns zero while the viewport is unset.
func (c *Camera) ScreenToWorld(screen Vec2) Vec2 {
	if c.Viewport.X == 0 || c.Viewport.Y == 0 {
		return Vec2{}
	}
	ndc := Vec4{
		X: screen.X/c.Viewport.X*2 - 1,
		Y: 1 - screen.Y/c.Viewport.Y*2,
		Z: 0,
		W: 1,
	}
	inv, ok := c.ViewProjection().Inverse()
	if !ok {
		return Vec2{}
	}
	world := inv.MulVec4(ndc)
	return Vec2{X: world.X, Y: world.Y}
}

// WorldToScreen converts a world position to pixel coordinates
// (origin top-left, Y down).
func (c *Camera) WorldToScreen(world Vec2) Vec2 {
	ndc := c.ViewProjection().MulVec4(Vec4{X: world.X, Y: world.Y, W: 1})
	return Vec2{
		X: (ndc.X + 1) / 2 * c.Viewport.X,
		Y: (1 - ndc.Y) / 2 * c.Viewport.Y,
	}
}

// WorldBounds returns the world-space corners currently visible, as
// (min, max).
func (c *Camera) WorldBounds() (Vec2, Vec2) {
	halfW := c.AspectRatio / c.Zoom
	halfH := 1 / c.Zoom
	return Vec2{X: c.Position.X - halfW, Y: c.Position.Y - halfH},
		Vec2{X: c.Position.X + halfW, Y: c.Position.Y + halfH}
}

// WorldRadiusToScreenPixels converts a world-space radius to its
// on-screen size in pixels.
func (c *Camera) WorldRadiusToScreenPixels(r float32) float32 {
	return r * c.Viewport.Y * c.Zoom / 2
}

// StartPan begins a drag pan anchored at the given screen position.
func (c *Camera) StartPan(screen Vec2) {
	c.panning = true
	c.panAnchor = screen
	c.panOrigin = c.Position
}

// Pan updates the camera position so the world point under the pan
// anchor follows the cursor. No-op unless a pan is active.
func (c *Camera) Pan(screen Vec2) {
	if !c.panning {
		return
	}
	// Convert the screen-space drag to a world-space displacement.
	// Screen Y grows downward, world Y grows upward.
	dx := (screen.X - c.panAnchor.X) / c.Viewport.X * 2 * c.AspectRatio / c.Zoom
	dy := (screen.Y - c.panAnchor.Y) / c.Viewport.Y * 2 / c.Zoom
	c.Position = Vec2{X: c.panOrigin.X - dx, Y: c.panOrigin.Y + dy}
}

// EndPan finishes the active pan.
func (c *Camera) EndPan() {
	c.panning = false
}

// Panning reports whether a drag pan is in progress.
func (c *Camera) Panning() bool {
	return c.panning
}

// ZoomBy multiplies the zoom by factor while keeping the world point
// under the given screen position fixed. The resulting zoom is clamped
// to [MinZoom, MaxZoom].
func (c *Camera) ZoomBy(factor float32, screen Vec2) {
	focus := c.ScreenToWorld(screen)
	oldZoom := c.Zoom
	newZoom := oldZoom * factor
	if newZoom < MinZoom {
		newZoom = MinZoom
	} else if newZoom > MaxZoom {
		newZoom = MaxZoom
	}
	c.Zoom = newZoom
	// Keep focus at the same view fraction:
	// (focus - pos') * zoom' == (focus - pos) * zoom.
	c.Position = focus.Add(c.Position.Sub(focus).Mul(oldZoom / newZoom))
}

// CameraUniform is the CPU mirror of the camera uniform block consumed
// by both shader variants: a column-major view-projection matrix
// followed by the sRGB output flag. The GPU layout pads the struct to
// 80 bytes; see the uniform packing in the GPU backend.
type CameraUniform struct {
	ViewProj Mat4
	// SRGBFlag is 1 when the shader must apply the linear-to-sRGB
	// transfer to RGB output channels, 0 to pass values through.
	SRGBFlag uint32
}
