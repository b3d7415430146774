package viewport

import "revealboard/internal/transition"

// Point is a position in screen space (pixels or terminal cells, y down)
type Point struct {
	X, Y float64
}

// Camera is the orthographic camera the controller drives
type Camera interface {
	Size() float64
	SetSize(size float64)
	Position() transition.Vec3
	SetPosition(pos transition.Vec3)
	// ScreenToWorld maps a screen point through the current framing
	ScreenToWorld(p Point) transition.Vec3
}

// OrthoCamera is a plain orthographic camera. Size is half the visible
// world height, as with an orthographic projection.
type OrthoCamera struct {
	size   float64
	pos    transition.Vec3
	Width  float64 // screen width
	Height float64 // screen height
	// Aspect scales horizontal screen units (e.g. terminal cells are ~2x taller than wide)
	Aspect float64
}

// NewOrthoCamera creates a camera framing pos with the given size on a screen of w x h
func NewOrthoCamera(size float64, pos transition.Vec3, w, h float64) *OrthoCamera {
	return &OrthoCamera{size: size, pos: pos, Width: w, Height: h, Aspect: 1}
}

func (c *OrthoCamera) Size() float64 { return c.size }

func (c *OrthoCamera) SetSize(size float64) { c.size = size }

func (c *OrthoCamera) Position() transition.Vec3 { return c.pos }

func (c *OrthoCamera) SetPosition(pos transition.Vec3) { c.pos = pos }

// unitsPerPixel is the world distance covered by one vertical screen unit
func (c *OrthoCamera) unitsPerPixel() float64 {
	if c.Height <= 0 {
		return 0
	}
	return 2 * c.size / c.Height
}

func (c *OrthoCamera) ScreenToWorld(p Point) transition.Vec3 {
	u := c.unitsPerPixel()
	aspect := c.Aspect
	if aspect == 0 {
		aspect = 1
	}
	return transition.Vec3{
		X: c.pos.X + (p.X-c.Width/2)*u/aspect,
		Y: c.pos.Y - (p.Y-c.Height/2)*u,
		Z: c.pos.Z,
	}
}

// WorldToScreen is the inverse of ScreenToWorld (z ignored)
func (c *OrthoCamera) WorldToScreen(w transition.Vec3) Point {
	u := c.unitsPerPixel()
	if u == 0 {
		return Point{}
	}
	aspect := c.Aspect
	if aspect == 0 {
		aspect = 1
	}
	return Point{
		X: (w.X-c.pos.X)*aspect/u + c.Width/2,
		Y: -(w.Y-c.pos.Y)/u + c.Height/2,
	}
}
