package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Affine2D represents a 2D affine transformation of the plan plane.
// Layout: [a, b, c, d, e, f] representing:
// | a  c  e |
// | b  d  f |
// | 0  0  1 |
//
// Where:
// - a, b, c, d = rotation
// - e, f = translation
type Affine2D [6]float64

// Identity returns the identity transform.
func Identity() Affine2D {
	return Affine2D{1, 0, 0, 1, 0, 0}
}

// Translate returns a translation.
func Translate(tx, ty float64) Affine2D {
	return Affine2D{1, 0, 0, 1, tx, ty}
}

// Rotate returns a counter-clockwise rotation (angle in radians).
func Rotate(radians float64) Affine2D {
	cos := math.Cos(radians)
	sin := math.Sin(radians)
	return Affine2D{cos, sin, -sin, cos, 0, 0}
}

// FromPose returns the transform that maps wall-local plan coordinates
// to world plan coordinates: Translate(x, y) * Rotate(radians).
func FromPose(x, y, radians float64) Affine2D {
	return Translate(x, y).Multiply(Rotate(radians))
}

// Multiply multiplies this transform by another: result = m * other
// This applies 'other' first, then 'm'.
func (m Affine2D) Multiply(other Affine2D) Affine2D {
	return Affine2D{
		m[0]*other[0] + m[2]*other[1],        // a
		m[1]*other[0] + m[3]*other[1],        // b
		m[0]*other[2] + m[2]*other[3],        // c
		m[1]*other[2] + m[3]*other[3],        // d
		m[0]*other[4] + m[2]*other[5] + m[4], // e
		m[1]*other[4] + m[3]*other[5] + m[5], // f
	}
}

// Apply transforms a plan point.
func (m Affine2D) Apply(p mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{m[0]*p[0] + m[2]*p[1] + m[4], m[1]*p[0] + m[3]*p[1] + m[5]}
}

// ApplyOutline transforms every vertex of an outline.
func (m Affine2D) ApplyOutline(o Outline) Outline {
	if o == nil {
		return nil
	}
	out := make(Outline, len(o))
	for i, p := range o {
		out[i] = m.Apply(p)
	}
	return out
}

// Determinant returns the determinant of the transform.
func (m Affine2D) Determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Invert returns the inverse of the transform, or Identity if not invertible.
func (m Affine2D) Invert() Affine2D {
	det := m.Determinant()
	if det == 0 {
		return Identity()
	}

	invDet := 1.0 / det
	return Affine2D{
		m[3] * invDet,
		-m[1] * invDet,
		-m[2] * invDet,
		m[0] * invDet,
		(m[2]*m[5] - m[3]*m[4]) * invDet,
		(m[1]*m[4] - m[0]*m[5]) * invDet,
	}
}

// Rect represents an axis-aligned bounding box in the plan plane.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}

	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)

	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}
