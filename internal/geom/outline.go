package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Outline is a convex polygon in the plan plane. Vertex order may be
// either winding.
type Outline []mgl64.Vec2

// RectOutline returns the counter-clockwise rectangle centred on the origin.
func RectOutline(width, height float64) Outline {
	hw, hh := width/2, height/2
	return Outline{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
}

// ClipHalfPlane keeps the part of the outline on the side of the line
// through point that normal points to (Sutherland-Hodgman, one edge).
func (o Outline) ClipHalfPlane(point, normal mgl64.Vec2) Outline {
	if len(o) == 0 {
		return nil
	}

	side := func(p mgl64.Vec2) float64 {
		return p.Sub(point).Dot(normal)
	}

	out := make(Outline, 0, len(o)+1)
	prev := o[len(o)-1]
	prevSide := side(prev)
	for _, cur := range o {
		curSide := side(cur)
		switch {
		case curSide >= -Epsilon && prevSide >= -Epsilon:
			out = append(out, cur)
		case curSide >= -Epsilon:
			out = append(out, lerp2(prev, cur, prevSide/(prevSide-curSide)), cur)
		case prevSide >= -Epsilon:
			out = append(out, lerp2(prev, cur, prevSide/(prevSide-curSide)))
		}
		prev, prevSide = cur, curSide
	}

	out = out.dedupe()
	if len(out) < 3 {
		return nil
	}
	return out
}

// dedupe drops consecutive coincident vertices, including across the wrap.
func (o Outline) dedupe() Outline {
	out := o[:0]
	for _, p := range o {
		if len(out) > 0 && out[len(out)-1].ApproxEqualThreshold(p, Epsilon) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0].ApproxEqualThreshold(out[len(out)-1], Epsilon) {
		out = out[:len(out)-1]
	}
	return out
}

// Centroid returns the vertex average.
func (o Outline) Centroid() mgl64.Vec2 {
	var c mgl64.Vec2
	if len(o) == 0 {
		return c
	}
	for _, p := range o {
		c = c.Add(p)
	}
	return c.Mul(1 / float64(len(o)))
}

// Bounds returns the axis-aligned bounding box.
func (o Outline) Bounds() Rect {
	if len(o) == 0 {
		return Rect{}
	}

	minX, minY := o[0][0], o[0][1]
	maxX, maxY := minX, minY
	for _, p := range o[1:] {
		minX = math.Min(minX, p[0])
		maxX = math.Max(maxX, p[0])
		minY = math.Min(minY, p[1])
		maxY = math.Max(maxY, p[1])
	}

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func lerp2(a, b mgl64.Vec2, t float64) mgl64.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}
