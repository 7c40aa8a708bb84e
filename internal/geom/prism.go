package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Prism is a convex outline in the local x/y plane extruded along z,
// centred on z=0. A wall box is the prism of its length × height rectangle
// with the wall width as depth.
type Prism struct {
	Outline Outline
	Depth   float64
}

// IntersectRay returns the ray parameter of the first point of the prism
// along the ray (Cyrus-Beck clipping against every face). A ray starting
// inside the prism hits at t=0.
func (p Prism) IntersectRay(r Ray) (float64, bool) {
	if len(p.Outline) < 3 {
		return 0, false
	}

	tEnter, tExit := 0.0, math.Inf(1)

	clip := func(normal mgl64.Vec3, offset float64) bool {
		// inside when normal·x <= offset
		num := offset - normal.Dot(r.Origin)
		denom := normal.Dot(r.Direction)
		if math.Abs(denom) < Epsilon {
			return num >= 0
		}
		t := num / denom
		if denom < 0 {
			tEnter = math.Max(tEnter, t)
		} else {
			tExit = math.Min(tExit, t)
		}
		return tEnter <= tExit
	}

	half := p.Depth / 2
	if !clip(mgl64.Vec3{0, 0, 1}, half) || !clip(mgl64.Vec3{0, 0, -1}, half) {
		return 0, false
	}

	c := p.Outline.Centroid()
	for i := range p.Outline {
		a, b := p.Outline[i], p.Outline[(i+1)%len(p.Outline)]
		n := Unit2(Perp(b.Sub(a)))
		if n.Dot(c.Sub(a)) > 0 {
			n = n.Mul(-1)
		}
		if !clip(mgl64.Vec3{n[0], n[1], 0}, n.Dot(a)) {
			return 0, false
		}
	}

	return tEnter, true
}
