package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/inamate/wallplan/internal/config"
	"github.com/inamate/wallplan/internal/geom"
)

const tol = 1e-6

func TestNew(t *testing.T) {
	c := New(config.DefaultViewer())
	if c.Position != (mgl64.Vec3{0, 0, 5}) {
		t.Errorf("Position = %v", c.Position)
	}
	if c.FovY != 75 || c.Near != 0.1 || c.Far != 1000 {
		t.Errorf("unexpected frustum %v %v %v", c.FovY, c.Near, c.Far)
	}
}

func TestSetAspect(t *testing.T) {
	c := New(config.DefaultViewer())
	c.SetAspect(1600, 800)
	if c.Aspect != 2 {
		t.Errorf("Aspect = %v, want 2", c.Aspect)
	}
	c.SetAspect(0, 800)
	if c.Aspect != 2 {
		t.Errorf("degenerate size changed aspect to %v", c.Aspect)
	}
}

func TestNDC(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		w, h   float64
		expect mgl64.Vec2
	}{
		{"centre", 400, 300, 800, 600, mgl64.Vec2{0, 0}},
		{"top left", 0, 0, 800, 600, mgl64.Vec2{-1, 1}},
		{"bottom right", 800, 600, 800, 600, mgl64.Vec2{1, -1}},
		{"quarter", 200, 450, 800, 600, mgl64.Vec2{-0.5, -0.5}},
		{"empty viewport", 10, 10, 0, 0, mgl64.Vec2{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NDC(tt.x, tt.y, tt.w, tt.h)
			if !got.ApproxEqualThreshold(tt.expect, tol) {
				t.Errorf("NDC = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestRayThroughCentre(t *testing.T) {
	c := New(config.DefaultViewer())
	c.SetAspect(800, 600)

	r := c.RayFromNDC(mgl64.Vec2{0, 0})
	if !r.Origin.ApproxEqualThreshold(mgl64.Vec3{0, 0, 5}, tol) {
		t.Errorf("origin = %v", r.Origin)
	}
	if !r.Direction.ApproxEqualThreshold(mgl64.Vec3{0, 0, -1}, tol) {
		t.Errorf("direction = %v, want (0,0,-1)", r.Direction)
	}
}

func TestRayHitsPlanAtFrustumEdge(t *testing.T) {
	c := New(config.DefaultViewer())
	c.SetAspect(1, 1)

	// At distance 5 the top of the view is 5*tan(fov/2) above the axis.
	halfHeight := 5 * math.Tan(mgl64.DegToRad(75)/2)

	r := c.RayFromNDC(mgl64.Vec2{1, 1})
	p, ok := r.IntersectPlane(geom.Plane{Normal: geom.Vertical})
	if !ok {
		t.Fatal("ray misses the plan plane")
	}
	want := mgl64.Vec3{halfHeight, halfHeight, 0}
	if !p.ApproxEqualThreshold(want, tol) {
		t.Errorf("hit = %v, want %v", p, want)
	}
}

func TestRayFromClient(t *testing.T) {
	c := New(config.DefaultViewer())
	c.SetAspect(800, 600)

	left := c.RayFromClient(0, 300, 800, 600)
	if left.Direction[0] >= 0 || math.Abs(left.Direction[1]) > tol {
		t.Errorf("left edge ray direction = %v", left.Direction)
	}
	if math.Abs(left.Direction.Len()-1) > tol {
		t.Errorf("direction not normalized: %v", left.Direction.Len())
	}
}
