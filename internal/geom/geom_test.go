package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const tol = 1e-9

func TestPlanarRoundTrip(t *testing.T) {
	tests := []mgl64.Vec3{
		{0, 0, 0},
		{1, 2, 3},
		{-4, 0.5, -7},
	}
	for _, v := range tests {
		if got := FromPlanarMath(ToPlanarMath(v)); !got.ApproxEqualThreshold(v, tol) {
			t.Errorf("FromPlanarMath(ToPlanarMath(%v)) = %v", v, got)
		}
		if got := ToPlanarMath(FromPlanarMath(v)); !got.ApproxEqualThreshold(v, tol) {
			t.Errorf("ToPlanarMath(FromPlanarMath(%v)) = %v", v, got)
		}
	}

	if got := ToPlanarMath(mgl64.Vec3{1, 2, 3}); got != (mgl64.Vec3{1, 3, -2}) {
		t.Errorf("ToPlanarMath = %v, want (1, 3, -2)", got)
	}
}

func TestNormalizeZero(t *testing.T) {
	if got := Normalize(mgl64.Vec3{}); got != (mgl64.Vec3{}) {
		t.Errorf("Normalize(0) = %v, want zero", got)
	}
	if got := Normalize(mgl64.Vec3{0, 3, 4}); !got.ApproxEqualThreshold(mgl64.Vec3{0, 0.6, 0.8}, tol) {
		t.Errorf("Normalize = %v", got)
	}
}

func TestRayIntersectPlane(t *testing.T) {
	ground := PlaneFromNormalAndPoint(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{})

	tests := []struct {
		name   string
		ray    Ray
		want   mgl64.Vec3
		wantOK bool
	}{
		{"straight down", NewRay(mgl64.Vec3{1, 2, 5}, mgl64.Vec3{0, 0, -1}), mgl64.Vec3{1, 2, 0}, true},
		{"oblique", NewRay(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, -1}), mgl64.Vec3{1, 0, 0}, true},
		{"pointing away", NewRay(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, 1}), mgl64.Vec3{}, false},
		{"parallel above", NewRay(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}), mgl64.Vec3{}, false},
		{"parallel inside", NewRay(mgl64.Vec3{3, 0, 0}, mgl64.Vec3{1, 0, 0}), mgl64.Vec3{3, 0, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ray.IntersectPlane(ground)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !got.ApproxEqualThreshold(tt.want, tol) {
				t.Errorf("point = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestZeroNormalPlaneNeverHit(t *testing.T) {
	p := PlaneFromNormalAndPoint(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0})
	if _, ok := NewRay(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}).IntersectPlane(p); ok {
		t.Error("ray hit a plane without a normal")
	}
}

func TestAffinePoseInvert(t *testing.T) {
	m := FromPose(2, -1, math.Pi/3)
	p := mgl64.Vec2{0.5, 0.25}
	back := m.Invert().Apply(m.Apply(p))
	if !back.ApproxEqualThreshold(p, tol) {
		t.Errorf("round trip = %v, want %v", back, p)
	}
	id := m.Multiply(m.Invert())
	for i, want := range Identity() {
		if math.Abs(id[i]-want) > tol {
			t.Errorf("m * m^-1 = %v, want identity", id)
			break
		}
	}

	got := FromPose(1, 1, math.Pi/2).Apply(mgl64.Vec2{1, 0})
	if !got.ApproxEqualThreshold(mgl64.Vec2{1, 2}, tol) {
		t.Errorf("pose apply = %v, want (1, 2)", got)
	}
}

func TestRotatedOutlineBounds(t *testing.T) {
	// A quarter turn about the origin maps [-1,1]x[-0.5,0.5] to [-0.5,0.5]x[-1,1].
	got := Rotate(math.Pi / 2).ApplyOutline(RectOutline(2, 1)).Bounds()
	want := Rect{X: -0.5, Y: -1, Width: 1, Height: 2}
	if math.Abs(got.X-want.X) > tol || math.Abs(got.Y-want.Y) > tol ||
		math.Abs(got.Width-want.Width) > tol || math.Abs(got.Height-want.Height) > tol {
		t.Errorf("bounds = %+v, want %+v", got, want)
	}
	if d := FromPose(3, 4, 1).Determinant(); math.Abs(d-1) > tol {
		t.Errorf("rigid pose determinant = %v, want 1", d)
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 1, Height: 1}
	b := Rect{X: 2, Y: -1, Width: 1, Height: 1}
	u := a.Union(b)
	if u != (Rect{X: 0, Y: -1, Width: 3, Height: 2}) {
		t.Errorf("Union = %+v", u)
	}
	if got := (Rect{}).Union(a); got != a {
		t.Errorf("empty union = %+v, want %+v", got, a)
	}
	if !(Rect{Width: 1}).IsEmpty() {
		t.Error("zero-height rect is not empty")
	}
}

func TestClipHalfPlane(t *testing.T) {
	square := RectOutline(2, 2)

	t.Run("keep right half", func(t *testing.T) {
		got := square.ClipHalfPlane(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0})
		if math.Abs(area(got)-2) > tol {
			t.Errorf("area = %v, want 2", area(got))
		}
		b := got.Bounds()
		if math.Abs(b.X) > tol || math.Abs(b.Width-1) > tol {
			t.Errorf("bounds = %+v", b)
		}
	})

	t.Run("diagonal", func(t *testing.T) {
		got := square.ClipHalfPlane(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 1})
		if len(got) != 3 {
			t.Fatalf("got %d vertices, want 3", len(got))
		}
		if math.Abs(area(got)-2) > tol {
			t.Errorf("area = %v, want 2", area(got))
		}
	})

	t.Run("whole outline kept", func(t *testing.T) {
		got := square.ClipHalfPlane(mgl64.Vec2{-5, 0}, mgl64.Vec2{1, 0})
		if math.Abs(area(got)-4) > tol {
			t.Errorf("area = %v, want 4", area(got))
		}
	})

	t.Run("everything clipped", func(t *testing.T) {
		if got := square.ClipHalfPlane(mgl64.Vec2{5, 0}, mgl64.Vec2{1, 0}); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})
}

func TestPrismIntersectRay(t *testing.T) {
	box := Prism{Outline: RectOutline(2, 1), Depth: 0.2}

	tests := []struct {
		name   string
		ray    Ray
		wantT  float64
		wantOK bool
	}{
		{"front face", NewRay(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, -1}), 4.9, true},
		{"side face", NewRay(mgl64.Vec3{5, 0, 0}, mgl64.Vec3{-1, 0, 0}), 4, true},
		{"miss beside", NewRay(mgl64.Vec3{1.5, 0, 5}, mgl64.Vec3{0, 0, -1}), 0, false},
		{"behind origin", NewRay(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, 1}), 0, false},
		{"from inside", NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}), 0, true},
		{"parallel outside slab", NewRay(mgl64.Vec3{-5, 0, 1}, mgl64.Vec3{1, 0, 0}), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := box.IntersectRay(tt.ray)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.wantT) > tol {
				t.Errorf("t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestHeapAllocatorCounts(t *testing.T) {
	a := NewHeapAllocator()
	g1 := a.Allocate(Spec{Kind: KindBox})
	g2 := a.Allocate(Spec{Kind: KindPrism})
	if a.Live() != 2 || a.Allocated() != 2 {
		t.Fatalf("live=%d allocated=%d, want 2/2", a.Live(), a.Allocated())
	}
	g1.Dispose()
	g1.Dispose()
	if a.Live() != 1 {
		t.Errorf("live = %d after double dispose, want 1", a.Live())
	}
	if g2.Spec().Kind != KindPrism {
		t.Errorf("spec kind = %q", g2.Spec().Kind)
	}
}

// area is the shoelace area of o.
func area(o Outline) float64 {
	var a float64
	for i := range o {
		a += Cross2(o[i], o[(i+1)%len(o)])
	}
	return math.Abs(a) / 2
}
