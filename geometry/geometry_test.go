package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func vecApprox(a, b mgl64.Vec3, tolerance float64) bool {
	return a.Sub(b).Len() <= tolerance
}

func TestTriangleContainsPoint(t *testing.T) {
	v0 := mgl64.Vec3{-10, -10, 0}
	v1 := mgl64.Vec3{10, -10, 0}
	v2 := mgl64.Vec3{0, 10, 0}

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected bool
	}{
		{"centroid", mgl64.Vec3{0, -10.0 / 3, 0}, true},
		{"origin", mgl64.Vec3{0, 0, 0}, true},
		{"near first vertex", mgl64.Vec3{-9, -9.5, 0}, true},
		{"on vertex", v1, true},
		{"below bottom edge", mgl64.Vec3{0, -11, 0}, false},
		{"past bottom edge by its length", mgl64.Vec3{0, -30, 0}, false},
		{"beyond apex", mgl64.Vec3{0, 11, 0}, false},
		{"left of slanted edge", mgl64.Vec3{-8, 5, 0}, false},
		{"right of slanted edge", mgl64.Vec3{8, 5, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TriangleContainsPoint(tt.point, v0, v1, v2); got != tt.expected {
				t.Errorf("TriangleContainsPoint(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestTriangleContainsPointIgnoresWinding(t *testing.T) {
	v0 := mgl64.Vec3{0, 0, 0}
	v1 := mgl64.Vec3{0, 4, 0}
	v2 := mgl64.Vec3{4, 0, 0}

	if !TriangleContainsPoint(mgl64.Vec3{1, 1, 0}, v0, v1, v2) {
		t.Error("Expected point inside clockwise triangle")
	}
	if TriangleContainsPoint(mgl64.Vec3{3, 3, 0}, v0, v1, v2) {
		t.Error("Expected point outside hypotenuse to be rejected")
	}
}

func TestTriangleNormal(t *testing.T) {
	n := TriangleNormal(mgl64.Vec3{-10, -10, 0}, mgl64.Vec3{10, -10, 0}, mgl64.Vec3{0, 10, 0})
	if !vecApprox(n, mgl64.Vec3{0, 0, 1}, 1e-12) {
		t.Errorf("Expected +Z normal for counter-clockwise winding, got %v", n)
	}

	n = TriangleNormal(mgl64.Vec3{-10, -10, 0}, mgl64.Vec3{0, 10, 0}, mgl64.Vec3{10, -10, 0})
	if !vecApprox(n, mgl64.Vec3{0, 0, -1}, 1e-12) {
		t.Errorf("Expected -Z normal for clockwise winding, got %v", n)
	}
}

func TestLowestRoot(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		max     float64
		root    float64
		found   bool
	}{
		{"roots plus minus one", 1, 0, -1, 10, 1, true},
		{"negative discriminant", 1, 0, 1, 10, 0, false},
		{"both roots past max", 1, -30, 200, 5, 0, false},
		{"both roots negative", 1, 3, 2, 10, 0, false},
		{"root equal to max excluded", 1, 0, -4, 2, 0, false},
		{"smaller root preferred", 1, -3, 2, 10, 1, true},
		{"larger root when smaller is negative", 1, -1, -2, 10, 2, true},
		{"negative leading coefficient", -1, 3, -2, 10, 1, true},
		{"double root", 1, -2, 1, 10, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, found := LowestRoot(tt.a, tt.b, tt.c, tt.max)
			if found != tt.found {
				t.Fatalf("LowestRoot found = %v, want %v", found, tt.found)
			}
			if found && math.Abs(root-tt.root) > 1e-12 {
				t.Errorf("LowestRoot = %v, want %v", root, tt.root)
			}
		})
	}
}

func TestPlaneSignedDistance(t *testing.T) {
	p := Plane{Position: mgl64.Vec3{0, 0, 2}, Normal: mgl64.Vec3{0, 0, 1}}

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected float64
	}{
		{"above", mgl64.Vec3{5, -3, 5}, 3},
		{"on plane", mgl64.Vec3{1, 1, 2}, 0},
		{"below", mgl64.Vec3{0, 0, -1}, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if d := p.SignedDistance(tt.point); math.Abs(d-tt.expected) > 1e-12 {
				t.Errorf("SignedDistance(%v) = %v, want %v", tt.point, d, tt.expected)
			}
		})
	}
}

func TestPlaneScale(t *testing.T) {
	radius := mgl64.Vec3{2, 1, 4}
	p := Plane{Position: mgl64.Vec3{1, 1, 1}, Normal: mgl64.Vec3{1, 0, 1}.Normalize()}

	scaled := p.Scale(radius)
	if !vecApprox(scaled.Position, mgl64.Vec3{2, 1, 4}, 1e-12) {
		t.Errorf("Expected position multiplied by radius, got %v", scaled.Position)
	}

	expected := mgl64.Vec3{0.5, 0, 0.25}.Normalize()
	if !vecApprox(scaled.Normal, expected, 1e-12) {
		t.Errorf("Expected normal %v, got %v", expected, scaled.Normal)
	}
	if math.Abs(scaled.Normal.Len()-1) > 1e-12 {
		t.Errorf("Expected unit normal, got length %v", scaled.Normal.Len())
	}
}

func TestElementwise(t *testing.T) {
	a := mgl64.Vec3{2, -4, 9}
	b := mgl64.Vec3{2, 0.5, 3}

	if got := MulElem(a, b); got != (mgl64.Vec3{4, -2, 27}) {
		t.Errorf("MulElem = %v", got)
	}
	if got := DivElem(a, b); got != (mgl64.Vec3{1, -8, 3}) {
		t.Errorf("DivElem = %v", got)
	}
	if got := Inverse(b); got != (mgl64.Vec3{0.5, 2, 1.0 / 3}) {
		t.Errorf("Inverse = %v", got)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize(mgl64.Vec3{}); got != (mgl64.Vec3{}) {
		t.Errorf("Expected zero vector to stay zero, got %v", got)
	}
	if got := Normalize(mgl64.Vec3{0, 3, 4}); !vecApprox(got, mgl64.Vec3{0, 0.6, 0.8}, 1e-12) {
		t.Errorf("Normalize = %v", got)
	}
}

func TestAABB(t *testing.T) {
	box := NewAABB(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{1, 1, 1})

	if box.Min != (mgl64.Vec3{0, 1, 2}) || box.Max != (mgl64.Vec3{2, 3, 4}) {
		t.Fatalf("Unexpected bounds %v %v", box.Min, box.Max)
	}
	if !box.ContainsPoint(mgl64.Vec3{1, 2, 3}) {
		t.Error("Expected center to be contained")
	}
	if box.ContainsPoint(mgl64.Vec3{3, 2, 3}) {
		t.Error("Expected outside point to be rejected")
	}

	other := AABB{Min: mgl64.Vec3{2, 3, 4}, Max: mgl64.Vec3{5, 5, 5}}
	if !box.Overlaps(other) {
		t.Error("Expected touching boxes to overlap")
	}
	far := AABB{Min: mgl64.Vec3{10, 10, 10}, Max: mgl64.Vec3{11, 11, 11}}
	if box.Overlaps(far) {
		t.Error("Expected distant boxes not to overlap")
	}
}

func TestTriangleAABB(t *testing.T) {
	box := TriangleAABB(mgl64.Vec3{-1, 5, 0}, mgl64.Vec3{3, -2, 1}, mgl64.Vec3{0, 0, -4})
	if box.Min != (mgl64.Vec3{-1, -2, -4}) || box.Max != (mgl64.Vec3{3, 5, 1}) {
		t.Errorf("Unexpected bounds %v %v", box.Min, box.Max)
	}
}
