package geometry

import "github.com/go-gl/mathgl/mgl64"

// TriangleNormal returns the unit normal of the triangle wound v0, v1, v2
func TriangleNormal(v0, v1, v2 mgl64.Vec3) mgl64.Vec3 {
	return v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
}

// TriangleContainsPoint reports whether point, which must already lie in the
// triangle's plane, falls inside the triangle (edges included).
//
// The sign of each cross product pair rejects points on the wrong side of an
// edge, then the two area ratios must not sum past 1. A zero-area triangle
// divides by zero and the result is meaningless.
func TriangleContainsPoint(point, v0, v1, v2 mgl64.Vec3) bool {
	u := v1.Sub(v0)
	v := v2.Sub(v0)
	w := point.Sub(v0)

	vw := v.Cross(w)
	vu := v.Cross(u)
	if vw.Dot(vu) < 0 {
		return false
	}

	uw := u.Cross(w)
	uv := u.Cross(v)
	if uw.Dot(uv) < 0 {
		return false
	}

	d := 1 / uv.Len()
	r := vw.Len() * d
	t := uw.Len() * d

	return r+t <= 1
}
