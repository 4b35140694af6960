// Package geometry holds the vector and plane helpers the sweep tests are built on.
//
// mgl64 covers dot, cross, length and scaling; this package adds the elementwise
// operations needed to move between world space and ellipsoid space, a plane type
// and the two small solvers used by the swept-sphere test.
package geometry

import "github.com/go-gl/mathgl/mgl64"

// MulElem multiplies a and b component by component
func MulElem(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// DivElem divides a by b component by component
func DivElem(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] / b[0], a[1] / b[1], a[2] / b[2]}
}

// Inverse returns the elementwise reciprocal of v
func Inverse(v mgl64.Vec3) mgl64.Vec3 {
	return DivElem(mgl64.Vec3{1, 1, 1}, v)
}

// Normalize returns v scaled to unit length, or the zero vector when v has no length.
// mgl64's Normalize yields NaN for a zero vector.
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}

	return v.Mul(1.0 / l)
}
