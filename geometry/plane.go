package geometry

import "github.com/go-gl/mathgl/mgl64"

// Plane is a point on the plane and its unit normal
type Plane struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3
}

// SignedDistance returns the distance of point from the plane, positive on the normal side
func (p Plane) SignedDistance(point mgl64.Vec3) float64 {
	d := -p.Normal.Dot(p.Position)
	return point.Dot(p.Normal) + d
}

// Scale moves the plane out of a space scaled by 1/radius.
// The position is multiplied by radius and the normal divided by it, then renormalized.
func (p Plane) Scale(radius mgl64.Vec3) Plane {
	return Plane{
		Position: MulElem(p.Position, radius),
		Normal:   Normalize(DivElem(p.Normal, radius)),
	}
}
