// Package sweep implements the swept unit-sphere versus triangle test.
//
// All inputs live in ellipsoid space: world vectors divided component by component
// by the ellipsoid radius, so the moving ellipsoid becomes a unit sphere. The test
// finds the earliest time t in [0, 1] at which the sphere, moving from BasePoint
// along Velocity, touches a triangle:
//  1. Intersect the sweep with the triangle plane to get the interval [t0, t1]
//     during which the sphere straddles the plane
//  2. If the sphere touches the plane inside the triangle at t0, that is the hit
//  3. Otherwise sweep against the three vertices, then the three edges, keeping
//     the lowest time found
//
// Reference:
//   - Fauerby: "Improved Collision detection and Response" (2003)
//   - Linahan: "Improving the Numerical Robustness of Sphere Swept Collision Detection" (2015)
package sweep

import (
	"math"

	"github.com/akmonengine/glide/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// Sweep describes one unit-sphere sweep in ellipsoid space.
type Sweep struct {
	BasePoint    mgl64.Vec3
	Velocity     mgl64.Vec3
	NormVelocity mgl64.Vec3
	// CullBackFaces skips triangles whose normal points along the sweep.
	// Off by default: both faces of every triangle collide.
	CullBackFaces bool
}

// NewSweep builds a sweep from basePoint along velocity
func NewSweep(basePoint, velocity mgl64.Vec3) Sweep {
	return Sweep{
		BasePoint:    basePoint,
		Velocity:     velocity,
		NormVelocity: geometry.Normalize(velocity),
	}
}

// Hit is the nearest collision found so far for one query.
// NearestDistance, Point, Time and ID are only meaningful when Found is true.
type Hit struct {
	Found           bool
	NearestDistance float64
	Point           mgl64.Vec3
	Time            float64
	ID              int
}

// candidate is the best hit of a single triangle while its features are tested
type candidate struct {
	t     float64
	point mgl64.Vec3
	found bool
}

// CheckTriangle tests the sweep against the triangle p1, p2, p3 (ellipsoid space)
// and returns hit, replaced by this triangle's collision when it is strictly nearer.
func CheckTriangle(s Sweep, hit Hit, p1, p2, p3 mgl64.Vec3, id int) Hit {
	pn := geometry.TriangleNormal(p1, p2, p3)

	if s.CullBackFaces && pn.Dot(s.NormVelocity) > 0 {
		return hit
	}

	t0, embedded, ok := planeInterval(s, pn, p1)
	if !ok {
		return hit
	}

	best := candidate{t: 1.0}

	// the sphere first touches the plane at basePoint - pn + velocity*t0
	if !embedded {
		planeIntersect := s.BasePoint.Sub(pn).Add(s.Velocity.Mul(t0))
		if geometry.TriangleContainsPoint(planeIntersect, p1, p2, p3) {
			best = candidate{t: t0, point: planeIntersect, found: true}
		}
	}

	if !best.found {
		velocitySqLen := s.Velocity.LenSqr()

		// the first vertex hit ends the vertex pass
		for _, p := range [3]mgl64.Vec3{p1, p2, p3} {
			best = checkVertex(s, velocitySqLen, p, best)
			if best.found {
				break
			}
		}

		best = checkEdge(s, velocitySqLen, p1, p2, best)
		best = checkEdge(s, velocitySqLen, p2, p3, best)
		best = checkEdge(s, velocitySqLen, p3, p1, best)
	}

	if !best.found {
		return hit
	}

	distance := best.t * s.Velocity.Len()
	if !hit.Found || distance < hit.NearestDistance {
		return Hit{
			Found:           true,
			NearestDistance: distance,
			Point:           best.point,
			Time:            best.t,
			ID:              id,
		}
	}

	return hit
}

// planeInterval returns the first time the unit sphere touches the plane through
// point with normal pn, clamped to [0, 1]. embedded is true when the sweep runs
// parallel to the plane at less than one unit from it. ok is false when the
// sphere never reaches the plane during the sweep.
func planeInterval(s Sweep, pn, point mgl64.Vec3) (t0 float64, embedded bool, ok bool) {
	signedDistance := s.BasePoint.Dot(pn) - pn.Dot(point)
	normalDotVelocity := pn.Dot(s.Velocity)

	if normalDotVelocity == 0 {
		if math.Abs(signedDistance) >= 1 {
			return 0, false, false
		}
		return 0, true, true
	}

	inv := 1.0 / normalDotVelocity
	t0 = (-1.0 - signedDistance) * inv
	t1 := (1.0 - signedDistance) * inv
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	if t0 > 1 || t1 < 0 {
		return 0, false, false
	}

	return mgl64.Clamp(t0, 0, 1), false, true
}

// checkVertex sweeps the sphere against vertex p, solving
// |basePoint + velocity*t - p|² = 1 for t below best.t
func checkVertex(s Sweep, velocitySqLen float64, p mgl64.Vec3, best candidate) candidate {
	b := 2.0 * s.Velocity.Dot(s.BasePoint.Sub(p))
	c := p.Sub(s.BasePoint).LenSqr() - 1.0

	if root, ok := geometry.LowestRoot(velocitySqLen, b, c, best.t); ok {
		return candidate{t: root, point: p, found: true}
	}

	return best
}

// checkEdge sweeps the sphere against the infinite line through pa and pb, then
// keeps the root only if the contact falls within the segment
func checkEdge(s Sweep, velocitySqLen float64, pa, pb mgl64.Vec3, best candidate) candidate {
	edge := pb.Sub(pa)
	baseToVertex := pa.Sub(s.BasePoint)
	edgeSqLen := edge.LenSqr()
	edgeDotVelocity := edge.Dot(s.Velocity)
	edgeDotBaseToVertex := edge.Dot(baseToVertex)

	a := edgeSqLen*-velocitySqLen + edgeDotVelocity*edgeDotVelocity
	b := edgeSqLen*(2.0*s.Velocity.Dot(baseToVertex)) - 2.0*edgeDotVelocity*edgeDotBaseToVertex
	c := edgeSqLen*(1.0-baseToVertex.LenSqr()) + edgeDotBaseToVertex*edgeDotBaseToVertex

	root, ok := geometry.LowestRoot(a, b, c, best.t)
	if !ok {
		return best
	}

	f := (edgeDotVelocity*root - edgeDotBaseToVertex) / edgeSqLen
	if f < 0 || f > 1 {
		return best
	}

	return candidate{t: root, point: pa.Add(edge.Mul(f)), found: true}
}
