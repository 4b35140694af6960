package glide

import (
	"github.com/akmonengine/glide/geometry"
	"github.com/akmonengine/glide/sweep"
	"github.com/go-gl/mathgl/mgl64"
)

// slideState tracks how many contact planes constrain the motion
type slideState uint8

const (
	unconstrained slideState = iota
	onePlane
	twoPlanes
)

// collideWithWorld sweeps the unit sphere from position along velocity
// (ellipsoid space) and returns where it comes to rest.
//
// Each hit stops the sphere VeryCloseDist short of the surface and redirects the
// rest of the motion:
//   - unconstrained → onePlane: the destination is projected onto the first
//     contact plane, lifted by the skin distance
//   - onePlane → twoPlanes: the remaining motion is projected onto the crease
//     where both planes meet
//   - twoPlanes: the sphere stays where it stopped
//
// A sweep without hit ends the loop at the current destination.
func (s Solver) collideWithWorld(p *packet, position, velocity mgl64.Vec3, tris []mgl64.Vec3, ids []int) mgl64.Vec3 {
	dest := position.Add(velocity)
	state := unconstrained
	var firstPlane geometry.Plane

	for {
		hit := sweep.CheckMesh(p.sweep(s, position, velocity), sweep.Hit{}, p.invRadius, tris, ids)
		if !hit.Found {
			return dest
		}

		touch := position.Add(velocity.Mul(hit.Time))
		plane := geometry.Plane{
			Position: hit.Point,
			Normal:   geometry.Normalize(touch.Sub(hit.Point)),
		}

		dist := velocity.Len() * hit.Time
		shortDist := max(dist-s.VeryCloseDist, 0)
		position = position.Add(geometry.Normalize(velocity).Mul(shortDist))

		p.addContact(hit.ID, plane)

		switch state {
		case unconstrained:
			firstPlane = plane
			dest = projectOnPlane(firstPlane, dest, 1+s.VeryCloseDist)
			velocity = dest.Sub(position)
			state = onePlane
		case onePlane:
			velocity = creaseVelocity(firstPlane, plane, position, dest)
			dest = position.Add(velocity)
			state = twoPlanes
		case twoPlanes:
			return position
		}
	}
}

// projectOnPlane moves point along the plane normal until it lies offset above the plane
func projectOnPlane(plane geometry.Plane, point mgl64.Vec3, offset float64) mgl64.Vec3 {
	return point.Sub(plane.Normal.Mul(plane.SignedDistance(point) - offset))
}

// creaseVelocity keeps the part of the motion from position to dest that runs
// along the intersection line of both planes
func creaseVelocity(first, second geometry.Plane, position, dest mgl64.Vec3) mgl64.Vec3 {
	crease := geometry.Normalize(first.Normal.Cross(second.Normal))
	return crease.Mul(dest.Sub(position).Dot(crease))
}

// subUpdate runs one substep: a velocity pass, then a pass with gravity added,
// and writes the world-space result back into the packet.
func (s Solver) subUpdate(p *packet, gravity mgl64.Vec3, tris []mgl64.Vec3, ids []int) {
	// Linahan halves the ellipsoid-space velocity, both passes then cover it once
	p.eVelocity = p.eVelocity.Mul(0.5)

	finalPosition := s.collideWithWorld(p, p.ePosition, p.eVelocity, tris, ids)

	velocity := p.eVelocity.Add(geometry.DivElem(gravity, p.radius))
	finalPosition = s.collideWithWorld(p, finalPosition, velocity, tris, ids)

	position := p.r3Position
	p.r3Position = geometry.MulElem(finalPosition, p.radius)
	p.r3Velocity = p.r3Position.Sub(position)
}
