package glide

import (
	"github.com/akmonengine/glide/geometry"
	"github.com/akmonengine/glide/sweep"
	"github.com/go-gl/mathgl/mgl64"
)

// packet carries one substep of a query: the ellipsoid in world space (r3) and
// in ellipsoid space (e), plus the contacts gathered so far.
// A packet is never shared between queries.
type packet struct {
	r3Position mgl64.Vec3
	r3Velocity mgl64.Vec3

	radius    mgl64.Vec3
	invRadius mgl64.Vec3
	ePosition mgl64.Vec3
	eVelocity mgl64.Vec3

	contacts []Contact
}

func newPacket(e Ellipsoid) *packet {
	return &packet{
		r3Position: e.Position,
		r3Velocity: e.Velocity,
		radius:     e.Radius,
		invRadius:  geometry.Inverse(e.Radius),
		ePosition:  geometry.DivElem(e.Position, e.Radius),
		eVelocity:  geometry.DivElem(e.Velocity, e.Radius),
	}
}

func (p *packet) sweep(s Solver, basePoint, velocity mgl64.Vec3) sweep.Sweep {
	sw := sweep.NewSweep(basePoint, velocity)
	sw.CullBackFaces = s.CullBackFaces
	return sw
}

// addContact records plane, given in ellipsoid space, in world space
func (p *packet) addContact(id int, plane geometry.Plane) {
	p.contacts = append(p.contacts, Contact{ID: id, Plane: plane.Scale(p.radius)})
}
