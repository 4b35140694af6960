// Package glide moves bounding ellipsoids through static triangle geometry
// with a swept collide-and-slide response.
//
// Callers hand over candidate triangles as a flat list of vertex triples (or a
// TriQuery that gathers them), the ellipsoid position, radii and the motion for
// the step. Update returns where the ellipsoid ends up after sliding along
// everything it touched, and the surfaces it touched on the way.
package glide

import (
	"errors"
	"fmt"

	"github.com/akmonengine/glide/geometry"
	"github.com/akmonengine/glide/sweep"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// VeryCloseDist is the skin kept between the ellipsoid and any surface it
	// touches, in ellipsoid space. The sphere is always stopped this far short
	// of the contact so the next sweep does not start inside the plane.
	VeryCloseDist = 0.00125

	// QueryMinScale and QueryPadding size the broad-phase box in GetTris:
	// half extent = radius * max(QueryMinScale, |velocity|) * QueryPadding.
	// They are tuned together.
	QueryMinScale = 1.5
	QueryPadding  = 1.25
)

var (
	// ErrTriangleBuffer is returned when a vertex buffer does not hold whole triangles.
	ErrTriangleBuffer = errors.New("glide: triangle buffer must be filled with a multiple of 3 vertices (v0, v1, v2)")
	// ErrIDCount is returned when an id list does not match the triangle count.
	ErrIDCount = errors.New("glide: id list must hold one id per triangle")
)

// TriQuery appends to tris the vertices of every triangle that may intersect
// the box [min, max] and returns the extended slice. velocity is the motion
// the box was sized for.
type TriQuery func(tris []mgl64.Vec3, min, max, velocity mgl64.Vec3) []mgl64.Vec3

// IDQuery appends to ids the identifier of every triangle the matching TriQuery
// returns for the box [min, max], in the same order.
type IDQuery func(ids []int, min, max mgl64.Vec3) []int

// Contact is a surface touched during an update, with its plane in world space.
type Contact struct {
	ID    int
	Plane geometry.Plane
}

// Ellipsoid is the moving volume: world position, motion for the step and per-axis radii.
type Ellipsoid struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Radius   mgl64.Vec3
}

// CheckResult is the outcome of a Check. Contacts holds at most one entry.
type CheckResult struct {
	// Position is the nearest contact point, in ellipsoid space
	Position mgl64.Vec3
	Contacts []Contact
}

// UpdateResult is the outcome of an Update, contacts of every substep included.
type UpdateResult struct {
	Position mgl64.Vec3
	// Velocity is the net displacement over the whole update
	Velocity mgl64.Vec3
	Contacts []Contact
}

// Solver holds the tuning of the collision response.
// The zero value keeps no skin between the ellipsoid and the surfaces it
// touches; use DefaultSolver unless that is wanted.
type Solver struct {
	VeryCloseDist float64
	CullBackFaces bool
}

// DefaultSolver returns a Solver with the reference skin distance and both triangle faces colliding
func DefaultSolver() Solver {
	return Solver{VeryCloseDist: VeryCloseDist}
}

// Check sweeps the triangles for the nearest touch along e.Velocity without moving the ellipsoid.
// When query is not nil it replaces tris and drops ids.
func Check(tris []mgl64.Vec3, ids []int, e Ellipsoid, query TriQuery) (CheckResult, error) {
	return DefaultSolver().Check(tris, ids, e, query)
}

// Update moves the ellipsoid for one step, see Solver.Update.
func Update(tris []mgl64.Vec3, ids []int, e Ellipsoid, gravity mgl64.Vec3, query TriQuery, substeps int) (UpdateResult, error) {
	return DefaultSolver().Update(tris, ids, e, gravity, query, substeps)
}

// Check sweeps the ellipsoid once along e.Velocity and reports the nearest
// triangle touched. The ellipsoid does not move and nothing slides.
// The returned Position is the contact point in ellipsoid space.
func (s Solver) Check(tris []mgl64.Vec3, ids []int, e Ellipsoid, query TriQuery) (CheckResult, error) {
	p := newPacket(e)

	if query != nil {
		box := geometry.NewAABB(e.Position, e.Radius)
		tris = query(nil, box.Min, box.Max, p.r3Velocity)
		ids = nil
	}
	if err := validate(tris, ids); err != nil {
		return CheckResult{}, err
	}

	hit := sweep.CheckMesh(p.sweep(s, p.ePosition, p.eVelocity), sweep.Hit{}, p.invRadius, tris, ids)
	if hit.Found {
		touch := p.ePosition.Add(p.eVelocity.Mul(hit.Time))
		p.addContact(hit.ID, geometry.Plane{Position: hit.Point, Normal: touch.Sub(hit.Point)})
	}

	return CheckResult{
		Position: hit.Point,
		Contacts: p.contacts,
	}, nil
}

// Update moves the ellipsoid by e.Velocity and gravity over one step, sliding
// along every triangle it runs into. Both motions are split evenly over substeps
// (values below 1 mean a single step) and each substep starts where the previous
// one ended. When query is not nil it replaces tris and drops ids.
//
// The returned Velocity is the net displacement from e.Position.
func (s Solver) Update(tris []mgl64.Vec3, ids []int, e Ellipsoid, gravity mgl64.Vec3, query TriQuery, substeps int) (UpdateResult, error) {
	substeps = max(1, substeps)
	velocity := e.Velocity.Mul(1 / float64(substeps))
	gravity = gravity.Mul(1 / float64(substeps))

	if query != nil {
		var err error
		tris, err = GetTris(e.Position, velocity, e.Radius, query)
		if err != nil {
			return UpdateResult{}, err
		}
		ids = nil
	}
	if err := validate(tris, ids); err != nil {
		return UpdateResult{}, err
	}

	position := e.Position
	var contacts []Contact
	for step := 0; step < substeps; step++ {
		p := newPacket(Ellipsoid{Position: position, Velocity: velocity, Radius: e.Radius})
		p.contacts = contacts

		s.subUpdate(p, gravity, tris, ids)

		position = p.r3Position
		velocity = p.r3Velocity
		contacts = p.contacts
	}

	return UpdateResult{
		Position: position,
		Velocity: position.Sub(e.Position),
		Contacts: contacts,
	}, nil
}

// GetTris asks query for the triangles around position. The box is padded by
// the velocity so that fast sweeps still see the geometry they will reach.
func GetTris(position, velocity, radius mgl64.Vec3, query TriQuery) ([]mgl64.Vec3, error) {
	box := QueryBox(position, velocity, radius)

	tris := query(nil, box.Min, box.Max, velocity)
	if len(tris)%3 != 0 {
		return nil, fmt.Errorf("query returned %d vertices: %w", len(tris), ErrTriangleBuffer)
	}

	return tris, nil
}

// QueryBox returns the box GetTris hands to its query
func QueryBox(position, velocity, radius mgl64.Vec3) geometry.AABB {
	return geometry.NewAABB(position, radius.Mul(QueryScale(velocity)))
}

// QueryScale returns the factor applied to the radius for the broad-phase box
func QueryScale(velocity mgl64.Vec3) float64 {
	return max(QueryMinScale, velocity.Len()) * QueryPadding
}

func validate(tris []mgl64.Vec3, ids []int) error {
	if len(tris)%3 != 0 {
		return fmt.Errorf("got %d vertices: %w", len(tris), ErrTriangleBuffer)
	}
	if ids != nil && len(ids) != len(tris)/3 {
		return fmt.Errorf("got %d ids for %d triangles: %w", len(ids), len(tris)/3, ErrIDCount)
	}

	return nil
}
