package glide

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

const DEFAULT_WORKERS = 1

// Character is a kinematic ellipsoid moved by World.Step
type Character struct {
	Id       interface{}
	Position mgl64.Vec3
	// Velocity in units per second, set by the caller before each step
	Velocity mgl64.Vec3
	Radius   mgl64.Vec3

	// Results of the last step
	Displacement mgl64.Vec3
	Contacts     []Contact
	err          error
}

// Grounded reports whether one of the last contacts faces up, within minDot of the up axis
func (c *Character) Grounded(up mgl64.Vec3, minDot float64) bool {
	for _, contact := range c.Contacts {
		if contact.Plane.Normal.Dot(up) >= minDot {
			return true
		}
	}

	return false
}

type World struct {
	// List of all characters in the world
	Characters []*Character
	// Gravity applied as a fall velocity (units/s)
	Gravity  mgl64.Vec3
	Substeps int
	Workers  int
	Solver   Solver

	// Static geometry, used when Query is nil
	Tris []mgl64.Vec3
	IDs  []int
	// Broad-phase gathering the triangles around each character. Without
	// QueryIDs every contact reports id 0.
	Query    TriQuery
	QueryIDs IDQuery

	Events Events
}

// NewWorld creates a world with the default solver and a single substep
func NewWorld() *World {
	return &World{
		Substeps: 1,
		Workers:  DEFAULT_WORKERS,
		Solver:   DefaultSolver(),
		Events:   NewEvents(),
	}
}

// AddCharacter adds a character to the world
func (w *World) AddCharacter(character *Character) {
	w.Characters = append(w.Characters, character)
}

// RemoveCharacter removes a character from the world
func (w *World) RemoveCharacter(character *Character) {
	k := -1
	for i, c := range w.Characters {
		if c == character {
			k = i
			break
		}
	}

	if k != -1 {
		w.Characters = append(w.Characters[:k], w.Characters[k+1:]...)
	}

	for pair := range w.Events.previousActivePairs {
		if pair.character == character {
			delete(w.Events.previousActivePairs, pair)
		}
	}
}

// Step moves every character by its velocity and the world gravity over dt.
// Characters are independent and updated concurrently; contact events are
// dispatched once all of them are done. Characters that failed keep their
// position and the errors are joined.
func (w *World) Step(dt float64) error {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)
	gravity := w.Gravity.Mul(dt)

	task(w.Workers, w.Characters, func(c *Character) {
		e := Ellipsoid{
			Position: c.Position,
			Velocity: c.Velocity.Mul(dt),
			Radius:   c.Radius,
		}
		tris, ids, query := w.trianglesFor(e)
		result, err := w.Solver.Update(tris, ids, e, gravity, query, w.Substeps)

		c.err = err
		if err != nil {
			c.Displacement = mgl64.Vec3{}
			c.Contacts = nil
			return
		}

		c.Position = result.Position
		c.Displacement = result.Velocity
		c.Contacts = result.Contacts
	})

	var errs []error
	for _, c := range w.Characters {
		if c.err != nil {
			errs = append(errs, c.err)
			continue
		}
		w.Events.recordContacts(c)
	}

	w.Events.flush()

	return errors.Join(errs...)
}

// trianglesFor returns the triangles Update should see for e. When both queries
// are set they are run here on the box Update would use, so ids follow the
// triangles; otherwise Update runs the vertex query itself.
func (w *World) trianglesFor(e Ellipsoid) ([]mgl64.Vec3, []int, TriQuery) {
	if w.Query == nil {
		return w.Tris, w.IDs, nil
	}
	if w.QueryIDs == nil {
		return nil, nil, w.Query
	}

	velocity := e.Velocity.Mul(1 / float64(max(1, w.Substeps)))
	box := QueryBox(e.Position, velocity, e.Radius)

	return w.Query(nil, box.Min, box.Max, velocity), w.QueryIDs(nil, box.Min, box.Max), nil
}
