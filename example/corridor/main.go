package main

import (
	"fmt"

	"github.com/akmonengine/glide"
	"github.com/akmonengine/glide/broadphase"
	"github.com/go-gl/mathgl/mgl64"
)

// ContactDebugger prints the contact events of the world
type ContactDebugger struct{}

func (d *ContactDebugger) Subscribe(events *glide.Events) {
	events.Subscribe(glide.CONTACT_ENTER, func(event glide.Event) {
		e := event.(glide.ContactEnterEvent)
		fmt.Printf("  ➡️  enter %v: triangle %d normal %v\n", e.Character.Id, e.ID, e.Plane.Normal)
	})
	events.Subscribe(glide.CONTACT_EXIT, func(event glide.Event) {
		e := event.(glide.ContactExitEvent)
		fmt.Printf("  ⬅️  exit %v: triangle %d\n", e.Character.Id, e.ID)
	})
}

// quad appends the two triangles of a quad, wound counter-clockwise seen from the front
func quad(tris []mgl64.Vec3, a, b, c, d mgl64.Vec3) []mgl64.Vec3 {
	return append(tris, a, b, c, a, c, d)
}

// SetupScene builds an L-shaped corridor: a floor, a back wall and a side wall
func SetupScene() (*glide.World, *glide.Character) {
	var tris []mgl64.Vec3
	// Floor (z=0)
	tris = quad(tris, mgl64.Vec3{-10, -10, 0}, mgl64.Vec3{10, -10, 0}, mgl64.Vec3{10, 10, 0}, mgl64.Vec3{-10, 10, 0})
	// Back wall (x=10), facing -X
	tris = quad(tris, mgl64.Vec3{10, -10, 0}, mgl64.Vec3{10, -10, 5}, mgl64.Vec3{10, 10, 5}, mgl64.Vec3{10, 10, 0})
	// Side wall (y=2), facing -Y
	tris = quad(tris, mgl64.Vec3{-10, 2, 0}, mgl64.Vec3{10, 2, 0}, mgl64.Vec3{10, 2, 5}, mgl64.Vec3{-10, 2, 5})

	grid := broadphase.NewGrid(2.0, 256)
	grid.InsertMesh(0, tris)

	world := glide.NewWorld()
	world.Gravity = mgl64.Vec3{0, 0, -9.81}
	world.Substeps = 2
	world.Query = grid.Query
	world.QueryIDs = grid.QueryIDs

	player := &glide.Character{
		Id:       "player",
		Position: mgl64.Vec3{-5, 0, 3},
		Velocity: mgl64.Vec3{6, 3, 0},
		Radius:   mgl64.Vec3{0.5, 0.5, 1},
	}
	world.AddCharacter(player)

	return world, player
}

func main() {
	fmt.Println("🧪 Corridor: ellipsoid sliding into a corner")
	fmt.Println("============================================")

	world, player := SetupScene()
	(&ContactDebugger{}).Subscribe(&world.Events)

	const dt float64 = 1.0 / 60.0
	const maxSteps int = 180

	for step := 0; step < maxSteps; step++ {
		if err := world.Step(dt); err != nil {
			fmt.Printf("step %d failed: %v\n", step+1, err)
			return
		}

		if step%20 == 0 {
			fmt.Printf("--- STEP %d ---\n", step+1)
			fmt.Printf("  Position: %v\n", player.Position)
			fmt.Printf("  Displacement: %v\n", player.Displacement)
			fmt.Printf("  Grounded: %v\n", player.Grounded(mgl64.Vec3{0, 0, 1}, 0.7))
		}
	}

	fmt.Println("Done!")
}
