package glide

import (
	"math"

	"github.com/akmonengine/glide/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// Test helper functions

// floorTris is a 40x40 floor at z=0 facing +Z, split on the y=x diagonal
func floorTris() []mgl64.Vec3 {
	return []mgl64.Vec3{
		{-20, -20, 0}, {20, -20, 0}, {20, 20, 0},
		{-20, -20, 0}, {20, 20, 0}, {-20, 20, 0},
	}
}

// wallXTris is a wall in the x=0 plane facing +X
func wallXTris() []mgl64.Vec3 {
	return []mgl64.Vec3{
		{0, -20, -20}, {0, 20, -20}, {0, 20, 20},
		{0, -20, -20}, {0, 20, 20}, {0, -20, 20},
	}
}

// wallYTris is a wall in the y=0 plane facing +Y
func wallYTris() []mgl64.Vec3 {
	return []mgl64.Vec3{
		{-20, 0, -20}, {-20, 0, 20}, {20, 0, 20},
		{-20, 0, -20}, {20, 0, 20}, {20, 0, -20},
	}
}

func vecApprox(a, b mgl64.Vec3, tolerance float64) bool {
	return a.Sub(b).Len() <= tolerance
}

func concat(lists ...[]mgl64.Vec3) []mgl64.Vec3 {
	var out []mgl64.Vec3
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func approx(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func hasID(contacts []Contact, ids ...int) bool {
	for _, c := range contacts {
		for _, id := range ids {
			if c.ID == id {
				return true
			}
		}
	}
	return false
}

// staticQuery returns a TriQuery that records its box and always yields tris
func staticQuery(tris []mgl64.Vec3, calls *[][2]mgl64.Vec3) TriQuery {
	return func(out []mgl64.Vec3, min, max, velocity mgl64.Vec3) []mgl64.Vec3 {
		if calls != nil {
			*calls = append(*calls, [2]mgl64.Vec3{min, max})
		}
		return append(out, tris...)
	}
}

func planeWithNormal(normal mgl64.Vec3) geometry.Plane {
	return geometry.Plane{Normal: normal}
}
