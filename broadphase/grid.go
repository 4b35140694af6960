// Package broadphase gathers the triangles near a moving ellipsoid.
//
// Grid hashes every triangle into the uniform cells its bounding box covers.
// Its Query method has the glide.TriQuery signature, so a Grid can be handed
// straight to glide.Update or glide.World.
package broadphase

import (
	"math"
	"sort"

	"github.com/akmonengine/glide/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// ============================================================================
// Types
// ============================================================================

// CellKey - Coordinates of a cell in 3D space
type CellKey struct {
	X, Y, Z int
}

// Cell - Triangle indices stored in a cell
type Cell struct {
	triIndices []int
}

type triangle struct {
	vertices [3]mgl64.Vec3
	id       int
	aabb     geometry.AABB
}

// Grid - Uniform spatial grid with hashing, holding static triangles
type Grid struct {
	cellSize  float64
	cells     []Cell
	cellMask  int
	triangles []triangle
}

// ============================================================================
// Constructor
// ============================================================================

// NewGrid - Creates a grid of numCells hashed cells (rounded up to a power of two)
func NewGrid(cellSize float64, numCells int) *Grid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].triIndices = make([]int, 0, 8)
	}

	return &Grid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

// nextPowerOfTwo - Rounds up to the next power of two
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert - Adds a triangle to every cell its bounding box covers
func (g *Grid) Insert(id int, v0, v1, v2 mgl64.Vec3) {
	index := len(g.triangles)
	tri := triangle{
		vertices: [3]mgl64.Vec3{v0, v1, v2},
		id:       id,
		aabb:     geometry.TriangleAABB(v0, v1, v2),
	}
	g.triangles = append(g.triangles, tri)

	minCell := g.worldToCell(tri.aabb.Min)
	maxCell := g.worldToCell(tri.aabb.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellIdx := g.hashCell(CellKey{x, y, z})

				// a triangle spanning many cells may hash twice into the same one
				indices := g.cells[cellIdx].triIndices
				if len(indices) > 0 && indices[len(indices)-1] == index {
					continue
				}
				g.cells[cellIdx].triIndices = append(indices, index)
			}
		}
	}
}

// InsertMesh - Adds a flat list of vertex triples, ids are assigned from firstID upward
func (g *Grid) InsertMesh(firstID int, tris []mgl64.Vec3) {
	for i := 0; i+2 < len(tris); i += 3 {
		g.Insert(firstID+i/3, tris[i], tris[i+1], tris[i+2])
	}
}

// Len - Number of triangles in the grid
func (g *Grid) Len() int {
	return len(g.triangles)
}

func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i].triIndices = g.cells[i].triIndices[:0]
	}
	g.triangles = g.triangles[:0]
}

// Query - Appends the vertices of every triangle whose bounding box overlaps
// [min, max], in insertion order. velocity is unused: the box is already padded.
func (g *Grid) Query(tris []mgl64.Vec3, min, max, velocity mgl64.Vec3) []mgl64.Vec3 {
	for _, index := range g.collect(geometry.AABB{Min: min, Max: max}) {
		v := g.triangles[index].vertices
		tris = append(tris, v[0], v[1], v[2])
	}

	return tris
}

// QueryIDs - Same as Query, returning triangle ids instead of vertices
func (g *Grid) QueryIDs(ids []int, min, max mgl64.Vec3) []int {
	for _, index := range g.collect(geometry.AABB{Min: min, Max: max}) {
		ids = append(ids, g.triangles[index].id)
	}

	return ids
}

// collect returns the sorted indices of the triangles overlapping box
func (g *Grid) collect(box geometry.AABB) []int {
	var found []int

	minCell := g.worldToCell(box.Min)
	maxCell := g.worldToCell(box.Max)
	span := (maxCell.X - minCell.X + 1) * (maxCell.Y - minCell.Y + 1) * (maxCell.Z - minCell.Z + 1)

	// Box larger than the table: every cell would be visited anyway
	if span <= 0 || span > len(g.cells) {
		for i, tri := range g.triangles {
			if tri.aabb.Overlaps(box) {
				found = append(found, i)
			}
		}
		return found
	}

	seen := make(map[int]struct{})
	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellIdx := g.hashCell(CellKey{x, y, z})

				for _, index := range g.cells[cellIdx].triIndices {
					if _, ok := seen[index]; ok {
						continue
					}
					seen[index] = struct{}{}

					if g.triangles[index].aabb.Overlaps(box) {
						found = append(found, index)
					}
				}
			}
		}
	}
	sort.Ints(found)

	return found
}

// worldToCell - Converts a world position to cell coordinates
func (g *Grid) worldToCell(pos mgl64.Vec3) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / g.cellSize)),
		Y: int(math.Floor(pos.Y() / g.cellSize)),
		Z: int(math.Floor(pos.Z() / g.cellSize)),
	}
}

// hashCell - Hashes a cell to an index in the cell table
func (g *Grid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & g.cellMask
}
