package sweep

import (
	"github.com/akmonengine/glide/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// CheckMesh runs CheckTriangle over tris, a flat list of world-space vertex
// triples. Each vertex is moved into ellipsoid space by multiplying it with
// invRadius. ids, when not nil, holds one identifier per triangle; otherwise
// every triangle reports id 0. The caller guarantees tris holds whole
// triangles and, when ids is not nil, one id per triangle.
func CheckMesh(s Sweep, hit Hit, invRadius mgl64.Vec3, tris []mgl64.Vec3, ids []int) Hit {
	for i := 0; i < len(tris)/3; i++ {
		idx := i * 3

		id := 0
		if ids != nil {
			id = ids[i]
		}

		hit = CheckTriangle(
			s,
			hit,
			geometry.MulElem(tris[idx], invRadius),
			geometry.MulElem(tris[idx+1], invRadius),
			geometry.MulElem(tris[idx+2], invRadius),
			id,
		)
	}

	return hit
}
