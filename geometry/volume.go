package geometry

import (
	"fmt"

	gmesh "github.com/notargets/gocfd/DG3D/mesh"
	"github.com/notargets/gocfd/DG3D/mesh/readers"
	"gonum.org/v1/gonum/spatial/r3"
)

// ReadVolumeBoundary reads a tetrahedral volume mesh file (gmsh, gambit .neu)
// and returns its closed boundary surface as an outward-oriented triangle
// mesh, so field points can be classified against the simulation domain
// directly.
func ReadVolumeBoundary(path string) (*TriangleMesh, error) {
	m, err := readers.ReadMeshFile(path)
	if err != nil {
		return nil, err
	}
	return BoundaryFromVolume(m)
}

// BoundaryFromVolume extracts the boundary surface triangulation of a
// tetrahedral volume mesh. All boundary elements carry domain tag 1.
func BoundaryFromVolume(m *gmesh.Mesh) (*TriangleMesh, error) {
	verts := make([]r3.Vec, len(m.Vertices))
	for i := range m.Vertices {
		verts[i] = r3.Vec{X: m.Vertices[i][0], Y: m.Vertices[i][1], Z: m.Vertices[i][2]}
	}
	return boundarySurface(verts, m.EtoV)
}

// Vertex index triples of the four faces of a tetrahedron.
var tetFaces = [4][3]int{
	{0, 1, 2},
	{0, 1, 3},
	{1, 2, 3},
	{0, 2, 3},
}

// boundarySurface finds the faces referenced by exactly one tetrahedron and
// orients each so its normal points away from the owning element.
func boundarySurface(verts []r3.Vec, etov [][]int) (*TriangleMesh, error) {
	if len(etov) == 0 {
		return nil, fmt.Errorf("volume mesh has no elements")
	}
	type faceRef struct {
		elem  int // first element referencing the face
		count int
	}
	faces := make(map[[3]int]*faceRef)
	for e, tet := range etov {
		if len(tet) != 4 {
			return nil, fmt.Errorf("element %d has %d vertices, boundary extraction needs tetrahedra", e, len(tet))
		}
		for _, vi := range tet {
			if vi < 0 || vi >= len(verts) {
				return nil, fmt.Errorf("element %d references vertex %d, mesh has %d vertices", e, vi, len(verts))
			}
		}
		for _, fv := range tetFaces {
			key := canonicalFace([3]int{tet[fv[0]], tet[fv[1]], tet[fv[2]]})
			if ref, ok := faces[key]; ok {
				ref.count++
			} else {
				faces[key] = &faceRef{elem: e, count: 1}
			}
		}
	}

	remap := make(map[int]int) // volume vertex index -> surface vertex index
	surface := &TriangleMesh{}
	mapVertex := func(i int) int {
		if idx, ok := remap[i]; ok {
			return idx
		}
		surface.Vertices = append(surface.Vertices, verts[i])
		remap[i] = len(surface.Vertices) - 1
		return len(surface.Vertices) - 1
	}

	// Second pass in element order keeps the output deterministic.
	for e, tet := range etov {
		for _, fv := range tetFaces {
			nodes := [3]int{tet[fv[0]], tet[fv[1]], tet[fv[2]]}
			ref := faces[canonicalFace(nodes)]
			if ref.count != 1 || ref.elem != e {
				continue // interior face, shared by two tets
			}
			centroid := r3.Vec{}
			for _, vi := range tet {
				centroid = r3.Add(centroid, verts[vi])
			}
			centroid = r3.Scale(0.25, centroid)

			v0, v1, v2 := verts[nodes[0]], verts[nodes[1]], verts[nodes[2]]
			normal := r3.Cross(r3.Sub(v1, v0), r3.Sub(v2, v0))
			faceCenter := r3.Scale(1.0/3.0, r3.Add(r3.Add(v0, v1), v2))
			if r3.Dot(normal, r3.Sub(faceCenter, centroid)) < 0 {
				nodes[1], nodes[2] = nodes[2], nodes[1]
			}

			el := [3]int{mapVertex(nodes[0]), mapVertex(nodes[1]), mapVertex(nodes[2])}
			surface.Elements = append(surface.Elements, el)
			surface.Tags = append(surface.Tags, 1)
		}
	}

	if len(surface.Elements) == 0 {
		return nil, fmt.Errorf("volume mesh has no boundary faces")
	}
	return surface, nil
}

// canonicalFace sorts the three vertex indices so a face has the same key
// from either side.
func canonicalFace(f [3]int) [3]int {
	if f[0] > f[1] {
		f[0], f[1] = f[1], f[0]
	}
	if f[1] > f[2] {
		f[1], f[2] = f[2], f[1]
	}
	if f[0] > f[1] {
		f[0], f[1] = f[1], f[0]
	}
	return f
}
