package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestBoundarySurfaceSingleTet(t *testing.T) {
	verts := []r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}}
	surface, err := boundarySurface(verts, [][]int{{0, 1, 2, 3}})
	require.NoError(t, err)

	assert.Equal(t, 4, surface.NumElements())
	assert.Equal(t, 4, surface.NumVertices())
	assert.Equal(t, []int{1}, Tags(surface))

	// Every face normal must point away from the tet centroid.
	centroid := r3.Vec{X: 0.25, Y: 0.25, Z: 0.25}
	for k := 0; k < surface.NumElements(); k++ {
		el := surface.Element(k)
		v0, v1, v2 := surface.Vertex(el[0]), surface.Vertex(el[1]), surface.Vertex(el[2])
		normal := r3.Cross(r3.Sub(v1, v0), r3.Sub(v2, v0))
		faceCenter := r3.Scale(1.0/3.0, r3.Add(r3.Add(v0, v1), v2))
		if r3.Dot(normal, r3.Sub(faceCenter, centroid)) <= 0 {
			t.Errorf("face %d normal points inward", k)
		}
	}
}

func TestBoundarySurfaceSharedFace(t *testing.T) {
	// Two tets glued along face {1,2,3}: the shared face is interior and
	// must not appear in the boundary surface.
	verts := []r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}, {X: 1, Y: 1, Z: 1}}
	surface, err := boundarySurface(verts, [][]int{{0, 1, 2, 3}, {1, 2, 3, 4}})
	require.NoError(t, err)
	assert.Equal(t, 6, surface.NumElements())
	assert.Equal(t, 5, surface.NumVertices())
}

func TestBoundarySurfaceErrors(t *testing.T) {
	verts := []r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}}

	t.Run("NoElements", func(t *testing.T) {
		_, err := boundarySurface(verts, nil)
		assert.Error(t, err)
	})

	t.Run("NotTetrahedra", func(t *testing.T) {
		_, err := boundarySurface(verts, [][]int{{0, 1, 2}})
		assert.Error(t, err)
	})

	t.Run("VertexOutOfRange", func(t *testing.T) {
		_, err := boundarySurface(verts, [][]int{{0, 1, 2, 9}})
		assert.Error(t, err)
	})
}
