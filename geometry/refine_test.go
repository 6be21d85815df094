package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func surfaceArea(t *testing.T, g Grid) float64 {
	t.Helper()
	var total float64
	for k := 0; k < g.NumElements(); k++ {
		el := g.Element(k)
		u := r3.Sub(g.Vertex(el[1]), g.Vertex(el[0]))
		v := r3.Sub(g.Vertex(el[2]), g.Vertex(el[0]))
		total += 0.5 * r3.Norm(r3.Cross(u, v))
	}
	return total
}

func TestRefineCounts(t *testing.T) {
	cube := UnitCube()
	refined := Refine(cube, 1)

	assert.Equal(t, 48, refined.NumElements())
	// Edge midpoints are shared: the cube surface has 18 unique edges, so
	// one level adds 18 vertices to the original 8.
	assert.Equal(t, 26, refined.NumVertices())

	twice := Refine(cube, 2)
	assert.Equal(t, 192, twice.NumElements())
}

func TestRefinePreservesSurface(t *testing.T) {
	cube := UnitCube()
	refined := Refine(cube, 3)

	// Planar faces stay planar: total surface area is unchanged.
	assert.InDelta(t, 6.0, surfaceArea(t, refined), 1e-12)

	// All elements keep the tag of their parent.
	for k := 0; k < refined.NumElements(); k++ {
		assert.Equal(t, 1, refined.DomainTag(k))
	}

	// Refinement preserves closedness: every edge is shared by exactly two
	// elements.
	edges := make(map[[2]int]int)
	for k := 0; k < refined.NumElements(); k++ {
		el := refined.Element(k)
		for i := 0; i < 3; i++ {
			a, b := el[i], el[(i+1)%3]
			if a > b {
				a, b = b, a
			}
			edges[[2]int{a, b}]++
		}
	}
	for edge, count := range edges {
		require.Equalf(t, 2, count, "edge %v shared by %d elements", edge, count)
	}
}

func TestRefineZeroLevels(t *testing.T) {
	cube := UnitCube()
	same := Refine(cube, 0)
	assert.Equal(t, cube.NumElements(), same.NumElements())
	assert.Equal(t, cube.NumVertices(), same.NumVertices())
	// The copy is independent of the input.
	same.Vertices[0] = r3.Vec{X: 99}
	assert.Equal(t, r3.Vec{}, cube.Vertex(0))
}
