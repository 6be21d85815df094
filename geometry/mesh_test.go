package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewTriangleMesh(t *testing.T) {
	verts := []r3.Vec{{}, {X: 1}, {Y: 1}}

	t.Run("DefaultTags", func(t *testing.T) {
		m, err := NewTriangleMesh(verts, [][3]int{{0, 1, 2}}, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, m.DomainTag(0))
	})

	t.Run("TagCountMismatch", func(t *testing.T) {
		_, err := NewTriangleMesh(verts, [][3]int{{0, 1, 2}}, []int{1, 2})
		assert.Error(t, err)
	})

	t.Run("VertexOutOfRange", func(t *testing.T) {
		_, err := NewTriangleMesh(verts, [][3]int{{0, 1, 3}}, nil)
		assert.Error(t, err)
	})

	t.Run("NoElements", func(t *testing.T) {
		_, err := NewTriangleMesh(verts, nil, nil)
		assert.Error(t, err)
	})
}

func TestTagsSortedDistinct(t *testing.T) {
	m := UnitCube()
	for k := range m.Tags {
		// Alternate tags out of order to check sorting and deduplication.
		m.Tags[k] = []int{5, 2, 5, 2}[k%4]
	}
	assert.Equal(t, []int{2, 5}, Tags(m))
}

func TestBounds(t *testing.T) {
	m, err := Box(r3.Vec{X: -1, Y: -2, Z: -3}, r3.Vec{X: 4, Y: 5, Z: 6}, 1)
	require.NoError(t, err)
	min, max := Bounds(m)
	assert.Equal(t, r3.Vec{X: -1, Y: -2, Z: -3}, min)
	assert.Equal(t, r3.Vec{X: 4, Y: 5, Z: 6}, max)
}

func TestMerge(t *testing.T) {
	a, err := Box(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}, 1)
	require.NoError(t, err)
	b, err := Box(r3.Vec{X: 3}, r3.Vec{X: 4, Y: 1, Z: 1}, 2)
	require.NoError(t, err)

	m, err := Merge(a, b)
	require.NoError(t, err)
	assert.Equal(t, a.NumVertices()+b.NumVertices(), m.NumVertices())
	assert.Equal(t, a.NumElements()+b.NumElements(), m.NumElements())
	assert.Equal(t, []int{1, 2}, Tags(m))

	// Vertex indices of the second mesh must be offset.
	el := m.Element(a.NumElements())
	want := b.Element(0)
	for i := 0; i < 3; i++ {
		assert.Equal(t, want[i]+a.NumVertices(), el[i])
	}
}

func TestBoxDegenerate(t *testing.T) {
	_, err := Box(r3.Vec{X: 1}, r3.Vec{X: 1, Y: 1, Z: 1}, 1)
	assert.Error(t, err)
}
