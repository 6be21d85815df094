package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestPlanePoints(t *testing.T) {
	points, err := PlanePoints([2]int{3, 2}, [2]int{0, 2}, 0.7, [4]float64{0, 1, -1, 1})
	require.NoError(t, err)
	require.Len(t, points, 6)

	// Row-major over the first plane axis, perpendicular coordinate fixed
	// at the offset.
	want := []r3.Vec{
		{X: 0, Y: 0.7, Z: -1},
		{X: 0, Y: 0.7, Z: 1},
		{X: 0.5, Y: 0.7, Z: -1},
		{X: 0.5, Y: 0.7, Z: 1},
		{X: 1, Y: 0.7, Z: -1},
		{X: 1, Y: 0.7, Z: 1},
	}
	for i := range want {
		assert.InDelta(t, want[i].X, points[i].X, 1e-14)
		assert.InDelta(t, want[i].Y, points[i].Y, 1e-14)
		assert.InDelta(t, want[i].Z, points[i].Z, 1e-14)
	}
}

func TestPlanePointsSinglePoint(t *testing.T) {
	points, err := PlanePoints([2]int{1, 1}, [2]int{0, 1}, 2, [4]float64{5, 9, -3, 3})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, r3.Vec{X: 5, Y: -3, Z: 2}, points[0])
}

func TestPlanePointsInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		res  [2]int
		axes [2]int
	}{
		{"AxisTooLarge", [2]int{2, 2}, [2]int{0, 3}},
		{"AxisNegative", [2]int{2, 2}, [2]int{-1, 1}},
		{"DuplicateAxis", [2]int{2, 2}, [2]int{1, 1}},
		{"ZeroResolution", [2]int{0, 2}, [2]int{0, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PlanePoints(tc.res, tc.axes, 0, [4]float64{0, 1, 0, 1})
			assert.Error(t, err)
		})
	}
}
