package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshStatsUnitCube(t *testing.T) {
	stats, err := MeshStats(UnitCube())
	require.NoError(t, err)

	// Every triangle of the cube surface is a right isoceles triangle with
	// two unit legs and a hypotenuse of sqrt(2): 24 edges of length 1 and
	// 12 of length sqrt(2).
	assert.Equal(t, 8, stats.NumNodes)
	assert.Equal(t, 12, stats.NumElems)
	assert.InDelta(t, 1.0, stats.EdgeMin, 1e-14)
	assert.InDelta(t, math.Sqrt2, stats.EdgeMax, 1e-14)
	assert.InDelta(t, 1.0, stats.EdgeMedian, 1e-14)

	mean := (24 + 12*math.Sqrt2) / 36
	assert.InDelta(t, mean, stats.EdgeMean, 1e-14)

	variance := (24*(1-mean)*(1-mean) + 12*(math.Sqrt2-mean)*(math.Sqrt2-mean)) / 36
	assert.InDelta(t, math.Sqrt(variance), stats.EdgeStd, 1e-14)
}

func TestMeshStatsScaling(t *testing.T) {
	scaled, err := Scale(UnitCube(), 10)
	require.NoError(t, err)
	stats, err := MeshStats(scaled)
	require.NoError(t, err)
	assert.InDelta(t, 10, stats.EdgeMin, 1e-12)
	assert.InDelta(t, 10*math.Sqrt2, stats.EdgeMax, 1e-12)
}

func TestMeshStatsEmptyMesh(t *testing.T) {
	_, err := MeshStats(&TriangleMesh{})
	assert.Error(t, err)
}

func TestStatsString(t *testing.T) {
	stats, err := MeshStats(UnitCube())
	require.NoError(t, err)
	s := stats.String()
	assert.Contains(t, s, "Number of nodes: 8")
	assert.Contains(t, s, "Min: 1.00e+00")
}
