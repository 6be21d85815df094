package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Outward-oriented triangulation of an axis-aligned box surface, two
// triangles per face.
var boxFaces = [12][3]int{
	{0, 3, 2}, {0, 2, 1}, // z = min
	{4, 5, 6}, {4, 6, 7}, // z = max
	{0, 1, 5}, {0, 5, 4}, // y = min
	{3, 7, 6}, {3, 6, 2}, // y = max
	{0, 4, 7}, {0, 7, 3}, // x = min
	{1, 2, 6}, {1, 6, 5}, // x = max
}

// Box returns the closed surface mesh of the axis-aligned box spanned by min
// and max, outward-oriented, all elements carrying the given domain tag.
func Box(min, max r3.Vec, tag int) (*TriangleMesh, error) {
	if min.X >= max.X || min.Y >= max.Y || min.Z >= max.Z {
		return nil, fmt.Errorf("degenerate box: min %v is not strictly below max %v", min, max)
	}
	vertices := []r3.Vec{
		{X: min.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: max.Y, Z: max.Z},
		{X: min.X, Y: max.Y, Z: max.Z},
	}
	elements := make([][3]int, len(boxFaces))
	tags := make([]int, len(boxFaces))
	for k, f := range boxFaces {
		elements[k] = f
		tags[k] = tag
	}
	return NewTriangleMesh(vertices, elements, tags)
}

// UnitCube returns the surface of the cube [0,1]^3 with domain tag 1.
func UnitCube() *TriangleMesh {
	m, err := Box(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}, 1)
	if err != nil {
		panic(err) // fixed geometry, cannot fail
	}
	return m
}
