package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Rigid mesh transforms. Every transform returns a new TriangleMesh with
// identical connectivity and domain tags; the input grid is never mutated.

// Scale multiplies all vertex coordinates by factor, with respect to the
// global origin.
func Scale(g Grid, factor float64) (*TriangleMesh, error) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("mesh scaling factor must be a positive finite number, got %v", factor)
	}
	m := clone(g)
	for i := 0; i < g.NumVertices(); i++ {
		m.Vertices[i] = r3.Scale(factor, g.Vertex(i))
	}
	return m, nil
}

// Translate shifts all vertex coordinates by the given vector.
func Translate(g Grid, shift r3.Vec) *TriangleMesh {
	m := clone(g)
	for i := 0; i < g.NumVertices(); i++ {
		m.Vertices[i] = r3.Add(g.Vertex(i), shift)
	}
	return m
}

// Rotate rotates all vertices around the global origin. The angles slice must
// hold exactly three values: the rotation angles in radians around the x, y
// and z axes, applied as Rz·Ry·Rx.
func Rotate(g Grid, angles []float64) (*TriangleMesh, error) {
	if len(angles) != 3 {
		return nil, fmt.Errorf("rotation needs exactly three angles (x, y, z), got %d", len(angles))
	}
	alpha, beta, gamma := angles[0], angles[1], angles[2]
	rx := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, math.Cos(alpha), -math.Sin(alpha),
		0, math.Sin(alpha), math.Cos(alpha),
	})
	ry := mat.NewDense(3, 3, []float64{
		math.Cos(beta), 0, math.Sin(beta),
		0, 1, 0,
		-math.Sin(beta), 0, math.Cos(beta),
	})
	rz := mat.NewDense(3, 3, []float64{
		math.Cos(gamma), -math.Sin(gamma), 0,
		math.Sin(gamma), math.Cos(gamma), 0,
		0, 0, 1,
	})
	var rzy, rot mat.Dense
	rzy.Mul(rz, ry)
	rot.Mul(&rzy, rx)

	m := clone(g)
	for i := 0; i < g.NumVertices(); i++ {
		v := g.Vertex(i)
		m.Vertices[i] = r3.Vec{
			X: rot.At(0, 0)*v.X + rot.At(0, 1)*v.Y + rot.At(0, 2)*v.Z,
			Y: rot.At(1, 0)*v.X + rot.At(1, 1)*v.Y + rot.At(1, 2)*v.Z,
			Z: rot.At(2, 0)*v.X + rot.At(2, 1)*v.Y + rot.At(2, 2)*v.Z,
		}
	}
	return m, nil
}

// RotateAroundCenter rotates all vertices around the center of the mesh
// bounding box instead of the global origin.
func RotateAroundCenter(g Grid, angles []float64) (*TriangleMesh, error) {
	min, max := Bounds(g)
	center := r3.Scale(0.5, r3.Add(min, max))
	centered := Translate(g, r3.Scale(-1, center))
	rotated, err := Rotate(centered, angles)
	if err != nil {
		return nil, err
	}
	return Translate(rotated, center), nil
}
