package geometry

import "gonum.org/v1/gonum/spatial/r3"

// Refine splits every triangle of g into four by edge midpoints, repeated
// levels times. Midpoint vertices are shared between neighboring elements,
// orientation and domain tags are preserved, so a closed outward-oriented
// surface stays closed and outward-oriented. The solid-angle classification
// uses a point-to-centroid approximation whose accuracy improves with element
// size, so coarse analytic surfaces should be refined before classification.
func Refine(g Grid, levels int) *TriangleMesh {
	m := &TriangleMesh{
		Vertices: make([]r3.Vec, g.NumVertices()),
		Elements: make([][3]int, g.NumElements()),
		Tags:     make([]int, g.NumElements()),
	}
	for i := 0; i < g.NumVertices(); i++ {
		m.Vertices[i] = g.Vertex(i)
	}
	for k := 0; k < g.NumElements(); k++ {
		m.Elements[k] = g.Element(k)
		m.Tags[k] = g.DomainTag(k)
	}
	for l := 0; l < levels; l++ {
		m = subdivide(m)
	}
	return m
}

func subdivide(m *TriangleMesh) *TriangleMesh {
	out := &TriangleMesh{
		Vertices: append([]r3.Vec(nil), m.Vertices...),
		Elements: make([][3]int, 0, 4*len(m.Elements)),
		Tags:     make([]int, 0, 4*len(m.Elements)),
	}
	// Canonical (low, high) vertex pair identifies an edge shared by
	// neighboring triangles, so each midpoint is created once.
	midpoints := make(map[[2]int]int)
	midpoint := func(a, b int) int {
		key := [2]int{a, b}
		if a > b {
			key = [2]int{b, a}
		}
		if idx, ok := midpoints[key]; ok {
			return idx
		}
		v := r3.Scale(0.5, r3.Add(out.Vertices[a], out.Vertices[b]))
		out.Vertices = append(out.Vertices, v)
		midpoints[key] = len(out.Vertices) - 1
		return len(out.Vertices) - 1
	}
	for k, el := range m.Elements {
		a, b, c := el[0], el[1], el[2]
		ab := midpoint(a, b)
		bc := midpoint(b, c)
		ca := midpoint(c, a)
		tag := m.Tags[k]
		for _, t := range [4][3]int{
			{a, ab, ca},
			{ab, b, bc},
			{ca, bc, c},
			{ab, bc, ca},
		} {
			out.Elements = append(out.Elements, t)
			out.Tags = append(out.Tags, tag)
		}
	}
	return out
}
