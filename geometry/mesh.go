// Package geometry holds the triangulated surface model shared by the
// classification engine, the mesh transforms and the mesh statistics.
package geometry

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Grid is the mesh adapter contract: a triangulated surface exposed as a
// shared vertex array, per-element vertex index triples and a per-element
// integer domain tag. Each set of elements sharing a tag must form a closed,
// consistently outward-oriented 2-manifold for the solid-angle test to be
// well defined.
type Grid interface {
	NumVertices() int
	Vertex(i int) r3.Vec
	NumElements() int
	Element(k int) [3]int
	DomainTag(k int) int
}

// TriangleMesh is the concrete Grid implementation used throughout.
type TriangleMesh struct {
	Vertices []r3.Vec
	Elements [][3]int
	Tags     []int // domain tag per element
}

// NewTriangleMesh builds a mesh from raw arrays. A nil tags slice assigns
// domain tag 1 to every element.
func NewTriangleMesh(vertices []r3.Vec, elements [][3]int, tags []int) (*TriangleMesh, error) {
	if tags == nil {
		tags = make([]int, len(elements))
		for k := range tags {
			tags[k] = 1
		}
	}
	if len(tags) != len(elements) {
		return nil, fmt.Errorf("tag count %d does not match element count %d", len(tags), len(elements))
	}
	m := &TriangleMesh{Vertices: vertices, Elements: elements, Tags: tags}
	if err := Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *TriangleMesh) NumVertices() int     { return len(m.Vertices) }
func (m *TriangleMesh) Vertex(i int) r3.Vec  { return m.Vertices[i] }
func (m *TriangleMesh) NumElements() int     { return len(m.Elements) }
func (m *TriangleMesh) Element(k int) [3]int { return m.Elements[k] }
func (m *TriangleMesh) DomainTag(k int) int  { return m.Tags[k] }

// Validate checks index ranges and that the mesh has elements at all.
func Validate(g Grid) error {
	if g.NumElements() == 0 {
		return fmt.Errorf("mesh has no elements")
	}
	nv := g.NumVertices()
	for k := 0; k < g.NumElements(); k++ {
		el := g.Element(k)
		for _, v := range el {
			if v < 0 || v >= nv {
				return fmt.Errorf("element %d references vertex %d, mesh has %d vertices", k, v, nv)
			}
		}
	}
	return nil
}

// Tags returns the distinct domain tags of the mesh in ascending order.
func Tags(g Grid) []int {
	seen := make(map[int]bool)
	var tags []int
	for k := 0; k < g.NumElements(); k++ {
		tag := g.DomainTag(k)
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	sort.Ints(tags)
	return tags
}

// Bounds returns the axis-aligned bounding box of the mesh vertices.
func Bounds(g Grid) (min, max r3.Vec) {
	min = r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max = r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for i := 0; i < g.NumVertices(); i++ {
		v := g.Vertex(i)
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		min.Z = math.Min(min.Z, v.Z)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
		max.Z = math.Max(max.Z, v.Z)
	}
	return min, max
}

// Merge combines several grids into a single mesh, offsetting element vertex
// indices. Domain tags are carried over unchanged, so disjoint closed
// sub-surfaces keep their identity; callers are responsible for tag
// uniqueness across the inputs.
func Merge(grids ...Grid) (*TriangleMesh, error) {
	m := &TriangleMesh{}
	for _, g := range grids {
		offset := len(m.Vertices)
		for i := 0; i < g.NumVertices(); i++ {
			m.Vertices = append(m.Vertices, g.Vertex(i))
		}
		for k := 0; k < g.NumElements(); k++ {
			el := g.Element(k)
			m.Elements = append(m.Elements, [3]int{el[0] + offset, el[1] + offset, el[2] + offset})
			m.Tags = append(m.Tags, g.DomainTag(k))
		}
	}
	if err := Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// clone copies the connectivity and tags of g into a fresh TriangleMesh with
// an empty vertex slice ready to be filled by a transform.
func clone(g Grid) *TriangleMesh {
	m := &TriangleMesh{
		Vertices: make([]r3.Vec, g.NumVertices()),
		Elements: make([][3]int, g.NumElements()),
		Tags:     make([]int, g.NumElements()),
	}
	for k := 0; k < g.NumElements(); k++ {
		m.Elements[k] = g.Element(k)
		m.Tags[k] = g.DomainTag(k)
	}
	return m
}
