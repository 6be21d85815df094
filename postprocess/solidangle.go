// Package postprocess implements the solid-angle method for classifying
// field points as interior, exterior or boundary with respect to the closed
// sub-surfaces of a triangulated mesh.
package postprocess

import (
	"fmt"
	"math"

	"github.com/gato1108/optimus/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// domainGeometry holds the derived geometry of the elements carrying one
// domain tag: barycenters, outward unit normals and surface areas. It is
// rebuilt from the mesh for every classification call and shared read-only
// across workers.
type domainGeometry struct {
	tag         int
	barycenters []r3.Vec
	normals     []r3.Vec
	areas       []float64
}

// newDomainGeometry computes barycenter, outward unit normal and area for
// exactly the elements of g carrying the given tag. A zero-area triangle is
// malformed geometry and fails the whole call.
func newDomainGeometry(g geometry.Grid, tag int) (*domainGeometry, error) {
	dg := &domainGeometry{tag: tag}
	for k := 0; k < g.NumElements(); k++ {
		if g.DomainTag(k) != tag {
			continue
		}
		el := g.Element(k)
		v0, v1, v2 := g.Vertex(el[0]), g.Vertex(el[1]), g.Vertex(el[2])
		u := r3.Sub(v1, v0)
		v := r3.Sub(v2, v0)
		cross := r3.Cross(u, v)
		norm := r3.Norm(cross)
		if norm == 0 {
			return nil, fmt.Errorf("degenerate element %d in domain %d: zero-area triangle", k, tag)
		}
		dg.barycenters = append(dg.barycenters, r3.Scale(1.0/3.0, r3.Add(r3.Add(v0, v1), v2)))
		dg.normals = append(dg.normals, r3.Scale(1/norm, cross))
		dg.areas = append(dg.areas, 0.5*norm)
	}
	if len(dg.areas) == 0 {
		return nil, fmt.Errorf("domain tag %d has no elements", tag)
	}
	return dg, nil
}

// solidAngle returns the normalized solid angle subtended by the domain
// surface at point p, using the point-to-centroid approximation: each element
// contributes (d̂·n)·A/r² and the sum is normalized by 4π. A point strictly
// inside a closed fine surface evaluates to ≈1, a point outside to ≈0 and a
// point on the surface to ≈0.5. A query point coinciding with an element
// barycenter lies on the surface and returns exactly 0.5.
func (dg *domainGeometry) solidAngle(p r3.Vec) float64 {
	var sum float64
	for i, b := range dg.barycenters {
		d := r3.Sub(b, p)
		r2 := r3.Norm2(d)
		if r2 == 0 {
			return 0.5
		}
		// (d̂·n)·A/r² written as (d·n)·A/r³ to avoid normalizing d.
		sum += r3.Dot(d, dg.normals[i]) * dg.areas[i] / (r2 * math.Sqrt(r2))
	}
	return sum / (4 * math.Pi)
}
