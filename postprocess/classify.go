package postprocess

import (
	"fmt"
	"runtime"
	"time"

	"github.com/gato1108/optimus/geometry"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// Config controls a classification call.
type Config struct {
	// Tolerance is the boundary tolerance τ on the solid angle. When set,
	// points with solid angle in (0.5-τ, 0.5+τ) are classified as boundary
	// points and interior requires a solid angle above 0.5+τ. Zero disables
	// boundary detection. Must lie in [0, 0.5].
	Tolerance float64
	// Workers is the number of worker goroutines evaluating points in
	// parallel. Zero or negative selects runtime.GOMAXPROCS(0).
	Workers int
	// Verbose enables timing output.
	Verbose bool
}

// DomainResult holds the classification of all query points against the
// closed sub-surface of one domain tag. The boolean vectors are index-aligned
// with the input point sequence.
type DomainResult struct {
	Tag      int
	Interior []bool
	Boundary []bool // nil when boundary detection is disabled

	InteriorPoints []r3.Vec
	BoundaryPoints []r3.Vec
}

// Classification is the result of one classification call: one DomainResult
// per distinct domain tag in ascending tag order, plus a single global
// exterior vector. A point is exterior only if it is neither interior nor
// boundary for every domain tag.
type Classification struct {
	Domains  []DomainResult
	Exterior []bool

	ExteriorPoints []r3.Vec
}

// Domain returns the result for a domain tag, or nil if the mesh has no such
// tag.
func (c *Classification) Domain(tag int) *DomainResult {
	for i := range c.Domains {
		if c.Domains[i].Tag == tag {
			return &c.Domains[i]
		}
	}
	return nil
}

// Classify evaluates for every query point whether it lies inside, outside or
// on the boundary of the volumes enclosed by the domain-tagged sub-surfaces
// of g, using the solid-angle method. Each sub-surface must be a closed,
// outward-oriented triangulated manifold. Tags are processed sequentially,
// points within a tag in parallel; result vectors preserve the input point
// order. Malformed geometry aborts the whole call.
func Classify(g geometry.Grid, points []r3.Vec, cfg Config) (*Classification, error) {
	if cfg.Tolerance < 0 || cfg.Tolerance > 0.5 {
		return nil, fmt.Errorf("boundary tolerance must lie in [0, 0.5], got %v", cfg.Tolerance)
	}
	if err := geometry.Validate(g); err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	tags := geometry.Tags(g)
	if cfg.Verbose {
		fmt.Printf("Element groups are: %v\n", tags)
	}

	cls := &Classification{Exterior: make([]bool, len(points))}
	for i := range cls.Exterior {
		cls.Exterior[i] = true
	}

	for _, tag := range tags {
		dg, err := newDomainGeometry(g, tag)
		if err != nil {
			return nil, err
		}

		start := time.Now()
		sa := make([]float64, len(points))
		var eg errgroup.Group
		chunk := (len(points) + workers - 1) / workers
		for lo := 0; lo < len(points); lo += chunk {
			lo := lo
			hi := min(lo+chunk, len(points))
			eg.Go(func() error {
				for i := lo; i < hi; i++ {
					sa[i] = dg.solidAngle(points[i])
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
		if cfg.Verbose {
			fmt.Printf("Domain %d: evaluated %d points against %d elements in %v\n",
				tag, len(points), len(dg.areas), time.Since(start))
		}

		res := DomainResult{Tag: tag, Interior: make([]bool, len(points))}
		if cfg.Tolerance > 0 {
			res.Boundary = make([]bool, len(points))
			for i, s := range sa {
				res.Interior[i] = s > 0.5+cfg.Tolerance
				res.Boundary[i] = s > 0.5-cfg.Tolerance && s < 0.5+cfg.Tolerance
			}
		} else {
			for i, s := range sa {
				res.Interior[i] = s > 0.5
			}
		}
		res.InteriorPoints = selectPoints(points, res.Interior)
		if res.Boundary != nil {
			res.BoundaryPoints = selectPoints(points, res.Boundary)
		}
		cls.Domains = append(cls.Domains, res)
	}

	// Final reduction: a point stays exterior only if no domain claimed it
	// as interior or boundary.
	for i := range points {
		for _, d := range cls.Domains {
			if d.Interior[i] || (d.Boundary != nil && d.Boundary[i]) {
				cls.Exterior[i] = false
				break
			}
		}
	}
	cls.ExteriorPoints = selectPoints(points, cls.Exterior)
	return cls, nil
}

// selectPoints returns the coordinate subset of points whose mask entry is
// true, preserving order.
func selectPoints(points []r3.Vec, mask []bool) []r3.Vec {
	selected := make([]r3.Vec, 0)
	for i, keep := range mask {
		if keep {
			selected = append(selected, points[i])
		}
	}
	return selected
}
