package geometry

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the edge lengths of a triangulated surface. Each triangle
// contributes its three edges, so shared edges are counted once per incident
// element, matching how mesh generators report element size.
type Stats struct {
	EdgeMin    float64
	EdgeMax    float64
	EdgeMean   float64
	EdgeMedian float64
	EdgeStd    float64 // population standard deviation
	NumNodes   int
	NumElems   int
}

// MeshStats computes edge-length statistics and node count for a grid.
func MeshStats(g Grid) (Stats, error) {
	if err := Validate(g); err != nil {
		return Stats{}, err
	}
	lengths := make([]float64, 0, 3*g.NumElements())
	for k := 0; k < g.NumElements(); k++ {
		el := g.Element(k)
		v0, v1, v2 := g.Vertex(el[0]), g.Vertex(el[1]), g.Vertex(el[2])
		lengths = append(lengths,
			r3.Norm(r3.Sub(v1, v0)),
			r3.Norm(r3.Sub(v2, v1)),
			r3.Norm(r3.Sub(v0, v2)),
		)
	}
	sort.Float64s(lengths)
	return Stats{
		EdgeMin:    lengths[0],
		EdgeMax:    lengths[len(lengths)-1],
		EdgeMean:   stat.Mean(lengths, nil),
		EdgeMedian: stat.Quantile(0.5, stat.Empirical, lengths, nil),
		EdgeStd:    stat.PopStdDev(lengths, nil),
		NumNodes:   g.NumVertices(),
		NumElems:   g.NumElements(),
	}, nil
}

// String returns a printable summary of the statistics.
func (s Stats) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Number of nodes: %d\n", s.NumNodes))
	sb.WriteString(fmt.Sprintf("Number of elements: %d\n", s.NumElems))
	sb.WriteString("Statistics about the element size in the triangular surface grid:\n")
	sb.WriteString(fmt.Sprintf(" Min: %.2e\n", s.EdgeMin))
	sb.WriteString(fmt.Sprintf(" Max: %.2e\n", s.EdgeMax))
	sb.WriteString(fmt.Sprintf(" AVG: %.2e\n", s.EdgeMean))
	sb.WriteString(fmt.Sprintf(" MED: %.2e\n", s.EdgeMedian))
	sb.WriteString(fmt.Sprintf(" STD: %.2e\n", s.EdgeStd))
	return sb.String()
}
