package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// PlanePoints creates a regular grid of field points on an axis-aligned
// plane, typically used as visualisation points for classification.
//
// axes selects the two coordinate axes spanning the plane (0, 1 or 2 for x,
// y, z), offset fixes the remaining coordinate, bounds holds
// [ax1min, ax1max, ax2min, ax2max] and resolution the number of points along
// each plane axis, endpoints included. Points are returned row-major over the
// first plane axis.
func PlanePoints(resolution [2]int, axes [2]int, offset float64, bounds [4]float64) ([]r3.Vec, error) {
	for _, ax := range axes {
		if ax < 0 || ax > 2 {
			return nil, fmt.Errorf("plane axis must be 0, 1 or 2, got %d", ax)
		}
	}
	if axes[0] == axes[1] {
		return nil, fmt.Errorf("plane axes must differ, got %d twice", axes[0])
	}
	if resolution[0] < 1 || resolution[1] < 1 {
		return nil, fmt.Errorf("plane resolution must be at least 1x1, got %dx%d", resolution[0], resolution[1])
	}
	coords := func(min, max float64, n int) []float64 {
		c := make([]float64, n)
		if n == 1 {
			c[0] = min
			return c
		}
		step := (max - min) / float64(n-1)
		for i := range c {
			c[i] = min + float64(i)*step
		}
		return c
	}
	ax1 := coords(bounds[0], bounds[1], resolution[0])
	ax2 := coords(bounds[2], bounds[3], resolution[1])

	points := make([]r3.Vec, 0, len(ax1)*len(ax2))
	for _, a := range ax1 {
		for _, b := range ax2 {
			xyz := [3]float64{offset, offset, offset}
			xyz[axes[0]] = a
			xyz[axes[1]] = b
			points = append(points, r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]})
		}
	}
	return points, nil
}
