// Package geom holds the floating point geometry used around the exact
// predicates: circumcircles, triangle quality, areas and simple polygons.
// Nothing in here decides topology; that is left to the predicates package.
package geom

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
)

type Point = r2.Point

// Lexicographic order, x first. The divide and conquer triangulation expects
// its input sorted by this.
func Less(a, b Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

// SortedUnique returns a sorted copy of points with exact duplicates removed.
func SortedUnique(points []Point) []Point {
	result := make([]Point, len(points))
	copy(result, points)
	sort.Slice(result, func(i, j int) bool {
		return Less(result[i], result[j])
	})

	unique := result[:0]
	for i, p := range result {
		if i > 0 && p == unique[len(unique)-1] {
			continue
		}
		unique = append(unique, p)
	}
	return unique
}

func Midpoint(a, b Point) Point {
	return a.Add(b).Mul(0.5)
}

func Dist(a, b Point) float64 {
	return a.Sub(b).Norm()
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

// KahanSum adds values with compensated summation.
func KahanSum(values ...float64) float64 {
	var sum, compensation float64
	for _, v := range values {
		y := v - compensation
		t := sum + y
		compensation = (t - sum) - y
		sum = t
	}
	return sum
}

// Bounding box of a point set, as its lower left and upper right corners.
func Bounds(points []Point) (min, max Point) {
	min = Point{X: math.Inf(1), Y: math.Inf(1)}
	max = Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range points {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return
}
