package geom

// A Polygon is a closed loop of points. The last point connects back to the
// first and must not repeat it.
type Polygon struct {
	Points []Point
}

// Even-odd point-in-polygon. This is provided primarily for checking the
// inside/outside classification of a mesh against its input loops.
func (poly Polygon) ContainsPointByEvenOdd(p Point) bool {
	return poly.CrossingCount(p)%2 == 1
}

// Crossing count helper for even odd rule. Counts the edges crossed by a ray
// from p in the +x direction.
func (poly Polygon) CrossingCount(p Point) int {
	crossingCount := 0
	for i, vertex := range poly.Points {
		nextVertex := poly.Points[CircularIndex(i+1, len(poly.Points))]
		if (vertex.Y > p.Y) == (nextVertex.Y > p.Y) {
			continue
		}
		// x coordinate where the edge meets the ray's line
		t := (p.Y - vertex.Y) / (nextVertex.Y - vertex.Y)
		if vertex.X+t*(nextVertex.X-vertex.X) > p.X {
			crossingCount++
		}
	}
	return crossingCount
}

// Twice the signed area, positive for counterclockwise polygons.
func (poly Polygon) doubleSignedArea() float64 {
	terms := make([]float64, 0, 2*len(poly.Points))
	for i, p := range poly.Points {
		q := poly.Points[CircularIndex(i+1, len(poly.Points))]
		terms = append(terms, p.X*q.Y, -q.X*p.Y)
	}
	return KahanSum(terms...)
}

func (poly Polygon) SignedArea() float64 {
	return poly.doubleSignedArea() / 2
}

func (poly Polygon) IsCCW() bool {
	return poly.doubleSignedArea() > 0
}

func (poly Polygon) Reverse() Polygon {
	newPoly := Polygon{}
	for i := len(poly.Points) - 1; i >= 0; i-- {
		newPoly.Points = append(newPoly.Points, poly.Points[i])
	}
	return newPoly
}

// Edges of the loop as point pairs, closing edge included.
func (poly Polygon) Segments() [][2]Point {
	result := make([][2]Point, len(poly.Points))
	for i, p := range poly.Points {
		result[i] = [2]Point{p, poly.Points[CircularIndex(i+1, len(poly.Points))]}
	}
	return result
}
