package geom

import "math"

// CircumCenter of the triangle a, b, c. The result is infinite for collinear
// input.
func CircumCenter(a, b, c Point) Point {
	// Work relative to a to keep the products small
	ba := b.Sub(a)
	ca := c.Sub(a)
	d := 2 * (ba.X*ca.Y - ba.Y*ca.X)
	bLen := ba.Dot(ba)
	cLen := ca.Dot(ca)
	return Point{
		X: a.X + (ca.Y*bLen-ba.Y*cLen)/d,
		Y: a.Y + (ba.X*cLen-ca.X*bLen)/d,
	}
}

func edgeLengths(p1, p2, p3 Point) (a, b, c float64) {
	return Dist(p1, p2), Dist(p2, p3), Dist(p3, p1)
}

func circumRadiusFromLengths(a, b, c float64) float64 {
	denominator := (a + b + c) * (-a + b + c) * (a - b + c) * (a + b - c)
	if denominator <= 0 {
		return math.Inf(1)
	}
	return a * b * c / math.Sqrt(denominator)
}

func CircumRadius(p1, p2, p3 Point) float64 {
	return circumRadiusFromLengths(edgeLengths(p1, p2, p3))
}

// Quality is the ratio of the circumradius to the shortest edge. It is
// 1/sqrt(3) for an equilateral triangle and grows without bound as the
// smallest angle shrinks, since ratio = 1/(2 sin θmin).
func Quality(p1, p2, p3 Point) float64 {
	a, b, c := edgeLengths(p1, p2, p3)
	shortest := math.Min(a, math.Min(b, c))
	if shortest == 0 {
		return math.Inf(1)
	}
	return circumRadiusFromLengths(a, b, c) / shortest
}

// RatioForMinAngle converts a minimum angle in degrees to the quality ratio
// bound that guarantees it.
func RatioForMinAngle(degrees float64) float64 {
	return 1 / (2 * math.Sin(degrees*math.Pi/180))
}

// Area of a triangle by Heron's formula, which is insensitive to the winding.
func Area(p1, p2, p3 Point) float64 {
	a, b, c := edgeLengths(p1, p2, p3)
	s := KahanSum(a, b, c) / 2
	product := s * (s - a) * (s - b) * (s - c)
	if product <= 0 {
		return 0
	}
	return math.Sqrt(product)
}

// ShortestEdge returns the endpoints of the shortest edge of a triangle,
// ordered as they appear in p1, p2, p3.
func ShortestEdge(p1, p2, p3 Point) (Point, Point) {
	a, b, c := edgeLengths(p1, p2, p3)
	switch {
	case a <= b && a <= c:
		return p1, p2
	case b <= c:
		return p2, p3
	}
	return p3, p1
}

// OffCenter pulls a circumcenter c toward the midpoint of the edge a, b when
// the isosceles triangle a, b, c would be worse than ratio. c must lie on the
// bisector of a, b, as a circumcenter of any triangle with edge a, b does. The
// new point forms a triangle with a and b that beats the bound with ten
// percent to spare.
func OffCenter(a, b, c Point, ratio float64) Point {
	mid := Midpoint(a, b)
	l := Dist(a, c)
	base := Dist(a, b)
	h := Dist(c, mid)
	if h == 0 || base == 0 {
		return c
	}

	radius := 0.5 * l * l / h
	if radius/base <= ratio {
		return c
	}

	target := base * ratio * 0.9
	// Height of an isosceles triangle on the base with circumradius target
	disc := 4*target*target - base*base
	if disc < 0 {
		return c
	}
	newH := (2*target + math.Sqrt(disc)) * 0.5

	t := 1 - newH/h
	if t < 0 || t > 1 {
		return c
	}
	return c.Add(mid.Sub(c).Mul(t))
}
