// Package predicates provides the two geometric tests every other package
// decides topology with. The sign of each result is exact: a floating point
// evaluation is trusted when it clears Shewchuk's static error bound, and
// everything else is settled with exact big.Float arithmetic.
package predicates

import (
	"math/big"

	"github.com/golang/geo/r2"
)

// Direction is the exact sign of a predicate.
type Direction int

const (
	Clockwise        Direction = -1
	Indeterminate    Direction = 0
	CounterClockwise Direction = 1
)

const (
	// Half an ulp of 1.0
	epsilon = 1.0 / (1 << 53)

	ccwErrBound = (3.0 + 16.0*epsilon) * epsilon
	iccErrBound = (10.0 + 96.0*epsilon) * epsilon
)

// newBigFloat constructs a new big.Float with maximum precision, so that sums
// and products of float64 values are never rounded.
func newBigFloat() *big.Float { return new(big.Float).SetPrec(big.MaxPrec) }

// Orient2D is positive when a, b, c wind counterclockwise, negative when they
// wind clockwise and zero when they are collinear. Only the sign is
// meaningful.
func Orient2D(a, b, c r2.Point) float64 {
	detLeft := (a.X - c.X) * (b.Y - c.Y)
	detRight := (a.Y - c.Y) * (b.X - c.X)
	det := detLeft - detRight

	var detSum float64
	switch {
	case detLeft > 0:
		if detRight <= 0 {
			return det
		}
		detSum = detLeft + detRight
	case detLeft < 0:
		if detRight >= 0 {
			return det
		}
		detSum = -detLeft - detRight
	default:
		return det
	}

	bound := ccwErrBound * detSum
	if det >= bound || -det >= bound {
		return det
	}
	return float64(exactOrient(a, b, c))
}

// InCircle is positive when d lies strictly inside the circle through a, b, c,
// which must wind counterclockwise; negative when d is outside, and zero when
// the four points are cocircular. Only the sign is meaningful.
func InCircle(a, b, c, d r2.Point) float64 {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y

	bdxcdy, cdxbdy := bdx*cdy, cdx*bdy
	aLift := adx*adx + ady*ady

	cdxady, adxcdy := cdx*ady, adx*cdy
	bLift := bdx*bdx + bdy*bdy

	adxbdy, bdxady := adx*bdy, bdx*ady
	cLift := cdx*cdx + cdy*cdy

	det := aLift*(bdxcdy-cdxbdy) + bLift*(cdxady-adxcdy) + cLift*(adxbdy-bdxady)

	permanent := (abs(bdxcdy)+abs(cdxbdy))*aLift +
		(abs(cdxady)+abs(adxcdy))*bLift +
		(abs(adxbdy)+abs(bdxady))*cLift
	bound := iccErrBound * permanent
	if det > bound || -det > bound {
		return det
	}
	return float64(exactInCircle(a, b, c, d))
}

// Orientation is Orient2D reduced to a Direction.
func Orientation(a, b, c r2.Point) Direction {
	return sign(Orient2D(a, b, c))
}

func sign(v float64) Direction {
	switch {
	case v > 0:
		return CounterClockwise
	case v < 0:
		return Clockwise
	}
	return Indeterminate
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func exactOrient(a, b, c r2.Point) Direction {
	acx := sub(a.X, c.X)
	acy := sub(a.Y, c.Y)
	bcx := sub(b.X, c.X)
	bcy := sub(b.Y, c.Y)

	left := newBigFloat().Mul(acx, bcy)
	right := newBigFloat().Mul(acy, bcx)
	return Direction(left.Cmp(right))
}

func exactInCircle(a, b, c, d r2.Point) Direction {
	adx, ady := sub(a.X, d.X), sub(a.Y, d.Y)
	bdx, bdy := sub(b.X, d.X), sub(b.Y, d.Y)
	cdx, cdy := sub(c.X, d.X), sub(c.Y, d.Y)

	aLift := lift(adx, ady)
	bLift := lift(bdx, bdy)
	cLift := lift(cdx, cdy)

	det := newBigFloat().Mul(aLift, cross(bdx, bdy, cdx, cdy))
	det.Add(det, newBigFloat().Mul(bLift, cross(cdx, cdy, adx, ady)))
	det.Add(det, newBigFloat().Mul(cLift, cross(adx, ady, bdx, bdy)))
	return Direction(det.Sign())
}

func sub(x, y float64) *big.Float {
	return newBigFloat().Sub(newBigFloat().SetFloat64(x), newBigFloat().SetFloat64(y))
}

func lift(x, y *big.Float) *big.Float {
	result := newBigFloat().Mul(x, x)
	return result.Add(result, newBigFloat().Mul(y, y))
}

// x1*y2 - y1*x2
func cross(x1, y1, x2, y2 *big.Float) *big.Float {
	result := newBigFloat().Mul(x1, y2)
	return result.Sub(result, newBigFloat().Mul(y1, x2))
}
