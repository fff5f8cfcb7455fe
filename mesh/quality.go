package mesh

import (
	"github.com/osuushi/quadmesh/geom"
	. "github.com/osuushi/quadmesh/subdivision"
)

// Encroaches reports whether p lies in the closed diametral circle of e.
func Encroaches(e Edge, p geom.Point) bool {
	a, b := Org(e).Point, Dest(e).Point
	return geom.Dist(geom.Midpoint(a, b), p) <= geom.Dist(a, b)/2
}

// Quality of an inside triangle. See geom.Quality.
func Quality(f *Face) float64 {
	return geom.Quality(corners(f))
}

func Area(f *Face) float64 {
	return geom.Area(corners(f))
}

// Linear scan of the inside triangles for the one with the greatest measure.
func (m *Mesh) findMax(measure func(*Face) float64) (*Face, float64) {
	var best *Face
	var bestValue float64
	for _, f := range m.insideTriangles() {
		if value := measure(f); best == nil || value > bestValue {
			best, bestValue = f, value
		}
	}
	return best, bestValue
}

// FindWorst returns the inside triangle with the highest quality ratio, or nil
// if there are no inside triangles.
func (m *Mesh) FindWorst() (*Face, float64) {
	return m.findMax(Quality)
}

func (m *Mesh) FindBiggest() (*Face, float64) {
	return m.findMax(Area)
}

func (m *Mesh) FindSmallest() (*Face, float64) {
	f, negated := m.findMax(func(f *Face) float64 { return -Area(f) })
	return f, -negated
}

// Picks the next triangle to refine. The worst triangle is chosen when its
// ratio is over the bound. Otherwise, with an area bound, the biggest triangle
// is chosen when it is too big.
func (m *Mesh) nextBad() *Face {
	if f, ratio := m.FindWorst(); f != nil && ratio > m.opts.Ratio() {
		return f
	}
	if m.opts.MaxArea > 0 {
		if f, area := m.FindBiggest(); f != nil && area > m.opts.MaxArea {
			return f
		}
	}
	return nil
}

// IsBad reports whether f fails the quality or area bound.
func (m *Mesh) IsBad(f *Face) bool {
	if Quality(f) > m.opts.Ratio() {
		return true
	}
	return m.opts.MaxArea > 0 && Area(f) > m.opts.MaxArea
}
