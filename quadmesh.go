// Constrained Delaunay triangulation and quality mesh refinement for Go.
//
// This package turns a set of closed loops, which may be non-convex, nested,
// and disjoint, into a triangle mesh of the region they enclose. Crossing a
// loop toggles between outside and inside, so loops inside loops are holes,
// and loops inside holes are islands. The mesh can then be refined with
// Ruppert's or Chew's algorithm until every triangle meets an angle and area
// bound.
//
// The packages underneath (subdivision, delaunay, mesh) expose the full quad
// edge topology for callers that need more than triangles.
package quadmesh

import (
	"github.com/osuushi/quadmesh/delaunay"
	"github.com/osuushi/quadmesh/geom"
	"github.com/osuushi/quadmesh/internal"
	"github.com/osuushi/quadmesh/mesh"
	"github.com/osuushi/quadmesh/subdivision"
)

type Point = geom.Point
type Polygon = geom.Polygon
type Triangle = [3]Point
type Domain = mesh.Domain
type Options = mesh.Options
type Stats = mesh.Stats

// DefaultOptions refines with Ruppert's algorithm to a minimum angle of about
// 34 degrees, with no area bound.
func DefaultOptions() Options {
	return mesh.DefaultOptions()
}

// Triangulate computes the Delaunay triangulation of a point set. Duplicate
// points are dropped.
func Triangulate(points []Point) (sd *subdivision.Subdivision, err error) {
	defer internal.Recover(&err)
	sd, _, err = delaunay.Triangulate(points)
	if err != nil {
		return nil, err
	}
	return sd, nil
}

// NewMesh builds the constrained Delaunay triangulation of the domain, with
// its faces classified, but does not refine it.
func NewMesh(domain Domain, opts Options) (*mesh.Mesh, error) {
	return mesh.New(domain, opts)
}

// Take a set of loops and convert them into a refined triangle mesh of the
// region they enclose. Stats.Complete is false if the iteration budget ran
// out; the triangles are still a valid mesh in that case.
func Refine(domain Domain, opts Options) (result []Triangle, stats Stats, err error) {
	defer func() {
		recoveredErr := internal.HandlePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()

	m, err := mesh.New(domain, opts)
	if err != nil {
		return nil, stats, err
	}
	stats, err = m.Refine()
	if err != nil {
		return nil, stats, err
	}
	return m.Triangles(), stats, nil
}

// Mesh the region enclosed by the loops without adding any points.
func TriangulatePolygons(polygons ...Polygon) ([]Triangle, error) {
	m, err := mesh.New(Domain{Boundaries: polygons}, mesh.DefaultOptions())
	if err != nil {
		return nil, err
	}
	return m.Triangles(), nil
}
