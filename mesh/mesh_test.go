package mesh

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/osuushi/quadmesh/delaunay"
	"github.com/osuushi/quadmesh/geom"
	"github.com/osuushi/quadmesh/internal/fixture"
	"github.com/osuushi/quadmesh/predicates"
	. "github.com/osuushi/quadmesh/subdivision"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y float64) geom.Point {
	return geom.Point{X: x, Y: y}
}

func newMesh(t *testing.T, domain Domain, opts Options) *Mesh {
	t.Helper()
	m, err := New(domain, opts)
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	return m
}

func evenOdd(polygons []geom.Polygon, p geom.Point) bool {
	crossings := 0
	for _, poly := range polygons {
		crossings += poly.CrossingCount(p)
	}
	return crossings%2 == 1
}

func domainArea(polygons []geom.Polygon) float64 {
	// Loops at odd nesting depth are holes. Depth is taken from the first
	// corner, which none of the fixtures shares with another loop.
	total := 0.0
	for i, poly := range polygons {
		depth := 0
		for j, other := range polygons {
			if i != j && other.ContainsPointByEvenOdd(poly.Points[0]) {
				depth++
			}
		}
		area := math.Abs(poly.SignedArea())
		if depth%2 == 1 {
			area = -area
		}
		total += area
	}
	return total
}

func insideArea(m *Mesh) float64 {
	var areas []float64
	for _, tri := range m.Triangles() {
		areas = append(areas, geom.Area(tri[0], tri[1], tri[2]))
	}
	return geom.KahanSum(areas...)
}

// Compares the mesh's classification with the even-odd rule on a grid of
// sample points, offset so that none lands on an edge of the fixtures.
func assertClassification(t *testing.T, m *Mesh, polygons []geom.Polygon) {
	t.Helper()
	var points []geom.Point
	for _, poly := range polygons {
		points = append(points, poly.Points...)
	}
	min, max := geom.Bounds(points)
	step := math.Max(max.X-min.X, max.Y-min.Y) / 40
	for y := min.Y - step + 0.0137*step; y <= max.Y+step; y += step {
		for x := min.X - step + 0.0291*step; x <= max.X+step; x += step {
			p := pt(x, y)
			if evenOdd(polygons, p) {
				assert.True(t, m.Contains(p), "%v should be inside", p)
			} else {
				assert.False(t, m.Contains(p), "%v should be outside", p)
			}
		}
	}
}

func assertQuality(t *testing.T, m *Mesh, ratio, maxArea float64) {
	t.Helper()
	for _, tri := range m.Triangles() {
		assert.LessOrEqual(t, geom.Quality(tri[0], tri[1], tri[2]), ratio+1e-9, "triangle %v", tri)
		if maxArea > 0 {
			assert.LessOrEqual(t, geom.Area(tri[0], tri[1], tri[2]), maxArea, "triangle %v", tri)
		}
	}
}

// Every unfixed edge between two triangles passes the in-circle test.
func assertLocallyDelaunay(t *testing.T, m *Mesh) {
	t.Helper()
	for _, e := range m.Subdivision().Edges() {
		if Fixed(e) || !delaunay.IsRealTriangle(e) || !delaunay.IsRealTriangle(e.Sym()) {
			continue
		}
		opposite := Dest(e.Sym().Lnext())
		if predicates.InCircle(Org(e).Point, Dest(e).Point, Dest(e.Lnext()).Point, opposite.Point) > 0 {
			t.Errorf("edge %v-%v is not locally Delaunay", Org(e), Dest(e))
		}
	}
}

// Boundary edges can be split but never flipped away, so their total length
// stays the perimeter of the input loops.
func assertBoundaryLength(t *testing.T, m *Mesh, polygons []geom.Polygon) {
	t.Helper()
	var perimeter, boundary []float64
	for _, poly := range polygons {
		for _, segment := range poly.Segments() {
			perimeter = append(perimeter, geom.Dist(segment[0], segment[1]))
		}
	}
	for _, e := range m.Subdivision().Edges() {
		if Boundary(e) {
			require.True(t, Fixed(e), "boundary edges are fixed")
			boundary = append(boundary, geom.Dist(Org(e).Point, Dest(e).Point))
		}
	}
	assert.InDelta(t, geom.KahanSum(perimeter...), geom.KahanSum(boundary...), 1e-9)
}

// Unit square with its sides sampled every tenth, so that points well inside
// it do not encroach the boundary.
func sampledSquare() Domain {
	domain := Domain{Boundaries: fixture.UnitSquare()}
	for i := 1; i < 10; i++ {
		t := float64(i) / 10
		domain.Points = append(domain.Points, pt(t, 0), pt(1, t), pt(t, 1), pt(0, t))
	}
	return domain
}

func TestInitFaces(t *testing.T) {
	sd, le, err := delaunay.Triangulate([]geom.Point{pt(0, 0), pt(1, 0), pt(0, 1), pt(1, 1)})
	require.NoError(t, err)

	InitFaces(sd)
	assert.Equal(t, 3, sd.NumFaces())
	require.NoError(t, sd.Validate())
	for _, f := range sd.Faces() {
		assert.Equal(t, Unclassified, f.Mark)
	}

	// Without boundary edges everything is outside
	MarkOuterFaces(sd, le.Sym())
	assert.Equal(t, Left(le.Sym()), sd.OuterFace)
	for _, f := range sd.Faces() {
		assert.Equal(t, Outside, f.Mark)
	}
}

func TestClassifySquareWithHole(t *testing.T) {
	polygons := fixture.SquareWithHole()
	m := newMesh(t, Domain{Boundaries: polygons}, DefaultOptions())

	sd := m.Subdivision()
	assert.Equal(t, Outside, sd.OuterFace.Mark)
	assert.Equal(t, 8, sd.NumVertices())
	assert.InDelta(t, 84, insideArea(m), 1e-9)
	assertClassification(t, m, polygons)
	assertBoundaryLength(t, m, polygons)
}

func TestClassifyNestedStars(t *testing.T) {
	cases := map[string][]geom.Polygon{
		"outline":       fixture.StarOutline(),
		"stripes":       fixture.StarStripes(),
		"layered holes": fixture.MultiLayeredHoles(),
	}
	for name, polygons := range cases {
		t.Run(name, func(t *testing.T) {
			m := newMesh(t, Domain{Boundaries: polygons}, DefaultOptions())
			assertClassification(t, m, polygons)
			assertBoundaryLength(t, m, polygons)
			assert.InDelta(t, domainArea(polygons), insideArea(m), 1e-9)
		})
	}
}

func TestClassifySVGFixtures(t *testing.T) {
	for _, name := range []string{"square_with_hole", "comb", "l_shape"} {
		t.Run(name, func(t *testing.T) {
			polygons := fixture.LoadFixture(name)
			m := newMesh(t, Domain{Boundaries: polygons}, DefaultOptions())
			assertClassification(t, m, polygons)
			assert.InDelta(t, domainArea(polygons), insideArea(m), 1e-6)
		})
	}
}

func TestNewErrors(t *testing.T) {
	_, err := New(Domain{Points: []geom.Point{pt(0, 0), pt(1, 1)}}, DefaultOptions())
	assert.True(t, errors.Is(err, ErrEmptyDomain))

	opts := DefaultOptions()
	opts.Algorithm = "delaunay"
	_, err = New(Domain{Boundaries: fixture.UnitSquare()}, opts)
	assert.True(t, errors.Is(err, ErrInvalidOptions))
}

func TestInteriorSegment(t *testing.T) {
	domain := Domain{
		Boundaries: fixture.UnitSquare(),
		Segments:   [][2]geom.Point{{pt(0.2, 0.3), pt(0.8, 0.7)}},
	}
	m := newMesh(t, domain, DefaultOptions())
	assertClassification(t, m, domain.Boundaries)

	fixedLength := func() float64 {
		var lengths []float64
		for _, e := range m.Subdivision().Edges() {
			if Fixed(e) && !Boundary(e) {
				lengths = append(lengths, geom.Dist(Org(e).Point, Dest(e).Point))
			}
		}
		return geom.KahanSum(lengths...)
	}
	segmentLength := geom.Dist(pt(0.2, 0.3), pt(0.8, 0.7))
	assert.InDelta(t, segmentLength, fixedLength(), 1e-12)

	opts := DefaultOptions()
	opts.QualityRatio = 1.0
	opts.MaxArea = 0.02
	require.NoError(t, m.SetOptions(opts))
	stats, err := m.Refine()
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.True(t, stats.Complete)
	assert.InDelta(t, segmentLength, fixedLength(), 1e-9)
	assertBoundaryLength(t, m, domain.Boundaries)
}

func TestEncroaches(t *testing.T) {
	_, e := NewSegment(pt(0, 0), pt(2, 0))
	assert.True(t, Encroaches(e, pt(1, 0.5)))
	assert.True(t, Encroaches(e, pt(1, 1)), "the circle itself counts")
	assert.False(t, Encroaches(e, pt(1, 1.01)))
	assert.False(t, Encroaches(e, pt(2.5, 0)))
}

func TestSplitSegment(t *testing.T) {
	polygons := fixture.UnitSquare()
	m := newMesh(t, Domain{Boundaries: polygons}, DefaultOptions())

	var bottom Edge
	for _, e := range m.Subdivision().Edges() {
		if Org(e).Point.Y == 0 && Dest(e).Point.Y == 0 {
			bottom = e
		}
	}
	require.False(t, bottom.IsNil())

	v := m.SplitSegment(bottom)
	require.NoError(t, m.Validate())
	assert.Equal(t, pt(0.5, 0), v.Point)
	assert.False(t, v.Steiner)
	for _, e := range v.Leaves().Orbit() {
		if Dest(e).Point.Y == 0 {
			assert.True(t, Fixed(e))
			assert.True(t, Boundary(e))
		}
	}
	assert.Len(t, m.Triangles(), 3)
	assert.InDelta(t, 1, insideArea(m), 1e-12)
	assertBoundaryLength(t, m, polygons)
	assertLocallyDelaunay(t, m)

	assert.Panics(t, func() {
		for _, e := range m.Subdivision().Edges() {
			if !Fixed(e) {
				m.SplitSegment(e)
			}
		}
	})
}

func TestSplitEdges(t *testing.T) {
	domain := Domain{Boundaries: fixture.UnitSquare(), Points: []geom.Point{pt(0.5, 0.1)}}
	m := newMesh(t, domain, DefaultOptions())

	splits, complete, err := m.SplitEdges()
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.True(t, complete)
	assert.Greater(t, splits, 0)
	for _, e := range m.Subdivision().Edges() {
		if Fixed(e) {
			assert.False(t, m.isEncroached(e), "%v-%v", Org(e), Dest(e))
		}
	}
	assertBoundaryLength(t, m, domain.Boundaries)
}

func TestFindExtremes(t *testing.T) {
	m := newMesh(t, sampledSquare(), DefaultOptions())

	worst, worstRatio := m.FindWorst()
	biggest, biggestArea := m.FindBiggest()
	smallest, smallestArea := m.FindSmallest()
	require.NotNil(t, worst)
	require.NotNil(t, biggest)
	require.NotNil(t, smallest)

	for _, f := range m.insideTriangles() {
		assert.LessOrEqual(t, Quality(f), worstRatio)
		assert.LessOrEqual(t, Area(f), biggestArea)
		assert.GreaterOrEqual(t, Area(f), smallestArea)
	}
	assert.Equal(t, worstRatio, Quality(worst))
}

func TestRuppertUnitSquare(t *testing.T) {
	for _, maxArea := range []float64{0, 0.01} {
		opts := DefaultOptions()
		opts.QualityRatio = 1.0
		opts.MaxArea = maxArea
		m := newMesh(t, Domain{Boundaries: fixture.UnitSquare()}, opts)

		stats, err := m.RefineRuppert()
		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.True(t, stats.Complete)
		assert.LessOrEqual(t, stats.Iterations, opts.MaxIterations)

		assertQuality(t, m, 1.0, maxArea)
		assertLocallyDelaunay(t, m)
		assertBoundaryLength(t, m, fixture.UnitSquare())
		assert.InDelta(t, 1, insideArea(m), 1e-9)
	}
}

func TestRuppertSquareWithHole(t *testing.T) {
	polygons := fixture.SquareWithHole()
	opts := DefaultOptions()
	opts.MinAngle = 25
	opts.MaxArea = 2
	m := newMesh(t, Domain{Boundaries: polygons}, opts)

	stats, err := m.Refine()
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.True(t, stats.Complete)
	assert.Greater(t, stats.Inserted, 0)

	assertQuality(t, m, geom.RatioForMinAngle(25), 2)
	assertClassification(t, m, polygons)
	assertBoundaryLength(t, m, polygons)
	assertLocallyDelaunay(t, m)
	assert.InDelta(t, 84, insideArea(m), 1e-9)
}

func TestRuppertBudget(t *testing.T) {
	// The area bound needs thousands of triangles
	polygons := fixture.SimpleStar()
	opts := DefaultOptions()
	opts.MaxArea = 0.01
	opts.MaxIterations = 25
	m := newMesh(t, Domain{Boundaries: polygons}, opts)

	stats, err := m.RefineRuppert()
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.False(t, stats.Complete)
	assert.LessOrEqual(t, stats.Iterations, 25)
	assertClassification(t, m, polygons)
	assertBoundaryLength(t, m, polygons)
}

func TestChewUnitSquare(t *testing.T) {
	for _, offCenter := range []bool{false, true} {
		opts := DefaultOptions()
		opts.Algorithm = Chew
		opts.QualityRatio = 1.0
		opts.MaxArea = 0.02
		opts.OffCenter = offCenter
		m := newMesh(t, Domain{Boundaries: fixture.UnitSquare()}, opts)

		stats, err := m.Refine()
		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.True(t, stats.Complete, "off-center %v", offCenter)

		assertQuality(t, m, 1.0, 0.02)
		assertLocallyDelaunay(t, m)
		assertBoundaryLength(t, m, fixture.UnitSquare())
		assert.InDelta(t, 1, insideArea(m), 1e-9)
	}
}

// The outline is a narrow star shaped band, so circumcenters of triangles
// along it land across its boundary. Those walks are blocked, the Steiner points near the blocking edge
// are removed, and the edge is split instead.
func TestChewBlockedWalks(t *testing.T) {
	polygons := fixture.StarOutline()
	opts := DefaultOptions()
	opts.Algorithm = Chew
	opts.MinAngle = 30
	m := newMesh(t, Domain{Boundaries: polygons}, opts)

	stats, err := m.Refine()
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.Greater(t, stats.Splits, 0)
	assert.Greater(t, stats.Deleted, 0)

	for _, v := range m.Subdivision().Vertices() {
		if v.Steiner {
			for _, e := range v.Leaves().Orbit() {
				assert.False(t, Fixed(e), "Steiner point %v sits on a fixed edge", v)
			}
		}
	}
	assertLocallyDelaunay(t, m)
	assertClassification(t, m, polygons)
	assertBoundaryLength(t, m, polygons)
	assert.InDelta(t, domainArea(polygons), insideArea(m), 1e-9)
}

func TestInsertMeshSite(t *testing.T) {
	m := newMesh(t, sampledSquare(), DefaultOptions())
	vertices := m.Subdivision().NumVertices()

	result, v, err := m.InsertMeshSite(pt(0.5, 0.5), Edge{})
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.Equal(t, SiteInserted, result)
	assert.Equal(t, pt(0.5, 0.5), v.Point)
	assert.True(t, v.Steiner)
	assert.Equal(t, vertices+1, m.Subdivision().NumVertices())
	assertLocallyDelaunay(t, m)

	result, dup, err := m.InsertMeshSite(pt(0.5, 0.5), v.Leaves())
	require.NoError(t, err)
	assert.Equal(t, SiteDuplicate, result)
	assert.Equal(t, v, dup)

	result, _, err = m.InsertMeshSite(pt(2, 2), Edge{})
	require.NoError(t, err)
	assert.Equal(t, SiteRejected, result)

	// Close to the bottom, inside the diametral circle of (0.5,0)-(0.6,0)
	result, mid, err := m.InsertMeshSite(pt(0.55, 0.01), Edge{})
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.Equal(t, SiteSplit, result)
	assert.Equal(t, pt(0.55, 0), mid.Point)
	assert.False(t, mid.Steiner)
	assertBoundaryLength(t, m, fixture.UnitSquare())
}

func TestDeleteSite(t *testing.T) {
	m := newMesh(t, sampledSquare(), DefaultOptions())
	vertices := m.Subdivision().NumVertices()
	edges := m.Subdivision().NumEdges()

	_, v, err := m.InsertMeshSite(pt(0.43, 0.52), Edge{})
	require.NoError(t, err)
	_, w, err := m.InsertMeshSite(pt(0.61, 0.47), Edge{})
	require.NoError(t, err)
	require.Equal(t, vertices+2, m.Subdivision().NumVertices())

	require.NoError(t, m.DeleteSite(v))
	require.NoError(t, m.Validate())
	assert.False(t, v.Alive())
	assert.Equal(t, vertices+1, m.Subdivision().NumVertices())
	assert.InDelta(t, 1, insideArea(m), 1e-12)

	require.NoError(t, m.DeleteSite(w))
	require.NoError(t, m.Validate())
	assert.Equal(t, vertices, m.Subdivision().NumVertices())
	assert.Equal(t, edges, m.Subdivision().NumEdges())
	assertClassification(t, m, fixture.UnitSquare())

	var corner *Vertex
	for _, x := range m.Subdivision().Vertices() {
		if x.Point == pt(0, 0) {
			corner = x
		}
	}
	err = m.DeleteSite(corner)
	assert.True(t, errors.Is(err, ErrPrecondViolation))
}

func TestEliminateWorstTriangle(t *testing.T) {
	// Four right triangles around the center, each with a side of the square
	// as its hypotenuse. Their circumcenters are the midpoints of the sides.
	domain := Domain{Boundaries: fixture.UnitSquare(), Points: []geom.Point{pt(0.5, 0.5)}}
	m := newMesh(t, domain, DefaultOptions())
	require.Len(t, m.Triangles(), 4)

	result, v, err := m.EliminateWorstTriangle()
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.Equal(t, SiteSplit, result)
	assert.False(t, v.Steiner)
	assert.Len(t, m.Triangles(), 5)
	assertBoundaryLength(t, m, domain.Boundaries)
}

func TestOptions(t *testing.T) {
	opts, err := DecodeOptions(strings.NewReader(`
algorithm = "chew"
min_angle = 30
max_area = 0.5
off_center = true
`))
	require.NoError(t, err)
	assert.Equal(t, Chew, opts.Algorithm)
	assert.InDelta(t, 1.0, opts.Ratio(), 1e-12)
	assert.Equal(t, 0.5, opts.MaxArea)
	assert.True(t, opts.OffCenter)
	assert.Equal(t, DefaultMaxIterations, opts.MaxIterations, "defaults fill in")

	assert.InDelta(t, DefaultQualityRatio, DefaultOptions().Ratio(), 0)

	_, err = DecodeOptions(strings.NewReader(`algorithm = "bowyer-watson"`))
	assert.True(t, errors.Is(err, ErrInvalidOptions))
	_, err = DecodeOptions(strings.NewReader(`max_iterations = -1`))
	assert.True(t, errors.Is(err, ErrInvalidOptions))
	_, err = DecodeOptions(strings.NewReader(`max_area = "big"`))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "mesh.toml")
	require.NoError(t, os.WriteFile(path, []byte("quality_ratio = 1.2\n"), 0o644))
	opts, err = LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, 1.2, opts.Ratio())
	assert.Equal(t, Ruppert, opts.Algorithm)

	_, err = LoadOptions(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.MaxArea = 0.1
	m := newMesh(t, Domain{Boundaries: fixture.UnitSquare()}, opts)
	m.SetLogger(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))

	_, err := m.Refine()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "ruppert refinement finished")
}

func TestDbgDraw(t *testing.T) {
	m := newMesh(t, Domain{Boundaries: fixture.SquareWithHole()}, DefaultOptions())
	path := filepath.Join(t.TempDir(), "mesh.png")
	require.NoError(t, m.DbgDraw(10, path, false))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
