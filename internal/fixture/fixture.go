// Package fixture provides polygon domains for tests and the demo command.
package fixture

import (
	"embed"
	"math"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/charmbracelet/log"
	"github.com/osuushi/quadmesh/geom"
)

// This file parses the svg fixtures and outputs polygons. This is not a full
// (or even correct) svg parser. It finds every polygon element and converts
// each into a CCW polygon. If anything goes wrong, it exits.
//
// Fixtures are available by name in the fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) []geom.Polygon {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	polygonEls := rootEl.FindAll("polygon")
	if len(polygonEls) == 0 {
		log.Fatalf("No polygons found in fixture %q", name)
	}

	result := make([]geom.Polygon, 0, len(polygonEls))
	for _, polygonEl := range polygonEls {
		result = append(result, parsePoints(polygonEl.Attributes["points"]))
	}
	return result
}

func parsePoints(pointString string) geom.Polygon {
	pointStrings := strings.Fields(pointString)
	points := make([]geom.Point, 0, len(pointStrings))
	for _, pointString := range pointStrings {
		coordinates := strings.Split(pointString, ",")
		if len(coordinates) != 2 {
			log.Fatalf("Invalid point string %q", pointString)
		}
		x, err := strconv.ParseFloat(coordinates[0], 64)
		if err != nil {
			log.Fatalf("Invalid x value %q: %v", coordinates[0], err)
		}
		y, err := strconv.ParseFloat(coordinates[1], 64)
		if err != nil {
			log.Fatalf("Invalid y value %q: %v", coordinates[1], err)
		}
		points = append(points, geom.Point{X: x, Y: y})
	}
	result := geom.Polygon{Points: points}

	// Ensure that the polygon is CCW
	if !result.IsCCW() {
		result = result.Reverse()
	}
	return result
}

// Some ad hoc code specified fixtures

func UnitSquare() []geom.Polygon {
	return []geom.Polygon{{Points: []geom.Point{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 1},
	}}}
}

func SquareWithHole() []geom.Polygon {
	outerPoints := []geom.Point{
		{X: -5, Y: -5},
		{X: 5, Y: -5},
		{X: 5, Y: 5},
		{X: -5, Y: 5},
	}

	holePoints := []geom.Point{
		{X: -2, Y: -2},
		{X: -2, Y: 2},
		{X: 2, Y: 2},
		{X: 2, Y: -2},
	}

	return []geom.Polygon{{Points: outerPoints}, {Points: holePoints}}
}

func SimpleStar() []geom.Polygon {
	return []geom.Polygon{star(0, 0, 5, 2)}
}

// A star with a star shaped hole, and a small star island inside the hole.
func StarOutline() []geom.Polygon {
	return []geom.Polygon{
		star(0, 0, 10, 5),
		star(0, 0, 8, 3).Reverse(),
		star(0, 0, 2, 1),
	}
}

func star(x, y, outerRadius, innerRadius float64) geom.Polygon {
	var points []geom.Point
	for i := 0; i < 10; i++ {
		r := outerRadius
		if i%2 == 1 {
			r = innerRadius
		}
		angle := 2 * math.Pi * float64(i) / 10
		points = append(points, geom.Point{X: x + r*math.Cos(angle), Y: y + r*math.Sin(angle)})
	}
	return geom.Polygon{Points: points}
}

// Inset stars, each inside the last, so inside and outside alternate.
func StarStripes() []geom.Polygon {
	var list []geom.Polygon
	scale := 1.0
	for i := 0; i < 20; i++ {
		poly := star(0, 0, 10*scale, 7*scale)
		if i%2 == 1 {
			poly = poly.Reverse()
		}
		list = append(list, poly)
		scale *= 0.9
	}
	return list
}

// Several holes in one star, each with an island inside.
func MultiLayeredHoles() []geom.Polygon {
	return []geom.Polygon{
		// Outer star
		star(0, 0, 10, 7),
		// Top hole and island
		star(1.5, 5, 3, 2).Reverse(),
		star(1.5, 5, 2, 1),
		// Bottom hole and island
		star(1.8, -5, 3, 2).Reverse(),
		star(1.8, -5, 2, 1),
		// Left hole and island
		star(-3, 0, 4, 2).Reverse(),
		star(-3, 0, 3, 1),
	}
}
