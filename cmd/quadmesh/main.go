package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/osuushi/quadmesh/geom"
	"github.com/osuushi/quadmesh/internal/fixture"
	"github.com/osuushi/quadmesh/mesh"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Demo of meshing. Input on stdin should be newline separated points in the
// form "x y", with each loop separated by an extra newline. Loops may wind
// either way; a loop inside another is a hole.
//
// The loops are meshed, refined, and a summary is printed. With --print, the
// triangles are written to stdout as "x1 y1 x2 y2 x3 y3" lines instead.

var (
	configPath = kingpin.Flag("config", "TOML file with refinement options.").Short('c').ExistingFile()
	algorithm  = kingpin.Flag("algorithm", "Refinement algorithm.").Short('a').Enum(string(mesh.Ruppert), string(mesh.Chew))
	minAngle   = kingpin.Flag("min-angle", "Minimum angle in degrees.").Float64()
	maxArea    = kingpin.Flag("max-area", "Maximum triangle area.").Float64()
	maxIter    = kingpin.Flag("max-iterations", "Refinement step budget.").Int()
	offCenter  = kingpin.Flag("off-center", "Use off-centers with Chew's algorithm.").Bool()
	fixtureArg = kingpin.Flag("fixture", "Mesh a built in fixture instead of reading stdin.").String()
	pngPath    = kingpin.Flag("png", "Draw the mesh to this PNG file.").String()
	scale      = kingpin.Flag("scale", "Pixels per unit for --png.").Default("10").Float64()
	show       = kingpin.Flag("show", "Print the PNG to the terminal (iTerm only).").Bool()
	printTris  = kingpin.Flag("print", "Write the triangles to stdout.").Bool()
	verbose    = kingpin.Flag("verbose", "Log refinement progress.").Short('v').Bool()
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleLabel  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	styleNumber = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	styleWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

func main() {
	kingpin.Parse()

	level := log.InfoLevel
	if *verbose {
		level = log.DebugLevel
	}
	logger := newLogger(os.Stderr, level)

	if err := run(logger); err != nil {
		logger.Error("meshing failed", "err", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func run(logger *log.Logger) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}

	var polygons []geom.Polygon
	if *fixtureArg != "" {
		polygons = fixture.LoadFixture(*fixtureArg)
	} else {
		polygons, err = readPolygons(os.Stdin)
		if err != nil {
			return err
		}
	}
	logger.Debug("read input", "polygons", len(polygons))

	start := time.Now()
	m, err := mesh.New(mesh.Domain{Boundaries: polygons}, opts)
	if err != nil {
		return err
	}
	m.SetLogger(logger)
	stats, err := m.Refine()
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}
	elapsed := time.Since(start).Round(time.Millisecond)

	if *pngPath != "" {
		if err := m.DbgDraw(*scale, *pngPath, *show); err != nil {
			return errors.Wrap(err, "drawing mesh")
		}
	}

	if *printTris {
		for _, tri := range m.Triangles() {
			fmt.Printf("%g %g %g %g %g %g\n", tri[0].X, tri[0].Y, tri[1].X, tri[1].Y, tri[2].X, tri[2].Y)
		}
		return nil
	}
	fmt.Println(summary(m, stats, elapsed))
	return nil
}

// Flags override the config file, which overrides the defaults.
func loadOptions() (mesh.Options, error) {
	opts := mesh.DefaultOptions()
	if *configPath != "" {
		var err error
		if opts, err = mesh.LoadOptions(*configPath); err != nil {
			return opts, err
		}
	}
	if *algorithm != "" {
		opts.Algorithm = mesh.Algorithm(*algorithm)
	}
	if *minAngle > 0 {
		opts.MinAngle = *minAngle
	}
	if *maxArea > 0 {
		opts.MaxArea = *maxArea
	}
	if *maxIter > 0 {
		opts.MaxIterations = *maxIter
	}
	if *offCenter {
		opts.OffCenter = true
	}
	return opts, opts.Validate()
}

func summary(m *mesh.Mesh, stats mesh.Stats, elapsed time.Duration) string {
	row := func(label string, value interface{}) string {
		return styleLabel.Render(label) + styleNumber.Render(fmt.Sprint(value))
	}
	_, worst := m.FindWorst()
	_, smallest := m.FindSmallest()
	_, biggest := m.FindBiggest()

	lines := []string{
		styleTitle.Render(fmt.Sprintf("%s refinement", m.Options().Algorithm)),
		row("vertices", m.Subdivision().NumVertices()),
		row("triangles", len(m.Triangles())),
		row("iterations", stats.Iterations),
		row("inserted", stats.Inserted),
		row("splits", stats.Splits),
		row("deleted", stats.Deleted),
		row("worst ratio", fmt.Sprintf("%.4f", worst)),
		row("area", fmt.Sprintf("%.4g to %.4g", smallest, biggest)),
		row("time", elapsed),
	}
	if !stats.Complete {
		lines = append(lines, styleWarn.Render("! iteration budget ran out before every triangle met the bounds"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func readPolygons(in io.Reader) ([]geom.Polygon, error) {
	polygons := []geom.Polygon{}
	// Scan lines
	scanner := bufio.NewScanner(in)
	points := []geom.Point{}
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		// Read the next line
		line := strings.TrimSpace(scanner.Text())

		// If it's empty, and we collected any points, this is the end of the polygon
		if line == "" {
			if len(points) > 0 {
				polygons = append(polygons, geom.Polygon{Points: points})
				points = []geom.Point{}
			}
			continue
		}

		// Parse the point out of the line
		point, err := parsePoint(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNumber)
		}
		points = append(points, point)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading polygons")
	}

	// Handle trailing polygon if any
	if len(points) > 0 {
		polygons = append(polygons, geom.Polygon{Points: points})
	}
	return polygons, nil
}

func parsePoint(line string) (geom.Point, error) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return geom.Point{}, errors.Errorf("expected \"x y\", got %q", line)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return geom.Point{}, errors.Wrap(err, "x")
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return geom.Point{}, errors.Wrap(err, "y")
	}
	return geom.Point{X: x, Y: y}, nil
}
