package mesh

import (
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/quadmesh/geom"
	. "github.com/osuushi/quadmesh/subdivision"
)

// This is for debugging purposes only

const dbgDrawPadding = 20

// DbgDraw renders the mesh as a PNG at path: inside faces in green, fixed edges
// in cyan, other edges in grey, and Steiner points in red. With show, the
// image is also printed to the terminal (iTerm only).
func (m *Mesh) DbgDraw(scale float64, path string, show bool) error {
	var points []geom.Point
	for _, v := range m.sd.Vertices() {
		points = append(points, v.Point)
	}
	min, max := geom.Bounds(points)

	// Set up the context
	width := int(scale*(max.X-min.X)) + dbgDrawPadding*2
	height := int(scale*(max.Y-min.Y)) + dbgDrawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)

	// Translate for padding
	c.Translate(dbgDrawPadding, dbgDrawPadding)
	// Scale
	c.Scale(scale, scale)
	// Translate to min
	c.Translate(-min.X, -min.Y)

	for _, f := range m.insideTriangles() {
		loop := f.Bounds().LeftLoop()
		c.MoveTo(Org(loop[0]).Point.X, Org(loop[0]).Point.Y)
		for _, e := range loop[1:] {
			c.LineTo(Org(e).Point.X, Org(e).Point.Y)
		}
		c.ClosePath()
	}
	c.SetRGB(0, 0.5, 0)
	c.Fill()

	c.SetLineWidth(1)
	for _, fixed := range []bool{false, true} {
		for _, e := range m.sd.Edges() {
			if Fixed(e) != fixed {
				continue
			}
			c.MoveTo(Org(e).Point.X, Org(e).Point.Y)
			c.LineTo(Dest(e).Point.X, Dest(e).Point.Y)
		}
		if fixed {
			c.SetRGB(0, 1, 1)
		} else {
			c.SetRGB(0.5, 0.5, 0.5)
		}
		c.Stroke()
	}

	for _, v := range m.sd.Vertices() {
		if v.Steiner {
			c.DrawCircle(v.Point.X, v.Point.Y, 2/scale)
		}
	}
	c.SetRGB(1, 0, 0)
	c.Fill()

	if err := c.SavePNG(path); err != nil {
		return err
	}
	if show {
		imgcat.CatFile(path, os.Stdout)
	}
	return nil
}
