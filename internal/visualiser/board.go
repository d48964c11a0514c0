// Package visualiser draws contact boards as PNG images and journals as
// HTML charts.
package visualiser

import (
	"fmt"
	"image/color"
	"io"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/targeting/internal/contacts"
	"github.com/banshee-data/targeting/internal/geometry"
	"github.com/banshee-data/targeting/internal/sensor"
)

// BoardSize is the edge length of rendered board images.
const BoardSize = 8 * vg.Inch

// Impacts maps contact ids to predicted impact points.
type Impacts map[int]r2.Vec

// BoardPlot draws every contact's current uncertainty region, the emitter's
// beam and any predicted impact points.
func BoardPlot(b *contacts.Board, emitter sensor.Emitter, impacts Impacts) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Contacts (%d)", b.Count())
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"
	p.Add(plotter.NewGrid())

	beam, err := beamLines(emitter)
	if err != nil {
		return nil, err
	}
	p.Add(beam)
	p.Legend.Add("beam", beam)

	boundaries := b.Boundaries()
	ids := make([]int, 0, len(boundaries))
	for id := range boundaries {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	colors := generateColors(len(ids))
	for i, id := range ids {
		c, _ := b.Get(id)

		outline, err := plotter.NewLine(closed(boundaries[id]))
		if err != nil {
			return nil, fmt.Errorf("contact %d outline: %w", id, err)
		}
		outline.Color = colors[i]
		outline.Width = vg.Points(1)
		if !contacts.IsTracked(c) {
			outline.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}
		p.Add(outline)
		p.Legend.Add(fmt.Sprintf("%d %s", id, c.Class()), outline)

		pos := c.Position()
		centre, err := plotter.NewScatter(plotter.XYs{{X: pos.X, Y: pos.Y}})
		if err != nil {
			return nil, err
		}
		centre.Color = colors[i]
		centre.Shape = draw.CircleGlyph{}
		p.Add(centre)

		if impact, ok := impacts[id]; ok {
			mark, err := plotter.NewScatter(plotter.XYs{{X: impact.X, Y: impact.Y}})
			if err != nil {
				return nil, err
			}
			mark.Color = colors[i]
			mark.Shape = draw.CrossGlyph{}
			mark.Radius = vg.Points(5)
			p.Add(mark)
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// WriteBoardPNG renders the board as a PNG to w.
func WriteBoardPNG(w io.Writer, b *contacts.Board, emitter sensor.Emitter, impacts Impacts) error {
	p, err := BoardPlot(b, emitter, impacts)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(BoardSize, BoardSize, "png")
	if err != nil {
		return fmt.Errorf("board writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write board png: %w", err)
	}
	return nil
}

// SaveBoardPNG renders the board to a PNG file at path.
func SaveBoardPNG(path string, b *contacts.Board, emitter sensor.Emitter, impacts Impacts) error {
	p, err := BoardPlot(b, emitter, impacts)
	if err != nil {
		return err
	}
	if err := p.Save(BoardSize, BoardSize, path); err != nil {
		return fmt.Errorf("save board plot: %w", err)
	}
	return nil
}

// beamLines outlines the sector covered by the emitter.
func beamLines(e sensor.Emitter) (*plotter.Line, error) {
	const arcSteps = 16

	near := func(angle float64) r2.Vec { return r2.Add(e.Pos, geometry.FromPolar(angle, e.MinDistance)) }
	far := func(angle float64) r2.Vec { return r2.Add(e.Pos, geometry.FromPolar(angle, e.MaxDistance)) }

	pts := []r2.Vec{near(e.MinHeading())}
	for i := 0; i <= arcSteps; i++ {
		angle := e.MinHeading() + e.Width*float64(i)/arcSteps
		pts = append(pts, far(angle))
	}
	for i := arcSteps; i >= 0; i-- {
		angle := e.MinHeading() + e.Width*float64(i)/arcSteps
		pts = append(pts, near(angle))
	}

	line, err := plotter.NewLine(toXYs(pts))
	if err != nil {
		return nil, fmt.Errorf("beam outline: %w", err)
	}
	line.Color = color.Gray{Y: 128}
	line.Width = vg.Points(0.5)
	return line, nil
}

func closed(pts []r2.Vec) plotter.XYs {
	if len(pts) == 0 {
		return nil
	}
	return toXYs(append(append([]r2.Vec(nil), pts...), pts[0]))
}

func toXYs(pts []r2.Vec) plotter.XYs {
	xys := make(plotter.XYs, len(pts))
	for i, v := range pts {
		xys[i] = plotter.XY{X: v.X, Y: v.Y}
	}
	return xys
}
