package lottie

import (
	"github.com/tomasdev/iconimation/geom"
)

// NewPathShape converts a closed cubic path into a path shape.
//
// The path must contain only move, line, cubic and close elements;
// callers promote quadratics first (geom.Path.RaiseToCubics) so the
// whole glyph uses one curve representation. Control handles are
// emitted relative to their vertex, per the Lottie schema. All
// coordinates are rounded once via [Round].
func NewPathShape(path *geom.Path) *PathShape {
	var (
		vertices [][]float64
		inH      [][]float64
		outH     [][]float64
		closed   bool
	)

	points := make([]geom.Point, 0, 16)
	push := func(p geom.Point) {
		points = append(points, p)
		vertices = append(vertices, []float64{Round(p.X), Round(p.Y)})
		inH = append(inH, []float64{0, 0})
		outH = append(outH, []float64{0, 0})
	}
	last := func() int { return len(points) - 1 }

	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case geom.MoveTo:
			push(e.Point)
		case geom.LineTo:
			// Zero handles on both ends; nothing to set.
			push(e.Point)
		case geom.QuadTo:
			// Quadratics are promoted before conversion; treat a stray
			// one as its exact cubic form.
			start := points[last()]
			c := (geom.QuadBez{P0: start, P1: e.Control, P2: e.Point}).Raise()
			setOut(outH, last(), c.P1.Sub(start))
			push(e.Point)
			setIn(inH, last(), c.P2.Sub(e.Point))
		case geom.CubicTo:
			setOut(outH, last(), e.Control1.Sub(points[last()]))
			push(e.Point)
			setIn(inH, last(), e.Control2.Sub(e.Point))
		case geom.Close:
			closed = true
		}
	}

	// A closing segment that returns exactly to the start vertex is
	// folded into it, so the contour has no duplicated point.
	if closed && len(points) > 1 {
		first, end := points[0], points[last()]
		if first.Distance(end) < 1e-6 {
			inH[0] = inH[last()]
			points = points[:last()]
			vertices = vertices[:len(points)]
			inH = inH[:len(points)]
			outH = outH[:len(points)]
		}
	}

	return &PathShape{
		Vertices: ShapeProperty{
			Value: &ShapeValue{
				Closed:   closed,
				Vertices: vertices,
				In:       inH,
				Out:      outH,
			},
		},
	}
}

func setOut(handles [][]float64, i int, v geom.Point) {
	handles[i] = []float64{Round(v.X), Round(v.Y)}
}

func setIn(handles [][]float64, i int, v geom.Point) {
	handles[i] = []float64{Round(v.X), Round(v.Y)}
}
