// Package preview renders normalized glyph contours to SVG or PNG for
// debugging the pipeline stages without a Lottie player.
package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/vector"

	"github.com/tomasdev/iconimation/geom"
)

// SVG renders the contours as a standalone SVG document with the
// given view box. Holes rely on the nonzero fill rule, matching the
// winding convention of the animation documents.
func SVG(paths []geom.Path, canvas geom.Rect) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s">`+"\n",
		coord(canvas.Min.X), coord(canvas.Min.Y), coord(canvas.Width()), coord(canvas.Height()))
	for i := range paths {
		fmt.Fprintf(&buf, `  <path fill="black" fill-rule="nonzero" d="%s"/>`+"\n", pathData(&paths[i]))
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func pathData(p *geom.Path) string {
	var b bytes.Buffer
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case geom.MoveTo:
			fmt.Fprintf(&b, "M%s %s", coord(e.Point.X), coord(e.Point.Y))
		case geom.LineTo:
			fmt.Fprintf(&b, "L%s %s", coord(e.Point.X), coord(e.Point.Y))
		case geom.QuadTo:
			fmt.Fprintf(&b, "Q%s %s %s %s",
				coord(e.Control.X), coord(e.Control.Y), coord(e.Point.X), coord(e.Point.Y))
		case geom.CubicTo:
			fmt.Fprintf(&b, "C%s %s %s %s %s %s",
				coord(e.Control1.X), coord(e.Control1.Y), coord(e.Control2.X), coord(e.Control2.Y),
				coord(e.Point.X), coord(e.Point.Y))
		case geom.Close:
			b.WriteString("Z")
		}
	}
	return b.String()
}

// coord formats a coordinate with three decimals, trimmed of trailing
// zeros so whole numbers stay short.
func coord(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// PNG rasterizes the contours black-on-white over the canvas.
func PNG(paths []geom.Path, canvas geom.Rect) ([]byte, error) {
	w := int(math.Ceil(canvas.Width()))
	h := int(math.Ceil(canvas.Height()))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("preview: canvas %v has no area", canvas)
	}
	z := vector.NewRasterizer(w, h)
	for i := range paths {
		rasterize(z, &paths[i], canvas.Min)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	z.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{})

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("preview: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func rasterize(z *vector.Rasterizer, p *geom.Path, origin geom.Point) {
	at := func(pt geom.Point) (float32, float32) {
		return float32(pt.X - origin.X), float32(pt.Y - origin.Y)
	}
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case geom.MoveTo:
			x, y := at(e.Point)
			z.MoveTo(x, y)
		case geom.LineTo:
			x, y := at(e.Point)
			z.LineTo(x, y)
		case geom.QuadTo:
			cx, cy := at(e.Control)
			x, y := at(e.Point)
			z.QuadTo(cx, cy, x, y)
		case geom.CubicTo:
			c1x, c1y := at(e.Control1)
			c2x, c2y := at(e.Control2)
			x, y := at(e.Point)
			z.CubeTo(c1x, c1y, c2x, c2y, x, y)
		case geom.Close:
			z.ClosePath()
		}
	}
	// The rasterizer needs explicitly closed contours.
	if !p.IsClosed() {
		z.ClosePath()
	}
}
