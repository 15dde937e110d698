package iconimation

import (
	"math"

	"github.com/tomasdev/iconimation/geom"
)

// normalize maps glyph contours from font units into the target box
// and promotes every segment to a cubic bezier.
//
// The em square (0, 0)-(upem, upem) in the font's Y-up coordinates is
// scaled uniformly onto a centered square inside the target box, with
// the Y axis flipped exactly once for the document's Y-down
// convention. Contours keep their font order and their element order,
// so the relative winding of outer contours and holes is preserved.
func normalize(contours []geom.Path, upem float64, target geom.Rect) []geom.Path {
	scale := math.Min(target.Width(), target.Height()) / upem
	side := upem * scale
	c := target.Center()
	// y' = -scale*y + ty puts y=0 (the baseline edge of the em square)
	// at the bottom of the centered square.
	tx := c.X - side/2
	ty := c.Y + side/2
	m := geom.Matrix{A: scale, B: 0, C: tx, D: 0, E: -scale, F: ty}

	out := make([]geom.Path, 0, len(contours))
	for i := range contours {
		p := contours[i].Transform(m)
		out = append(out, *p.RaiseToCubics())
	}
	return out
}
