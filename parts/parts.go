// Package parts groups a glyph's contours into independently
// animatable parts.
//
// A part is one outermost contour plus every contour nested inside it.
// Holes (inner contours, like the counter of an "O") stay attached to
// their enclosing contour: animating a hole apart from its outer shape
// would tear the glyph visually.
//
// Decomposition is deterministic: part order derives only from the
// font's own contour order, because animation stagger timing depends
// on part index.
package parts

import "github.com/tomasdev/iconimation/geom"

// Part is an ordered group of contours that move together. The root
// (outermost) contour comes first, followed by its nested contours in
// font order.
type Part struct {
	Paths []geom.Path
}

// BoundingBox returns the union of the part's contour bounds.
func (p Part) BoundingBox() geom.Rect {
	var bbox geom.Rect
	for i, path := range p.Paths {
		if i == 0 {
			bbox = path.BoundingBox()
			continue
		}
		bbox = bbox.Union(path.BoundingBox())
	}
	return bbox
}

// Decompose groups contours into parts. Contours contained in no other
// contour become part roots, in font order; every remaining contour is
// attached to the first root that contains it. A glyph with a single
// contour yields exactly one part.
func Decompose(paths []geom.Path) []Part {
	if len(paths) == 0 {
		return nil
	}

	type contour struct {
		bbox  geom.Rect
		probe geom.Point // a point on the contour, used for containment tests
	}
	contours := make([]contour, len(paths))
	for i := range paths {
		contours[i] = contour{
			bbox:  paths[i].BoundingBox(),
			probe: paths[i].Start(),
		}
	}

	// A contour is nested when some other contour contains it. The
	// bounding-box check is a cheap necessary pre-condition; the
	// winding test settles containment exactly.
	nested := make([]bool, len(paths))
	for i := range paths {
		for j := range paths {
			if i == j {
				continue
			}
			if !contours[j].bbox.ContainsRect(contours[i].bbox) {
				continue
			}
			if paths[j].Contains(contours[i].probe) {
				nested[i] = true
				break
			}
		}
	}

	var rootIdx []int
	for i, isNested := range nested {
		if !isNested {
			rootIdx = append(rootIdx, i)
		}
	}
	if len(rootIdx) == 0 {
		// Degenerate mutual containment; treat the glyph as one part.
		// Copied so the part never aliases the caller's slice.
		return []Part{{Paths: append([]geom.Path(nil), paths...)}}
	}

	parts := make([]Part, len(rootIdx))
	rootOf := make(map[int]int, len(rootIdx))
	for partIdx, i := range rootIdx {
		parts[partIdx].Paths = append(parts[partIdx].Paths, paths[i])
		rootOf[i] = partIdx
	}

	for i := range paths {
		if !nested[i] {
			continue
		}
		attached := false
		for _, r := range rootIdx {
			if !contours[r].bbox.ContainsRect(contours[i].bbox) {
				continue
			}
			if paths[r].Contains(contours[i].probe) {
				parts[rootOf[r]].Paths = append(parts[rootOf[r]].Paths, paths[i])
				attached = true
				break
			}
		}
		if !attached {
			// Nested only in other nested contours; keep it with the
			// first root in font order rather than dropping geometry.
			parts[0].Paths = append(parts[0].Paths, paths[i])
		}
	}

	return parts
}
