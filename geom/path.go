package geom

import "math"

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo moves to a point without drawing.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path represents a vector path: a sequence of move, line, curve and
// close elements. A single closed contour is a path with one MoveTo
// and a trailing Close.
type Path struct {
	elements []PathElement
	start    Point // Starting point of current subpath
	current  Point // Current point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// MoveTo moves to a point without drawing.
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

// LineTo draws a line to a point.
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadraticTo draws a quadratic Bezier curve.
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: Pt(x, y)})
	p.current = Pt(x, y)
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    Pt(x, y),
	})
	p.current = Pt(x, y)
}

// Close closes the current subpath by drawing a line to the start point.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// IsEmpty returns true if the path has no elements.
func (p *Path) IsEmpty() bool {
	return len(p.elements) == 0
}

// IsClosed returns true if the path ends with a Close element.
func (p *Path) IsClosed() bool {
	if len(p.elements) == 0 {
		return false
	}
	_, ok := p.elements[len(p.elements)-1].(Close)
	return ok
}

// Start returns the first MoveTo point of the path.
func (p *Path) Start() Point {
	for _, elem := range p.elements {
		if m, ok := elem.(MoveTo); ok {
			return m.Point
		}
	}
	return Point{}
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	out := &Path{
		elements: make([]PathElement, len(p.elements)),
		start:    p.start,
		current:  p.current,
	}
	copy(out.elements, p.elements)
	return out
}

// Transform returns a new path with every point mapped through m.
// Element kinds and ordering are preserved, so winding direction is
// only reversed when m has a negative determinant.
func (p *Path) Transform(m Matrix) *Path {
	out := &Path{elements: make([]PathElement, 0, len(p.elements))}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			pt := m.TransformPoint(e.Point)
			out.MoveTo(pt.X, pt.Y)
		case LineTo:
			pt := m.TransformPoint(e.Point)
			out.LineTo(pt.X, pt.Y)
		case QuadTo:
			c := m.TransformPoint(e.Control)
			pt := m.TransformPoint(e.Point)
			out.QuadraticTo(c.X, c.Y, pt.X, pt.Y)
		case CubicTo:
			c1 := m.TransformPoint(e.Control1)
			c2 := m.TransformPoint(e.Control2)
			pt := m.TransformPoint(e.Point)
			out.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
		case Close:
			out.Close()
		}
	}
	return out
}

// RaiseToCubics returns a new path with every quadratic segment elevated
// to its exact cubic representation. Lines and cubics pass through
// unchanged, so the promotion is uniform across the whole path.
func (p *Path) RaiseToCubics() *Path {
	out := &Path{elements: make([]PathElement, 0, len(p.elements))}
	var current Point
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			out.MoveTo(e.Point.X, e.Point.Y)
			current = e.Point
		case LineTo:
			out.LineTo(e.Point.X, e.Point.Y)
			current = e.Point
		case QuadTo:
			c := QuadBez{P0: current, P1: e.Control, P2: e.Point}.Raise()
			out.CubicTo(c.P1.X, c.P1.Y, c.P2.X, c.P2.Y, c.P3.X, c.P3.Y)
			current = e.Point
		case CubicTo:
			out.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
			current = e.Point
		case Close:
			out.Close()
		}
	}
	return out
}

// BoundingBox returns the tight axis-aligned bounding box of the path.
// Uses curve extrema for accuracy.
func (p *Path) BoundingBox() Rect {
	if len(p.elements) == 0 {
		return Rect{}
	}

	bbox := Rect{
		Min: Point{X: math.MaxFloat64, Y: math.MaxFloat64},
		Max: Point{X: -math.MaxFloat64, Y: -math.MaxFloat64},
	}

	var current Point
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			bbox = bbox.expand(e.Point)
			current = e.Point
		case LineTo:
			bbox = bbox.expand(e.Point)
			current = e.Point
		case QuadTo:
			q := QuadBez{P0: current, P1: e.Control, P2: e.Point}
			bbox = bbox.Union(q.BoundingBox())
			current = e.Point
		case CubicTo:
			c := CubicBez{P0: current, P1: e.Control1, P2: e.Control2, P3: e.Point}
			bbox = bbox.Union(c.BoundingBox())
			current = e.Point
		case Close:
			// Close adds no new points.
		}
	}

	if bbox.Min.X == math.MaxFloat64 {
		return Rect{}
	}
	return bbox
}

// Area returns the signed area enclosed by the path.
// The sign encodes winding direction; it flips under a mirroring transform.
// Uses the shoelace formula extended for curves (Green's theorem).
func (p *Path) Area() float64 {
	var area float64
	var current, start Point

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			start = e.Point
			current = e.Point
		case LineTo:
			area += lineArea(current, e.Point)
			current = e.Point
		case QuadTo:
			// Integral of x*dy over the parametric form.
			area += (current.X*(2*e.Control.Y+e.Point.Y) +
				e.Control.X*(-current.Y+e.Point.Y) +
				e.Point.X*(-2*e.Control.Y-current.Y)) / 6.0
			current = e.Point
		case CubicTo:
			area += cubicArea(current, e.Control1, e.Control2, e.Point)
			current = e.Point
		case Close:
			area += lineArea(current, start)
			current = start
		}
	}

	return area
}

// lineArea computes the contribution of a line segment to the signed area.
func lineArea(p0, p1 Point) float64 {
	return 0.5 * (p0.X*p1.Y - p1.X*p0.Y)
}

// cubicArea computes the contribution of a cubic Bezier to the signed area.
func cubicArea(p0, p1, p2, p3 Point) float64 {
	return (p0.X*(6*p1.Y+3*p2.Y+p3.Y) +
		3*p1.X*(-2*p0.Y+p2.Y+p3.Y) +
		3*p2.X*(-p0.Y-p1.Y+2*p3.Y) +
		p3.X*(-p0.Y-3*p1.Y-6*p2.Y)) / 20.0
}

// Winding returns the winding number of a point relative to the path.
// 0 = outside, non-zero = inside (for the non-zero fill rule).
// Uses ray casting with a horizontal ray to the right; curve segments
// are adaptively flattened.
func (p *Path) Winding(pt Point) int {
	var winding int
	var current, start Point

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			start = e.Point
			current = e.Point
		case LineTo:
			winding += lineWinding(current, e.Point, pt)
			current = e.Point
		case QuadTo:
			winding += quadWinding(QuadBez{P0: current, P1: e.Control, P2: e.Point}, pt)
			current = e.Point
		case CubicTo:
			winding += cubicWinding(CubicBez{P0: current, P1: e.Control1, P2: e.Control2, P3: e.Point}, pt)
			current = e.Point
		case Close:
			winding += lineWinding(current, start, pt)
			current = start
		}
	}

	return winding
}

// Contains tests if a point is inside the path using the non-zero fill rule.
func (p *Path) Contains(pt Point) bool {
	return p.Winding(pt) != 0
}

// lineWinding computes the winding contribution of a line segment.
func lineWinding(p0, p1, pt Point) int {
	if p0.Y <= pt.Y && p1.Y > pt.Y {
		// Upward crossing.
		if isLeft(p0, p1, pt) > 0 {
			return 1
		}
	} else if p0.Y > pt.Y && p1.Y <= pt.Y {
		// Downward crossing.
		if isLeft(p0, p1, pt) < 0 {
			return -1
		}
	}
	return 0
}

// isLeft returns positive if pt is left of line p0-p1, negative if right, 0 if on.
func isLeft(p0, p1, pt Point) float64 {
	return (p1.X-p0.X)*(pt.Y-p0.Y) - (pt.X-p0.X)*(p1.Y-p0.Y)
}

// quadWinding computes the winding contribution of a quadratic Bezier.
func quadWinding(q QuadBez, pt Point) int {
	minY := math.Min(math.Min(q.P0.Y, q.P1.Y), q.P2.Y)
	maxY := math.Max(math.Max(q.P0.Y, q.P1.Y), q.P2.Y)
	if pt.Y < minY || pt.Y > maxY {
		return 0
	}
	maxX := math.Max(math.Max(q.P0.X, q.P1.X), q.P2.X)
	if pt.X > maxX {
		return 0
	}

	// Flat enough: distance from control point to chord midpoint.
	const tolerance = 0.1
	mid := q.P0.Lerp(q.P2, 0.5)
	if q.P1.Sub(mid).Length() <= tolerance {
		return lineWinding(q.P0, q.P2, pt)
	}

	q1, q2 := q.Subdivide()
	return quadWinding(q1, pt) + quadWinding(q2, pt)
}

// cubicWinding computes the winding contribution of a cubic Bezier.
func cubicWinding(c CubicBez, pt Point) int {
	minY := math.Min(math.Min(c.P0.Y, c.P1.Y), math.Min(c.P2.Y, c.P3.Y))
	maxY := math.Max(math.Max(c.P0.Y, c.P1.Y), math.Max(c.P2.Y, c.P3.Y))
	if pt.Y < minY || pt.Y > maxY {
		return 0
	}
	maxX := math.Max(math.Max(c.P0.X, c.P1.X), math.Max(c.P2.X, c.P3.X))
	if pt.X > maxX {
		return 0
	}

	const tolerance = 0.1
	if cubicFlatness(c) <= tolerance {
		return lineWinding(c.P0, c.P3, pt)
	}

	c1, c2 := c.Subdivide()
	return cubicWinding(c1, pt) + cubicWinding(c2, pt)
}

// cubicFlatness returns a squared-distance flatness metric of the control
// points relative to the chord.
func cubicFlatness(c CubicBez) float64 {
	ux := 3.0*c.P1.X - 2.0*c.P0.X - c.P3.X
	uy := 3.0*c.P1.Y - 2.0*c.P0.Y - c.P3.Y
	vx := 3.0*c.P2.X - c.P0.X - 2.0*c.P3.X
	vy := 3.0*c.P2.Y - c.P0.Y - 2.0*c.P3.Y
	return math.Max(ux*ux+uy*uy, vx*vx+vy*vy)
}
