package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func pointsAlmostEqual(a, b Point) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y)
}

func rectsAlmostEqual(a, b Rect) bool {
	return pointsAlmostEqual(a.Min, b.Min) && pointsAlmostEqual(a.Max, b.Max)
}

func TestQuadBezEval(t *testing.T) {
	q := QuadBez{P0: Pt(0, 0), P1: Pt(1, 2), P2: Pt(2, 0)}

	tests := []struct {
		name string
		t    float64
		want Point
	}{
		{"start", 0, Pt(0, 0)},
		{"mid", 0.5, Pt(1, 1)},
		{"end", 1, Pt(2, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := q.Eval(tt.t)
			if !pointsAlmostEqual(got, tt.want) {
				t.Errorf("Eval(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestQuadBezBoundingBox(t *testing.T) {
	// Apex of the parabola at t=0.5, y=1.
	q := QuadBez{P0: Pt(0, 0), P1: Pt(1, 2), P2: Pt(2, 0)}
	want := Rect{Min: Pt(0, 0), Max: Pt(2, 1)}
	if got := q.BoundingBox(); !rectsAlmostEqual(got, want) {
		t.Errorf("BoundingBox() = %v, want %v", got, want)
	}
}

func TestQuadBezRaise(t *testing.T) {
	q := QuadBez{P0: Pt(0, 0), P1: Pt(3, 6), P2: Pt(6, 0)}
	c := q.Raise()

	if !pointsAlmostEqual(c.P0, q.P0) || !pointsAlmostEqual(c.P3, q.P2) {
		t.Fatalf("Raise() moved endpoints: %v, %v", c.P0, c.P3)
	}
	// The elevated cubic must trace the same curve.
	for _, u := range []float64{0.1, 0.25, 0.5, 0.75, 0.9} {
		if !pointsAlmostEqual(q.Eval(u), c.Eval(u)) {
			t.Errorf("at t=%v: quad %v != cubic %v", u, q.Eval(u), c.Eval(u))
		}
	}
}

func TestQuadBezSubdivide(t *testing.T) {
	q := QuadBez{P0: Pt(0, 0), P1: Pt(1, 2), P2: Pt(2, 0)}
	left, right := q.Subdivide()

	if !pointsAlmostEqual(left.P0, q.P0) {
		t.Errorf("left start %v, want %v", left.P0, q.P0)
	}
	if !pointsAlmostEqual(right.P2, q.P2) {
		t.Errorf("right end %v, want %v", right.P2, q.P2)
	}
	if !pointsAlmostEqual(left.P2, right.P0) {
		t.Errorf("halves not joined: %v vs %v", left.P2, right.P0)
	}
	if !pointsAlmostEqual(left.Eval(1), q.Eval(0.5)) {
		t.Errorf("split point %v, want %v", left.Eval(1), q.Eval(0.5))
	}
}

func TestCubicBezEval(t *testing.T) {
	c := CubicBez{P0: Pt(0, 0), P1: Pt(0, 2), P2: Pt(2, 2), P3: Pt(2, 0)}

	if got := c.Eval(0); !pointsAlmostEqual(got, Pt(0, 0)) {
		t.Errorf("Eval(0) = %v", got)
	}
	if got := c.Eval(1); !pointsAlmostEqual(got, Pt(2, 0)) {
		t.Errorf("Eval(1) = %v", got)
	}
	if got := c.Eval(0.5); !pointsAlmostEqual(got, Pt(1, 1.5)) {
		t.Errorf("Eval(0.5) = %v, want (1, 1.5)", got)
	}
}

func TestCubicBezBoundingBox(t *testing.T) {
	tests := []struct {
		name string
		c    CubicBez
		want Rect
	}{
		{
			name: "arch",
			c:    CubicBez{P0: Pt(0, 0), P1: Pt(0, 2), P2: Pt(2, 2), P3: Pt(2, 0)},
			want: Rect{Min: Pt(0, 0), Max: Pt(2, 1.5)},
		},
		{
			name: "straight line",
			c:    CubicBez{P0: Pt(0, 0), P1: Pt(1, 1), P2: Pt(2, 2), P3: Pt(3, 3)},
			want: Rect{Min: Pt(0, 0), Max: Pt(3, 3)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.BoundingBox(); !rectsAlmostEqual(got, tt.want) {
				t.Errorf("BoundingBox() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCubicBezSubdivide(t *testing.T) {
	c := CubicBez{P0: Pt(0, 0), P1: Pt(0, 2), P2: Pt(2, 2), P3: Pt(2, 0)}
	left, right := c.Subdivide()

	if !pointsAlmostEqual(left.P3, right.P0) {
		t.Fatalf("halves not joined: %v vs %v", left.P3, right.P0)
	}
	// Both halves must stay on the original curve.
	for _, u := range []float64{0.25, 0.5, 0.75} {
		if !pointsAlmostEqual(left.Eval(u), c.Eval(u/2)) {
			t.Errorf("left half diverges at t=%v", u)
		}
		if !pointsAlmostEqual(right.Eval(u), c.Eval(0.5+u/2)) {
			t.Errorf("right half diverges at t=%v", u)
		}
	}
}

func TestSolveQuadraticInUnitInterval(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		want    []float64
	}{
		{"no real roots", 1, 0, 1, nil},
		{"roots outside", 1, -4, 3, nil},             // 1 and 3; 1 is excluded (not strict interior)
		{"one inside", 2, -1, 0, []float64{0.5}},     // 0 and 0.5
		{"linear", 0, 2, -1, []float64{0.5}},         // degenerate
		{"both inside", 8, -6, 1, []float64{0.25, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := solveQuadraticInUnitInterval(tt.a, tt.b, tt.c)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			// Roots may come back in either order.
			for _, w := range tt.want {
				found := false
				for _, g := range got {
					if almostEqual(g, w) {
						found = true
					}
				}
				if !found {
					t.Errorf("missing root %v in %v", w, got)
				}
			}
		})
	}
}
