package geom

import "testing"

func TestMatrixIdentity(t *testing.T) {
	p := Pt(3, -7)
	if got := Identity().TransformPoint(p); !pointsAlmostEqual(got, p) {
		t.Errorf("Identity().TransformPoint(%v) = %v", p, got)
	}
}

func TestMatrixMultiplyOrder(t *testing.T) {
	// m.Multiply(other) applies other first.
	m := Translate(10, 0).Multiply(Scale(2, 2))
	got := m.TransformPoint(Pt(1, 1))
	want := Pt(12, 2)
	if !pointsAlmostEqual(got, want) {
		t.Errorf("scale-then-translate(1,1) = %v, want %v", got, want)
	}

	m = Scale(2, 2).Multiply(Translate(10, 0))
	got = m.TransformPoint(Pt(1, 1))
	want = Pt(22, 2)
	if !pointsAlmostEqual(got, want) {
		t.Errorf("translate-then-scale(1,1) = %v, want %v", got, want)
	}
}

func TestMatrixDeterminant(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want float64
	}{
		{"identity", Identity(), 1},
		{"uniform scale", Scale(3, 3), 9},
		{"y flip", Scale(1, -1), -1},
		{"translation only", Translate(5, 9), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Determinant(); !almostEqual(got, tt.want) {
				t.Errorf("Determinant() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatrixTransformRect(t *testing.T) {
	r := Rect{Min: Pt(0, 0), Max: Pt(2, 3)}

	// A flip moves Min and Max but the box must stay normalized.
	m := Scale(1, -1)
	got := m.TransformRect(r)
	want := Rect{Min: Pt(0, -3), Max: Pt(2, 0)}
	if !rectsAlmostEqual(got, want) {
		t.Errorf("TransformRect() = %v, want %v", got, want)
	}
}
