package lottie

import (
	"testing"

	"github.com/tomasdev/iconimation/geom"
)

func TestNewPathShapeSquare(t *testing.T) {
	p := geom.NewPath()
	p.MoveTo(0, 0)
	p.LineTo(3, 0)
	p.LineTo(3, 3)
	p.LineTo(0, 3)
	p.Close()

	v := NewPathShape(p).Vertices.Value
	if v == nil {
		t.Fatal("no static shape value")
	}
	if !v.Closed {
		t.Error("square not closed")
	}
	if len(v.Vertices) != 4 {
		t.Fatalf("got %d vertices, want 4", len(v.Vertices))
	}
	want := [][]float64{{0, 0}, {3, 0}, {3, 3}, {0, 3}}
	for i := range want {
		if v.Vertices[i][0] != want[i][0] || v.Vertices[i][1] != want[i][1] {
			t.Errorf("vertex %d = %v, want %v", i, v.Vertices[i], want[i])
		}
	}
	// Straight edges carry zero handles.
	for i := range v.Vertices {
		if v.In[i][0] != 0 || v.In[i][1] != 0 || v.Out[i][0] != 0 || v.Out[i][1] != 0 {
			t.Errorf("vertex %d has non-zero handles: in %v out %v", i, v.In[i], v.Out[i])
		}
	}
}

func TestNewPathShapeRelativeHandles(t *testing.T) {
	// One cubic from (0,0) to (3,0) with handles pulled upward.
	p := geom.NewPath()
	p.MoveTo(0, 0)
	p.CubicTo(1, 2, 2, 2, 3, 0)
	p.LineTo(0, 0)
	p.Close()

	v := NewPathShape(p).Vertices.Value
	// The closing line returns to the start, so the duplicate end vertex
	// is folded away.
	if len(v.Vertices) != 2 {
		t.Fatalf("got %d vertices, want 2", len(v.Vertices))
	}
	// Out handle of vertex 0 is the first control point relative to it.
	if v.Out[0][0] != 1 || v.Out[0][1] != 2 {
		t.Errorf("out[0] = %v, want [1 2]", v.Out[0])
	}
	// In handle of vertex 1 is the second control point relative to it.
	if v.In[1][0] != -1 || v.In[1][1] != 2 {
		t.Errorf("in[1] = %v, want [-1 2]", v.In[1])
	}
}

func TestNewPathShapeFoldsClosingVertex(t *testing.T) {
	// Explicit final segment back to the start point.
	p := geom.NewPath()
	p.MoveTo(0, 0)
	p.LineTo(4, 0)
	p.LineTo(4, 4)
	p.LineTo(0, 4)
	p.LineTo(0, 0)
	p.Close()

	v := NewPathShape(p).Vertices.Value
	if len(v.Vertices) != 4 {
		t.Errorf("got %d vertices, want 4 after folding the closing point", len(v.Vertices))
	}
}

func TestNewPathShapeRoundsCoordinates(t *testing.T) {
	p := geom.NewPath()
	p.MoveTo(0.123456, 0)
	p.LineTo(1, 1)
	p.Close()

	v := NewPathShape(p).Vertices.Value
	if v.Vertices[0][0] != 0.123 {
		t.Errorf("vertex not rounded: %v", v.Vertices[0])
	}
}
