package preview

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/tomasdev/iconimation/geom"
)

func squarePath(x0, y0, x1, y1 float64) geom.Path {
	p := geom.NewPath()
	p.MoveTo(x0, y0)
	p.LineTo(x1, y0)
	p.LineTo(x1, y1)
	p.LineTo(x0, y1)
	p.Close()
	return *p
}

func TestSVG(t *testing.T) {
	canvas := geom.NewRect(geom.Pt(0, 0), geom.Pt(100, 100))
	out := SVG([]geom.Path{squarePath(25, 25, 75, 75)}, canvas)
	s := string(out)

	for _, want := range []string{
		`viewBox="0 0 100 100"`,
		`fill-rule="nonzero"`,
		"M25 25",
		"L75 25",
		"Z",
		"</svg>",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("SVG output missing %q:\n%s", want, s)
		}
	}
}

func TestSVGCurves(t *testing.T) {
	p := geom.NewPath()
	p.MoveTo(0, 0)
	p.QuadraticTo(5, 10, 10, 0)
	p.CubicTo(12, 5, 18, 5, 20, 0)
	p.Close()

	out := string(SVG([]geom.Path{*p}, geom.NewRect(geom.Pt(0, 0), geom.Pt(20, 10))))
	if !strings.Contains(out, "Q5 10 10 0") {
		t.Errorf("missing quadratic segment:\n%s", out)
	}
	if !strings.Contains(out, "C12 5 18 5 20 0") {
		t.Errorf("missing cubic segment:\n%s", out)
	}
}

func TestCoord(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{96, "96"},
		{1.5, "1.5"},
		{0.1234, "0.123"},
		{-0.0001, "0"},
		{-3.25, "-3.25"},
	}
	for _, tt := range tests {
		if got := coord(tt.v); got != tt.want {
			t.Errorf("coord(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestPNG(t *testing.T) {
	canvas := geom.NewRect(geom.Pt(0, 0), geom.Pt(100, 100))
	out, err := PNG([]geom.Path{squarePath(25, 25, 75, 75)}, canvas)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output does not decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Fatalf("image is %dx%d, want 100x100", b.Dx(), b.Dy())
	}

	if r, g, bl, _ := img.At(50, 50).RGBA(); r != 0 || g != 0 || bl != 0 {
		t.Errorf("center pixel = (%d,%d,%d), want black", r, g, bl)
	}
	if r, _, _, _ := img.At(5, 5).RGBA(); r != 0xffff {
		t.Errorf("corner pixel red = %d, want white", r)
	}
}

func TestPNGRejectsEmptyCanvas(t *testing.T) {
	if _, err := PNG(nil, geom.Rect{}); err == nil {
		t.Error("zero-area canvas accepted")
	}
}
