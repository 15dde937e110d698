package iconimation

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tomasdev/iconimation/geom"
	"github.com/tomasdev/iconimation/internal/fonttest"
	"github.com/tomasdev/iconimation/lottie"
	"github.com/tomasdev/iconimation/template"
)

func TestConvertProducesValidDocument(t *testing.T) {
	out, err := Convert(fonttest.Build(), fonttest.CPSquare, Still)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := lottie.Parse(out)
	if err != nil {
		t.Fatalf("output does not parse: %v", err)
	}
	if doc.Width != DefaultCanvasSize || doc.Height != DefaultCanvasSize {
		t.Errorf("canvas %dx%d, want %d square", doc.Width, doc.Height, DefaultCanvasSize)
	}
	if len(doc.Layers) != 1 {
		t.Errorf("got %d layers, want 1", len(doc.Layers))
	}
	if !strings.Contains(string(out), `"glyph"`) {
		t.Error("output missing the glyph group")
	}
	if strings.Contains(string(out), `"placeholder"`) {
		t.Error("placeholder survived conversion")
	}
}

func TestConvertIsDeterministic(t *testing.T) {
	font := fonttest.Build()
	a, err := Convert(font, fonttest.CPRing, PulseParts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Convert(font, fonttest.CPRing, PulseParts)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("same inputs produced different documents")
	}
}

func TestConvertErrors(t *testing.T) {
	font := fonttest.Build()
	tests := []struct {
		name    string
		cp      rune
		variant Variant
		want    error
	}{
		{"unmapped codepoint", 'z', Still, ErrGlyphNotFound},
		{"empty glyph", fonttest.CPSpace, Still, ErrEmptyOutline},
		{"cyclic composite", fonttest.CPCyclic, Still, ErrCompositeTooDeep},
		{"unknown variant", fonttest.CPSquare, Variant("wobble"), ErrUnsupportedAnimation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert(font, tt.cp, tt.variant)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestConvertRejectsGarbageFont(t *testing.T) {
	_, err := Convert([]byte("not a font"), 'A', Still)
	var fe *FontError
	if !errors.As(err, &fe) {
		t.Errorf("got %v, want *FontError", err)
	}
}

func countPartGroups(t *testing.T, out []byte) int {
	t.Helper()
	doc, err := lottie.Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for _, l := range doc.Layers {
		sl, ok := l.(*lottie.ShapeLayer)
		if !ok {
			continue
		}
		for _, s := range sl.Shapes {
			if g, ok := s.(*lottie.Group); ok && strings.HasPrefix(g.Name, "part-") {
				n++
			}
		}
	}
	return n
}

func TestConvertPerPartGroups(t *testing.T) {
	font := fonttest.Build()

	tests := []struct {
		name string
		cp   rune
		want int
	}{
		{"bars split in two", fonttest.CPBars, 2},
		{"five squares", fonttest.CPFive, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Convert(font, tt.cp, PulseParts)
			if err != nil {
				t.Fatal(err)
			}
			if got := countPartGroups(t, out); got != tt.want {
				t.Errorf("got %d part groups, want %d", got, tt.want)
			}
		})
	}
}

func TestConvertRingIsSinglePart(t *testing.T) {
	// The ring's hole belongs to its outer contour, so per-part pulse
	// degrades to the whole-glyph animation.
	font := fonttest.Build()
	partsOut, err := Convert(font, fonttest.CPRing, PulseParts)
	if err != nil {
		t.Fatal(err)
	}
	if got := countPartGroups(t, partsOut); got != 0 {
		t.Errorf("got %d part groups, want a single whole-glyph group", got)
	}
	wholeOut, err := Convert(font, fonttest.CPRing, PulseWhole)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(partsOut, wholeOut) {
		t.Error("single-part pulse differs from whole-glyph pulse")
	}
}

func TestOutlineNormalization(t *testing.T) {
	// The square glyph spans 100..700 in a 1000 upem grid. On the
	// default 960 canvas the scale is 0.96 with a single Y flip:
	// x in [96, 672], y in [960-672, 960-96].
	paths, canvas, err := Outline(fonttest.Build(), fonttest.CPSquare)
	if err != nil {
		t.Fatal(err)
	}
	if canvas.Width() != DefaultCanvasSize {
		t.Errorf("canvas = %v", canvas)
	}
	if len(paths) != 1 {
		t.Fatalf("got %d contours", len(paths))
	}
	box := paths[0].BoundingBox()
	const tol = 1e-6
	check := func(name string, got, want float64) {
		if got < want-tol || got > want+tol {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
	check("min x", box.Min.X, 96)
	check("max x", box.Max.X, 672)
	check("min y", box.Min.Y, 288)
	check("max y", box.Max.Y, 864)
}

func TestNormalizeStaysInTargetAcrossUpem(t *testing.T) {
	// A contour spanning the full em square must land inside the target
	// box at any units-per-em.
	target := geom.NewRect(geom.Pt(0, 0), geom.Pt(960, 960))
	for _, upem := range []float64{256, 1000, 2048} {
		square := geom.NewPath()
		square.MoveTo(0, 0)
		square.LineTo(upem, 0)
		square.LineTo(upem, upem)
		square.LineTo(0, upem)
		square.Close()

		out := normalize([]geom.Path{*square}, upem, target)
		if len(out) != 1 {
			t.Fatalf("upem %v: got %d contours", upem, len(out))
		}
		box := out[0].BoundingBox()
		const tol = 1e-6
		if box.Min.X < target.Min.X-tol || box.Min.Y < target.Min.Y-tol ||
			box.Max.X > target.Max.X+tol || box.Max.Y > target.Max.Y+tol {
			t.Errorf("upem %v: normalized box %v escapes target %v", upem, box, target)
		}
		if got, want := box.Width(), target.Width(); got < want-tol || got > want+tol {
			t.Errorf("upem %v: em square width %v, want %v", upem, got, want)
		}
	}
}

func TestOutlineContoursAreCubic(t *testing.T) {
	paths, _, err := Outline(fonttest.Build(), fonttest.CPRing)
	if err != nil {
		t.Fatal(err)
	}
	for i := range paths {
		for _, el := range paths[i].Elements() {
			if _, ok := el.(geom.QuadTo); ok {
				t.Errorf("contour %d still has a quadratic", i)
			}
		}
	}
}

func TestConvertWithCustomTemplate(t *testing.T) {
	tplDoc := `{"ip":0,"op":120,"fr":30,"w":500,"h":500,"layers":[
		{"ty":4,"ip":0,"op":120,"st":0,"shapes":[
			{"ty":"gr","nm":"placeholder","it":[
				{"ty":"rc","p":{"a":0,"k":[250,250]},"s":{"a":0,"k":[400,400]}},
				{"ty":"fl","o":{"a":0,"k":100},"c":{"a":0,"k":[0,0.5,1,1]}}]}]}]}`
	tpl, err := template.Load([]byte(tplDoc))
	if err != nil {
		t.Fatal(err)
	}
	out, err := Convert(fonttest.Build(), fonttest.CPSquare, TwirlWhole, WithTemplate(tpl))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := lottie.Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Width != 500 {
		t.Errorf("canvas width %d, want the template's 500", doc.Width)
	}
	if !strings.Contains(string(out), "0.5") {
		t.Error("template fill color not carried over")
	}
}
