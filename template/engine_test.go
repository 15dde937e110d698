package template

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/tomasdev/iconimation/geom"
	"github.com/tomasdev/iconimation/lottie"
	"github.com/tomasdev/iconimation/parts"
)

// testParts builds k disjoint square parts laid out on a diagonal.
func testParts(t *testing.T, k int) []parts.Part {
	t.Helper()
	out := make([]parts.Part, 0, k)
	for i := 0; i < k; i++ {
		o := float64(i) * 20
		p := geom.NewPath()
		p.MoveTo(o, o)
		p.LineTo(o+10, o)
		p.LineTo(o+10, o+10)
		p.LineTo(o, o+10)
		p.Close()
		out = append(out, parts.Part{Paths: []geom.Path{*p}})
	}
	return out
}

func shapeLayer(t *testing.T, doc *lottie.Animation) *lottie.ShapeLayer {
	t.Helper()
	for _, l := range doc.Layers {
		if sl, ok := l.(*lottie.ShapeLayer); ok {
			return sl
		}
	}
	t.Fatal("no shape layer in document")
	return nil
}

func groupTransform(t *testing.T, g *lottie.Group) *lottie.TransformShape {
	t.Helper()
	for _, s := range g.Items {
		if tr, ok := s.(*lottie.TransformShape); ok {
			return tr
		}
	}
	t.Fatalf("group %q has no transform", g.Name)
	return nil
}

func TestInstantiateUnknownVariant(t *testing.T) {
	_, err := Default(100).Instantiate(Variant("wobble"), testParts(t, 1))
	if !errors.Is(err, ErrUnsupportedAnimation) {
		t.Errorf("got %v, want ErrUnsupportedAnimation", err)
	}
}

func TestInstantiateNoParts(t *testing.T) {
	_, err := Default(100).Instantiate(Still, nil)
	var te *Error
	if !errors.As(err, &te) {
		t.Errorf("got %v, want *template.Error", err)
	}
}

func TestInstantiateStillIsStatic(t *testing.T) {
	doc, err := Default(100).Instantiate(Still, testParts(t, 2))
	if err != nil {
		t.Fatal(err)
	}
	sl := shapeLayer(t, doc)
	groups := findGroups(sl.Shapes)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1 whole-glyph group", len(groups))
	}
	if groups[0].Name != "glyph" {
		t.Errorf("group name %q, want glyph", groups[0].Name)
	}
	tr := groupTransform(t, groups[0])
	if tr.Rotation.Animated() || tr.Scale.Animated() {
		t.Error("still variant produced animated transform channels")
	}
}

func TestInstantiateRemovesPlaceholders(t *testing.T) {
	doc, err := Default(100).Instantiate(PulseParts, testParts(t, 3))
	if err != nil {
		t.Fatal(err)
	}
	for _, g := range findGroups(shapeLayer(t, doc).Shapes) {
		if g.Name == placeholderName {
			t.Fatal("placeholder group survived instantiation")
		}
	}
}

func TestInstantiateTwirlWhole(t *testing.T) {
	doc, err := Default(100).Instantiate(TwirlWhole, testParts(t, 3))
	if err != nil {
		t.Fatal(err)
	}
	groups := findGroups(shapeLayer(t, doc).Shapes)
	if len(groups) != 1 {
		t.Fatalf("whole variant produced %d groups, want 1", len(groups))
	}
	tr := groupTransform(t, groups[0])
	kfs := tr.Rotation.Keyframes
	if len(kfs) != 2 {
		t.Fatalf("got %d rotation keyframes, want 2", len(kfs))
	}
	if kfs[0].Time != 0 || kfs[0].Start[0] != 0 {
		t.Errorf("first keyframe = %+v, want t=0 s=0", kfs[0])
	}
	if kfs[1].Time != 60 || kfs[1].Start[0] != 360 {
		t.Errorf("last keyframe = %+v, want t=60 s=360", kfs[1])
	}
	if kfs[0].OutEase == nil || kfs[0].InEase == nil {
		t.Error("interior keyframe missing ease handles")
	}
	if kfs[1].OutEase != nil {
		t.Error("final keyframe carries an outgoing ease")
	}
}

func TestInstantiatePulsePartsStagger(t *testing.T) {
	k := 3
	doc, err := Default(100).Instantiate(PulseParts, testParts(t, k))
	if err != nil {
		t.Fatal(err)
	}
	groups := findGroups(shapeLayer(t, doc).Shapes)
	if len(groups) != k {
		t.Fatalf("got %d groups, want %d", len(groups), k)
	}

	// Window 0..60, span 0.5: each track lasts 30 frames, offsets
	// spread over the remaining 30 so the last track ends at 60.
	wantStarts := []float64{0, 15, 30}
	for i, g := range groups {
		if g.Name != fmt.Sprintf("part-%d", i+1) {
			t.Errorf("group %d name %q", i, g.Name)
		}
		kfs := groupTransform(t, g).Scale.Keyframes
		if len(kfs) != 3 {
			t.Fatalf("part %d: %d scale keyframes, want 3", i, len(kfs))
		}
		if kfs[0].Time != wantStarts[i] {
			t.Errorf("part %d starts at %v, want %v", i, kfs[0].Time, wantStarts[i])
		}
		if kfs[2].Time != wantStarts[i]+30 {
			t.Errorf("part %d ends at %v, want %v", i, kfs[2].Time, wantStarts[i]+30)
		}
		// 100 -> 150 -> 100, uniform on both axes.
		if kfs[1].Start[0] != 150 || kfs[1].Start[1] != 150 {
			t.Errorf("part %d peak = %v, want [150 150]", i, kfs[1].Start)
		}
		if kfs[0].Start[0] != 100 || kfs[2].Start[0] != 100 {
			t.Errorf("part %d endpoints not at rest scale", i)
		}
	}

	// The last track must end exactly at the window end.
	last := groupTransform(t, groups[k-1]).Scale.Keyframes
	if got := last[len(last)-1].Time; got != 60 {
		t.Errorf("final keyframe at %v, want 60", got)
	}
}

func TestInstantiatePartCountInvariance(t *testing.T) {
	// Every part count spans the same total window.
	for _, k := range []int{2, 5, 12} {
		doc, err := Default(100).Instantiate(TwirlParts, testParts(t, k))
		if err != nil {
			t.Fatalf("k=%d: %v", k, err)
		}
		groups := findGroups(shapeLayer(t, doc).Shapes)
		if len(groups) != k {
			t.Fatalf("k=%d: got %d groups", k, len(groups))
		}
		first := groupTransform(t, groups[0]).Rotation.Keyframes
		last := groupTransform(t, groups[k-1]).Rotation.Keyframes
		if first[0].Time != 0 {
			t.Errorf("k=%d: first track starts at %v", k, first[0].Time)
		}
		if got := last[len(last)-1].Time; got != 60 {
			t.Errorf("k=%d: last track ends at %v, want 60", k, got)
		}
	}
}

func TestInstantiateSinglePartDegradesToWhole(t *testing.T) {
	tpl := Default(100)
	ps := testParts(t, 1)

	partsDoc, err := tpl.Instantiate(PulseParts, ps)
	if err != nil {
		t.Fatal(err)
	}
	wholeDoc, err := tpl.Instantiate(PulseWhole, ps)
	if err != nil {
		t.Fatal(err)
	}

	a, err := lottie.Marshal(partsDoc)
	if err != nil {
		t.Fatal(err)
	}
	b, err := lottie.Marshal(wholeDoc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("single-part per-part animation differs from the whole-glyph form")
	}
}

func TestInstantiateAnchorsAtPartCenter(t *testing.T) {
	ps := testParts(t, 2)
	doc, err := Default(100).Instantiate(TwirlParts, ps)
	if err != nil {
		t.Fatal(err)
	}
	groups := findGroups(shapeLayer(t, doc).Shapes)
	for i, g := range groups {
		c := ps[i].BoundingBox().Center()
		tr := groupTransform(t, g)
		if tr.Anchor.Value[0] != c.X || tr.Anchor.Value[1] != c.Y {
			t.Errorf("part %d anchor %v, want %v", i, tr.Anchor.Value, c)
		}
		if tr.Position.Value[0] != c.X || tr.Position.Value[1] != c.Y {
			t.Errorf("part %d position %v, want anchor match", i, tr.Position.Value)
		}
	}
}

func TestInstantiateClonesPlaceholderFill(t *testing.T) {
	doc := `{"ip":0,"op":60,"fr":60,"w":100,"h":100,"layers":[
		{"ty":4,"ip":0,"op":60,"st":0,"shapes":[
			{"ty":"gr","nm":"placeholder","it":[
				{"ty":"rc","p":{"a":0,"k":[50,50]},"s":{"a":0,"k":[100,100]}},
				{"ty":"fl","o":{"a":0,"k":80},"c":{"a":0,"k":[1,0,0,1]}}]}]}]}`
	tpl, err := Load([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	out, err := tpl.Instantiate(TwirlParts, testParts(t, 2))
	if err != nil {
		t.Fatal(err)
	}
	groups := findGroups(shapeLayer(t, out).Shapes)
	if len(groups) != 2 {
		t.Fatalf("got %d groups", len(groups))
	}
	var fills []*lottie.Fill
	for _, g := range groups {
		for _, s := range g.Items {
			if f, ok := s.(*lottie.Fill); ok {
				fills = append(fills, f)
			}
		}
	}
	if len(fills) != 2 {
		t.Fatalf("got %d fills, want one per part", len(fills))
	}
	for i, f := range fills {
		if f.Opacity.Value != 80 || f.Color.Value[0] != 1 {
			t.Errorf("fill %d = o:%v c:%v, want the placeholder fill", i, f.Opacity.Value, f.Color.Value)
		}
	}
	if fills[0] == fills[1] {
		t.Error("part groups share one fill instance")
	}
}

func TestInstantiateAuthoredTrackRetimed(t *testing.T) {
	// The placeholder carries its own animated rotation; per-part
	// instantiation remaps it onto each staggered track window.
	doc := `{"ip":0,"op":60,"fr":60,"w":100,"h":100,"layers":[
		{"ty":4,"ip":0,"op":60,"st":0,"shapes":[
			{"ty":"gr","nm":"placeholder","it":[
				{"ty":"rc","p":{"a":0,"k":[50,50]},"s":{"a":0,"k":[100,100]}},
				{"ty":"tr","r":{"a":1,"k":[{"t":0,"s":[0]},{"t":10,"s":[-90]}]}}]}]}]}`
	tpl, err := Load([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	out, err := tpl.Instantiate(TwirlParts, testParts(t, 2))
	if err != nil {
		t.Fatal(err)
	}
	groups := findGroups(shapeLayer(t, out).Shapes)

	// Span 0.5 of a 60 frame window: tracks are [0,30] and [30,60].
	first := groupTransform(t, groups[0]).Rotation.Keyframes
	if first[0].Time != 0 || first[1].Time != 30 {
		t.Errorf("first track times = %v, %v; want 0, 30", first[0].Time, first[1].Time)
	}
	if first[1].Start[0] != -90 {
		t.Errorf("authored value lost: %v", first[1].Start)
	}
	second := groupTransform(t, groups[1]).Rotation.Keyframes
	if second[0].Time != 30 || second[1].Time != 60 {
		t.Errorf("second track times = %v, %v; want 30, 60", second[0].Time, second[1].Time)
	}
}

func TestStaggerOffsets(t *testing.T) {
	spec := variantSpec{Span: 0.5, Curve: curveLinear}

	tests := []struct {
		k    int
		want []float64
	}{
		{1, []float64{0}},
		{2, []float64{0, 30}},
		{5, []float64{0, 7.5, 15, 22.5, 30}},
	}
	for _, tt := range tests {
		got := staggerOffsets(spec, tt.k, 60)
		if len(got) != len(tt.want) {
			t.Fatalf("k=%d: got %v", tt.k, got)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("k=%d offset %d = %v, want %v", tt.k, i, got[i], tt.want[i])
			}
		}
	}
}

func TestStaggerCurves(t *testing.T) {
	for name, f := range staggerCurves {
		if got := f(0); got != 0 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := f(1); got != 1 {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
	}
	if staggerCurves[curveEaseIn](0.5) >= 0.5 {
		t.Error("ease-in should lag the linear curve")
	}
	if staggerCurves[curveEaseOut](0.5) <= 0.5 {
		t.Error("ease-out should lead the linear curve")
	}
}
