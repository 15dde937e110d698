package template

import (
	"fmt"

	"github.com/tomasdev/iconimation/geom"
	"github.com/tomasdev/iconimation/lottie"
	"github.com/tomasdev/iconimation/parts"
)

// Instantiate fills every placeholder slot with the glyph parts and
// returns a new document animated per the named variant. The parts
// must already be normalized into the template's placeholder box.
//
// Whole-glyph variants emit one group carrying every contour;
// per-part variants emit one group per part, each on its own track
// staggered so that the tracks together span the full animation
// window. A per-part variant with a single part degrades to the
// whole-glyph form.
func (t *Template) Instantiate(variant Variant, ps []parts.Part) (*lottie.Animation, error) {
	spec, ok := t.variants[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAnimation, variant)
	}
	if len(ps) == 0 {
		return nil, &Error{Reason: "no parts to place"}
	}
	doc, err := t.cloneDoc()
	if err != nil {
		return nil, err
	}

	replaced := 0
	for _, layer := range doc.Layers {
		sl, ok := layer.(*lottie.ShapeLayer)
		if !ok {
			continue
		}
		win := frameWindow{Start: sl.InPoint, End: sl.OutPoint}
		if t.window != nil {
			win = *t.window
		}
		var n int
		sl.Shapes, n = replacePlaceholders(sl.Shapes, func(ph *lottie.Group) lottie.ShapeList {
			return buildReplacement(ph, spec, win, ps)
		})
		replaced += n
	}
	if replaced == 0 {
		return nil, &Error{Reason: "no placeholder group in any shape layer"}
	}
	return doc, nil
}

// replacePlaceholders splices the built groups over every placeholder
// group, recursing into non-placeholder groups, and reports how many
// slots were filled.
func replacePlaceholders(shapes lottie.ShapeList, build func(*lottie.Group) lottie.ShapeList) (lottie.ShapeList, int) {
	out := make(lottie.ShapeList, 0, len(shapes))
	n := 0
	for _, s := range shapes {
		g, ok := s.(*lottie.Group)
		if !ok {
			out = append(out, s)
			continue
		}
		if g.Name == placeholderName {
			out = append(out, build(g)...)
			n++
			continue
		}
		var inner int
		g.Items, inner = replacePlaceholders(g.Items, build)
		n += inner
		out = append(out, g)
	}
	return out, n
}

func buildReplacement(ph *lottie.Group, spec variantSpec, win frameWindow, ps []parts.Part) lottie.ShapeList {
	fill := placeholderFill(ph)
	authored := authoredTrack(ph)

	if !spec.PerPart || len(ps) == 1 {
		box := unionBox(ps)
		g := &lottie.Group{Name: "glyph"}
		for _, p := range ps {
			g.Items = append(g.Items, pathShapes(p)...)
		}
		g.Items = append(g.Items, cloneFill(fill))
		g.Items = append(g.Items, buildTrack(spec, authored, win.Start, win.duration(), box.Center()))
		return lottie.ShapeList{g}
	}

	offsets := staggerOffsets(spec, len(ps), win.duration())
	dur := spec.Span * win.duration()
	out := make(lottie.ShapeList, 0, len(ps))
	for i, p := range ps {
		g := &lottie.Group{Name: fmt.Sprintf("part-%d", i+1)}
		g.Items = append(g.Items, pathShapes(p)...)
		g.Items = append(g.Items, cloneFill(fill))
		g.Items = append(g.Items, buildTrack(spec, authored, win.Start+offsets[i], dur, p.BoundingBox().Center()))
		out = append(out, g)
	}
	return out
}

// staggerOffsets distributes track start offsets across the window so
// the last track ends exactly at the window end regardless of the part
// count.
func staggerOffsets(spec variantSpec, k int, total float64) []float64 {
	curve := staggerCurves[spec.Curve]
	slack := total - spec.Span*total
	out := make([]float64, k)
	for i := range out {
		if k > 1 {
			out[i] = slack * curve(float64(i)/float64(k-1))
		}
	}
	return out
}

func unionBox(ps []parts.Part) geom.Rect {
	box := ps[0].BoundingBox()
	for _, p := range ps[1:] {
		box = box.Union(p.BoundingBox())
	}
	return box
}

func pathShapes(p parts.Part) lottie.ShapeList {
	out := make(lottie.ShapeList, 0, len(p.Paths))
	for i := range p.Paths {
		out = append(out, lottie.NewPathShape(&p.Paths[i]))
	}
	return out
}

// placeholderFill returns the fill the placeholder declares, or the
// default fill when it has none.
func placeholderFill(ph *lottie.Group) *lottie.Fill {
	for _, s := range ph.Items {
		if f, ok := s.(*lottie.Fill); ok {
			return f
		}
	}
	return defaultFill()
}

func cloneFill(f *lottie.Fill) *lottie.Fill {
	return &lottie.Fill{
		Name:    f.Name,
		Opacity: f.Opacity.Clone(),
		Color:   f.Color.Clone(),
	}
}

// authoredTrack returns the placeholder's own transform when it
// carries an animated rotation or scale, letting a template author
// override the synthesized track.
func authoredTrack(ph *lottie.Group) *lottie.TransformShape {
	for _, s := range ph.Items {
		tr, ok := s.(*lottie.TransformShape)
		if !ok {
			continue
		}
		if tr.Rotation.Animated() || tr.Scale.Animated() {
			return tr
		}
	}
	return nil
}

// buildTrack produces the group transform for one track: pivot at the
// anchor, with the animated channel's keyframes laid over
// [start, start+dur].
func buildTrack(spec variantSpec, authored *lottie.TransformShape, start, dur float64, anchor geom.Point) *lottie.TransformShape {
	if authored != nil {
		return retimeTrack(authored, start, dur, anchor)
	}
	tr := staticTrack(anchor)
	switch spec.Channel {
	case ChannelRotation:
		kfs := make([]lottie.Keyframe, len(spec.Times))
		for i, u := range spec.Times {
			kfs[i] = keyframeAt(start+u*dur, []float64{spec.Values[i]}, 1, i == len(spec.Times)-1)
		}
		tr.Rotation = &lottie.ScalarProperty{Keyframes: kfs}
	case ChannelScale:
		kfs := make([]lottie.Keyframe, len(spec.Times))
		for i, u := range spec.Times {
			v := spec.Values[i]
			kfs[i] = keyframeAt(start+u*dur, []float64{v, v}, 2, i == len(spec.Times)-1)
		}
		tr.Scale = &lottie.VectorProperty{Keyframes: kfs}
	}
	return tr
}

func staticTrack(anchor geom.Point) *lottie.TransformShape {
	return &lottie.TransformShape{
		Anchor:   lottie.Vector(anchor.X, anchor.Y),
		Position: lottie.Vector(anchor.X, anchor.Y),
		Scale:    lottie.Vector(100, 100),
		Rotation: lottie.Scalar(0),
		Opacity:  lottie.Scalar(100),
	}
}

func keyframeAt(t float64, values []float64, dims int, last bool) lottie.Keyframe {
	kf := lottie.Keyframe{
		Time:  lottie.Round(t),
		Start: lottie.RoundSlice(values),
	}
	if !last {
		kf.InEase = lottie.DefaultEaseIn(dims)
		kf.OutEase = lottie.DefaultEaseOut(dims)
	}
	return kf
}

// retimeTrack clones an authored transform, remaps its keyframe times
// linearly onto [start, start+dur] and repins the pivot to the anchor.
func retimeTrack(authored *lottie.TransformShape, start, dur float64, anchor geom.Point) *lottie.TransformShape {
	tr := authored.Clone()
	tr.Anchor = lottie.Vector(anchor.X, anchor.Y)
	tr.Position = lottie.Vector(anchor.X, anchor.Y)
	if tr.Rotation != nil {
		retimeKeyframes(tr.Rotation.Keyframes, start, dur)
	}
	if tr.Scale != nil {
		retimeKeyframes(tr.Scale.Keyframes, start, dur)
	}
	return tr
}

func retimeKeyframes(kfs []lottie.Keyframe, start, dur float64) {
	if len(kfs) < 2 {
		return
	}
	t0 := kfs[0].Time
	span := kfs[len(kfs)-1].Time - t0
	if span <= 0 {
		return
	}
	for i := range kfs {
		kfs[i].Time = lottie.Round(start + (kfs[i].Time-t0)/span*dur)
	}
}
