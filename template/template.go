// Package template loads animation document templates and instantiates
// them against the decomposed parts of a glyph.
//
// A template is a regular animation document where one or more shape
// groups named "placeholder" mark the slot the glyph fills. Each
// placeholder declares its target box with a rectangle shape; the fill
// and any animated transform on the placeholder carry over to the
// instantiated glyph groups. An optional YAML manifest tunes stagger
// timing and may declare additional variants as data.
package template

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tomasdev/iconimation/geom"
	"github.com/tomasdev/iconimation/lottie"
)

// ErrUnsupportedAnimation reports a variant name absent from the
// template's variant table.
var ErrUnsupportedAnimation = errors.New("unsupported animation variant")

// Error reports a structurally unusable template.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("template: %s: %v", e.Reason, e.Err)
	}
	return "template: " + e.Reason
}

func (e *Error) Unwrap() error { return e.Err }

// placeholderName marks the shape groups a template exposes as slots.
const placeholderName = "placeholder"

// Template is a validated animation document with at least one
// placeholder slot. The document is treated as immutable; every
// instantiation works on a fresh copy.
type Template struct {
	doc      *lottie.Animation
	raw      []byte
	box      geom.Rect
	variants map[Variant]variantSpec
	window   *frameWindow
}

// frameWindow is the [start, end) frame range tracks are laid into.
type frameWindow struct {
	Start float64
	End   float64
}

func (w frameWindow) duration() float64 { return w.End - w.Start }

// Load parses and validates a template document.
func Load(data []byte) (*Template, error) {
	doc, err := lottie.Parse(data)
	if err != nil {
		return nil, &Error{Reason: "invalid animation document", Err: err}
	}
	return fromDoc(doc)
}

// LoadWithManifest parses a template document and applies a YAML
// manifest that overrides stagger timing or declares extra variants.
func LoadWithManifest(data, manifest []byte) (*Template, error) {
	t, err := Load(data)
	if err != nil {
		return nil, err
	}
	if err := t.applyManifest(manifest); err != nil {
		return nil, err
	}
	return t, nil
}

// Default builds the built-in template: a single shape layer whose
// placeholder covers a square canvas of the given side, 60 frames at
// 60fps.
func Default(side int64) *Template {
	c := float64(side) / 2
	placeholder := &lottie.Group{
		Name: placeholderName,
		Items: lottie.ShapeList{
			&lottie.RectShape{
				Position: lottie.Vector(c, c),
				Size:     lottie.Vector(float64(side), float64(side)),
			},
			defaultFill(),
		},
	}
	doc := &lottie.Animation{
		Version:   "5.7.1",
		Name:      "icon",
		InPoint:   0,
		OutPoint:  60,
		FrameRate: 60,
		Width:     side,
		Height:    side,
		Layers: lottie.LayerList{
			&lottie.ShapeLayer{
				Name:     "icon",
				Index:    1,
				InPoint:  0,
				OutPoint: 60,
				Stretch:  1,
				Shapes:   lottie.ShapeList{placeholder},
			},
		},
	}
	t, err := fromDoc(doc)
	if err != nil {
		// The built-in document always validates.
		panic(err)
	}
	return t
}

func defaultFill() *lottie.Fill {
	return &lottie.Fill{
		Opacity: lottie.Scalar(100),
		Color:   lottie.Vector(0, 0, 0, 1),
	}
}

func fromDoc(doc *lottie.Animation) (*Template, error) {
	if doc.OutPoint <= doc.InPoint {
		return nil, &Error{Reason: "animation window is empty"}
	}
	if doc.FrameRate <= 0 {
		return nil, &Error{Reason: "frame rate must be positive"}
	}
	if doc.Width <= 0 || doc.Height <= 0 {
		return nil, &Error{Reason: "canvas must have positive size"}
	}
	box, err := findPlaceholderBox(doc)
	if err != nil {
		return nil, err
	}
	raw, err := lottie.Marshal(doc)
	if err != nil {
		return nil, &Error{Reason: "document does not serialize", Err: err}
	}
	variants := make(map[Variant]variantSpec, len(builtinVariants))
	for v, spec := range builtinVariants {
		variants[v] = spec
	}
	return &Template{doc: doc, raw: raw, box: box, variants: variants}, nil
}

// PlaceholderBox is the target box glyph outlines are normalized into,
// taken from the first placeholder's rectangle.
func (t *Template) PlaceholderBox() geom.Rect { return t.box }

// Canvas is the document's width and height as a rectangle at the
// origin.
func (t *Template) Canvas() geom.Rect {
	return geom.NewRect(geom.Pt(0, 0), geom.Pt(float64(t.doc.Width), float64(t.doc.Height)))
}

// Variants lists the names this template can instantiate, sorted.
func (t *Template) Variants() []Variant {
	out := make([]Variant, 0, len(t.variants))
	for v := range t.variants {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// cloneDoc round-trips the validated serialization so instantiation
// never aliases the template's own document.
func (t *Template) cloneDoc() (*lottie.Animation, error) {
	doc, err := lottie.Parse(t.raw)
	if err != nil {
		return nil, &Error{Reason: "document does not round-trip", Err: err}
	}
	return doc, nil
}

// findPlaceholderBox walks every shape layer for groups named
// "placeholder" and returns the box declared by the first one. A
// template without any placeholder, or a placeholder without a
// rectangle, is unusable.
func findPlaceholderBox(doc *lottie.Animation) (geom.Rect, error) {
	for _, layer := range doc.Layers {
		sl, ok := layer.(*lottie.ShapeLayer)
		if !ok {
			continue
		}
		if g := firstPlaceholder(sl.Shapes); g != nil {
			return placeholderBox(g)
		}
	}
	return geom.Rect{}, &Error{Reason: "no placeholder group in any shape layer"}
}

func firstPlaceholder(shapes lottie.ShapeList) *lottie.Group {
	for _, s := range shapes {
		g, ok := s.(*lottie.Group)
		if !ok {
			continue
		}
		if g.Name == placeholderName {
			return g
		}
		if inner := firstPlaceholder(g.Items); inner != nil {
			return inner
		}
	}
	return nil
}

func placeholderBox(g *lottie.Group) (geom.Rect, error) {
	for _, s := range g.Items {
		rc, ok := s.(*lottie.RectShape)
		if !ok {
			continue
		}
		pos, okP := staticVector(rc.Position, 2)
		size, okS := staticVector(rc.Size, 2)
		if !okP || !okS {
			return geom.Rect{}, &Error{Reason: "placeholder rectangle is animated"}
		}
		if size[0] <= 0 || size[1] <= 0 {
			return geom.Rect{}, &Error{Reason: "placeholder rectangle has no area"}
		}
		return geom.NewRect(
			geom.Pt(pos[0]-size[0]/2, pos[1]-size[1]/2),
			geom.Pt(pos[0]+size[0]/2, pos[1]+size[1]/2),
		), nil
	}
	return geom.Rect{}, &Error{Reason: "placeholder group has no rectangle"}
}

func staticVector(p *lottie.VectorProperty, n int) ([]float64, bool) {
	if p == nil || len(p.Keyframes) > 0 || len(p.Value) < n {
		return nil, false
	}
	return p.Value, true
}
