// Package iconimation converts a single font glyph into an animated
// vector document in Lottie JSON form.
//
// The pipeline reads the glyph outline from the font, normalizes it
// into a template's placeholder box, decomposes it into visually
// distinct parts, and instantiates the template with the requested
// animation variant. The same inputs always produce byte-identical
// output.
package iconimation

import (
	"fmt"

	"github.com/tomasdev/iconimation/fontio"
	"github.com/tomasdev/iconimation/geom"
	"github.com/tomasdev/iconimation/lottie"
	"github.com/tomasdev/iconimation/parts"
	"github.com/tomasdev/iconimation/template"
)

// DefaultCanvasSize is the side of the built-in template's square
// canvas, in document units.
const DefaultCanvasSize = 960

// Variant names an animation behavior. See the template package for
// the built-in table.
type Variant = template.Variant

// Built-in variants.
const (
	Still      = template.Still
	TwirlWhole = template.TwirlWhole
	TwirlParts = template.TwirlParts
	PulseWhole = template.PulseWhole
	PulseParts = template.PulseParts
)

// Convert renders the glyph for codepoint from the font into an
// animated document and returns its serialized JSON.
//
// The font may be a TrueType/OpenType font or collection. Errors
// match the package sentinels: ErrGlyphNotFound when the font has no
// glyph for the codepoint, ErrEmptyOutline when the glyph draws
// nothing, ErrUnsupportedAnimation for a variant outside the
// template's table.
func Convert(fontData []byte, codepoint rune, variant Variant, opts ...Option) ([]byte, error) {
	doc, err := ConvertDocument(fontData, codepoint, variant, opts...)
	if err != nil {
		return nil, err
	}
	return lottie.Marshal(doc)
}

// ConvertDocument is Convert without the final serialization, for
// callers that post-process the document model.
func ConvertDocument(fontData []byte, codepoint rune, variant Variant, opts ...Option) (*lottie.Animation, error) {
	o := defaultConvertOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := Logger()

	var fontOpts []fontio.Option
	if o.fontIndex > 0 {
		fontOpts = append(fontOpts, fontio.WithIndex(o.fontIndex))
	}
	if len(o.variations) > 0 {
		fontOpts = append(fontOpts, fontio.WithVariations(o.variations...))
	}
	f, err := fontio.Load(fontData, fontOpts...)
	if err != nil {
		return nil, err
	}

	gid, err := f.Glyph(codepoint)
	if err != nil {
		return nil, fmt.Errorf("codepoint %#x: %w", codepoint, err)
	}
	contours, err := f.Outline(gid)
	if err != nil {
		return nil, fmt.Errorf("codepoint %#x: %w", codepoint, err)
	}
	log.Debug("glyph resolved",
		"codepoint", fmt.Sprintf("%#x", codepoint),
		"glyph", gid,
		"contours", len(contours))

	tpl := o.template
	if tpl == nil {
		tpl = template.Default(DefaultCanvasSize)
	}

	normalized := normalize(contours, f.UnitsPerEm(), tpl.PlaceholderBox())
	ps := parts.Decompose(normalized)
	log.Debug("glyph decomposed", "parts", len(ps))

	doc, err := tpl.Instantiate(variant, ps)
	if err != nil {
		return nil, err
	}
	log.Info("document built",
		"variant", string(variant),
		"parts", len(ps),
		"layers", len(doc.Layers))
	return doc, nil
}

// Outline returns the glyph's contours normalized into the template's
// placeholder box, together with the template canvas. It exposes the
// pipeline's intermediate geometry for inspection and debug rendering.
func Outline(fontData []byte, codepoint rune, opts ...Option) ([]geom.Path, geom.Rect, error) {
	o := defaultConvertOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var fontOpts []fontio.Option
	if o.fontIndex > 0 {
		fontOpts = append(fontOpts, fontio.WithIndex(o.fontIndex))
	}
	if len(o.variations) > 0 {
		fontOpts = append(fontOpts, fontio.WithVariations(o.variations...))
	}
	f, err := fontio.Load(fontData, fontOpts...)
	if err != nil {
		return nil, geom.Rect{}, err
	}
	gid, err := f.Glyph(codepoint)
	if err != nil {
		return nil, geom.Rect{}, fmt.Errorf("codepoint %#x: %w", codepoint, err)
	}
	contours, err := f.Outline(gid)
	if err != nil {
		return nil, geom.Rect{}, fmt.Errorf("codepoint %#x: %w", codepoint, err)
	}

	tpl := o.template
	if tpl == nil {
		tpl = template.Default(DefaultCanvasSize)
	}
	return normalize(contours, f.UnitsPerEm(), tpl.PlaceholderBox()), tpl.Canvas(), nil
}
