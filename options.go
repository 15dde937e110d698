package iconimation

import (
	"github.com/tomasdev/iconimation/fontio"
	"github.com/tomasdev/iconimation/template"
)

// Option configures a conversion.
//
// Example:
//
//	// Default template on a 960x960 canvas:
//	doc, err := iconimation.Convert(fontData, 0xE86C, iconimation.PulseParts)
//
//	// Custom template and a variable-font axis position:
//	doc, err := iconimation.Convert(fontData, 'A', iconimation.TwirlWhole,
//	    iconimation.WithTemplate(tpl),
//	    iconimation.WithVariations(fontio.Variation{Tag: "wght", Value: 700}))
type Option func(*convertOptions)

// convertOptions holds optional configuration for a conversion.
type convertOptions struct {
	template   *template.Template
	fontIndex  int
	variations []fontio.Variation
}

// defaultConvertOptions returns the default conversion options.
func defaultConvertOptions() convertOptions {
	return convertOptions{
		template: nil, // template.Default(DefaultCanvasSize) if nil
	}
}

// WithTemplate sets the template the glyph is placed into. When unset,
// the built-in single-layer template on a square canvas of
// [DefaultCanvasSize] is used.
func WithTemplate(t *template.Template) Option {
	return func(o *convertOptions) {
		o.template = t
	}
}

// WithFontIndex selects a face from a font collection. Ignored for
// single-face fonts.
func WithFontIndex(i int) Option {
	return func(o *convertOptions) {
		o.fontIndex = i
	}
}

// WithVariations positions a variable font on the given axes before
// the outline is read.
func WithVariations(vs ...fontio.Variation) Option {
	return func(o *convertOptions) {
		o.variations = append(o.variations, vs...)
	}
}
