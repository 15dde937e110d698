package iconimation

import (
	"github.com/tomasdev/iconimation/fontio"
	"github.com/tomasdev/iconimation/template"
)

// Errors produced by the conversion pipeline, re-exported from the
// stage packages so callers can match them with errors.Is without
// importing each stage.
var (
	// ErrGlyphNotFound reports a codepoint the font has no glyph for.
	ErrGlyphNotFound = fontio.ErrGlyphNotFound

	// ErrEmptyOutline reports a glyph with no drawable contours.
	ErrEmptyOutline = fontio.ErrEmptyOutline

	// ErrCompositeTooDeep reports composite glyph nesting beyond the
	// supported depth.
	ErrCompositeTooDeep = fontio.ErrCompositeTooDeep

	// ErrUnsupportedAnimation reports a variant name the template's
	// variant table does not declare.
	ErrUnsupportedAnimation = template.ErrUnsupportedAnimation
)

// FontError reports an unusable font file.
type FontError = fontio.FontError

// TemplateError reports a structurally unusable template.
type TemplateError = template.Error
