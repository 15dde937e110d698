// Package fontio reads glyph outlines from font binaries.
//
// It wraps go-text/typesetting for container parsing, character
// mapping and variable-font instancing, and adds a structural
// validation pass over the raw glyf table that rejects malformed
// composite glyphs (cyclic or over-deep component references) before
// outline extraction.
//
// A Font is immutable once loaded and safe to share between
// conversions; concurrent use from independent conversions needs no
// synchronization.
package fontio

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"

	"github.com/tomasdev/iconimation/geom"
	"github.com/tomasdev/iconimation/internal/glyphcache"
)

// GlyphID identifies a glyph inside a font.
type GlyphID uint32

// Errors reported by glyph resolution and outline extraction. Failures
// to parse the container itself are reported as *FontError.
var (
	// ErrGlyphNotFound reports a codepoint with no mapping in the
	// font's character map.
	ErrGlyphNotFound = errors.New("fontio: no glyph for codepoint")

	// ErrEmptyOutline reports a mapped glyph with no visible contours,
	// such as a space. Distinct from ErrGlyphNotFound so callers can
	// skip or fail as they see fit.
	ErrEmptyOutline = errors.New("fontio: glyph has no contours")

	// ErrCompositeTooDeep reports a composite glyph whose component
	// references nest beyond the supported depth, which includes
	// cyclic references in malformed fonts.
	ErrCompositeTooDeep = errors.New("fontio: composite glyph nesting too deep")
)

// FontError reports a malformed or unsupported font binary.
type FontError struct {
	Reason string
	Err    error
}

func (e *FontError) Error() string {
	if e.Err != nil {
		return "fontio: " + e.Reason + ": " + e.Err.Error()
	}
	return "fontio: " + e.Reason
}

func (e *FontError) Unwrap() error { return e.Err }

// Variation pins one variable-font axis to a design-space value,
// e.g. {"wght", 700}.
type Variation struct {
	Tag   string
	Value float32
}

// Option configures font loading.
type Option func(*loadOptions)

type loadOptions struct {
	index      int
	variations []Variation
}

// WithIndex selects a member of a font collection (TTC). It has no
// effect on single-font containers.
func WithIndex(i int) Option {
	return func(o *loadOptions) {
		o.index = i
	}
}

// WithVariations pins variable-font axes for outline extraction.
// Axes not named keep the font's default instance value; the option is
// ignored by static fonts.
func WithVariations(vars ...Variation) Option {
	return func(o *loadOptions) {
		o.variations = append(o.variations, vars...)
	}
}

// Font is an immutable handle over one loaded font instance: a static
// font, or a variable font resolved to a fixed point in its axis
// space.
type Font struct {
	face *font.Face
	upem float64
	glyf *glyfIndex // nil when the font has no glyf table (CFF outlines)

	// outlines memoizes extracted contours per glyph. Cached paths are
	// shared; callers transform copies, never the cached paths.
	outlines *glyphcache.Cache[[]geom.Path]
}

// Load parses a font binary. The caller's buffer is never mutated and
// may be discarded after Load returns.
func Load(data []byte, opts ...Option) (*Font, error) {
	var options loadOptions
	for _, opt := range opts {
		opt(&options)
	}

	face, err := parseFace(data, options.index)
	if err != nil {
		return nil, err
	}
	if len(options.variations) > 0 {
		vars := make([]font.Variation, len(options.variations))
		for i, v := range options.variations {
			if len(v.Tag) != 4 {
				return nil, &FontError{Reason: fmt.Sprintf("invalid variation axis tag %q", v.Tag)}
			}
			vars[i] = font.Variation{Tag: ot.MustNewTag(v.Tag), Value: v.Value}
		}
		face.SetVariations(vars)
	}

	upem := float64(face.Font.Upem())
	if upem <= 0 {
		return nil, &FontError{Reason: "font declares no units-per-em"}
	}

	glyf, err := loadGlyfIndex(data, options.index)
	if err != nil {
		return nil, err
	}

	return &Font{
		face:     face,
		upem:     upem,
		glyf:     glyf,
		outlines: glyphcache.New[[]geom.Path](),
	}, nil
}

// parseFace loads the requested face from a single font or a
// collection, sniffing the container magic.
func parseFace(data []byte, index int) (*font.Face, error) {
	if isCollection(data) {
		faces, err := font.ParseTTC(bytes.NewReader(data))
		if err != nil {
			return nil, &FontError{Reason: "malformed font collection", Err: err}
		}
		if index < 0 || index >= len(faces) {
			return nil, &FontError{Reason: fmt.Sprintf("collection has %d fonts, index %d requested", len(faces), index)}
		}
		return faces[index], nil
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, &FontError{Reason: "malformed font", Err: err}
	}
	return face, nil
}

func isCollection(data []byte) bool {
	return len(data) >= 4 && string(data[:4]) == "ttcf"
}

// UnitsPerEm returns the design grid size of the font.
func (f *Font) UnitsPerEm() float64 {
	return f.upem
}

// Glyph resolves a Unicode codepoint through the font's character map.
// A codepoint without a mapping is ErrGlyphNotFound, never glyph 0.
func (f *Font) Glyph(r rune) (GlyphID, error) {
	gid, ok := f.face.Font.NominalGlyph(r)
	if !ok {
		return 0, fmt.Errorf("%w: U+%04X", ErrGlyphNotFound, r)
	}
	return GlyphID(gid), nil
}

// Outline extracts the glyph's contours in font design units, one
// closed path per contour, in the font's own contour order. Composite
// glyphs are resolved recursively with their component transforms
// applied; before extraction the raw component graph is validated with
// a bounded-depth walk, so malformed cyclic fonts fail with
// ErrCompositeTooDeep instead of looping.
func (f *Font) Outline(g GlyphID) ([]geom.Path, error) {
	return f.outlines.GetOrCreate(uint32(g), func() ([]geom.Path, error) {
		return f.extractOutline(g)
	})
}

func (f *Font) extractOutline(g GlyphID) ([]geom.Path, error) {
	if f.glyf != nil {
		if err := f.glyf.validate(uint16(g)); err != nil {
			return nil, err
		}
	}

	data := f.face.GlyphData(font.GID(g))
	outline, ok := data.(font.GlyphOutline)
	if !ok {
		if data == nil {
			return nil, fmt.Errorf("%w: glyph %d", ErrEmptyOutline, g)
		}
		return nil, &FontError{Reason: fmt.Sprintf("glyph %d has no vector outline", g)}
	}

	paths := segmentsToPaths(outline.Segments)
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: glyph %d", ErrEmptyOutline, g)
	}
	return paths, nil
}

// Metrics describe a glyph's horizontal extent in font design units.
type Metrics struct {
	Advance float64
	Bounds  geom.Rect
}

// Metrics returns the advance width and tight outline bounds of a
// glyph. The bounds of an empty glyph are the zero Rect.
func (f *Font) Metrics(g GlyphID) Metrics {
	m := Metrics{
		Advance: float64(f.face.HorizontalAdvance(font.GID(g))),
	}
	paths, err := f.Outline(g)
	if err != nil {
		return m
	}
	for i, p := range paths {
		if i == 0 {
			m.Bounds = p.BoundingBox()
			continue
		}
		m.Bounds = m.Bounds.Union(p.BoundingBox())
	}
	return m
}

// segmentsToPaths splits an outline segment stream into one closed
// path per contour. Fonts close contours implicitly; each MoveTo
// starts a new contour and ends the previous one.
func segmentsToPaths(segments []font.Segment) []geom.Path {
	var paths []geom.Path
	var current *geom.Path

	closeCurrent := func() {
		if current != nil && !current.IsEmpty() {
			if !current.IsClosed() {
				current.Close()
			}
			paths = append(paths, *current)
		}
		current = nil
	}

	for _, seg := range segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			closeCurrent()
			current = geom.NewPath()
			current.MoveTo(float64(seg.Args[0].X), float64(seg.Args[0].Y))
		case ot.SegmentOpLineTo:
			if current == nil {
				continue
			}
			current.LineTo(float64(seg.Args[0].X), float64(seg.Args[0].Y))
		case ot.SegmentOpQuadTo:
			if current == nil {
				continue
			}
			current.QuadraticTo(
				float64(seg.Args[0].X), float64(seg.Args[0].Y),
				float64(seg.Args[1].X), float64(seg.Args[1].Y),
			)
		case ot.SegmentOpCubeTo:
			if current == nil {
				continue
			}
			current.CubicTo(
				float64(seg.Args[0].X), float64(seg.Args[0].Y),
				float64(seg.Args[1].X), float64(seg.Args[1].Y),
				float64(seg.Args[2].X), float64(seg.Args[2].Y),
			)
		}
	}
	closeCurrent()

	return paths
}
