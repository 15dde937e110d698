package fontio

import (
	"bytes"
	"encoding/binary"
	"fmt"

	ot "github.com/go-text/typesetting/font/opentype"
)

// Composite glyph validation is an explicit bounded walk over the raw
// glyf table rather than recursive pointer-following, so a malformed
// font with cyclic component references fails deterministically
// instead of overflowing a stack during extraction.

const (
	// maxCompositeDepth bounds component nesting. Real fonts stay in
	// the low single digits; anything deeper is treated as malformed.
	maxCompositeDepth = 8

	// maxCompositeNodes bounds the total component expansion of a
	// single glyph, guarding against diamond-shaped reference graphs.
	maxCompositeNodes = 4096
)

// Composite component flag bits.
const (
	flagArg1And2AreWords = 0x0001
	flagMoreComponents   = 0x0020
	flagWeHaveAScale     = 0x0008
	flagWeHaveAnXAndY    = 0x0040
	flagWeHaveATwoByTwo  = 0x0080
)

// glyfIndex is an arena view of the raw loca and glyf tables: glyph
// records are addressed by index, never by following pointers.
type glyfIndex struct {
	numGlyphs int
	loca      []uint32 // numGlyphs+1 offsets into glyf
	glyf      []byte
}

// loadGlyfIndex reads the raw loca/glyf tables of the selected font.
// Fonts without TrueType outlines (CFF) have no glyf table and return
// a nil index; their charstrings cannot form reference cycles.
func loadGlyfIndex(data []byte, index int) (*glyfIndex, error) {
	ld, err := rawLoader(data, index)
	if err != nil {
		return nil, err
	}

	glyf, err := ld.RawTable(ot.MustNewTag("glyf"))
	if err != nil {
		return nil, nil // no glyf table; nothing to validate
	}

	head, err := ld.RawTable(ot.MustNewTag("head"))
	if err != nil || len(head) < 54 {
		return nil, &FontError{Reason: "glyf outlines without a usable head table", Err: err}
	}
	longLoca := int16(binary.BigEndian.Uint16(head[50:52])) != 0

	maxp, err := ld.RawTable(ot.MustNewTag("maxp"))
	if err != nil || len(maxp) < 6 {
		return nil, &FontError{Reason: "glyf outlines without a usable maxp table", Err: err}
	}
	numGlyphs := int(binary.BigEndian.Uint16(maxp[4:6]))

	locaData, err := ld.RawTable(ot.MustNewTag("loca"))
	if err != nil {
		return nil, &FontError{Reason: "glyf outlines without a loca table", Err: err}
	}
	loca, err := parseLoca(locaData, numGlyphs, longLoca)
	if err != nil {
		return nil, err
	}

	return &glyfIndex{numGlyphs: numGlyphs, loca: loca, glyf: glyf}, nil
}

func rawLoader(data []byte, index int) (*ot.Loader, error) {
	if isCollection(data) {
		loaders, err := ot.NewLoaders(bytes.NewReader(data))
		if err != nil {
			return nil, &FontError{Reason: "malformed font collection", Err: err}
		}
		if index < 0 || index >= len(loaders) {
			return nil, &FontError{Reason: fmt.Sprintf("collection has %d fonts, index %d requested", len(loaders), index)}
		}
		return loaders[index], nil
	}
	ld, err := ot.NewLoader(bytes.NewReader(data))
	if err != nil {
		return nil, &FontError{Reason: "malformed font", Err: err}
	}
	return ld, nil
}

func parseLoca(data []byte, numGlyphs int, long bool) ([]uint32, error) {
	n := numGlyphs + 1
	loca := make([]uint32, n)
	if long {
		if len(data) < n*4 {
			return nil, &FontError{Reason: "loca table too short"}
		}
		for i := range loca {
			loca[i] = binary.BigEndian.Uint32(data[i*4:])
		}
	} else {
		if len(data) < n*2 {
			return nil, &FontError{Reason: "loca table too short"}
		}
		for i := range loca {
			loca[i] = uint32(binary.BigEndian.Uint16(data[i*2:])) * 2
		}
	}
	for i := 1; i < n; i++ {
		if loca[i] < loca[i-1] {
			return nil, &FontError{Reason: "loca offsets not monotonic"}
		}
	}
	return loca, nil
}

// validate walks the component graph rooted at g and rejects nesting
// beyond maxCompositeDepth, which covers reference cycles in malformed
// fonts.
func (ix *glyfIndex) validate(g uint16) error {
	type frame struct {
		gid   uint16
		depth int
	}
	stack := []frame{{gid: g}}
	expanded := 0

	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if fr.depth > maxCompositeDepth {
			return fmt.Errorf("%w: glyph %d exceeds depth %d", ErrCompositeTooDeep, g, maxCompositeDepth)
		}
		components, err := ix.components(fr.gid)
		if err != nil {
			return err
		}
		expanded++
		if expanded > maxCompositeNodes {
			return fmt.Errorf("%w: glyph %d expands past %d components", ErrCompositeTooDeep, g, maxCompositeNodes)
		}
		for _, c := range components {
			stack = append(stack, frame{gid: c, depth: fr.depth + 1})
		}
	}
	return nil
}

// components returns the direct component glyph indices of g, or nil
// for simple and empty glyphs.
func (ix *glyfIndex) components(g uint16) ([]uint16, error) {
	if int(g) >= ix.numGlyphs {
		return nil, &FontError{Reason: fmt.Sprintf("component reference to glyph %d outside glyph range %d", g, ix.numGlyphs)}
	}
	start, end := ix.loca[g], ix.loca[g+1]
	if start == end {
		return nil, nil // empty glyph
	}
	if uint32(len(ix.glyf)) < end || end-start < 10 {
		return nil, &FontError{Reason: fmt.Sprintf("glyph %d record truncated", g)}
	}
	data := ix.glyf[start:end]

	if int16(binary.BigEndian.Uint16(data[0:2])) >= 0 {
		return nil, nil // simple glyph
	}

	var components []uint16
	pos := 10
	for {
		if pos+4 > len(data) {
			return nil, &FontError{Reason: fmt.Sprintf("composite glyph %d truncated", g)}
		}
		flags := binary.BigEndian.Uint16(data[pos:])
		components = append(components, binary.BigEndian.Uint16(data[pos+2:]))
		pos += 4

		if flags&flagArg1And2AreWords != 0 {
			pos += 4
		} else {
			pos += 2
		}
		switch {
		case flags&flagWeHaveAScale != 0:
			pos += 2
		case flags&flagWeHaveAnXAndY != 0:
			pos += 4
		case flags&flagWeHaveATwoByTwo != 0:
			pos += 8
		}

		if flags&flagMoreComponents == 0 {
			break
		}
	}
	return components, nil
}
