// Package fonttest builds a small TrueType font in memory for tests.
//
// The font carries a fixed set of glyphs covering the interesting
// outline shapes: a plain square, a ring with a hole, disjoint
// contours, a composite, a self-referencing composite and an empty
// glyph. Tests address them through the CP constants.
package fonttest

import (
	"bytes"
	"encoding/binary"
	"math/bits"
	"sort"
)

// Codepoints mapped by the test font.
const (
	// CPSquare draws one square contour.
	CPSquare = 'A'
	// CPBars draws two disjoint vertical bars.
	CPBars = 'B'
	// CPComposite references the square glyph twice at different
	// offsets.
	CPComposite = 'C'
	// CPCyclic is a composite glyph referencing itself.
	CPCyclic = 'D'
	// CPFive draws five disjoint squares.
	CPFive = 'E'
	// CPSpace maps to a glyph with no contours.
	CPSpace = ' '
	// CPRing draws a square ring: an outer contour with a hole.
	CPRing = rune(0xE86C)
)

// UnitsPerEm of the built font.
const UnitsPerEm = 1000

type point struct{ x, y int16 }

type glyphSpec struct {
	contours  [][]point
	composite []component
	cyclic    bool
}

type component struct {
	gid    uint16
	dx, dy int16
}

func square(x0, y0, x1, y1 int16) []point {
	return []point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

// reversed flips contour direction, turning a filled contour into a
// hole under the nonzero winding rule.
func reversed(ps []point) []point {
	out := make([]point, len(ps))
	for i, p := range ps {
		out[len(ps)-1-i] = p
	}
	return out
}

// glyph order: 0 .notdef, 1 square, 2 ring, 3 bars, 4 empty,
// 5 composite, 6 cyclic, 7 five squares.
func glyphs() []glyphSpec {
	five := make([][]point, 5)
	for i := range five {
		o := int16(i) * 180
		five[i] = square(50+o, 50+o, 150+o, 150+o)
	}
	return []glyphSpec{
		{}, // .notdef
		{contours: [][]point{square(100, 100, 700, 700)}},
		{contours: [][]point{
			square(100, 100, 900, 900),
			reversed(square(300, 300, 700, 700)),
		}},
		{contours: [][]point{
			square(100, 100, 300, 900),
			square(500, 100, 700, 900),
		}},
		{}, // space
		{composite: []component{{gid: 1}, {gid: 1, dx: 800}}},
		{cyclic: true},
		{contours: five},
	}
}

var cmapping = map[rune]uint16{
	CPSquare:    1,
	CPRing:      2,
	CPBars:      3,
	CPSpace:     4,
	CPComposite: 5,
	CPCyclic:    6,
	CPFive:      7,
}

// Weight axis carried by the variable build.
const (
	// AxisWeightTag is the single variation axis of BuildVariable.
	AxisWeightTag = "wght"
	// AxisWeightMin, AxisWeightDefault and AxisWeightMax bound the
	// axis in design-space values.
	AxisWeightMin     = 100
	AxisWeightDefault = 400
	AxisWeightMax     = 900
	// WeightSquareDelta is how far the square glyph's right edge moves
	// in design units at maximum weight.
	WeightSquareDelta = 100
)

type table struct {
	tag  string
	data []byte
}

// Build assembles the test font as TrueType bytes.
func Build() []byte { return build(false) }

// BuildVariable assembles the same font with a wght variation axis.
// At AxisWeightMax the square glyph's two right points shift
// +WeightSquareDelta in x; all other glyphs are static.
func BuildVariable() []byte { return build(true) }

func build(variable bool) []byte {
	gs := glyphs()
	numGlyphs := len(gs)

	glyf, loca := buildGlyf(gs)
	tables := []table{
		{"OS/2", buildOS2()},
		{"cmap", buildCmap()},
		{"glyf", glyf},
		{"head", buildHead()},
		{"hhea", buildHhea(numGlyphs)},
		{"hmtx", buildHmtx(gs)},
		{"loca", loca},
		{"maxp", buildMaxp(numGlyphs)},
		{"name", buildName()},
		{"post", buildPost()},
	}
	if variable {
		tables = append(tables,
			table{"fvar", buildFvar()},
			table{"gvar", buildGvar(numGlyphs)},
		)
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].tag < tables[j].tag })

	var font bytes.Buffer
	n := len(tables)
	entrySelector := bits.Len(uint(n)) - 1
	searchRange := 16 << entrySelector
	u32(&font, 0x00010000)
	u16(&font, uint16(n))
	u16(&font, uint16(searchRange))
	u16(&font, uint16(entrySelector))
	u16(&font, uint16(n*16-searchRange))

	offset := 12 + n*16
	headOffset := 0
	for _, t := range tables {
		font.WriteString(t.tag)
		u32(&font, checksum(t.data))
		u32(&font, uint32(offset))
		u32(&font, uint32(len(t.data)))
		if t.tag == "head" {
			headOffset = offset
		}
		offset += pad4len(t.data)
	}
	for _, t := range tables {
		font.Write(t.data)
		font.Write(make([]byte, pad4len(t.data)-len(t.data)))
	}

	// checkSumAdjustment makes the whole file sum to 0xB1B0AFBA.
	out := font.Bytes()
	adj := 0xB1B0AFBA - checksum(out)
	binary.BigEndian.PutUint32(out[headOffset+8:], adj)
	return out
}

func u16(b *bytes.Buffer, v uint16) { _ = binary.Write(b, binary.BigEndian, v) }
func i16(b *bytes.Buffer, v int16)  { _ = binary.Write(b, binary.BigEndian, v) }
func u32(b *bytes.Buffer, v uint32) { _ = binary.Write(b, binary.BigEndian, v) }

func pad4len(data []byte) int { return (len(data) + 3) &^ 3 }

func checksum(data []byte) uint32 {
	var sum uint32
	for i := 0; i < len(data); i += 4 {
		var word uint32
		for j := 0; j < 4; j++ {
			word <<= 8
			if i+j < len(data) {
				word |= uint32(data[i+j])
			}
		}
		sum += word
	}
	return sum
}

func buildGlyf(gs []glyphSpec) (glyf, loca []byte) {
	var g bytes.Buffer
	offsets := make([]uint32, 0, len(gs)+1)
	for i, spec := range gs {
		offsets = append(offsets, uint32(g.Len()))
		switch {
		case spec.cyclic:
			g.Write(compositeGlyph([]component{{gid: uint16(i)}}))
		case spec.composite != nil:
			g.Write(compositeGlyph(spec.composite))
		case len(spec.contours) > 0:
			g.Write(simpleGlyph(spec.contours))
		}
		for g.Len()%4 != 0 {
			g.WriteByte(0)
		}
	}
	offsets = append(offsets, uint32(g.Len()))

	var l bytes.Buffer
	for _, o := range offsets {
		u32(&l, o)
	}
	return g.Bytes(), l.Bytes()
}

// simpleGlyph encodes contours with all points on-curve and
// uncompressed two-byte deltas.
func simpleGlyph(contours [][]point) []byte {
	var b bytes.Buffer
	xMin, yMin := int16(32767), int16(32767)
	xMax, yMax := int16(-32768), int16(-32768)
	for _, c := range contours {
		for _, p := range c {
			xMin, xMax = min(xMin, p.x), max(xMax, p.x)
			yMin, yMax = min(yMin, p.y), max(yMax, p.y)
		}
	}
	i16(&b, int16(len(contours)))
	i16(&b, xMin)
	i16(&b, yMin)
	i16(&b, xMax)
	i16(&b, yMax)
	end := -1
	for _, c := range contours {
		end += len(c)
		u16(&b, uint16(end))
	}
	u16(&b, 0) // no instructions
	var pts []point
	for _, c := range contours {
		pts = append(pts, c...)
	}
	for range pts {
		b.WriteByte(0x01) // on-curve, full-size deltas
	}
	prev := int16(0)
	for _, p := range pts {
		i16(&b, p.x-prev)
		prev = p.x
	}
	prev = 0
	for _, p := range pts {
		i16(&b, p.y-prev)
		prev = p.y
	}
	return b.Bytes()
}

// Composite component flags.
const (
	argsAreWords   = 0x0001
	argsAreXY      = 0x0002
	moreComponents = 0x0020
)

func compositeGlyph(comps []component) []byte {
	var b bytes.Buffer
	i16(&b, -1)
	i16(&b, 0)    // xMin
	i16(&b, 0)    // yMin
	i16(&b, 1600) // xMax
	i16(&b, 1000) // yMax
	for i, c := range comps {
		flags := uint16(argsAreWords | argsAreXY)
		if i < len(comps)-1 {
			flags |= moreComponents
		}
		u16(&b, flags)
		u16(&b, c.gid)
		i16(&b, c.dx)
		i16(&b, c.dy)
	}
	return b.Bytes()
}

// buildCmap writes a format 4 subtable with one segment per mapped
// codepoint.
func buildCmap() []byte {
	codes := make([]rune, 0, len(cmapping))
	for c := range cmapping {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	segCount := len(codes) + 1
	var sub bytes.Buffer
	u16(&sub, 4)
	u16(&sub, uint16(16+segCount*8)) // length
	u16(&sub, 0)                     // language
	u16(&sub, uint16(segCount*2))
	entrySelector := bits.Len(uint(segCount)) - 1
	searchRange := 2 << entrySelector
	u16(&sub, uint16(searchRange))
	u16(&sub, uint16(entrySelector))
	u16(&sub, uint16(segCount*2-searchRange))
	for _, c := range codes {
		u16(&sub, uint16(c))
	}
	u16(&sub, 0xFFFF)
	u16(&sub, 0) // reservedPad
	for _, c := range codes {
		u16(&sub, uint16(c))
	}
	u16(&sub, 0xFFFF)
	for _, c := range codes {
		i16(&sub, int16(cmapping[c])-int16(c))
	}
	i16(&sub, 1)
	for i := 0; i < segCount; i++ {
		u16(&sub, 0) // idRangeOffset
	}

	var b bytes.Buffer
	u16(&b, 0) // version
	u16(&b, 1) // one encoding record
	u16(&b, 3) // Windows
	u16(&b, 1) // Unicode BMP
	u32(&b, 12)
	b.Write(sub.Bytes())
	return b.Bytes()
}

func buildHead() []byte {
	var b bytes.Buffer
	u32(&b, 0x00010000) // version
	u32(&b, 0x00010000) // fontRevision
	u32(&b, 0)          // checkSumAdjustment, patched after assembly
	u32(&b, 0x5F0F3CF5) // magicNumber
	u16(&b, 0)          // flags
	u16(&b, UnitsPerEm)
	b.Write(make([]byte, 16)) // created, modified
	i16(&b, 0)                // xMin
	i16(&b, 0)                // yMin
	i16(&b, 1600)             // xMax
	i16(&b, 1000)             // yMax
	u16(&b, 0)                // macStyle
	u16(&b, 8)                // lowestRecPPEM
	i16(&b, 2)                // fontDirectionHint
	i16(&b, 1)                // indexToLocFormat: long
	i16(&b, 0)                // glyphDataFormat
	return b.Bytes()
}

func buildHhea(numGlyphs int) []byte {
	var b bytes.Buffer
	u32(&b, 0x00010000)
	i16(&b, 800)  // ascender
	i16(&b, -200) // descender
	i16(&b, 0)    // lineGap
	u16(&b, 1000) // advanceWidthMax
	i16(&b, 0)    // minLeftSideBearing
	i16(&b, 0)    // minRightSideBearing
	i16(&b, 1600) // xMaxExtent
	i16(&b, 1)    // caretSlopeRise
	i16(&b, 0)    // caretSlopeRun
	i16(&b, 0)    // caretOffset
	b.Write(make([]byte, 8))
	i16(&b, 0) // metricDataFormat
	u16(&b, uint16(numGlyphs))
	return b.Bytes()
}

// buildHmtx writes each glyph's left side bearing equal to its glyf
// xMin. Extractors shift outlines by lsb minus xMin, so a mismatch
// would translate every contour away from its design coordinates.
func buildHmtx(gs []glyphSpec) []byte {
	var b bytes.Buffer
	for _, spec := range gs {
		u16(&b, 600) // advanceWidth
		i16(&b, glyphXMin(spec))
	}
	return b.Bytes()
}

// glyphXMin mirrors the xMin written into the glyf record: the minimum
// point for simple glyphs, zero for composites and empty glyphs.
func glyphXMin(spec glyphSpec) int16 {
	if len(spec.contours) == 0 {
		return 0
	}
	xMin := int16(32767)
	for _, c := range spec.contours {
		for _, p := range c {
			xMin = min(xMin, p.x)
		}
	}
	return xMin
}

func buildMaxp(numGlyphs int) []byte {
	var b bytes.Buffer
	u32(&b, 0x00010000)
	u16(&b, uint16(numGlyphs))
	u16(&b, 20) // maxPoints
	u16(&b, 5)  // maxContours
	u16(&b, 8)  // maxCompositePoints
	u16(&b, 2)  // maxCompositeContours
	u16(&b, 2)  // maxZones
	u16(&b, 0)  // maxTwilightPoints
	u16(&b, 0)  // maxStorage
	u16(&b, 0)  // maxFunctionDefs
	u16(&b, 0)  // maxInstructionDefs
	u16(&b, 0)  // maxStackElements
	u16(&b, 0)  // maxSizeOfInstructions
	u16(&b, 2)  // maxComponentElements
	u16(&b, 1)  // maxComponentDepth
	return b.Bytes()
}

func buildOS2() []byte {
	var b bytes.Buffer
	u16(&b, 1)   // version
	i16(&b, 600) // xAvgCharWidth
	u16(&b, 400) // usWeightClass
	u16(&b, 5)   // usWidthClass
	u16(&b, 0)   // fsType
	b.Write(make([]byte, 20)) // subscript and superscript metrics
	i16(&b, 0)                // sFamilyClass
	b.Write(make([]byte, 10)) // panose
	b.Write(make([]byte, 16)) // ulUnicodeRange
	b.WriteString("TEST")     // achVendID
	u16(&b, 0x0040)           // fsSelection: regular
	u16(&b, 0x20)             // usFirstCharIndex
	u16(&b, 0xE86C)           // usLastCharIndex
	i16(&b, 800)              // sTypoAscender
	i16(&b, -200)             // sTypoDescender
	i16(&b, 0)                // sTypoLineGap
	u16(&b, 800)              // usWinAscent
	u16(&b, 200)              // usWinDescent
	b.Write(make([]byte, 8))  // ulCodePageRange
	return b.Bytes()
}

// buildFvar declares the single wght axis.
func buildFvar() []byte {
	var b bytes.Buffer
	u16(&b, 1)  // majorVersion
	u16(&b, 0)  // minorVersion
	u16(&b, 16) // axesArrayOffset
	u16(&b, 2)  // reserved
	u16(&b, 1)  // axisCount
	u16(&b, 20) // axisSize
	u16(&b, 0)  // instanceCount
	u16(&b, 8)  // instanceSize
	b.WriteString(AxisWeightTag)
	u32(&b, AxisWeightMin<<16) // Fixed 16.16
	u32(&b, AxisWeightDefault<<16)
	u32(&b, AxisWeightMax<<16)
	u16(&b, 0)   // flags
	u16(&b, 256) // axisNameID
	return b.Bytes()
}

// buildGvar attaches one variation tuple to the square glyph (gid 1):
// at normalized wght 1.0 its two x=700 points gain WeightSquareDelta.
func buildGvar(numGlyphs int) []byte {
	// Serialized tuple data: private point numbers covering all points
	// (four outline points plus the four phantoms), then packed deltas.
	serialized := []byte{
		0x00,       // point count 0: all points
		0x80,       // x: one zero (100,100)
		0x01,       // x: run of two byte-sized deltas
		WeightSquareDelta, WeightSquareDelta,
		0x84, // x: five zeros (last point + phantoms)
		0x87, // y: eight zeros
	}
	var data bytes.Buffer
	u16(&data, 1)                       // tupleVariationCount
	u16(&data, 4+6)                     // offset to serialized data
	u16(&data, uint16(len(serialized))) // variationDataSize
	u16(&data, 0xA000)                  // embedded peak + private point numbers
	u16(&data, 0x4000)                  // peak wght = 1.0 in F2Dot14
	data.Write(serialized)
	if data.Len()%2 != 0 {
		data.WriteByte(0)
	}

	var b bytes.Buffer
	u16(&b, 1) // majorVersion
	u16(&b, 0) // minorVersion
	u16(&b, 1) // axisCount
	u16(&b, 0) // sharedTupleCount
	u32(&b, 20)
	u16(&b, uint16(numGlyphs))
	u16(&b, 1) // flags: long offsets
	u32(&b, uint32(20+(numGlyphs+1)*4))
	u32(&b, 0) // gid 0 starts at 0
	u32(&b, 0) // gid 1 starts at 0
	for i := 2; i <= numGlyphs; i++ {
		u32(&b, uint32(data.Len())) // only gid 1 carries data
	}
	b.Write(data.Bytes())
	return b.Bytes()
}

func buildName() []byte {
	var b bytes.Buffer
	u16(&b, 0) // format
	u16(&b, 0) // count
	u16(&b, 6) // stringOffset
	return b.Bytes()
}

func buildPost() []byte {
	var b bytes.Buffer
	u32(&b, 0x00030000)
	u32(&b, 0)    // italicAngle
	i16(&b, -100) // underlinePosition
	i16(&b, 50)   // underlineThickness
	u32(&b, 0)    // isFixedPitch
	b.Write(make([]byte, 16))
	return b.Bytes()
}
