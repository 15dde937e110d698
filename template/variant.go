package template

import (
	"fmt"
	"sort"
)

// Variant names one animation behavior a template can produce.
// "-whole" variants animate the glyph as a single shape; "-parts"
// variants animate each decomposed part on its own staggered track.
type Variant string

// Built-in variants. Templates may declare further variants through
// their manifest; the set is always an explicit table, never
// open-ended string dispatch.
const (
	Still      Variant = "still"
	TwirlWhole Variant = "twirl-whole"
	TwirlParts Variant = "twirl-parts"
	PulseWhole Variant = "pulse-whole"
	PulseParts Variant = "pulse-parts"
)

// Channel is the transform property a variant animates.
type Channel string

// Supported animation channels.
const (
	ChannelNone     Channel = "none"
	ChannelRotation Channel = "rotation"
	ChannelScale    Channel = "scale"
)

// variantSpec declares how one variant instantiates: whether tracks
// repeat per part, which channel they animate, the keyframe values at
// normalized times within one track span, and the stagger parameters.
type variantSpec struct {
	PerPart bool
	Channel Channel

	// Times are normalized positions in [0, 1] within one track span;
	// Values holds the channel value at each time (degrees for
	// rotation, uniform percent for scale).
	Times  []float64
	Values []float64

	// Span is the fraction of the animation window one part's track
	// occupies. Stagger offsets distribute the remaining window so
	// every part count spans the same total duration.
	Span float64

	// Curve names the stagger distribution across parts.
	Curve string
}

// builtinVariants is the default variant table. Adding a variant is a
// data change here or in a template manifest, not new dispatch code.
var builtinVariants = map[Variant]variantSpec{
	Still: {
		Channel: ChannelNone,
		Span:    1,
		Curve:   curveLinear,
	},
	TwirlWhole: {
		Channel: ChannelRotation,
		Times:   []float64{0, 1},
		Values:  []float64{0, 360},
		Span:    1,
		Curve:   curveLinear,
	},
	TwirlParts: {
		PerPart: true,
		Channel: ChannelRotation,
		Times:   []float64{0, 1},
		Values:  []float64{0, 360},
		Span:    0.5,
		Curve:   curveLinear,
	},
	PulseWhole: {
		Channel: ChannelScale,
		Times:   []float64{0, 0.5, 1},
		Values:  []float64{100, 150, 100},
		Span:    1,
		Curve:   curveLinear,
	},
	PulseParts: {
		PerPart: true,
		Channel: ChannelScale,
		Times:   []float64{0, 0.5, 1},
		Values:  []float64{100, 150, 100},
		Span:    0.5,
		Curve:   curveLinear,
	},
}

// Stagger curve names accepted by manifests.
const (
	curveLinear  = "linear"
	curveEaseIn  = "ease-in"
	curveEaseOut = "ease-out"
)

// staggerCurves maps curve names to their normalized distribution
// function over u in [0, 1].
var staggerCurves = map[string]func(u float64) float64{
	curveLinear:  func(u float64) float64 { return u },
	curveEaseIn:  func(u float64) float64 { return u * u },
	curveEaseOut: func(u float64) float64 { return u * (2 - u) },
}

// ParseVariant validates a variant name against the built-in table.
// Manifest-declared variants are validated per template at load time.
func ParseVariant(name string) (Variant, error) {
	v := Variant(name)
	if _, ok := builtinVariants[v]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAnimation, name)
	}
	return v, nil
}

// BuiltinVariants lists the built-in variant names in sorted order.
func BuiltinVariants() []Variant {
	out := make([]Variant, 0, len(builtinVariants))
	for v := range builtinVariants {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
