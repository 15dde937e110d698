package template

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Manifest is the optional YAML sidecar tuning a template. Stagger
// settings apply to every per-part variant unless a variant entry
// overrides them; variant entries either adjust a built-in variant or
// declare a new one when they carry a channel.
type Manifest struct {
	Window   *manifestWindow            `yaml:"frame-window"`
	Stagger  *manifestStagger           `yaml:"stagger"`
	Variants map[string]manifestVariant `yaml:"variants"`
}

type manifestWindow struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

type manifestStagger struct {
	Span  *float64 `yaml:"span"`
	Curve string   `yaml:"curve"`
}

type manifestVariant struct {
	Parts   *bool     `yaml:"parts"`
	Channel string    `yaml:"channel"`
	Times   []float64 `yaml:"times"`
	Values  []float64 `yaml:"values"`
	Span    *float64  `yaml:"span"`
	Curve   string    `yaml:"curve"`
}

func (t *Template) applyManifest(data []byte) error {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return &Error{Reason: "invalid manifest", Err: err}
	}
	if m.Window != nil {
		if m.Window.End <= m.Window.Start {
			return &Error{Reason: "manifest frame-window is empty"}
		}
		t.window = &frameWindow{Start: m.Window.Start, End: m.Window.End}
	}
	if m.Stagger != nil {
		if err := t.applyStagger(m.Stagger); err != nil {
			return err
		}
	}
	for name, mv := range m.Variants {
		if err := t.applyVariant(Variant(name), mv); err != nil {
			return err
		}
	}
	return nil
}

// applyStagger updates the span and curve of every per-part variant.
func (t *Template) applyStagger(s *manifestStagger) error {
	if s.Span != nil && (*s.Span <= 0 || *s.Span > 1) {
		return &Error{Reason: fmt.Sprintf("stagger span %v outside (0, 1]", *s.Span)}
	}
	if s.Curve != "" {
		if _, ok := staggerCurves[s.Curve]; !ok {
			return &Error{Reason: fmt.Sprintf("unknown stagger curve %q", s.Curve)}
		}
	}
	for v, spec := range t.variants {
		if !spec.PerPart {
			continue
		}
		if s.Span != nil {
			spec.Span = *s.Span
		}
		if s.Curve != "" {
			spec.Curve = s.Curve
		}
		t.variants[v] = spec
	}
	return nil
}

func (t *Template) applyVariant(name Variant, mv manifestVariant) error {
	spec, exists := t.variants[name]
	if !exists {
		// A new variant needs a full channel declaration.
		if mv.Channel == "" {
			return &Error{Reason: fmt.Sprintf("variant %q declares no channel", name)}
		}
		spec = variantSpec{Channel: ChannelNone, Span: 1, Curve: curveLinear}
	}
	if mv.Parts != nil {
		spec.PerPart = *mv.Parts
	}
	if mv.Channel != "" {
		switch Channel(mv.Channel) {
		case ChannelNone, ChannelRotation, ChannelScale:
			spec.Channel = Channel(mv.Channel)
		default:
			return &Error{Reason: fmt.Sprintf("variant %q has unknown channel %q", name, mv.Channel)}
		}
	}
	if mv.Times != nil || mv.Values != nil {
		if len(mv.Times) != len(mv.Values) || len(mv.Times) < 2 {
			return &Error{Reason: fmt.Sprintf("variant %q needs matching times and values", name)}
		}
		for i, u := range mv.Times {
			if u < 0 || u > 1 || (i > 0 && u <= mv.Times[i-1]) {
				return &Error{Reason: fmt.Sprintf("variant %q times must increase within [0, 1]", name)}
			}
		}
		spec.Times = append([]float64(nil), mv.Times...)
		spec.Values = append([]float64(nil), mv.Values...)
	}
	if spec.Channel != ChannelNone && len(spec.Times) == 0 {
		return &Error{Reason: fmt.Sprintf("variant %q animates a channel without keyframes", name)}
	}
	if mv.Span != nil {
		if *mv.Span <= 0 || *mv.Span > 1 {
			return &Error{Reason: fmt.Sprintf("variant %q span %v outside (0, 1]", name, *mv.Span)}
		}
		spec.Span = *mv.Span
	}
	if mv.Curve != "" {
		if _, ok := staggerCurves[mv.Curve]; !ok {
			return &Error{Reason: fmt.Sprintf("variant %q has unknown stagger curve %q", name, mv.Curve)}
		}
		spec.Curve = mv.Curve
	}
	t.variants[name] = spec
	return nil
}
