package lottie

import (
	"encoding/json"
	"fmt"
	"math"
)

// Round quantizes a coordinate or time value to the document precision
// of three decimal places. Every numeric value entering the model goes
// through Round exactly once.
func Round(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// RoundSlice returns a copy of vs with every element rounded.
func RoundSlice(vs []float64) []float64 {
	if vs == nil {
		return nil
	}
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = Round(v)
	}
	return out
}

// Ease describes one side of a cubic bezier easing handle on a keyframe.
// X and Y hold one entry per animated dimension.
type Ease struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// DefaultEaseIn returns the conventional incoming ease handle (0.833).
func DefaultEaseIn(dims int) *Ease {
	return uniformEase(0.833, dims)
}

// DefaultEaseOut returns the conventional outgoing ease handle (0.167).
func DefaultEaseOut(dims int) *Ease {
	return uniformEase(0.167, dims)
}

func uniformEase(v float64, dims int) *Ease {
	xs := make([]float64, dims)
	ys := make([]float64, dims)
	for i := range xs {
		xs[i] = v
		ys[i] = v
	}
	return &Ease{X: xs, Y: ys}
}

// Keyframe is one multidimensional keyframe: a start value at a time,
// with optional bezier easing toward the next keyframe.
type Keyframe struct {
	Time    float64   `json:"t"`
	Start   []float64 `json:"s,omitempty"`
	End     []float64 `json:"e,omitempty"`
	InEase  *Ease     `json:"i,omitempty"`
	OutEase *Ease     `json:"o,omitempty"`
	Hold    int       `json:"h,omitempty"`
}

// rawProperty is the wire form shared by all property kinds: an
// animated flag and a polymorphic value.
type rawProperty struct {
	Animated int             `json:"a"`
	Value    json.RawMessage `json:"k"`
}

// ScalarProperty holds a single-valued property (rotation, opacity,
// roundness). It is animated exactly when Keyframes is non-empty.
type ScalarProperty struct {
	Value     float64
	Keyframes []Keyframe
}

// Scalar returns a static scalar property.
func Scalar(v float64) *ScalarProperty {
	return &ScalarProperty{Value: Round(v)}
}

// Animated reports whether the property carries keyframes. It is safe
// on a nil property, which is simply absent.
func (p *ScalarProperty) Animated() bool { return p != nil && len(p.Keyframes) > 0 }

// MarshalJSON implements json.Marshaler.
func (p ScalarProperty) MarshalJSON() ([]byte, error) {
	if p.Animated() {
		return marshalRawProperty(1, p.Keyframes)
	}
	return marshalRawProperty(0, p.Value)
}

// UnmarshalJSON implements json.Unmarshaler. A static value may appear
// either as a bare number or a single-element array.
func (p *ScalarProperty) UnmarshalJSON(data []byte) error {
	var raw rawProperty
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Animated != 0 {
		return json.Unmarshal(raw.Value, &p.Keyframes)
	}
	if err := json.Unmarshal(raw.Value, &p.Value); err == nil {
		return nil
	}
	var vs []float64
	if err := json.Unmarshal(raw.Value, &vs); err != nil {
		return fmt.Errorf("lottie: scalar property value %s: %w", raw.Value, err)
	}
	if len(vs) > 0 {
		p.Value = vs[0]
	}
	return nil
}

// VectorProperty holds a multidimensional property (position, anchor,
// scale, size, color). It is animated exactly when Keyframes is
// non-empty.
type VectorProperty struct {
	Value     []float64
	Keyframes []Keyframe
}

// Vector returns a static vector property.
func Vector(vs ...float64) *VectorProperty {
	return &VectorProperty{Value: RoundSlice(vs)}
}

// Animated reports whether the property carries keyframes. It is safe
// on a nil property, which is simply absent.
func (p *VectorProperty) Animated() bool { return p != nil && len(p.Keyframes) > 0 }

// MarshalJSON implements json.Marshaler.
func (p VectorProperty) MarshalJSON() ([]byte, error) {
	if p.Animated() {
		return marshalRawProperty(1, p.Keyframes)
	}
	return marshalRawProperty(0, p.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *VectorProperty) UnmarshalJSON(data []byte) error {
	var raw rawProperty
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Animated != 0 {
		return json.Unmarshal(raw.Value, &p.Keyframes)
	}
	if err := json.Unmarshal(raw.Value, &p.Value); err == nil {
		return nil
	}
	var v float64
	if err := json.Unmarshal(raw.Value, &v); err != nil {
		return fmt.Errorf("lottie: vector property value %s: %w", raw.Value, err)
	}
	p.Value = []float64{v}
	return nil
}

// Clone returns a deep copy of the property.
func (p *VectorProperty) Clone() *VectorProperty {
	if p == nil {
		return nil
	}
	out := &VectorProperty{}
	if p.Value != nil {
		out.Value = append([]float64(nil), p.Value...)
	}
	for _, kf := range p.Keyframes {
		out.Keyframes = append(out.Keyframes, cloneKeyframe(kf))
	}
	return out
}

// Clone returns a deep copy of the property.
func (p *ScalarProperty) Clone() *ScalarProperty {
	if p == nil {
		return nil
	}
	out := &ScalarProperty{Value: p.Value}
	for _, kf := range p.Keyframes {
		out.Keyframes = append(out.Keyframes, cloneKeyframe(kf))
	}
	return out
}

func cloneKeyframe(kf Keyframe) Keyframe {
	out := kf
	out.Start = append([]float64(nil), kf.Start...)
	out.End = append([]float64(nil), kf.End...)
	if kf.InEase != nil {
		out.InEase = &Ease{
			X: append([]float64(nil), kf.InEase.X...),
			Y: append([]float64(nil), kf.InEase.Y...),
		}
	}
	if kf.OutEase != nil {
		out.OutEase = &Ease{
			X: append([]float64(nil), kf.OutEase.X...),
			Y: append([]float64(nil), kf.OutEase.Y...),
		}
	}
	return out
}

// ShapeValue is a closed or open cubic bezier contour. Vertices holds
// the on-curve points; Out and In hold the outgoing and incoming
// control handles as offsets relative to their vertex, per the Lottie
// schema. Out[i] leaves Vertices[i]; In[i] arrives at Vertices[i].
type ShapeValue struct {
	Closed   bool        `json:"c"`
	In       [][]float64 `json:"i"`
	Out      [][]float64 `json:"o"`
	Vertices [][]float64 `json:"v"`
}

// ShapeProperty holds a bezier shape property. Only static shapes are
// modelled; an animated shape found in a template is preserved raw.
type ShapeProperty struct {
	Value *ShapeValue

	// rawAnimated preserves an animated "k" payload verbatim.
	rawAnimated json.RawMessage
}

// MarshalJSON implements json.Marshaler.
func (p ShapeProperty) MarshalJSON() ([]byte, error) {
	if p.rawAnimated != nil {
		return marshalRawProperty(1, p.rawAnimated)
	}
	return marshalRawProperty(0, p.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *ShapeProperty) UnmarshalJSON(data []byte) error {
	var raw rawProperty
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Animated != 0 {
		p.rawAnimated = append(json.RawMessage(nil), raw.Value...)
		return nil
	}
	p.Value = &ShapeValue{}
	return json.Unmarshal(raw.Value, p.Value)
}

func marshalRawProperty(animated int, value any) ([]byte, error) {
	k, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(rawProperty{Animated: animated, Value: k})
}
