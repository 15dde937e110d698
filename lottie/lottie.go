package lottie

import (
	"encoding/json"
	"fmt"
)

// LayerTypeShape is the "ty" discriminator of a shape layer.
const LayerTypeShape = 4

// Animation is the root of a Lottie document.
type Animation struct {
	Version   string          `json:"v,omitempty"`
	Name      string          `json:"nm,omitempty"`
	InPoint   float64         `json:"ip"`
	OutPoint  float64         `json:"op"`
	FrameRate float64         `json:"fr"`
	Width     int64           `json:"w"`
	Height    int64           `json:"h"`
	ThreeD    int             `json:"ddd,omitempty"`
	Assets    json.RawMessage `json:"assets,omitempty"`
	Layers    LayerList       `json:"layers"`
	Markers   json.RawMessage `json:"markers,omitempty"`
}

// Layer is one document layer. The only modelled kind is ShapeLayer;
// other layer types are carried as RawLayer.
type Layer interface {
	// LayerType returns the "ty" discriminator of the layer.
	LayerType() int
}

// ShapeLayer hosts a list of shapes with a layer-level transform.
type ShapeLayer struct {
	Name      string          `json:"nm,omitempty"`
	Index     int             `json:"ind,omitempty"`
	InPoint   float64         `json:"ip"`
	OutPoint  float64         `json:"op"`
	StartTime float64         `json:"st"`
	Stretch   float64         `json:"sr,omitempty"`
	Transform *TransformShape `json:"ks,omitempty"`
	Shapes    ShapeList       `json:"shapes"`
}

// LayerType implements Layer.
func (*ShapeLayer) LayerType() int { return LayerTypeShape }

// RawLayer preserves a layer of an unmodelled type byte-for-byte.
type RawLayer struct {
	Type int
	Raw  json.RawMessage
}

// LayerType implements Layer.
func (l *RawLayer) LayerType() int { return l.Type }

// LayerList is an ordered list of layers with polymorphic JSON
// encoding driven by the numeric "ty" discriminator.
type LayerList []Layer

// MarshalJSON implements json.Marshaler.
func (l LayerList) MarshalJSON() ([]byte, error) {
	items := make([]json.RawMessage, 0, len(l))
	for _, layer := range l {
		if raw, ok := layer.(*RawLayer); ok {
			items = append(items, raw.Raw)
			continue
		}
		body, err := json.Marshal(layer)
		if err != nil {
			return nil, err
		}
		head := fmt.Appendf(nil, `{"ty":%d`, layer.LayerType())
		if string(body) == "{}" {
			items = append(items, append(head, '}'))
			continue
		}
		head = append(head, ',')
		items = append(items, append(head, body[1:]...))
	}
	return json.Marshal(items)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *LayerList) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	out := make(LayerList, 0, len(items))
	for _, item := range items {
		var head struct {
			Type int `json:"ty"`
		}
		if err := json.Unmarshal(item, &head); err != nil {
			return fmt.Errorf("lottie: layer discriminator: %w", err)
		}
		if head.Type != LayerTypeShape {
			out = append(out, &RawLayer{Type: head.Type, Raw: append(json.RawMessage(nil), item...)})
			continue
		}
		layer := &ShapeLayer{}
		if err := json.Unmarshal(item, layer); err != nil {
			return fmt.Errorf("lottie: shape layer: %w", err)
		}
		out = append(out, layer)
	}
	*l = out
	return nil
}

// Parse decodes a Lottie document.
func Parse(data []byte) (*Animation, error) {
	doc := &Animation{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("lottie: parse: %w", err)
	}
	return doc, nil
}

// Marshal serializes the document. The output is order-stable:
// marshalling the same document twice yields byte-identical results.
func Marshal(doc *Animation) ([]byte, error) {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("lottie: marshal: %w", err)
	}
	return append(out, '\n'), nil
}
