package lottie

import (
	"encoding/json"
	"fmt"
)

// Shape type discriminators ("ty" field values).
const (
	ShapeTypeGroup     = "gr"
	ShapeTypePath      = "sh"
	ShapeTypeFill      = "fl"
	ShapeTypeRect      = "rc"
	ShapeTypeTransform = "tr"
)

// Shape is one item of a shape layer or group. Concrete types are
// Group, PathShape, Fill, RectShape and TransformShape; anything else
// found in a document is carried as a RawShape.
type Shape interface {
	// ShapeType returns the "ty" discriminator of the shape.
	ShapeType() string
}

// Group is a container shape. The de-facto player convention is
// [shapes..., fill, transform], with the transform last.
type Group struct {
	Name  string    `json:"nm,omitempty"`
	Items ShapeList `json:"it"`
}

// ShapeType implements Shape.
func (*Group) ShapeType() string { return ShapeTypeGroup }

// PathShape is a bezier path shape.
type PathShape struct {
	Name     string        `json:"nm,omitempty"`
	Vertices ShapeProperty `json:"ks"`
}

// ShapeType implements Shape.
func (*PathShape) ShapeType() string { return ShapeTypePath }

// Fill paints the preceding shapes of the group.
type Fill struct {
	Name    string          `json:"nm,omitempty"`
	Opacity *ScalarProperty `json:"o,omitempty"`
	Color   *VectorProperty `json:"c,omitempty"`
}

// ShapeType implements Shape.
func (*Fill) ShapeType() string { return ShapeTypeFill }

// RectShape is a parametric rectangle. Position is the rectangle
// center, per the Lottie schema.
type RectShape struct {
	Name      string          `json:"nm,omitempty"`
	Position  *VectorProperty `json:"p,omitempty"`
	Size      *VectorProperty `json:"s,omitempty"`
	Roundness *ScalarProperty `json:"r,omitempty"`
}

// ShapeType implements Shape.
func (*RectShape) ShapeType() string { return ShapeTypeRect }

// TransformShape is the transform of a group. Anchor and Position must
// match for rotation and scale to pivot around the anchor.
type TransformShape struct {
	Name     string          `json:"nm,omitempty"`
	Anchor   *VectorProperty `json:"a,omitempty"`
	Position *VectorProperty `json:"p,omitempty"`
	Scale    *VectorProperty `json:"s,omitempty"`
	Rotation *ScalarProperty `json:"r,omitempty"`
	Opacity  *ScalarProperty `json:"o,omitempty"`
}

// ShapeType implements Shape.
func (*TransformShape) ShapeType() string { return ShapeTypeTransform }

// Clone returns a deep copy of the transform.
func (t *TransformShape) Clone() *TransformShape {
	if t == nil {
		return nil
	}
	return &TransformShape{
		Name:     t.Name,
		Anchor:   t.Anchor.Clone(),
		Position: t.Position.Clone(),
		Scale:    t.Scale.Clone(),
		Rotation: t.Rotation.Clone(),
		Opacity:  t.Opacity.Clone(),
	}
}

// RawShape preserves a shape of an unmodelled type byte-for-byte.
type RawShape struct {
	Type string
	Raw  json.RawMessage
}

// ShapeType implements Shape.
func (s *RawShape) ShapeType() string { return s.Type }

// MarshalJSON implements json.Marshaler.
func (s *RawShape) MarshalJSON() ([]byte, error) {
	return s.Raw, nil
}

// ShapeList is an ordered list of shapes with polymorphic JSON
// encoding driven by the "ty" discriminator.
type ShapeList []Shape

// MarshalJSON implements json.Marshaler.
func (l ShapeList) MarshalJSON() ([]byte, error) {
	items := make([]json.RawMessage, 0, len(l))
	for _, s := range l {
		raw, err := marshalShape(s)
		if err != nil {
			return nil, err
		}
		items = append(items, raw)
	}
	return json.Marshal(items)
}

// marshalShape emits the shape body with its "ty" discriminator
// injected first.
func marshalShape(s Shape) (json.RawMessage, error) {
	if raw, ok := s.(*RawShape); ok {
		return raw.Raw, nil
	}
	body, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	head := fmt.Appendf(nil, `{"ty":%q`, s.ShapeType())
	if string(body) == "{}" {
		return append(head, '}'), nil
	}
	// Splice after the opening brace of the body.
	head = append(head, ',')
	return append(head, body[1:]...), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *ShapeList) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	out := make(ShapeList, 0, len(items))
	for _, item := range items {
		s, err := unmarshalShape(item)
		if err != nil {
			return err
		}
		out = append(out, s)
	}
	*l = out
	return nil
}

func unmarshalShape(data json.RawMessage) (Shape, error) {
	var head struct {
		Type string `json:"ty"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("lottie: shape discriminator: %w", err)
	}

	var s Shape
	switch head.Type {
	case ShapeTypeGroup:
		s = &Group{}
	case ShapeTypePath:
		s = &PathShape{}
	case ShapeTypeFill:
		s = &Fill{}
	case ShapeTypeRect:
		s = &RectShape{}
	case ShapeTypeTransform:
		s = &TransformShape{}
	default:
		return &RawShape{Type: head.Type, Raw: append(json.RawMessage(nil), data...)}, nil
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("lottie: shape %q: %w", head.Type, err)
	}
	return s, nil
}
