package dice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// objectDocument is the serialized form shared by every variant. Variants
// embed it so their own fields appear at the top level of the same object.
type objectDocument struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Description string            `json:"description"`
	Tags        []string          `json:"tags"`
	Position    [2]float64        `json:"position"`
	Rotation    float64           `json:"rotation"`
	Scale       [2]float64        `json:"scale"`
	Color       [4]int            `json:"color"`
	ZOrder      int               `json:"zOrder"`
	Active      bool              `json:"active"`
	Visible     bool              `json:"visible"`
	Draggable   bool              `json:"draggable"`
	Properties  map[string]any    `json:"properties"`
	LuaScript   string            `json:"luaScript,omitempty"`
	Children    []json.RawMessage `json:"children,omitempty"`
}

// objectPatch mirrors objectDocument with pointer fields so absent keys can be
// told apart from zero values. Children are never read here; see Registry.
type objectPatch struct {
	ID          *string         `json:"id"`
	Name        *string         `json:"name"`
	Type        *string         `json:"type"`
	Description *string         `json:"description"`
	Tags        *[]string       `json:"tags"`
	Position    *[2]float64     `json:"position"`
	Rotation    *float64        `json:"rotation"`
	Scale       *[2]float64     `json:"scale"`
	Color       *[4]json.Number `json:"color"`
	ZOrder      *json.Number    `json:"zOrder"`
	Active      *bool           `json:"active"`
	Visible     *bool           `json:"visible"`
	Draggable   *bool           `json:"draggable"`
	Properties  *map[string]any `json:"properties"`
	LuaScript   *string         `json:"luaScript"`
}

// document builds the serialized form of the object and, recursively, of
// its children through their own MarshalJSON.
func (o *Object) document() (objectDocument, error) {
	tags := o.tags
	if tags == nil {
		tags = []string{}
	}
	doc := objectDocument{
		ID:          o.ID,
		Name:        o.Name,
		Type:        o.Type,
		Description: o.Description,
		Tags:        tags,
		Position:    [2]float64{o.X, o.Y},
		Rotation:    o.Rotation,
		Scale:       [2]float64{o.ScaleX, o.ScaleY},
		Color:       [4]int{int(o.Color.R), int(o.Color.G), int(o.Color.B), int(o.Color.A)},
		ZOrder:      o.ZOrder,
		Active:      o.Active,
		Visible:     o.Visible,
		Draggable:   o.Draggable,
		Properties:  encodeProperties(o.properties),
		LuaScript:   o.LuaScript,
	}
	for _, child := range o.children {
		b, err := child.MarshalJSON()
		if err != nil {
			return doc, fmt.Errorf("dice: encode child %q of %q: %w", child.Base().ID, o.ID, err)
		}
		doc.Children = append(doc.Children, b)
	}
	return doc, nil
}

// MarshalJSON encodes the object and its subtree.
func (o *Object) MarshalJSON() ([]byte, error) {
	doc, err := o.document()
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// UnmarshalJSON applies the fields present in data and leaves every absent
// field untouched, so partial documents act as patches. The children array is
// ignored; use a Registry to rebuild subtrees. A document that fails to decode
// leaves the object unchanged.
func (o *Object) UnmarshalJSON(data []byte) error {
	apply, err := o.decode(data)
	if err != nil {
		return err
	}
	apply()
	return nil
}

// decode validates data and returns a function that applies it. Nothing is
// modified until the returned function runs, so variants can validate their
// own fields before any state changes.
func (o *Object) decode(data []byte) (func(), error) {
	var p objectPatch
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("dice: decode object: %w", err)
	}

	var props map[string]any
	if p.Properties != nil {
		props = make(map[string]any, len(*p.Properties))
		for k, v := range *p.Properties {
			nv, err := normalizeValue(v)
			if err != nil {
				return nil, fmt.Errorf("dice: decode property %q: %w", k, err)
			}
			props[k] = nv
		}
	}
	var zOrder int
	if p.ZOrder != nil {
		z, err := integer(*p.ZOrder)
		if err != nil {
			return nil, fmt.Errorf("dice: decode zOrder: %w", err)
		}
		zOrder = z
	}
	var rgba [4]int
	if p.Color != nil {
		for i, n := range *p.Color {
			v, err := integer(n)
			if err != nil {
				return nil, fmt.Errorf("dice: decode color: %w", err)
			}
			rgba[i] = v
		}
	}

	return func() {
		if props != nil {
			o.properties = props
		}
		if p.ID != nil {
			o.ID = *p.ID
		}
		if p.Name != nil {
			o.Name = *p.Name
		}
		if p.Type != nil {
			o.Type = *p.Type
		}
		if p.Description != nil {
			o.Description = *p.Description
		}
		if p.Tags != nil {
			o.tags = append([]string(nil), (*p.Tags)...)
		}
		if p.Position != nil {
			o.SetPosition(p.Position[0], p.Position[1])
		}
		if p.Rotation != nil {
			o.SetRotation(*p.Rotation)
		}
		if p.Scale != nil {
			o.SetScale(p.Scale[0], p.Scale[1])
		}
		if p.Color != nil {
			o.SetColor(color.RGBA{R: channel(rgba[0]), G: channel(rgba[1]), B: channel(rgba[2]), A: channel(rgba[3])})
		}
		if p.ZOrder != nil {
			o.ZOrder = zOrder
		}
		if p.Active != nil {
			o.Active = *p.Active
		}
		if p.Visible != nil {
			o.Visible = *p.Visible
		}
		if p.Draggable != nil {
			o.Draggable = *p.Draggable
		}
		if p.LuaScript != nil {
			o.LuaScript = *p.LuaScript
		}
		logger.Debug("loaded object", zap.String("object", o.ID))
	}, nil
}

// integer converts a JSON number to an int. Integral floats such as 2.0 are
// accepted; fractional values are not. An empty number, left by a null or
// missing array element, is zero.
func integer(n json.Number) (int, error) {
	if n == "" {
		return 0, nil
	}
	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("%s is not an integer", n)
	}
	return int(f), nil
}

// channel clamps a color component to 0-255.
func channel(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}

// jsonFloat keeps integral floats distinguishable from integers in the
// encoded document ("2.0" rather than "2"), so property kinds survive a
// save/load cycle.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	s := strconv.FormatFloat(float64(f), 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return []byte(s), nil
}

// encodeProperties returns a copy of props with float64 values wrapped in
// jsonFloat. The result is never nil so an empty bag encodes as {}.
func encodeProperties(props map[string]any) map[string]any {
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = encodeValue(v)
	}
	return out
}

func encodeValue(v any) any {
	switch x := v.(type) {
	case float64:
		return jsonFloat(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = encodeValue(e)
		}
		return out
	case map[string]any:
		return encodeProperties(x)
	default:
		return v
	}
}
