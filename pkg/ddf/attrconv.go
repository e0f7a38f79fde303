package ddf

import (
	"fmt"

	"github.com/orthogram/orthogram/pkg/attrs"
	"github.com/orthogram/orthogram/pkg/errors"
)

// attrKeys lists the snake_case DDF attribute keys recognized on every
// entity kind. parseAttrs rejects
// any map key not in this set, implementing the DDF's "unknown keys are
// an error" rule for the attribute portion of an entry;
// callers strip their own structural keys (name, tags, start, end,
// label fields) before calling it.
var attrKeys = map[string]bool{
	"fill": true, "stroke": true, "stroke_width": true, "stroke_dasharray": true,
	"label": true, "label_position": true, "label_distance": true,
	"text_fill": true, "text_line_height": true, "text_orientation": true,
	"font_family": true, "font_size": true, "font_style": true, "font_weight": true,
	"arrow_forward": true, "arrow_back": true, "arrow_base": true, "arrow_aspect": true,
	"buffer_fill": true, "buffer_width": true,
	"margin_top": true, "margin_bottom": true, "margin_left": true, "margin_right": true,
	"padding_top": true, "padding_bottom": true, "padding_left": true, "padding_right": true,
	"min_width": true, "min_height": true,
	"connection_distance": true, "collapse_connections": true, "scale": true,
	"drawing_priority": true, "group": true, "entrances": true, "exits": true,
	"pass_through": true,
}

// parseAttrs converts a raw YAML mapping into an Attributes value,
// rejecting any key outside attrKeys as a CodeDefinition error.
func parseAttrs(m map[string]interface{}) (attrs.Attributes, error) {
	var a attrs.Attributes
	for key, raw := range m {
		if !attrKeys[key] {
			return a, errors.New(errors.CodeDefinition, "unknown attribute key %q", key)
		}
		var err error
		switch key {
		case "fill":
			a.Fill, err = asColor(raw)
		case "stroke":
			a.Stroke, err = asColor(raw)
		case "stroke_width":
			a.StrokeWidth, err = asFloatPtr(raw)
		case "stroke_dasharray":
			a.StrokeDasharray, err = asFloatSlice(raw)
		case "label":
			a.Label, err = asStringPtr(raw)
		case "label_position":
			a.LabelPosition, err = asLabelPosition(raw)
		case "label_distance":
			a.LabelDistance, err = asFloatPtr(raw)
		case "text_fill":
			a.TextFill, err = asColor(raw)
		case "text_line_height":
			a.TextLineHeight, err = asFloatPtr(raw)
		case "text_orientation":
			a.TextOrientation, err = asOrientation(raw)
		case "font_family":
			a.FontFamily, err = asStringPtr(raw)
		case "font_size":
			a.FontSize, err = asFloatPtr(raw)
		case "font_style":
			a.FontStyle, err = asFontStyle(raw)
		case "font_weight":
			a.FontWeight, err = asFontWeight(raw)
		case "arrow_forward":
			a.ArrowForward, err = asBoolPtr(raw)
		case "arrow_back":
			a.ArrowBack, err = asBoolPtr(raw)
		case "arrow_base":
			a.ArrowBase, err = asFloatPtr(raw)
		case "arrow_aspect":
			a.ArrowAspect, err = asFloatPtr(raw)
		case "buffer_fill":
			a.BufferFill, err = asColor(raw)
		case "buffer_width":
			a.BufferWidth, err = asFloatPtr(raw)
		case "margin_top":
			a.MarginTop, err = asFloatPtr(raw)
		case "margin_bottom":
			a.MarginBottom, err = asFloatPtr(raw)
		case "margin_left":
			a.MarginLeft, err = asFloatPtr(raw)
		case "margin_right":
			a.MarginRight, err = asFloatPtr(raw)
		case "padding_top":
			a.PaddingTop, err = asFloatPtr(raw)
		case "padding_bottom":
			a.PaddingBottom, err = asFloatPtr(raw)
		case "padding_left":
			a.PaddingLeft, err = asFloatPtr(raw)
		case "padding_right":
			a.PaddingRight, err = asFloatPtr(raw)
		case "min_width":
			a.MinWidth, err = asFloatPtr(raw)
		case "min_height":
			a.MinHeight, err = asFloatPtr(raw)
		case "connection_distance":
			a.ConnectionDistance, err = asFloatPtr(raw)
		case "collapse_connections":
			a.CollapseConnections, err = asBoolPtr(raw)
		case "scale":
			a.Scale, err = asFloatPtr(raw)
		case "drawing_priority":
			a.DrawingPriority, err = asIntPtr(raw)
		case "group":
			a.Group, err = asStringPtr(raw)
		case "entrances":
			a.Entrances, err = asSides(raw)
		case "exits":
			a.Exits, err = asSides(raw)
		case "pass_through":
			a.PassThrough, err = asBoolPtr(raw)
		}
		if err != nil {
			return attrs.Attributes{}, errors.Wrap(errors.CodeDefinition, err, "attribute %q", key)
		}
	}
	return a, nil
}

func asFloat(raw interface{}) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	}
	return 0, fmt.Errorf("expected a number, got %T", raw)
}

func asFloatPtr(raw interface{}) (*float64, error) {
	v, err := asFloat(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func asIntPtr(raw interface{}) (*int, error) {
	v, err := asFloat(raw)
	if err != nil {
		return nil, err
	}
	n := int(v)
	return &n, nil
}

func asBoolPtr(raw interface{}) (*bool, error) {
	v, ok := raw.(bool)
	if !ok {
		return nil, fmt.Errorf("expected a boolean, got %T", raw)
	}
	return &v, nil
}

func asString(raw interface{}) (string, error) {
	v, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("expected a string, got %T", raw)
	}
	return v, nil
}

func asStringPtr(raw interface{}) (*string, error) {
	v, err := asString(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func asFloatSlice(raw interface{}) ([]float64, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a sequence of numbers, got %T", raw)
	}
	out := make([]float64, len(items))
	for i, it := range items {
		v, err := asFloat(it)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func asColor(raw interface{}) (*attrs.Color, error) {
	items, ok := raw.([]interface{})
	if !ok || (len(items) != 3 && len(items) != 4) {
		return nil, fmt.Errorf("expected a [r,g,b] or [r,g,b,a] sequence, got %v", raw)
	}
	vals := make([]float64, len(items))
	for i, it := range items {
		v, err := asFloat(it)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	c := attrs.Color{R: vals[0], G: vals[1], B: vals[2], A: 1}
	if len(vals) == 4 {
		c.A = vals[3]
	}
	return &c, nil
}

func asSides(raw interface{}) ([]attrs.Side, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a sequence of sides, got %T", raw)
	}
	out := make([]attrs.Side, len(items))
	for i, it := range items {
		s, err := asString(it)
		if err != nil {
			return nil, err
		}
		side := attrs.Side(s)
		if !validSide(side) {
			return nil, fmt.Errorf("%q is not one of top, bottom, left, right", s)
		}
		out[i] = side
	}
	return out, nil
}

func validSide(s attrs.Side) bool {
	for _, v := range attrs.AllSides {
		if v == s {
			return true
		}
	}
	return false
}

func asLabelPosition(raw interface{}) (*attrs.LabelPosition, error) {
	s, err := asString(raw)
	if err != nil {
		return nil, err
	}
	switch attrs.LabelPosition(s) {
	case attrs.LabelBottom, attrs.LabelBottomLeft, attrs.LabelBottomRight,
		attrs.LabelCenter, attrs.LabelTop, attrs.LabelTopLeft, attrs.LabelTopRight:
		p := attrs.LabelPosition(s)
		return &p, nil
	}
	return nil, fmt.Errorf("%q is not a valid label_position", s)
}

func asOrientation(raw interface{}) (*attrs.Orientation, error) {
	s, err := asString(raw)
	if err != nil {
		return nil, err
	}
	switch attrs.Orientation(s) {
	case attrs.OrientationHorizontal, attrs.OrientationVertical, attrs.OrientationFollow:
		o := attrs.Orientation(s)
		return &o, nil
	}
	return nil, fmt.Errorf("%q is not a valid text_orientation", s)
}

func asFontStyle(raw interface{}) (*attrs.FontStyle, error) {
	s, err := asString(raw)
	if err != nil {
		return nil, err
	}
	switch attrs.FontStyle(s) {
	case attrs.FontStyleNormal, attrs.FontStyleItalic, attrs.FontStyleOblique:
		v := attrs.FontStyle(s)
		return &v, nil
	}
	return nil, fmt.Errorf("%q is not a valid font_style", s)
}

func asFontWeight(raw interface{}) (*attrs.FontWeight, error) {
	s, err := asString(raw)
	if err != nil {
		return nil, err
	}
	switch attrs.FontWeight(s) {
	case attrs.FontWeightNormal, attrs.FontWeightBold:
		v := attrs.FontWeight(s)
		return &v, nil
	}
	return nil, fmt.Errorf("%q is not a valid font_weight", s)
}
