// Package attrs implements the flat attribute record used for styling and
// geometry options and its inheritance resolution.
//
// An Attributes value carries every field in the attribute catalogue.
// Fields are pointers so "not set on this entity" can be told
// apart from "explicitly set to the zero value" while folding the
// inheritance chain: an entity's own attributes, then its explicit style
// list (later styles override earlier ones), then a default_block or
// default_connection named style if present, then built-in defaults.
// Styles never reference other styles, so inheritance resolution is a
// single linear fold with no cycle to guard against.
package attrs

// Kind discriminates which entity an Attributes value is attached to.
// Resolve uses it to pick the default named style, and Defaults uses it
// to add the all-sides entrances/exits defaults for connections; this
// package keeps no per-Kind table of applicable fields.
type Kind int

const (
	KindDiagram Kind = iota
	KindBlock
	KindConnection
	KindGroup
	KindStyle
)

// Color is an RGBA color with channels in [0,1]. A triple [r,g,b] from the
// DDF is read with A defaulting to 1.
type Color struct {
	R, G, B, A float64
}

// Orientation is the text_orientation attribute.
type Orientation string

const (
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
	OrientationFollow     Orientation = "follow"
)

// LabelPosition is the label_position attribute for block labels.
type LabelPosition string

const (
	LabelBottom      LabelPosition = "bottom"
	LabelBottomLeft  LabelPosition = "bottom_left"
	LabelBottomRight LabelPosition = "bottom_right"
	LabelCenter      LabelPosition = "center"
	LabelTop         LabelPosition = "top"
	LabelTopLeft     LabelPosition = "top_left"
	LabelTopRight    LabelPosition = "top_right"
)

// FontStyle is the font_style attribute.
type FontStyle string

const (
	FontStyleNormal  FontStyle = "normal"
	FontStyleItalic  FontStyle = "italic"
	FontStyleOblique FontStyle = "oblique"
)

// FontWeight is the font_weight attribute.
type FontWeight string

const (
	FontWeightNormal FontWeight = "normal"
	FontWeightBold   FontWeight = "bold"
)

// Side is one member of the entrances/exits attribute sets.
type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// AllSides is the full {top,bottom,left,right} set, used when entrances or
// exits is left unspecified on a connection.
var AllSides = []Side{SideTop, SideBottom, SideLeft, SideRight}

// Attributes is the flat, optional-field styling/geometry record. Every
// field mirrors one row of the attribute catalogue.
type Attributes struct {
	Fill            *Color
	Stroke          *Color
	StrokeWidth     *float64
	StrokeDasharray []float64

	Label         *string
	LabelPosition *LabelPosition
	LabelDistance *float64
	TextFill      *Color
	TextLineHeight *float64
	TextOrientation *Orientation
	FontFamily    *string
	FontSize      *float64
	FontStyle     *FontStyle
	FontWeight    *FontWeight

	ArrowForward *bool
	ArrowBack    *bool
	ArrowBase    *float64
	ArrowAspect  *float64

	BufferFill  *Color
	BufferWidth *float64

	MarginTop    *float64
	MarginBottom *float64
	MarginLeft   *float64
	MarginRight  *float64

	PaddingTop    *float64
	PaddingBottom *float64
	PaddingLeft   *float64
	PaddingRight  *float64

	MinWidth  *float64
	MinHeight *float64

	ConnectionDistance  *float64
	CollapseConnections *bool
	Scale               *float64

	DrawingPriority *int
	Group           *string
	Entrances       []Side
	Exits           []Side
	PassThrough     *bool
}

// Styles is a named collection of Attributes resolved from the DDF
// `styles` top-level key. Style name lookups are
// insertion-order-irrelevant: the map below is the storage,
// an entity's own `styles:` list is what carries definition order.
type Styles map[string]Attributes

// DefaultBlockStyleName and DefaultConnectionStyleName are the two style
// names with special meaning: when present, they supply the defaults for
// autogenerated blocks and for connections, respectively.
const (
	DefaultBlockStyleName      = "default_block"
	DefaultConnectionStyleName = "default_connection"
)

// Resolve folds an entity's own attributes with its explicit style list (in
// order, later overrides earlier), the named default style for its Kind if
// one exists in styles, and finally built-in defaults. It never mutates its
// inputs.
func Resolve(own Attributes, styleNames []string, styles Styles, kind Kind) Attributes {
	result := Attributes{}

	defaultName := ""
	switch kind {
	case KindBlock:
		defaultName = DefaultBlockStyleName
	case KindConnection:
		defaultName = DefaultConnectionStyleName
	}
	if defaultName != "" {
		if def, ok := styles[defaultName]; ok {
			result = merge(result, def)
		}
	}

	for _, name := range styleNames {
		if s, ok := styles[name]; ok {
			result = merge(result, s)
		}
	}

	result = merge(result, own)
	return merge(Defaults(kind), result)
}

// Merge overlays override on top of base, field by field: any field set
// on override replaces the corresponding field of base. It is the
// building block Resolve folds repeatedly; pkg/ddf also uses it
// directly to apply the DDF's own "later file overrides scalar
// attributes" include-merge rule ahead of any style or
// default resolution.
func Merge(base, override Attributes) Attributes { return merge(base, override) }

// merge overlays override on top of base: any field set (non-nil/non-empty)
// on override replaces the corresponding field of base.
func merge(base, override Attributes) Attributes {
	out := base

	if override.Fill != nil {
		out.Fill = override.Fill
	}
	if override.Stroke != nil {
		out.Stroke = override.Stroke
	}
	if override.StrokeWidth != nil {
		out.StrokeWidth = override.StrokeWidth
	}
	if override.StrokeDasharray != nil {
		out.StrokeDasharray = override.StrokeDasharray
	}
	if override.Label != nil {
		out.Label = override.Label
	}
	if override.LabelPosition != nil {
		out.LabelPosition = override.LabelPosition
	}
	if override.LabelDistance != nil {
		out.LabelDistance = override.LabelDistance
	}
	if override.TextFill != nil {
		out.TextFill = override.TextFill
	}
	if override.TextLineHeight != nil {
		out.TextLineHeight = override.TextLineHeight
	}
	if override.TextOrientation != nil {
		out.TextOrientation = override.TextOrientation
	}
	if override.FontFamily != nil {
		out.FontFamily = override.FontFamily
	}
	if override.FontSize != nil {
		out.FontSize = override.FontSize
	}
	if override.FontStyle != nil {
		out.FontStyle = override.FontStyle
	}
	if override.FontWeight != nil {
		out.FontWeight = override.FontWeight
	}
	if override.ArrowForward != nil {
		out.ArrowForward = override.ArrowForward
	}
	if override.ArrowBack != nil {
		out.ArrowBack = override.ArrowBack
	}
	if override.ArrowBase != nil {
		out.ArrowBase = override.ArrowBase
	}
	if override.ArrowAspect != nil {
		out.ArrowAspect = override.ArrowAspect
	}
	if override.BufferFill != nil {
		out.BufferFill = override.BufferFill
	}
	if override.BufferWidth != nil {
		out.BufferWidth = override.BufferWidth
	}
	if override.MarginTop != nil {
		out.MarginTop = override.MarginTop
	}
	if override.MarginBottom != nil {
		out.MarginBottom = override.MarginBottom
	}
	if override.MarginLeft != nil {
		out.MarginLeft = override.MarginLeft
	}
	if override.MarginRight != nil {
		out.MarginRight = override.MarginRight
	}
	if override.PaddingTop != nil {
		out.PaddingTop = override.PaddingTop
	}
	if override.PaddingBottom != nil {
		out.PaddingBottom = override.PaddingBottom
	}
	if override.PaddingLeft != nil {
		out.PaddingLeft = override.PaddingLeft
	}
	if override.PaddingRight != nil {
		out.PaddingRight = override.PaddingRight
	}
	if override.MinWidth != nil {
		out.MinWidth = override.MinWidth
	}
	if override.MinHeight != nil {
		out.MinHeight = override.MinHeight
	}
	if override.ConnectionDistance != nil {
		out.ConnectionDistance = override.ConnectionDistance
	}
	if override.CollapseConnections != nil {
		out.CollapseConnections = override.CollapseConnections
	}
	if override.Scale != nil {
		out.Scale = override.Scale
	}
	if override.DrawingPriority != nil {
		out.DrawingPriority = override.DrawingPriority
	}
	if override.Group != nil {
		out.Group = override.Group
	}
	if override.Entrances != nil {
		out.Entrances = override.Entrances
	}
	if override.Exits != nil {
		out.Exits = override.Exits
	}
	if override.PassThrough != nil {
		out.PassThrough = override.PassThrough
	}
	return out
}

func f64(v float64) *float64 { return &v }
func b(v bool) *bool         { return &v }
func i(v int) *int           { return &v }
func s(v string) *string     { return &v }
func clr(r, g, b, a float64) *Color { return &Color{R: r, G: g, B: b, A: a} }

// Defaults returns the built-in attribute defaults for the given entity
// Kind.
func Defaults(kind Kind) Attributes {
	d := Attributes{
		Fill:                clr(1, 1, 1, 1),
		Stroke:              clr(0, 0, 0, 1),
		StrokeWidth:         f64(2),
		Label:               s(""),
		LabelPosition:       labelPos(LabelCenter),
		LabelDistance:       f64(4),
		TextFill:            clr(0, 0, 0, 1),
		TextLineHeight:      f64(1.2),
		TextOrientation:     orient(OrientationHorizontal),
		FontFamily:          s("sans-serif"),
		FontSize:            f64(12),
		FontStyle:           fontStyle(FontStyleNormal),
		FontWeight:          fontWeight(FontWeightNormal),
		ArrowForward:        b(true),
		ArrowBack:           b(false),
		ArrowBase:           f64(3),
		ArrowAspect:         f64(1.5),
		BufferWidth:         f64(0),
		MarginTop:           f64(0),
		MarginBottom:        f64(0),
		MarginLeft:          f64(0),
		MarginRight:         f64(0),
		PaddingTop:          f64(4),
		PaddingBottom:       f64(4),
		PaddingLeft:         f64(4),
		PaddingRight:        f64(4),
		MinWidth:            f64(0),
		MinHeight:           f64(0),
		ConnectionDistance:  f64(4),
		CollapseConnections: b(false),
		Scale:               f64(1),
		DrawingPriority:     i(0),
		PassThrough:         b(false),
	}
	if kind == KindConnection {
		d.Entrances = append([]Side(nil), AllSides...)
		d.Exits = append([]Side(nil), AllSides...)
	}
	return d
}

func labelPos(p LabelPosition) *LabelPosition { return &p }
func orient(o Orientation) *Orientation       { return &o }
func fontStyle(f FontStyle) *FontStyle        { return &f }
func fontWeight(w FontWeight) *FontWeight     { return &w }
