package render

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/orthogram/orthogram/pkg/attrs"
)

// SVGOption configures an SVGSurface (functional-options pattern, matching
// the rest of this codebase's SVG/PNG/PDF option sets).
type SVGOption func(*SVGSurface)

// WithSVGPadding adds uniform whitespace around the drawing's own Width/
// Height, outside any block or channel margin the Constraint Sizer already
// accounted for.
func WithSVGPadding(px float64) SVGOption {
	return func(s *SVGSurface) { s.padding = px }
}

// WithSVGFontFallback overrides the font-family substituted when a block or
// connection attribute leaves FontFamily unset (Defaults already fills this
// in, so this only matters for hand-built Diagrams that skip attrs.Resolve).
func WithSVGFontFallback(family string) SVGOption {
	return func(s *SVGSurface) { s.fontFallback = family }
}

// SVGSurface is the default Surface: it writes an SVG document directly
// to a bytes.Buffer with fmt.Fprintf rather than building an
// intermediate DOM.
type SVGSurface struct {
	buf          bytes.Buffer
	padding      float64
	fontFallback string
}

// NewSVGSurface builds a ready-to-use SVGSurface.
func NewSVGSurface(opts ...SVGOption) *SVGSurface {
	s := &SVGSurface{fontFallback: "sans-serif"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RenderSVG runs Render against a fresh SVGSurface and returns the
// document bytes.
func RenderSVG(d Diagram, opts ...SVGOption) []byte {
	return Render(d, NewSVGSurface(opts...))
}

func (s *SVGSurface) Begin(width, height float64) {
	w := width + 2*s.padding
	h := height + 2*s.padding
	fmt.Fprintf(&s.buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%.2f" height="%.2f" viewBox="0 0 %.2f %.2f">`+"\n", w, h, w, h)
	fmt.Fprintf(&s.buf, `<g transform="translate(%.2f,%.2f)">`+"\n", s.padding, s.padding)
}

func (s *SVGSurface) Background(a attrs.Attributes) {
	if a.Fill == nil {
		return
	}
	fmt.Fprintf(&s.buf, `<rect x="-1000" y="-1000" width="3000" height="3000" fill="%s" />`+"\n", colorAttr(a.Fill))
}

func (s *SVGSurface) BlockFill(b BlockDraw) {
	fill := "none"
	if b.Attrs.Fill != nil {
		fill = colorAttr(b.Attrs.Fill)
	}
	fmt.Fprintf(&s.buf, `<rect class="block" data-name=%q x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" />`+"\n",
		b.Name, b.Rect.Left, b.Rect.Top, b.Rect.Right-b.Rect.Left, b.Rect.Bottom-b.Rect.Top, fill)
}

func (s *SVGSurface) BlockStroke(b BlockDraw) {
	stroke, width := strokeAttrs(b.Attrs.Stroke, b.Attrs.StrokeWidth)
	if width == 0 {
		return
	}
	fmt.Fprintf(&s.buf, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s" stroke-width="%.2f"%s />`+"\n",
		b.Rect.Left, b.Rect.Top, b.Rect.Right-b.Rect.Left, b.Rect.Bottom-b.Rect.Top, stroke, width, dasharrayAttr(b.Attrs.StrokeDasharray))
}

func (s *SVGSurface) BlockLabel(b BlockDraw) {
	text := ""
	if b.Attrs.Label != nil {
		text = *b.Attrs.Label
	}
	if text == "" {
		return
	}
	x, y, anchor := labelAnchor(b.Rect, b.Attrs.LabelPosition)
	s.text(text, x, y, anchor, b.Attrs)
}

func (s *SVGSurface) ConnectionBuffer(c ConnectionDraw) {
	if c.Attrs.BufferWidth == nil || *c.Attrs.BufferWidth <= 0 {
		return
	}
	fill := "none"
	if c.Attrs.BufferFill != nil {
		fill = colorAttr(c.Attrs.BufferFill)
	}
	fmt.Fprintf(&s.buf, `<polyline points="%s" fill="none" stroke="%s" stroke-width="%.2f" stroke-linejoin="round" />`+"\n",
		polylinePoints(c.Points), fill, *c.Attrs.BufferWidth)
}

func (s *SVGSurface) ConnectionStroke(c ConnectionDraw) {
	stroke, width := strokeAttrs(c.Attrs.Stroke, c.Attrs.StrokeWidth)
	if width == 0 {
		width = 1
	}
	fmt.Fprintf(&s.buf, `<polyline class="connection" data-group=%q points="%s" fill="none" stroke="%s" stroke-width="%.2f" stroke-linejoin="round"%s />`+"\n",
		c.Group, polylinePoints(c.Points), stroke, width, dasharrayAttr(c.Attrs.StrokeDasharray))
}

func (s *SVGSurface) Arrowheads(c ConnectionDraw) {
	if len(c.Points) < 2 {
		return
	}
	base, aspect := 3.0, 1.5
	if c.Attrs.ArrowBase != nil {
		base = *c.Attrs.ArrowBase
	}
	if c.Attrs.ArrowAspect != nil {
		aspect = *c.Attrs.ArrowAspect
	}
	color := "black"
	if c.Attrs.Stroke != nil {
		color = colorAttr(c.Attrs.Stroke)
	}
	if c.ArrowForward {
		n := len(c.Points)
		s.arrowhead(c.Points[n-2], c.Points[n-1], base, aspect, color)
	}
	if c.ArrowBack {
		s.arrowhead(c.Points[1], c.Points[0], base, aspect, color)
	}
}

func (s *SVGSurface) arrowhead(from, to Point, base, aspect float64, color string) {
	dx, dy := to.X-from.X, to.Y-from.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length
	px, py := -uy, ux
	tipX, tipY := to.X, to.Y
	backX, backY := tipX-ux*base*aspect, tipY-uy*base*aspect
	leftX, leftY := backX+px*base, backY+py*base
	rightX, rightY := backX-px*base, backY-py*base
	fmt.Fprintf(&s.buf, `<polygon points="%.2f,%.2f %.2f,%.2f %.2f,%.2f" fill="%s" />`+"\n",
		tipX, tipY, leftX, leftY, rightX, rightY, color)
}

func (s *SVGSurface) ConnectionLabels(c ConnectionDraw) {
	for _, l := range c.Labels {
		s.text(l.Text, l.At.X, l.At.Y, "middle", l.Attrs)
	}
}

func (s *SVGSurface) DiagramLabel(text string, a attrs.Attributes, width, height float64) {
	if text == "" {
		return
	}
	s.text(text, width/2, height+16, "middle", a)
}

func (s *SVGSurface) text(value string, x, y float64, anchor string, a attrs.Attributes) {
	family := s.fontFallback
	if a.FontFamily != nil {
		family = *a.FontFamily
	}
	size := 12.0
	if a.FontSize != nil {
		size = *a.FontSize
	}
	fill := "black"
	if a.TextFill != nil {
		fill = colorAttr(a.TextFill)
	}
	weight := "normal"
	if a.FontWeight != nil {
		weight = string(*a.FontWeight)
	}
	style := "normal"
	if a.FontStyle != nil {
		style = string(*a.FontStyle)
	}
	fmt.Fprintf(&s.buf, `<text x="%.2f" y="%.2f" text-anchor="%s" font-family="%s" font-size="%.2f" font-weight="%s" font-style="%s" fill="%s">%s</text>`+"\n",
		x, y, anchor, family, size, weight, style, fill, escapeText(value))
}

func (s *SVGSurface) End() []byte {
	s.buf.WriteString("</g>\n</svg>\n")
	return s.buf.Bytes()
}

func polylinePoints(points []Point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

func colorAttr(c *attrs.Color) string {
	if c == nil {
		return "none"
	}
	if c.A >= 1 {
		return fmt.Sprintf("rgb(%d,%d,%d)", clamp255(c.R), clamp255(c.G), clamp255(c.B))
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", clamp255(c.R), clamp255(c.G), clamp255(c.B), c.A)
}

func clamp255(v float64) int {
	n := int(v * 255)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

func strokeAttrs(c *attrs.Color, width *float64) (string, float64) {
	w := 0.0
	if width != nil {
		w = *width
	}
	if w <= 0 {
		return "none", 0
	}
	return colorAttr(c), w
}

func dasharrayAttr(pattern []float64) string {
	if len(pattern) == 0 {
		return ""
	}
	parts := make([]string, len(pattern))
	for i, v := range pattern {
		parts[i] = fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf(` stroke-dasharray="%s"`, strings.Join(parts, ","))
}

func labelAnchor(r Rect, pos *attrs.LabelPosition) (x, y float64, anchor string) {
	cx, cy := (r.Left+r.Right)/2, (r.Top+r.Bottom)/2
	p := attrs.LabelCenter
	if pos != nil {
		p = *pos
	}
	switch p {
	case attrs.LabelTop:
		return cx, r.Top - 4, "middle"
	case attrs.LabelTopLeft:
		return r.Left, r.Top - 4, "start"
	case attrs.LabelTopRight:
		return r.Right, r.Top - 4, "end"
	case attrs.LabelBottom:
		return cx, r.Bottom + 14, "middle"
	case attrs.LabelBottomLeft:
		return r.Left, r.Bottom + 14, "start"
	case attrs.LabelBottomRight:
		return r.Right, r.Bottom + 14, "end"
	default:
		return cx, cy, "middle"
	}
}

func escapeText(v string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(v)
}
