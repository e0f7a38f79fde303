package render

import (
	"strings"
	"testing"

	"github.com/orthogram/orthogram/pkg/attrs"
)

func sampleDiagram() Diagram {
	fill := attrs.Color{R: 1, G: 1, B: 1, A: 1}
	return Diagram{
		Width:  100,
		Height: 50,
		Blocks: []BlockDraw{
			{Name: "a", Rect: Rect{Left: 0, Top: 0, Right: 40, Bottom: 20}, Attrs: attrs.Attributes{Fill: &fill}},
			{Name: "b", Rect: Rect{Left: 60, Top: 0, Right: 100, Bottom: 20}, Attrs: attrs.Attributes{Fill: &fill}},
		},
		Connections: []ConnectionDraw{
			{Group: "", Priority: 1, DefinitionIndex: 0, Points: []Point{{X: 40, Y: 10}, {X: 60, Y: 10}}},
			{Group: "", Priority: 0, DefinitionIndex: 1, Points: []Point{{X: 0, Y: 20}, {X: 0, Y: 40}}},
		},
	}
}

type recordingSurface struct {
	calls []string
}

func (r *recordingSurface) Begin(w, h float64)          { r.calls = append(r.calls, "begin") }
func (r *recordingSurface) Background(a attrs.Attributes) { r.calls = append(r.calls, "background") }
func (r *recordingSurface) BlockFill(b BlockDraw)        { r.calls = append(r.calls, "fill:"+b.Name) }
func (r *recordingSurface) BlockStroke(b BlockDraw)      { r.calls = append(r.calls, "stroke:"+b.Name) }
func (r *recordingSurface) BlockLabel(b BlockDraw)       { r.calls = append(r.calls, "label:"+b.Name) }
func (r *recordingSurface) ConnectionBuffer(c ConnectionDraw) {
	r.calls = append(r.calls, "buffer")
}
func (r *recordingSurface) ConnectionStroke(c ConnectionDraw) {
	r.calls = append(r.calls, "connstroke")
}
func (r *recordingSurface) Arrowheads(c ConnectionDraw) { r.calls = append(r.calls, "arrow") }
func (r *recordingSurface) ConnectionLabels(c ConnectionDraw) {
	r.calls = append(r.calls, "connlabel")
}
func (r *recordingSurface) DiagramLabel(text string, a attrs.Attributes, w, h float64) {
	r.calls = append(r.calls, "diagramlabel")
}
func (r *recordingSurface) End() []byte { return nil }

func TestRenderFollowsBlocksThenConnectionsThenLabelOrder(t *testing.T) {
	rec := &recordingSurface{}
	Render(sampleDiagram(), rec)

	joined := strings.Join(rec.calls, ",")
	wantPrefix := "begin,background,fill:a,stroke:a,label:a,fill:b,stroke:b,label:b,"
	if !strings.HasPrefix(joined, wantPrefix) {
		t.Fatalf("calls = %v, want prefix %q", rec.calls, wantPrefix)
	}
	if !strings.HasSuffix(joined, "diagramlabel") {
		t.Fatalf("calls = %v, want to end with diagramlabel", rec.calls)
	}
}

func TestRenderOrdersConnectionsByAscendingPriorityThenDefinitionIndex(t *testing.T) {
	d := sampleDiagram()
	ordered := orderConnections(d.Connections)
	if ordered[0].DefinitionIndex != 1 || ordered[1].DefinitionIndex != 0 {
		t.Fatalf("expected priority-0 connection (index 1) drawn before priority-1 connection (index 0), got %+v", ordered)
	}
}

func TestRenderDoesNotMutateInputConnectionSlice(t *testing.T) {
	d := sampleDiagram()
	original := append([]ConnectionDraw(nil), d.Connections...)
	_ = orderConnections(d.Connections)
	for i := range d.Connections {
		if d.Connections[i].DefinitionIndex != original[i].DefinitionIndex {
			t.Fatalf("input slice was mutated at index %d", i)
		}
	}
}

func TestRenderSVGProducesWellFormedDocument(t *testing.T) {
	out := RenderSVG(sampleDiagram())
	s := string(out)
	if !strings.Contains(s, "<svg") || !strings.Contains(s, "</svg>") {
		t.Fatalf("expected an svg document, got: %s", s)
	}
	if !strings.Contains(s, `data-name="a"`) || !strings.Contains(s, `data-name="b"`) {
		t.Fatalf("expected both blocks rendered, got: %s", s)
	}
}

func TestSVGEscapesLabelText(t *testing.T) {
	s := NewSVGSurface()
	label := "a < b & c"
	s.text(label, 0, 0, "middle", attrs.Attributes{})
	out := s.buf.String()
	if strings.Contains(out, "< b") {
		t.Fatalf("expected label text to be escaped, got: %s", out)
	}
	if !strings.Contains(out, "&lt; b &amp; c") {
		t.Fatalf("expected escaped label text, got: %s", out)
	}
}
