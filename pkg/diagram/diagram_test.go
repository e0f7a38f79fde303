package diagram

import (
	"testing"

	"github.com/orthogram/orthogram/pkg/ddf"
	"github.com/orthogram/orthogram/pkg/errors"
)

func fakeFS(files map[string][]byte) ddf.ReadFile {
	return func(p string) ([]byte, error) {
		if data, ok := files[p]; ok {
			return data, nil
		}
		return nil, errors.New(errors.CodeDefinition, "no such file %q", p)
	}
}

func loadDoc(t *testing.T, yaml string) ddf.Document {
	t.Helper()
	doc, err := ddf.LoadWith("main.yaml", fakeFS(map[string][]byte{"main.yaml": []byte(yaml)}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return doc
}

func TestBuildTwoBlocksOneConnection(t *testing.T) {
	doc := loadDoc(t, `
rows:
  - [a, b]
connections:
  - start: a
    end: b
`)

	d, err := Build(doc, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if d.Width <= 0 || d.Height <= 0 {
		t.Fatalf("expected positive dimensions, got %v x %v", d.Width, d.Height)
	}
	if len(d.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(d.Blocks))
	}
	if len(d.Connections) != 1 {
		t.Fatalf("expected 1 connection, got %d", len(d.Connections))
	}
	if len(d.Connections[0].Points) < 2 {
		t.Fatalf("expected a routed polyline, got %+v", d.Connections[0].Points)
	}
}

func TestBuildUnknownBlockIsDefinitionError(t *testing.T) {
	doc := loadDoc(t, `
rows:
  - [a, b]
connections:
  - start: a
    end: nonexistent
`)

	_, err := Build(doc, Options{})
	if !errors.Is(err, errors.CodeDefinition) {
		t.Fatalf("expected CodeDefinition, got %v", err)
	}
}

func TestBuildCellTargetedEndpoint(t *testing.T) {
	doc := loadDoc(t, `
rows:
  - [a1, a2]
  - [a3, b]
blocks:
  - name: a
    tags: [a1, a2, a3]
connections:
  - start: {a: a1}
    end: b
`)

	d, err := Build(doc, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(d.Connections) != 1 {
		t.Fatalf("expected 1 connection, got %d", len(d.Connections))
	}
}

func TestBuildCollapsesGroupedConnections(t *testing.T) {
	doc := loadDoc(t, `
rows:
  - [a, mid, b]
connections:
  - start: a
    end: mid
    group: water
    collapse_connections: true
  - start: a
    end: mid
    group: water
    collapse_connections: true
`)

	d, err := Build(doc, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(d.Connections) != 2 {
		t.Fatalf("expected both connections to still be drawn (collapse only merges segments), got %d", len(d.Connections))
	}
	for _, c := range d.Connections {
		if c.Group != "water" {
			t.Errorf("expected group %q, got %q", "water", c.Group)
		}
	}
}

func TestBuildGroupSharesMaxPriority(t *testing.T) {
	doc := loadDoc(t, `
rows:
  - [a, b]
connections:
  - start: a
    end: b
    group: g
    drawing_priority: 1
  - start: a
    end: b
    group: g
    drawing_priority: 5
`)

	d, err := Build(doc, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, c := range d.Connections {
		if c.Priority != 5 {
			t.Errorf("expected every group member to adopt priority 5, got %d", c.Priority)
		}
	}
}

func TestBuildAppliesGroupAttributes(t *testing.T) {
	doc := loadDoc(t, `
rows:
  - [a, b]
groups:
  water:
    stroke: [0, 0, 1]
connections:
  - start: a
    end: b
    group: water
`)

	d, err := Build(doc, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	c := d.Connections[0]
	if c.Attrs.Stroke == nil || c.Attrs.Stroke.B != 1 {
		t.Fatalf("expected the water group's stroke to apply, got %+v", c.Attrs.Stroke)
	}
}
