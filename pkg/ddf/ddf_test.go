package ddf

import (
	"testing"

	"github.com/orthogram/orthogram/pkg/errors"
)

func fakeFS(files map[string][]byte) ReadFile {
	return func(p string) ([]byte, error) {
		if data, ok := files[p]; ok {
			return data, nil
		}
		return nil, errors.New(errors.CodeDefinition, "no such file %q", p)
	}
}

func TestLoadParsesRowsBlocksAndConnections(t *testing.T) {
	files := map[string][]byte{
		"main.yaml": []byte(`
rows:
  - [a, b]
blocks:
  - name: a
    fill: [1, 0, 0]
connections:
  - start: a
    end: b
`),
	}
	doc, err := LoadWith("main.yaml", fakeFS(files))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Rows) != 1 || doc.Rows[0][0] != "a" || doc.Rows[0][1] != "b" {
		t.Fatalf("rows = %+v", doc.Rows)
	}
	if len(doc.Blocks) != 1 || doc.Blocks[0].Name != "a" {
		t.Fatalf("blocks = %+v", doc.Blocks)
	}
	if len(doc.Connections) != 1 || doc.Connections[0].Starts[0].Block != "a" || doc.Connections[0].Ends[0].Block != "b" {
		t.Fatalf("connections = %+v", doc.Connections)
	}
}

func TestLoadRejectsUnknownTopLevelKey(t *testing.T) {
	files := map[string][]byte{"main.yaml": []byte("bogus: 1\n")}
	_, err := LoadWith("main.yaml", fakeFS(files))
	if !errors.Is(err, errors.CodeDefinition) {
		t.Fatalf("expected CodeDefinition, got %v", err)
	}
}

func TestLoadRejectsUnknownAttributeKey(t *testing.T) {
	files := map[string][]byte{"main.yaml": []byte("diagram:\n  not_a_real_attribute: 1\n")}
	_, err := LoadWith("main.yaml", fakeFS(files))
	if !errors.Is(err, errors.CodeDefinition) {
		t.Fatalf("expected CodeDefinition, got %v", err)
	}
}

func TestLoadResolvesIncludesDepthFirstAndMergesRows(t *testing.T) {
	files := map[string][]byte{
		"main.yaml": []byte(`
include:
  - {path: base.yaml}
rows:
  - [c]
`),
		"base.yaml": []byte(`
rows:
  - [a]
  - [b]
`),
	}
	doc, err := LoadWith("main.yaml", fakeFS(files))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Rows) != 3 || doc.Rows[2][0] != "c" {
		t.Fatalf("expected included rows first then this file's own rows appended, got %+v", doc.Rows)
	}
}

func TestLoadDeduplicatesRepeatedIncludes(t *testing.T) {
	files := map[string][]byte{
		"main.yaml": []byte(`
include:
  - {path: shared.yaml}
  - {path: shared.yaml}
`),
		"shared.yaml": []byte("rows:\n  - [a]\n"),
	}
	doc, err := LoadWith("main.yaml", fakeFS(files))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Rows) != 1 {
		t.Fatalf("expected shared.yaml to be loaded only once, got rows=%+v", doc.Rows)
	}
}

func TestLoadParsesCSVIncludeAsRowsOnly(t *testing.T) {
	files := map[string][]byte{
		"main.yaml": []byte(`
include:
  - {path: grid.csv}
`),
		"grid.csv": []byte("a,b\nc,d\n"),
	}
	doc, err := LoadWith("main.yaml", fakeFS(files))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Rows) != 2 || doc.Rows[0][1] != "b" || doc.Rows[1][1] != "d" {
		t.Fatalf("rows = %+v", doc.Rows)
	}
}

func TestExpandCartesianProductsStartAndEndLists(t *testing.T) {
	doc := Document{Connections: []RawConnection{{
		Starts: []Endpoint{{Block: "a"}, {Block: "b"}},
		Ends:   []Endpoint{{Block: "x"}, {Block: "y"}},
	}}}
	out := doc.Expand()
	if len(out) != 4 {
		t.Fatalf("expected 4 expanded connections, got %d: %+v", len(out), out)
	}
	if out[0].DefinitionIndex != 0 || out[3].DefinitionIndex != 3 {
		t.Fatalf("expected sequential DefinitionIndex, got %+v", out)
	}
}

func TestParseEndpointsResolvesCellTargetedMapping(t *testing.T) {
	endpoints, err := parseEndpoints(map[string]interface{}{"a": "in1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(endpoints) != 1 || endpoints[0].Block != "a" || endpoints[0].Tag != "in1" {
		t.Fatalf("endpoints = %+v", endpoints)
	}
}

func TestLabelAliasMiddleLabelOnConnections(t *testing.T) {
	files := map[string][]byte{
		"main.yaml": []byte(`
connections:
  - start: a
    end: b
    label: hello
`),
	}
	doc, err := LoadWith("main.yaml", fakeFS(files))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Connections[0].MiddleLabel == nil || doc.Connections[0].MiddleLabel.Text != "hello" {
		t.Fatalf("expected label to populate MiddleLabel, got %+v", doc.Connections[0])
	}
}
