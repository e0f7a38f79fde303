package ddf

import (
	"os"
	"path"
	"strings"

	"github.com/orthogram/orthogram/pkg/attrs"
	"github.com/orthogram/orthogram/pkg/errors"
)

// ReadFile abstracts file access so Load can be exercised against an
// in-memory document set in tests without touching the filesystem.
type ReadFile func(path string) ([]byte, error)

// Load reads path from disk and resolves it into a fully merged
// Document: `include` entries first, depth-first, each
// distinct path loaded at most once and cycles silently deduplicated,
// then the file's own sections merged on top.
func Load(path string) (Document, error) {
	return LoadWith(path, os.ReadFile)
}

// LoadWith is Load with an injectable file reader.
func LoadWith(entry string, read ReadFile) (Document, error) {
	visited := make(map[string]bool)
	doc, err := resolve(entry, read, visited)
	if err != nil {
		return Document{}, err
	}
	renumber(&doc)
	return doc, nil
}

func resolve(p string, read ReadFile, visited map[string]bool) (Document, error) {
	if visited[p] {
		return Document{}, nil
	}
	visited[p] = true

	data, err := read(p)
	if err != nil {
		return Document{}, errors.Wrap(errors.CodeDefinition, err, "reading %q", p)
	}

	if isCSV(p, "") {
		rows, err := parseCSVRows(data, "")
		if err != nil {
			return Document{}, errors.Wrap(errors.CodeDefinition, err, "%q", p)
		}
		return Document{Rows: rows}, nil
	}

	pf, err := parseYAML(data)
	if err != nil {
		return Document{}, errors.Wrap(errors.CodeDefinition, err, "%q", p)
	}

	acc := Document{}
	for _, inc := range pf.includes {
		var incDoc Document
		if isCSV(inc.Path, inc.Type) {
			data, err := read(inc.Path)
			if err != nil {
				return Document{}, errors.Wrap(errors.CodeDefinition, err, "reading %q", inc.Path)
			}
			if visited[inc.Path] {
				continue
			}
			visited[inc.Path] = true
			rows, err := parseCSVRows(data, inc.Delimiter)
			if err != nil {
				return Document{}, errors.Wrap(errors.CodeDefinition, err, "%q", inc.Path)
			}
			incDoc = Document{Rows: rows}
		} else {
			incDoc, err = resolve(inc.Path, read, visited)
			if err != nil {
				return Document{}, err
			}
		}
		acc = mergeDocuments(acc, incDoc)
	}

	return mergeDocuments(acc, pf.doc), nil
}

// isCSV decides a file's include type: an explicit `type` always wins;
// otherwise .csv/.txt extensions mean CSV and everything else means
// YAML.
func isCSV(p, explicitType string) bool {
	switch explicitType {
	case "csv":
		return true
	case "yaml":
		return false
	}
	ext := strings.ToLower(path.Ext(p))
	return ext == ".csv" || ext == ".txt"
}

// mergeDocuments overlays override on top of base: later definitions
// win for scalar attributes, sequences append. Named styles and groups
// are keyed maps, so a same-named entry in override replaces base's
// wholesale rather than being field-merged.
func mergeDocuments(base, override Document) Document {
	out := Document{
		DiagramAttrs: attrs.Merge(base.DiagramAttrs, override.DiagramAttrs),
		DiagramStyleNames: append(append([]string(nil), base.DiagramStyleNames...), override.DiagramStyleNames...),
		Rows:         append(append([][]string(nil), base.Rows...), override.Rows...),
		Blocks:       append(append([]RawBlock(nil), base.Blocks...), override.Blocks...),
		Connections:  append(append([]RawConnection(nil), base.Connections...), override.Connections...),
		Styles:       mergeStyles(base.Styles, override.Styles),
		Groups:       mergeStyles(base.Groups, override.Groups),
	}
	return out
}

func mergeStyles(base, override attrs.Styles) attrs.Styles {
	out := make(attrs.Styles, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

// renumber reassigns DefinitionIndex sequentially over the merged
// Connections slice, since include-merging may have interleaved
// connections from several files.
func renumber(doc *Document) {
	for i := range doc.Connections {
		doc.Connections[i].DefinitionIndex = i
	}
}
