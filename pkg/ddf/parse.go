package ddf

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/orthogram/orthogram/pkg/attrs"
	"github.com/orthogram/orthogram/pkg/errors"
)

// topLevelKeys are the only keys parseYAML accepts at the document root
//.
var topLevelKeys = map[string]bool{
	"diagram": true, "rows": true, "blocks": true, "connections": true,
	"styles": true, "groups": true, "include": true,
}

// rawInclude is one `include` list entry.
type rawInclude struct {
	Path      string
	Type      string
	Delimiter string
}

// parsed is one file's content before include resolution: a partial
// Document plus the list of files it asks to include.
type parsed struct {
	doc      Document
	includes []rawInclude
}

// parseYAML decodes one YAML document's bytes into a parsed file.
func parseYAML(data []byte) (parsed, error) {
	var root map[string]interface{}
	if err := yaml.Unmarshal(data, &root); err != nil {
		return parsed{}, errors.Wrap(errors.CodeDefinition, err, "invalid YAML")
	}
	for key := range root {
		if !topLevelKeys[key] {
			return parsed{}, errors.New(errors.CodeDefinition, "unknown top-level key %q", key)
		}
	}

	var out parsed

	if raw, ok := root["diagram"]; ok {
		m, err := asMap(raw, "diagram")
		if err != nil {
			return parsed{}, err
		}
		styleNames, err := extractStyleNames(m, "diagram.styles")
		if err != nil {
			return parsed{}, err
		}
		a, err := parseAttrs(m)
		if err != nil {
			return parsed{}, err
		}
		out.doc.DiagramAttrs = a
		out.doc.DiagramStyleNames = styleNames
	}

	if raw, ok := root["rows"]; ok {
		rows, err := parseRows(raw)
		if err != nil {
			return parsed{}, err
		}
		out.doc.Rows = rows
	}

	if raw, ok := root["blocks"]; ok {
		blocks, err := parseBlocks(raw)
		if err != nil {
			return parsed{}, err
		}
		out.doc.Blocks = blocks
	}

	if raw, ok := root["connections"]; ok {
		conns, err := parseConnections(raw)
		if err != nil {
			return parsed{}, err
		}
		out.doc.Connections = conns
	}

	if raw, ok := root["styles"]; ok {
		styles, err := parseStyles(raw)
		if err != nil {
			return parsed{}, err
		}
		out.doc.Styles = styles
	}

	if raw, ok := root["groups"]; ok {
		groups, err := parseStyles(raw)
		if err != nil {
			return parsed{}, err
		}
		out.doc.Groups = groups
	}

	if raw, ok := root["include"]; ok {
		includes, err := parseIncludes(raw)
		if err != nil {
			return parsed{}, err
		}
		out.includes = includes
	}

	return out, nil
}

// extractStyleNames removes and returns the optional "styles" key from
// m: the entity's explicit style list, resolved later by
// later styles overriding earlier ones.
func extractStyleNames(m map[string]interface{}, field string) ([]string, error) {
	raw, ok := m["styles"]
	if !ok {
		return nil, nil
	}
	items, err := asList(raw, field)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(items))
	for i, it := range items {
		s, err := asString(it)
		if err != nil {
			return nil, errors.Wrap(errors.CodeDefinition, err, "%s[%d]", field, i)
		}
		out[i] = s
	}
	delete(m, "styles")
	return out, nil
}

func asMap(raw interface{}, field string) (map[string]interface{}, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, errors.New(errors.CodeDefinition, "%q must be a mapping", field)
	}
	return m, nil
}

func asList(raw interface{}, field string) ([]interface{}, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, errors.New(errors.CodeDefinition, "%q must be a sequence", field)
	}
	return items, nil
}

func parseRows(raw interface{}) ([][]string, error) {
	rowsList, err := asList(raw, "rows")
	if err != nil {
		return nil, err
	}
	rows := make([][]string, len(rowsList))
	for i, r := range rowsList {
		cells, ok := r.([]interface{})
		if !ok {
			return nil, errors.New(errors.CodeDefinition, "rows[%d] must be a sequence", i)
		}
		row := make([]string, len(cells))
		for j, c := range cells {
			if c == nil {
				continue
			}
			s, ok := c.(string)
			if !ok {
				return nil, errors.New(errors.CodeDefinition, "rows[%d][%d] must be a string or null", i, j)
			}
			row[j] = s
		}
		rows[i] = row
	}
	return rows, nil
}

func parseBlocks(raw interface{}) ([]RawBlock, error) {
	list, err := asList(raw, "blocks")
	if err != nil {
		return nil, err
	}
	out := make([]RawBlock, len(list))
	for i, entry := range list {
		m, err := asMap(entry, fmt.Sprintf("blocks[%d]", i))
		if err != nil {
			return nil, err
		}
		var b RawBlock
		if v, ok := m["name"]; ok {
			b.Name, err = asString(v)
			if err != nil {
				return nil, errors.Wrap(errors.CodeDefinition, err, "blocks[%d].name", i)
			}
			delete(m, "name")
		}
		if v, ok := m["tags"]; ok {
			items, err := asList(v, fmt.Sprintf("blocks[%d].tags", i))
			if err != nil {
				return nil, err
			}
			for _, it := range items {
				s, err := asString(it)
				if err != nil {
					return nil, errors.Wrap(errors.CodeDefinition, err, "blocks[%d].tags", i)
				}
				b.Tags = append(b.Tags, s)
			}
			delete(m, "tags")
		}
		styleNames, err := extractStyleNames(m, fmt.Sprintf("blocks[%d].styles", i))
		if err != nil {
			return nil, err
		}
		b.StyleNames = styleNames
		a, err := parseAttrs(m)
		if err != nil {
			return nil, errors.Wrap(errors.CodeDefinition, err, "blocks[%d]", i)
		}
		b.Attrs = a
		out[i] = b
	}
	return out, nil
}

func parseStyles(raw interface{}) (attrs.Styles, error) {
	m, err := asMap(raw, "styles")
	if err != nil {
		return nil, err
	}
	out := make(attrs.Styles, len(m))
	for name, v := range m {
		attrMap, err := asMap(v, name)
		if err != nil {
			return nil, err
		}
		a, err := parseAttrs(attrMap)
		if err != nil {
			return nil, errors.Wrap(errors.CodeDefinition, err, "style %q", name)
		}
		out[name] = a
	}
	return out, nil
}

func parseIncludes(raw interface{}) ([]rawInclude, error) {
	list, err := asList(raw, "include")
	if err != nil {
		return nil, err
	}
	out := make([]rawInclude, len(list))
	for i, entry := range list {
		m, err := asMap(entry, fmt.Sprintf("include[%d]", i))
		if err != nil {
			return nil, err
		}
		var inc rawInclude
		if v, ok := m["path"]; ok {
			inc.Path, err = asString(v)
			if err != nil {
				return nil, errors.Wrap(errors.CodeDefinition, err, "include[%d].path", i)
			}
		} else {
			return nil, errors.New(errors.CodeDefinition, "include[%d] is missing required field \"path\"", i)
		}
		if v, ok := m["type"]; ok {
			inc.Type, err = asString(v)
			if err != nil {
				return nil, errors.Wrap(errors.CodeDefinition, err, "include[%d].type", i)
			}
		}
		if v, ok := m["delimiter"]; ok {
			inc.Delimiter, err = asString(v)
			if err != nil {
				return nil, errors.Wrap(errors.CodeDefinition, err, "include[%d].delimiter", i)
			}
		}
		out[i] = inc
	}
	return out, nil
}
