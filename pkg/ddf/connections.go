package ddf

import (
	"fmt"

	"github.com/orthogram/orthogram/pkg/errors"
)

func parseConnections(raw interface{}) ([]RawConnection, error) {
	list, err := asList(raw, "connections")
	if err != nil {
		return nil, err
	}
	out := make([]RawConnection, len(list))
	for i, entry := range list {
		m, err := asMap(entry, fmt.Sprintf("connections[%d]", i))
		if err != nil {
			return nil, err
		}
		rc, err := parseConnectionEntry(m)
		if err != nil {
			return nil, errors.Wrap(errors.CodeDefinition, err, "connections[%d]", i)
		}
		rc.DefinitionIndex = i
		out[i] = rc
	}
	return out, nil
}

func parseConnectionEntry(m map[string]interface{}) (RawConnection, error) {
	var rc RawConnection

	startRaw, ok := m["start"]
	if !ok {
		return rc, errors.New(errors.CodeDefinition, "missing required field \"start\"")
	}
	starts, err := parseEndpoints(startRaw)
	if err != nil {
		return rc, errors.Wrap(errors.CodeDefinition, err, "start")
	}
	rc.Starts = starts
	delete(m, "start")

	endRaw, ok := m["end"]
	if !ok {
		return rc, errors.New(errors.CodeDefinition, "missing required field \"end\"")
	}
	ends, err := parseEndpoints(endRaw)
	if err != nil {
		return rc, errors.Wrap(errors.CodeDefinition, err, "end")
	}
	rc.Ends = ends
	delete(m, "end")

	if v, ok := m["start_label"]; ok {
		rc.StartLabel, err = parseLabel(v)
		if err != nil {
			return rc, errors.Wrap(errors.CodeDefinition, err, "start_label")
		}
		delete(m, "start_label")
	}
	if v, ok := m["end_label"]; ok {
		rc.EndLabel, err = parseLabel(v)
		if err != nil {
			return rc, errors.Wrap(errors.CodeDefinition, err, "end_label")
		}
		delete(m, "end_label")
	}
	// "label" is an alias for "middle_label" on connections;
	// middle_label, if also present, takes precedence.
	if v, ok := m["label"]; ok {
		rc.MiddleLabel, err = parseLabel(v)
		if err != nil {
			return rc, errors.Wrap(errors.CodeDefinition, err, "label")
		}
		delete(m, "label")
	}
	if v, ok := m["middle_label"]; ok {
		rc.MiddleLabel, err = parseLabel(v)
		if err != nil {
			return rc, errors.Wrap(errors.CodeDefinition, err, "middle_label")
		}
		delete(m, "middle_label")
	}

	styleNames, err := extractStyleNames(m, "styles")
	if err != nil {
		return rc, err
	}
	rc.StyleNames = styleNames

	a, err := parseAttrs(m)
	if err != nil {
		return rc, err
	}
	rc.Attrs = a
	return rc, nil
}

// parseEndpoints normalizes a start/end field into its list of
// Endpoints: a bare block name, a sequence of names (each its own
// Endpoint, the Cartesian-product axis), or a `{block: tag}` mapping
// targeting one cell.
func parseEndpoints(raw interface{}) ([]Endpoint, error) {
	switch v := raw.(type) {
	case string:
		return []Endpoint{{Block: v}}, nil
	case map[string]interface{}:
		return []Endpoint{parseCellEndpoint(v)}, nil
	case []interface{}:
		out := make([]Endpoint, 0, len(v))
		for _, item := range v {
			switch e := item.(type) {
			case string:
				out = append(out, Endpoint{Block: e})
			case map[string]interface{}:
				out = append(out, parseCellEndpoint(e))
			default:
				return nil, fmt.Errorf("expected a block name or {block: tag} mapping, got %T", item)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected a block name, a sequence of names, or a {block: tag} mapping, got %T", raw)
}

// parseCellEndpoint reads the single `{block: tag}` pair in m. A
// mapping with any other shape degenerates to an empty Endpoint, which
// later resolution (pkg/diagram) reports as an unknown-block error.
func parseCellEndpoint(m map[string]interface{}) Endpoint {
	for block, tagRaw := range m {
		if tag, ok := tagRaw.(string); ok {
			return Endpoint{Block: block, Tag: tag}
		}
	}
	return Endpoint{}
}

func parseLabel(raw interface{}) (*Label, error) {
	switch v := raw.(type) {
	case string:
		return &Label{Text: v}, nil
	case map[string]interface{}:
		var l Label
		if t, ok := v["text"]; ok {
			text, err := asString(t)
			if err != nil {
				return nil, err
			}
			l.Text = text
			delete(v, "text")
		}
		a, err := parseAttrs(v)
		if err != nil {
			return nil, err
		}
		l.Attrs = a
		return &l, nil
	}
	return nil, fmt.Errorf("expected a string or a mapping with a \"text\" field, got %T", raw)
}
