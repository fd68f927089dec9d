package skillmap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultIslandWidth is the grid column count used when an island omits
// or zeroes its width.
const DefaultIslandWidth = 3

// Errors returned while loading a skill document.
var (
	// ErrLoad reports that the document could not be fetched.
	ErrLoad = errors.New("skillmap: load failed")
	// ErrMalformed reports that the document could not be decoded.
	ErrMalformed = errors.New("skillmap: malformed document")
)

// Skill is a single item on the map.
type Skill struct {
	Name        string `json:"-" yaml:"-"`
	What        string `json:"what" yaml:"what"`
	Why         string `json:"why" yaml:"why"`
	Important   bool   `json:"important" yaml:"important"`
	Dynamic     bool   `json:"dynamic" yaml:"dynamic"`
	Placeholder bool   `json:"placeholder" yaml:"placeholder"`
}

// Island is a category of skills rendered as one grid.
type Island struct {
	Name        string
	Width       int
	Color       string
	Background  string
	Placeholder bool
	Skills      []Skill
}

// Document is the decoded skill map. Islands and skills keep the order in
// which they appear in the source; that order drives layout and Tab order.
type Document struct {
	Islands []Island
}

// Lookup returns the skill identified by id.
func (d *Document) Lookup(id ItemID) (*Skill, bool) {
	if d == nil {
		return nil, false
	}
	for i := range d.Islands {
		is := &d.Islands[i]
		if is.Name != id.Category {
			continue
		}
		for j := range is.Skills {
			if is.Skills[j].Name == id.Name {
				return &is.Skills[j], true
			}
		}
	}
	return nil, false
}

// SkillCount returns the number of selectable (non-placeholder) skills.
func (d *Document) SkillCount() int {
	n := 0
	for _, is := range d.Islands {
		if is.Placeholder {
			continue
		}
		for _, s := range is.Skills {
			if !s.Placeholder {
				n++
			}
		}
	}
	return n
}

// --- Decoding ---

// orderedField is one key of a JSON or YAML mapping with a deferred decoder
// for its value.
type orderedField struct {
	Key string
	// object is set when the value is a mapping rather than a scalar,
	// sequence or null.
	object bool
	decode func(v any) error
}

// orderedMap decodes a mapping while preserving key order. It implements
// both json.Unmarshaler and yaml.Unmarshaler.
type orderedMap []orderedField

// UnmarshalJSON walks the object's tokens to record keys in source order.
func (m *orderedMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	*m = (*m)[:0]
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := kt.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", kt)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("value of %q: %w", key, err)
		}
		*m = append(*m, orderedField{
			Key:    key,
			object: bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")),
			decode: func(v any) error { return json.Unmarshal(raw, v) },
		})
	}
	_, err = dec.Token()
	return err
}

// UnmarshalYAML records mapping keys in source order.
func (m *orderedMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.DocumentNode && len(value.Content) == 1 {
		value = value.Content[0]
	}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected mapping", value.Line)
	}
	*m = (*m)[:0]
	for i := 0; i+1 < len(value.Content); i += 2 {
		k, v := value.Content[i], value.Content[i+1]
		target := v
		if target.Kind == yaml.AliasNode && target.Alias != nil {
			target = target.Alias
		}
		*m = append(*m, orderedField{
			Key:    k.Value,
			object: target.Kind == yaml.MappingNode,
			decode: v.Decode,
		})
	}
	return nil
}

// rawIsland mirrors the island object in the source document.
type rawIsland struct {
	Width       int        `json:"width" yaml:"width"`
	Color       string     `json:"color" yaml:"color"`
	Background  string     `json:"background" yaml:"background"`
	Placeholder bool       `json:"placeholder" yaml:"placeholder"`
	Skills      orderedMap `json:"skills" yaml:"skills"`
}

// ParseDocument decodes a JSON or YAML skill document. JSON is detected by a
// leading '{'. Errors wrap ErrMalformed.
func ParseDocument(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}

	var top orderedMap
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &top); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	} else {
		var root yaml.Node
		if err := yaml.Unmarshal(trimmed, &root); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		body := &root
		if body.Kind == yaml.DocumentNode && len(body.Content) == 1 {
			body = body.Content[0]
		}
		// A null document is not an empty map.
		if body.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: expected a mapping of islands", ErrMalformed)
		}
		if err := top.UnmarshalYAML(body); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	doc := &Document{Islands: make([]Island, 0, len(top))}
	for _, f := range top {
		if !f.object {
			return nil, fmt.Errorf("%w: island %q: expected object", ErrMalformed, f.Key)
		}
		var raw rawIsland
		if err := f.decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: island %q: %v", ErrMalformed, f.Key, err)
		}
		is := Island{
			Name:        f.Key,
			Width:       raw.Width,
			Color:       raw.Color,
			Background:  raw.Background,
			Placeholder: raw.Placeholder,
		}
		if is.Width <= 0 {
			is.Width = DefaultIslandWidth
		}
		for _, sf := range raw.Skills {
			if !sf.object {
				return nil, fmt.Errorf("%w: skill %q in %q: expected object", ErrMalformed, sf.Key, f.Key)
			}
			var s Skill
			if err := sf.decode(&s); err != nil {
				return nil, fmt.Errorf("%w: skill %q in %q: %v", ErrMalformed, sf.Key, f.Key, err)
			}
			s.Name = sf.Key
			is.Skills = append(is.Skills, s)
		}
		doc.Islands = append(doc.Islands, is)
	}
	return doc, nil
}
