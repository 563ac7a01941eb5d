package codec

import (
	"bytes"
	"encoding/json"

	"github.com/dbradf/shrub-go/model"
	"gopkg.in/yaml.v3"
)

// ParseJSON converts a JSON project configuration document into a
// model.Project. The document grammar is a superset of JSON, so the YAML
// decoder handles both; the entry point exists so that callers consuming the
// interchange format do not depend on that detail.
func ParseJSON(text string) (*model.Project, error) {
	return Parse(text)
}

// SerializeJSON converts a model.Project into the JSON interchange form.
// Like Serialize, the output is deterministic and map-like structures keep
// their declaration order. Values with no JSON representation, such as
// non-finite floats, fail with ErrSerializationFailure.
func SerializeJSON(p *model.Project) (string, error) {
	root, err := encodeProject(p)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := writeJSON(&buf, root, "$"); err != nil {
		return "", err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return "", unserializable("$", err.Error())
	}
	return out.String(), nil
}

// writeJSON renders a document node as JSON. The encoding is hand-walked
// because encoding/json marshals Go maps in sorted key order, and the
// document contract requires declaration order.
func writeJSON(buf *bytes.Buffer, n *yaml.Node, path string) error {
	switch n.Kind {
	case yaml.ScalarNode:
		return writeJSONScalar(buf, n, path)
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item, path); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return unserializable(path, err.Error())
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSON(buf, n.Content[i+1], path+"."+n.Content[i].Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	default:
		return unserializable(path, "unsupported node kind")
	}
}

func writeJSONScalar(buf *bytes.Buffer, n *yaml.Node, path string) error {
	switch n.Tag {
	case "!!null":
		buf.WriteString("null")
	case "!!bool", "!!int":
		buf.WriteString(n.Value)
	case "!!float":
		switch n.Value {
		case ".inf", "-.inf", ".nan":
			// Non-finite floats have no JSON representation.
			return unserializable(path, "non-finite float "+n.Value)
		}
		// Values like "3.0" stay as-is so that re-parsing keeps the
		// float kind.
		buf.WriteString(n.Value)
	default:
		s, err := json.Marshal(n.Value)
		if err != nil {
			return unserializable(path, err.Error())
		}
		buf.Write(s)
	}
	return nil
}
