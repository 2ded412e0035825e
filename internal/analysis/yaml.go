package analysis

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrUnsupportedNode = errors.New("unsupported yaml node")

// ParseYAML reads a nested YAML mapping into an Analysis, keeping key order.
// Scalars keep their resolved YAML type (int, float, bool, timestamp).
func ParseYAML(r io.Reader) (*Analysis, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return New(), nil
		}
		return nil, fmt.Errorf("decode analysis yaml: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: document root must be a mapping (line %d)", ErrUnsupportedNode, root.Line)
	}

	a := New()
	if err := fillFromMapping(a, root); err != nil {
		return nil, err
	}
	return a, nil
}

func fillFromMapping(a *Analysis, m *yaml.Node) error {
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i], m.Content[i+1]
		if val.Kind == yaml.AliasNode {
			val = val.Alias
		}

		switch val.Kind {
		case yaml.MappingNode:
			if err := fillFromMapping(a.Child(key.Value), val); err != nil {
				return err
			}
		case yaml.ScalarNode:
			v, err := scalarValue(val)
			if err != nil {
				return fmt.Errorf("key %q: %w", key.Value, err)
			}
			a.Set(key.Value, v)
		default:
			return fmt.Errorf("%w: key %q at line %d", ErrUnsupportedNode, key.Value, val.Line)
		}
	}
	return nil
}

func scalarValue(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return Value{}, err
		}
		return Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		return Float(f), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return Value{}, err
		}
		return Time(t), nil
	case "!!null":
		return String(""), nil
	default:
		return String(n.Value), nil
	}
}
