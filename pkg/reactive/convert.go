package reactive

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// FromYAML decodes a YAML or JSON document into an unobserved Value graph.
// Mapping key order is preserved, so properties keep the order in which
// the document lists them. An empty document decodes to Null.
func FromYAML(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("reactive: decode document: %w", err)
	}
	return fromNode(&doc)
}

func fromNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case 0:
		return Null(), nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			child, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.With(n.Content[i].Value, child)
		}
		return obj, nil
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			child, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			items = append(items, child)
		}
		return NewArray(items...), nil
	case yaml.ScalarNode:
		return fromScalar(n)
	default:
		return nil, fmt.Errorf("reactive: line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

func fromScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("reactive: line %d: %w", n.Line, err)
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("reactive: line %d: %w", n.Line, err)
		}
		return Number(f), nil
	default:
		return String(n.Value), nil
	}
}

// FromGo converts decoded Go data into an unobserved Value graph.
// Supported inputs are nil, bool, integer and float types, string,
// map[string]any, []any and Value. Map keys are sorted.
func FromGo(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case int:
		return Number(float64(t)), nil
	case int8:
		return Number(float64(t)), nil
	case int16:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint:
		return Number(float64(t)), nil
	case uint8:
		return Number(float64(t)), nil
	case uint16:
		return Number(float64(t)), nil
	case uint32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case float32:
		return Number(float64(t)), nil
	case float64:
		return Number(t), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			child, err := FromGo(t[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			obj.With(k, child)
		}
		return obj, nil
	case []any:
		items := make([]Value, 0, len(t))
		for i, item := range t {
			child, err := FromGo(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			items = append(items, child)
		}
		return NewArray(items...), nil
	default:
		return nil, fmt.Errorf("reactive: unsupported Go type %T", v)
	}
}

// MustFromGo is FromGo for literals in tests and examples. It panics on
// unsupported input.
func MustFromGo(v any) Value {
	out, err := FromGo(v)
	if err != nil {
		panic(err)
	}
	return out
}

// ToGo converts a Value graph back into plain Go data without registering
// any reads. Objects become map[string]any, arrays []any, Undefined nil.
func ToGo(v Value) any {
	return toGo(v, make(map[*Object]bool))
}

func toGo(v Value, visiting map[*Object]bool) any {
	switch t := v.(type) {
	case Primitive:
		return t.raw
	case *Object:
		if visiting[t] {
			return nil
		}
		visiting[t] = true
		defer delete(visiting, t)
		keys := t.Keys()
		if t.IsArray() {
			out := make([]any, 0, len(keys))
			for _, k := range keys {
				out = append(out, toGo(t.peek(k), visiting))
			}
			return out
		}
		out := make(map[string]any, len(keys))
		for _, k := range keys {
			out[k] = toGo(t.peek(k), visiting)
		}
		return out
	default:
		return nil
	}
}
