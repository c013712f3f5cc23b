package mxyaml

import (
	"encoding/json"
	"strconv"

	"github.com/magix-dev/mxyaml/ast"
)

// ToJSON projects a parse tree onto the generic value space: nil, bool,
// int64, float64, string, []any and *Object. Mapping order is preserved,
// duplicate keys resolve last-wins while keeping the first occurrence's
// position, and Tagged nodes surface their tag as a leading "__type" field.
func ToJSON(n ast.Node) any {
	switch n := n.(type) {
	case *ast.Null:
		return nil
	case *ast.Bool:
		return n.Value
	case *ast.Int:
		return n.Value
	case *ast.Float:
		return n.Value
	case *ast.String:
		return n.Value
	case *ast.Sequence:
		items := make([]any, len(n.Items))
		for i, item := range n.Items {
			items[i] = ToJSON(item)
		}
		return items
	case *ast.Mapping:
		obj := NewObject()
		for _, e := range n.Entries {
			obj.Set(keyString(e.Key), ToJSON(e.Value))
		}
		return obj
	case *ast.Tagged:
		inner := ToJSON(n.Node)
		if obj, ok := inner.(*Object); ok {
			obj.Prepend("__type", n.Tag)
			return obj
		}
		obj := NewObject()
		obj.Set("__type", n.Tag)
		obj.Set("__value", inner)
		return obj
	}
	return nil
}

// keyString renders a mapping key as the JSON object key. String keys pass
// through; other scalars use their canonical text; composite keys collapse
// to the JSON encoding of their projection.
func keyString(key ast.Node) string {
	switch key := key.(type) {
	case *ast.String:
		return key.Value
	case *ast.Null:
		return "null"
	case *ast.Bool:
		return strconv.FormatBool(key.Value)
	case *ast.Int:
		return strconv.FormatInt(key.Value, 10)
	case *ast.Float:
		return strconv.FormatFloat(key.Value, 'g', -1, 64)
	}
	b, err := json.Marshal(ToJSON(key))
	if err != nil {
		return key.String()
	}
	return string(b)
}
