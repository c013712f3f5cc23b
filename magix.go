package mxyaml

import (
	"regexp"
	"strings"

	"github.com/magix-dev/mxyaml/ast"
)

// magixKeyRe matches a Magix header key: "+name[label]" with an optional
// "(value)" segment, anchored to the whole key.
var magixKeyRe = regexp.MustCompile(`^\+([^\[\]()]+)\[([^\]]*)\](?:\(([^)]*)\))?$`)

// ToMX projects a parse tree onto the generic value space and applies the
// Magix key rewrite.
func ToMX(n ast.Node) any {
	return Magix(ToJSON(n))
}

// Magix rewrites Object keys of the form "+name[label](value)?" throughout
// v. A matching key becomes "+name" and its Object value gains a leading
// "__name" field holding the label text, plus "__value" holding the raw
// parenthesized text when that segment is present (even empty). Keys that do
// not match the pattern, and matching keys whose value is not an Object,
// pass through unchanged. The input is not mutated.
func Magix(v any) any {
	switch v := v.(type) {
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = Magix(item)
		}
		return items
	case *Object:
		out := NewObject()
		for _, f := range v.Fields() {
			key, value := magixField(f.Key, Magix(f.Value))
			out.Set(key, value)
		}
		return out
	}
	return v
}

func magixField(key string, value any) (string, any) {
	m := magixKeyRe.FindStringSubmatch(key)
	if m == nil {
		return key, value
	}
	obj, ok := value.(*Object)
	if !ok {
		return key, value
	}
	rewritten := NewObject()
	rewritten.Set("__name", m[2])
	// An empty "()" still carries a value segment; the regex alone cannot
	// tell it apart from an absent one.
	if strings.HasSuffix(key, ")") {
		rewritten.Set("__value", m[3])
	}
	for _, f := range obj.Fields() {
		// The header's fields win over inner fields of the same name.
		if _, taken := rewritten.Get(f.Key); taken {
			continue
		}
		rewritten.Set(f.Key, f.Value)
	}
	return "+" + m[1], rewritten
}
