// Package ast defines the parse tree produced by the mxyaml parser.
//
// The tree is a closed set of variants: Null, Bool, Int, Float, String,
// Sequence, Mapping and Tagged. Nodes are immutable after construction and
// strictly tree-shaped: a parent exclusively owns its children and there are
// no cycles or back-references.
//
// String nodes alias the parser's copy of the input whenever no escape
// sequence forced a rewrite. Go substrings keep the backing array alive, so
// the alias is always valid; it only means that buffer stays reachable while
// the tree is.
package ast

import (
	"strconv"
	"strings"
)

// Node is the base interface for all tree nodes.
type Node interface {
	// String returns a compact, flow-style representation of the node,
	// intended for debugging and error messages.
	String() string

	node()
}

// Null represents the absence of a value.
type Null struct{}

func (n *Null) node()          {}
func (n *Null) String() string { return "~" }

// Bool represents a boolean scalar.
type Bool struct {
	Value bool
}

func (b *Bool) node()          {}
func (b *Bool) String() string { return strconv.FormatBool(b.Value) }

// Int represents an integer scalar.
type Int struct {
	Value int64
}

func (i *Int) node()          {}
func (i *Int) String() string { return strconv.FormatInt(i.Value, 10) }

// Float represents a floating-point scalar.
type Float struct {
	Value float64
}

func (f *Float) node()          {}
func (f *Float) String() string { return strconv.FormatFloat(f.Value, 'g', -1, 64) }

// String represents a text scalar. Value is a slice of the original input
// unless escape resolution or a literal block forced an owned copy.
type String struct {
	Value string
}

func (s *String) node()          {}
func (s *String) String() string { return s.Value }

// Sequence is an ordered list of nodes.
type Sequence struct {
	Items []Node
}

func (s *Sequence) node() {}
func (s *Sequence) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, item := range s.Items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(item.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Entry is a single key/value pair of a Mapping.
type Entry struct {
	Key   Node
	Value Node
}

// Mapping is an ordered list of key/value pairs. Keys need not be strings
// and the parser performs no deduplication; duplicate-key policy belongs to
// the projection stage.
type Mapping struct {
	Entries []Entry
}

func (m *Mapping) node() {}
func (m *Mapping) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range m.Entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.Key.String())
		sb.WriteString(": ")
		sb.WriteString(e.Value.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// Tagged wraps a single node with an application-defined tag name.
type Tagged struct {
	Tag  string
	Node Node
}

func (t *Tagged) node() {}
func (t *Tagged) String() string {
	return "!" + t.Tag + " " + t.Node.String()
}
