// Package mxyaml parses a restricted YAML dialect and projects the result
// into JSON-shaped values, with optional rewriting of Magix header keys.
//
// The dialect keeps the familiar parts of YAML: block mappings and
// sequences driven by indentation, flow collections in braces and brackets,
// single- and double-quoted scalars, '|' literal blocks, comments, '!name'
// tags, and automatic inference of ints, floats, bools and nulls. Anchors,
// aliases, folded scalars and multi-document streams are rejected rather
// than silently misread.
//
// Parsing produces an ast.Node tree. ToJSON flattens the tree into ordered,
// JSON-ready values; ToMX additionally rewrites keys of the form
// "+name[label](value)" into objects carrying __name and __value fields.
// Print performs the reverse trip from values back to dialect text.
//
//	node, err := mxyaml.Parse(data)
//	if err != nil {
//		var perr *mxyaml.ParseError
//		if errors.As(err, &perr) {
//			log.Fatalf("%d:%d: %s", perr.Line, perr.Column, perr.Message)
//		}
//	}
//	out, _ := json.Marshal(mxyaml.ToMX(node))
package mxyaml
