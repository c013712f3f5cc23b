package mxyaml

import (
	"strings"

	"github.com/magix-dev/mxyaml/ast"
)

// parser runs recursive descent over the scanned logical lines. Block
// structure comes from indentation alone: a block is the run of lines
// sharing one exact indent, and nested blocks sit at any strictly greater
// indent.
type parser struct {
	lines    []line
	pos      int
	maxDepth int
}

func (p *parser) parseDocument() (ast.Node, error) {
	if len(p.lines) == 0 {
		return &ast.Null{}, nil
	}
	node, err := p.parseBlock(0, 0)
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.lines) {
		ln := p.lines[p.pos]
		if ln.indent > 0 {
			return nil, parseErrorf(KindUnexpectedIndentation, ln.num, ln.indent+1,
				"line indented deeper than its block")
		}
		return nil, parseErrorf(KindSyntax, ln.num, 1,
			"unexpected content after document value")
	}
	return node, nil
}

func (p *parser) checkDepth(depth, num, col int) error {
	if depth > p.maxDepth {
		return parseErrorf(KindRecursionLimitExceeded, num, col,
			"nesting exceeds %d levels", p.maxDepth)
	}
	return nil
}

// parseBlock parses the block starting at the current line, provided it is
// indented at least min columns. The first line's shape picks the form:
// sequence marker, mapping entry, or a single bare value.
func (p *parser) parseBlock(min, depth int) (ast.Node, error) {
	if p.pos >= len(p.lines) {
		return &ast.Null{}, nil
	}
	ln := p.lines[p.pos]
	if err := p.checkDepth(depth, ln.num, ln.indent+1); err != nil {
		return nil, err
	}
	if ln.indent < min {
		return &ast.Null{}, nil
	}
	if isSeqMarker(ln.content) {
		return p.parseSequence(ln.indent, depth)
	}
	if _, _, ok, err := splitKey(ln.content, ln.num, ln.indent); err != nil {
		return nil, err
	} else if ok {
		return p.parseMappingBlock(ln.indent, depth)
	}
	if ln.content == "" && ln.hasLit {
		p.pos++
		return &ast.String{Value: ln.literal}, nil
	}
	return p.parseRest(ln, ln.content, depth)
}

func (p *parser) parseMappingBlock(level, depth int) (ast.Node, error) {
	m := &ast.Mapping{}
	for p.pos < len(p.lines) {
		ln := p.lines[p.pos]
		if ln.indent != level {
			break
		}
		if isSeqMarker(ln.content) {
			return nil, parseErrorf(KindSyntax, ln.num, ln.indent+1,
				"sequence entry inside mapping block")
		}
		key, rest, ok, err := splitKey(ln.content, ln.num, ln.indent)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, parseErrorf(KindSyntax, ln.num, ln.indent+1,
				"expected a 'key:' entry")
		}
		keyNode, err := p.parseKey(key, ln, depth)
		if err != nil {
			return nil, err
		}
		value, err := p.parseEntryValue(ln, rest, level, depth)
		if err != nil {
			return nil, err
		}
		m.Entries = append(m.Entries, ast.Entry{Key: keyNode, Value: value})
	}
	if err := p.checkTrailing(level); err != nil {
		return nil, err
	}
	return m, nil
}

// parseEntryValue parses the value side of a mapping entry: an inline rest,
// a captured literal block, or a nested block at deeper indentation. A
// sequence is also accepted at the key's own indentation, the common YAML
// shorthand for list-valued entries.
func (p *parser) parseEntryValue(ln line, rest string, level, depth int) (ast.Node, error) {
	if rest != "" {
		return p.parseRest(ln, rest, depth)
	}
	if ln.hasLit {
		p.pos++
		return &ast.String{Value: ln.literal}, nil
	}
	p.pos++
	if p.pos < len(p.lines) {
		next := p.lines[p.pos]
		if next.indent == level && isSeqMarker(next.content) {
			return p.parseSequence(level, depth+1)
		}
	}
	return p.parseBlock(level+1, depth+1)
}

// parseKey turns the key span of an entry into a node. Keys starting a flow
// collection re-enter the flow parser; everything else resolves as a scalar,
// which leaves Magix keys like "+setup[Title](v)" as plain strings.
func (p *parser) parseKey(key string, ln line, depth int) (ast.Node, error) {
	if key != "" && (key[0] == '{' || key[0] == '[') {
		node, n, err := p.parseFlow(key, ln.num, ln.indent, depth+1)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(key[n:]) != "" {
			return nil, parseErrorf(KindSyntax, ln.num, ln.indent+n+1,
				"trailing characters after flow key")
		}
		return node, nil
	}
	return resolveScalar(key), nil
}

func (p *parser) parseSequence(level, depth int) (ast.Node, error) {
	seq := &ast.Sequence{}
	for p.pos < len(p.lines) {
		ln := p.lines[p.pos]
		if ln.indent != level || !isSeqMarker(ln.content) {
			break
		}
		item, err := p.parseSequenceItem(ln, level, depth)
		if err != nil {
			return nil, err
		}
		seq.Items = append(seq.Items, item)
	}
	if err := p.checkTrailing(level); err != nil {
		return nil, err
	}
	return seq, nil
}

func (p *parser) parseSequenceItem(ln line, level, depth int) (ast.Node, error) {
	rest := seqRest(ln.content)
	if rest == "" {
		if ln.hasLit {
			p.pos++
			return &ast.String{Value: ln.literal}, nil
		}
		p.pos++
		return p.parseBlock(level+1, depth+1)
	}
	if _, _, ok, err := splitKey(rest, ln.num, ln.indent+2); err != nil {
		return nil, err
	} else if ok {
		// The marker line opens a mapping whose remaining entries sit at
		// the marker column plus two, so re-home the rest there and let
		// the mapping parser take over.
		p.lines[p.pos] = line{
			indent:  level + 2,
			content: rest,
			num:     ln.num,
			literal: ln.literal,
			hasLit:  ln.hasLit,
		}
		return p.parseMappingBlock(level+2, depth+1)
	}
	return p.parseRest(ln, rest, depth)
}

// checkTrailing rejects a leftover line indented deeper than the block that
// just ended; such a line continues nothing.
func (p *parser) checkTrailing(level int) error {
	if p.pos >= len(p.lines) {
		return nil
	}
	ln := p.lines[p.pos]
	if ln.indent > level {
		return parseErrorf(KindUnexpectedIndentation, ln.num, ln.indent+1,
			"line indented deeper than its block")
	}
	return nil
}

// parseRest parses an inline value span: a tag, a flow collection, or a
// scalar. It consumes the current line.
func (p *parser) parseRest(ln line, rest string, depth int) (ast.Node, error) {
	if err := p.checkDepth(depth, ln.num, ln.indent+1); err != nil {
		return nil, err
	}
	switch rest[0] {
	case '!':
		return p.parseTag(ln, rest, depth)
	case '&', '*':
		return nil, parseErrorf(KindUnsupportedFeature, ln.num, ln.indent+1,
			"anchors and aliases are not supported")
	case '{', '[':
		node, n, err := p.parseFlow(rest, ln.num, ln.indent, depth+1)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(rest[n:]) != "" {
			return nil, parseErrorf(KindSyntax, ln.num, ln.indent+n+1,
				"trailing characters after flow collection")
		}
		p.pos++
		return node, nil
	}
	p.pos++
	return resolveScalar(rest), nil
}

// parseTag parses "!name" plus the single node it wraps: an inline value on
// the same line, or a nested block at deeper indentation, or nothing (the
// inner node is then Null).
func (p *parser) parseTag(ln line, rest string, depth int) (ast.Node, error) {
	name, remainder := splitTagName(rest[1:])
	if name == "" {
		return nil, parseErrorf(KindSyntax, ln.num, ln.indent+1, "empty tag name")
	}
	remainder = strings.TrimLeft(remainder, " \t")
	if remainder == "" {
		p.pos++
		inner, err := p.parseBlock(ln.indent+1, depth+1)
		if err != nil {
			return nil, err
		}
		return &ast.Tagged{Tag: name, Node: inner}, nil
	}
	inner, err := p.parseRest(ln, remainder, depth+1)
	if err != nil {
		return nil, err
	}
	return &ast.Tagged{Tag: name, Node: inner}, nil
}

func isSeqMarker(content string) bool {
	return content == "-" || strings.HasPrefix(content, "- ")
}

func seqRest(content string) string {
	if content == "-" {
		return ""
	}
	return strings.TrimLeft(content[2:], " \t")
}

// splitKey splits content at the first colon that sits outside quotes and
// outside any bracket or paren region and is followed by whitespace or the
// end of the line. Balanced regions are atomic, so Magix keys and flow keys
// survive intact. A region opened in the key that never closes is an error.
func splitKey(content string, num, colBase int) (key, rest string, ok bool, err error) {
	var st spanState
	i := 0
	for i < len(content) {
		if content[i] == ':' && !st.inQuote() && st.depth() == 0 {
			if i+1 == len(content) || content[i+1] == ' ' || content[i+1] == '\t' {
				key = strings.TrimRight(content[:i], " \t")
				rest = strings.TrimLeft(content[i+1:], " \t")
				return key, rest, true, nil
			}
		}
		i += st.step(content, i)
	}
	if st.depth() > 0 {
		return "", "", false, parseErrorf(KindUnbalancedBracketInKey, num, colBase+1,
			"bracket opened in key never closes")
	}
	return "", "", false, nil
}

// splitTagName splits a tag name from the text following it. A name is a run
// of non-whitespace, non-structural characters.
func splitTagName(s string) (name, remainder string) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '{', '}', '[', ']', ',', ':':
			return s[:i], s[i:]
		}
	}
	return s, ""
}

// parseFlow parses a flow collection starting at s[0] and returns the node
// plus the number of bytes consumed. Braced collections hold either 'key:
// value' entries or bare elements; mixing the two forms is rejected.
func (p *parser) parseFlow(s string, num, colBase, depth int) (ast.Node, int, error) {
	if err := p.checkDepth(depth, num, colBase+1); err != nil {
		return nil, 0, err
	}
	end := matchDelim(s)
	if end < 0 {
		return nil, 0, parseErrorf(KindUnterminatedFlowCollection, num, colBase+1,
			"flow collection is not closed")
	}
	inner := strings.TrimSpace(s[1:end])
	consumed := end + 1

	if s[0] == '[' {
		seq := &ast.Sequence{}
		if inner != "" {
			for _, span := range splitFlowEntries(inner) {
				item, err := p.parseFlowElem(strings.TrimSpace(span), num, colBase, depth+1)
				if err != nil {
					return nil, 0, err
				}
				seq.Items = append(seq.Items, item)
			}
		}
		return seq, consumed, nil
	}

	if inner == "" {
		return &ast.Mapping{}, consumed, nil
	}
	spans := splitFlowEntries(inner)
	keyed := 0
	for _, span := range spans {
		if topLevelColon(span) >= 0 {
			keyed++
		}
	}
	switch keyed {
	case len(spans):
		m := &ast.Mapping{}
		for _, span := range spans {
			span = strings.TrimSpace(span)
			colon := topLevelColon(span)
			keyNode, err := p.parseFlowElem(strings.TrimSpace(span[:colon]), num, colBase, depth+1)
			if err != nil {
				return nil, 0, err
			}
			value, err := p.parseFlowElem(strings.TrimSpace(span[colon+1:]), num, colBase, depth+1)
			if err != nil {
				return nil, 0, err
			}
			m.Entries = append(m.Entries, ast.Entry{Key: keyNode, Value: value})
		}
		return m, consumed, nil
	case 0:
		// Braces around bare elements act as a flow sequence.
		seq := &ast.Sequence{}
		for _, span := range spans {
			item, err := p.parseFlowElem(strings.TrimSpace(span), num, colBase, depth+1)
			if err != nil {
				return nil, 0, err
			}
			seq.Items = append(seq.Items, item)
		}
		return seq, consumed, nil
	default:
		return nil, 0, parseErrorf(KindSyntax, num, colBase+1,
			"flow mapping mixes 'key: value' entries with bare elements")
	}
}

func (p *parser) parseFlowElem(span string, num, colBase, depth int) (ast.Node, error) {
	if span == "" {
		return &ast.Null{}, nil
	}
	switch span[0] {
	case '{', '[':
		node, n, err := p.parseFlow(span, num, colBase, depth)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(span[n:]) != "" {
			return nil, parseErrorf(KindSyntax, num, colBase+1,
				"trailing characters after flow collection")
		}
		return node, nil
	case '!':
		name, remainder := splitTagName(span[1:])
		if name == "" {
			return nil, parseErrorf(KindSyntax, num, colBase+1, "empty tag name")
		}
		inner, err := p.parseFlowElem(strings.TrimSpace(remainder), num, colBase, depth+1)
		if err != nil {
			return nil, err
		}
		return &ast.Tagged{Tag: name, Node: inner}, nil
	case '&', '*':
		return nil, parseErrorf(KindUnsupportedFeature, num, colBase+1,
			"anchors and aliases are not supported")
	}
	return resolveScalar(span), nil
}

// matchDelim returns the index of the closer matching the collection opened
// at s[0], or -1 when it never closes.
func matchDelim(s string) int {
	var st spanState
	i := 0
	for i < len(s) {
		n := st.step(s, i)
		i += n
		if !st.inQuote() && st.depth() == 0 {
			return i - n
		}
	}
	return -1
}

// splitFlowEntries splits the inside of a flow collection on top-level
// commas. A trailing comma is tolerated.
func splitFlowEntries(inner string) []string {
	spans := splitTopLevel(inner, ',')
	if n := len(spans); n > 1 && strings.TrimSpace(spans[n-1]) == "" {
		spans = spans[:n-1]
	}
	return spans
}

// splitTopLevel splits s on sep, ignoring separators inside quotes or
// bracket regions.
func splitTopLevel(s string, sep byte) []string {
	var spans []string
	var st spanState
	start := 0
	i := 0
	for i < len(s) {
		if s[i] == sep && !st.inQuote() && st.depth() == 0 {
			spans = append(spans, s[start:i])
			i++
			start = i
			continue
		}
		i += st.step(s, i)
	}
	return append(spans, s[start:])
}

// topLevelColon returns the index of the first colon outside quotes and
// bracket regions, or -1.
func topLevelColon(s string) int {
	var st spanState
	i := 0
	for i < len(s) {
		if s[i] == ':' && !st.inQuote() && st.depth() == 0 {
			return i
		}
		i += st.step(s, i)
	}
	return -1
}
