package mxyaml

import "strings"

// line is one logical line of input: a physical line with indentation
// measured, comments stripped, and - when a flow collection stays open past
// the line break - the following physical lines joined in.
type line struct {
	indent  int    // count of leading spaces
	content string // text after the indent, comments stripped
	num     int    // 1-based number of the first physical line
	literal string // captured body when the line carried a '|' header
	hasLit  bool
}

// spanState tracks quote and bracket context while scanning a span of text.
// It is shared by the scanner (comment stripping, flow joining), the key
// splitter and the flow parser so that all three agree on what "top level"
// means.
type spanState struct {
	inSingle bool
	inDouble bool
	escaped  bool
	curly    int
	square   int
	paren    int
}

// step consumes the character at s[i] and returns how many bytes it took
// (2 when it swallows a doubled single-quote escape).
func (st *spanState) step(s string, i int) int {
	ch := s[i]
	if st.inDouble {
		switch {
		case st.escaped:
			st.escaped = false
		case ch == '\\':
			st.escaped = true
		case ch == '"':
			st.inDouble = false
		}
		return 1
	}
	if st.inSingle {
		if ch == '\'' {
			if i+1 < len(s) && s[i+1] == '\'' {
				return 2
			}
			st.inSingle = false
		}
		return 1
	}
	switch ch {
	case '"':
		st.inDouble = true
	case '\'':
		st.inSingle = true
	case '{':
		st.curly++
	case '}':
		if st.curly > 0 {
			st.curly--
		}
	case '[':
		st.square++
	case ']':
		if st.square > 0 {
			st.square--
		}
	case '(':
		st.paren++
	case ')':
		if st.paren > 0 {
			st.paren--
		}
	}
	return 1
}

func (st *spanState) inQuote() bool  { return st.inSingle || st.inDouble }
func (st *spanState) depth() int     { return st.curly + st.square + st.paren }
func (st *spanState) flowDepth() int { return st.curly + st.square }

// scan splits src into logical lines. Blank and comment-only lines vanish
// here; literal block bodies are captured onto their header line.
func scan(src string) ([]line, error) {
	physical := strings.Split(src, "\n")
	for i, p := range physical {
		physical[i] = strings.TrimSuffix(p, "\r")
	}

	var lines []line
	i := 0
	for i < len(physical) {
		text := physical[i]
		num := i + 1
		indent, err := countIndent(text, num)
		if err != nil {
			return nil, err
		}
		rest := text[indent:]
		if strings.TrimSpace(rest) == "" {
			i++
			continue
		}
		if indent == 0 && isDocMarker(rest) {
			return nil, parseErrorf(KindUnsupportedFeature, num, 1,
				"multi-document markers are not supported")
		}

		content, consumed, err := scanLogical(physical, i, indent)
		if err != nil {
			return nil, err
		}
		i += consumed
		content = strings.TrimRight(content, " \t")
		if content == "" {
			continue // the line held only a comment
		}

		ln := line{indent: indent, content: content, num: num}
		switch {
		case isBlockHeader(content, '|') && headerPosition(trimBlockHeader(content)):
			ln.content = trimBlockHeader(content)
			ln.hasLit = true
			lit, n := captureLiteral(physical, i, indent)
			ln.literal = lit
			i += n
		case isBlockHeader(content, '>') && headerPosition(trimBlockHeader(content)):
			return nil, parseErrorf(KindUnsupportedFeature, num, indent+len(content),
				"folded block scalars ('>') are not supported")
		}
		lines = append(lines, ln)
	}
	return lines, nil
}

func countIndent(text string, num int) (int, error) {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case ' ':
		case '\t':
			return 0, parseErrorf(KindIndentation, num, i+1,
				"tab character in indentation")
		default:
			return i, nil
		}
	}
	return len(text), nil
}

func isDocMarker(rest string) bool {
	return rest == "---" || strings.HasPrefix(rest, "--- ") ||
		rest == "..." || strings.HasPrefix(rest, "... ")
}

// isBlockHeader reports whether content ends in a block-scalar header using
// the given indicator, either standalone or separated by a space.
func isBlockHeader(content string, indicator byte) bool {
	if len(content) == 1 && content[0] == indicator {
		return true
	}
	return len(content) >= 2 &&
		content[len(content)-1] == indicator &&
		content[len(content)-2] == ' '
}

func trimBlockHeader(content string) string {
	return strings.TrimRight(content[:len(content)-1], " \t")
}

// headerPosition reports whether the text preceding a block-scalar
// indicator leaves the value slot empty: a bare indicator, a sequence
// marker chain, or a 'key:' with no inline value. An indicator trailing a
// non-empty value is ordinary scalar text, not a header.
func headerPosition(before string) bool {
	for before == "-" || strings.HasPrefix(before, "- ") {
		if before == "-" {
			return true
		}
		before = strings.TrimLeft(before[2:], " \t")
	}
	if before == "" {
		return true
	}
	_, rest, ok, err := splitKey(before, 0, 0)
	if err != nil || !ok {
		return false
	}
	return rest == ""
}

// scanLogical strips the comment from the physical line at start and, while
// a flow collection remains open, joins the following physical lines into
// one logical line. It returns the logical content and the number of
// physical lines consumed.
func scanLogical(physical []string, start, indent int) (string, int, error) {
	var st spanState
	text := physical[start][indent:]
	num := start + 1

	stripped, err := stripComment(&st, text, num, indent)
	if err != nil {
		return "", 0, err
	}
	if st.flowDepth() == 0 {
		if st.paren > 0 {
			// Parens only bind in key position. After a top-level
			// colon split an open paren is ordinary value text.
			if _, _, ok, _ := splitKey(stripped, num, indent); !ok {
				return "", 0, parseErrorf(KindUnbalancedBracketInKey, num, indent+len(stripped),
					"parenthesis never closes before end of line")
			}
		}
		return stripped, 1, nil
	}

	// A flow collection stays open past the line break; fold the
	// following physical lines into this logical line.
	var sb strings.Builder
	sb.WriteString(stripped)
	consumed := 1
	for st.flowDepth() > 0 {
		next := start + consumed
		if next >= len(physical) {
			return "", 0, unterminatedAtEOF(sb.String(), num, indent)
		}
		num = next + 1
		cont := strings.TrimLeft(physical[next], " \t")
		stripped, err = stripComment(&st, cont, num, 0)
		if err != nil {
			return "", 0, err
		}
		if stripped != "" {
			sb.WriteByte(' ')
			sb.WriteString(stripped)
		}
		consumed++
	}
	return sb.String(), consumed, nil
}

// stripComment advances st across text and cuts the first '#' that sits
// outside quotes and outside any bracket/paren region. A quote left open at
// the end of the physical line is an error; block literals never reach this
// path.
func stripComment(st *spanState, text string, num, colBase int) (string, error) {
	i := 0
	for i < len(text) {
		if text[i] == '#' && !st.inQuote() && st.depth() == 0 {
			return strings.TrimRight(text[:i], " \t"), nil
		}
		i += st.step(text, i)
	}
	if st.inQuote() {
		return "", parseErrorf(KindUnterminatedQuote, num, colBase+len(text)+1,
			"quoted scalar is not closed before end of line")
	}
	return text, nil
}

// unterminatedAtEOF classifies an open bracket region that survived to the
// end of input: a region that is (or follows) flow content is an
// unterminated flow collection, anything else is a bracket opened inside a
// mapping key.
func unterminatedAtEOF(logical string, num, indent int) error {
	trimmed := strings.TrimLeft(logical, " \t")
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return parseErrorf(KindUnterminatedFlowCollection, num, indent+1,
			"flow collection is not closed before end of input")
	}
	if _, _, ok, _ := splitKey(logical, num, indent); ok {
		return parseErrorf(KindUnterminatedFlowCollection, num, indent+1,
			"flow collection is not closed before end of input")
	}
	return parseErrorf(KindUnbalancedBracketInKey, num, indent+1,
		"bracket opened in key never closes")
}

// captureLiteral collects the body of a '|' literal block: every following
// line that is blank or indented deeper than the header. The first non-blank
// captured line fixes the baseline stripped from the rest; trailing blank
// lines clip to a single newline.
func captureLiteral(physical []string, start, headerIndent int) (string, int) {
	var body []string
	base := -1
	j := start
	for j < len(physical) {
		text := physical[j]
		if strings.TrimSpace(text) == "" {
			body = append(body, "")
			j++
			continue
		}
		ind := 0
		for ind < len(text) && text[ind] == ' ' {
			ind++
		}
		if ind <= headerIndent {
			break
		}
		if base < 0 {
			base = ind
		}
		if ind < base {
			break
		}
		body = append(body, text[base:])
		j++
	}

	for len(body) > 0 && body[len(body)-1] == "" {
		body = body[:len(body)-1]
	}
	if len(body) == 0 {
		return "", j - start
	}
	return strings.Join(body, "\n") + "\n", j - start
}
