package mxyaml

import (
	"strconv"
	"strings"

	"github.com/magix-dev/mxyaml/ast"
)

// resolveScalar turns a trimmed span of text into a scalar node. Quoted
// spans always resolve to String; unquoted spans try Int, Float, Bool and
// Null in that order before falling back to a String that aliases the span.
func resolveScalar(s string) ast.Node {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return &ast.String{Value: unescapeDouble(s[1 : len(s)-1])}
	}
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return &ast.String{Value: unescapeSingle(s[1 : len(s)-1])}
	}

	if isIntLiteral(s) {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return &ast.Int{Value: n}
		}
		// out of int64 range, falls through to the later forms
	}
	if isFloatLiteral(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return &ast.Float{Value: f}
		}
	}
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return &ast.Bool{Value: true}
	case "false", "no", "off":
		return &ast.Bool{Value: false}
	}
	if s == "~" || s == "" {
		return &ast.Null{}
	}
	return &ast.String{Value: s}
}

// isIntLiteral reports whether s is an optional minus sign followed by one
// or more ASCII digits and nothing else.
func isIntLiteral(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' {
		s = s[1:]
		if s == "" {
			return false
		}
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isFloatLiteral reports whether s is a decimal float: an optionally signed
// digit run with a decimal point and/or an exponent. Plain integers and the
// hex and inf/NaN forms strconv accepts are excluded.
func isFloatLiteral(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	hasPoint := false
	if i < len(s) && s[i] == '.' {
		hasPoint = true
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	hasExp := false
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		hasExp = true
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		expDigits := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			expDigits++
		}
		if expDigits == 0 {
			return false
		}
	}
	return i == len(s) && (hasPoint || hasExp)
}

// unescapeDouble resolves the recognized escape sequences of a double-quoted
// body. Unrecognized escapes keep the backslash verbatim. When the body holds
// no backslash at all it is returned as-is, aliasing the input.
func unescapeDouble(body string) string {
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch != '\\' || i+1 >= len(body) {
			sb.WriteByte(ch)
			continue
		}
		i++
		switch body[i] {
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		default:
			sb.WriteByte('\\')
			sb.WriteByte(body[i])
		}
	}
	return sb.String()
}

// unescapeSingle collapses doubled single quotes. A body without quotes is
// returned as-is, aliasing the input.
func unescapeSingle(body string) string {
	if !strings.ContainsRune(body, '\'') {
		return body
	}
	return strings.ReplaceAll(body, "''", "'")
}
