package mxyaml

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/magix-dev/mxyaml/ast"
)

// Print serializes a generic value to block-style dialect text with
// two-space indentation. Scalars that would re-resolve to a different value
// when read back are double-quoted, so Parse of the output projects to an
// equal value. The serializer has no tag or Magix awareness; those live in
// keys and fields like any other data.
func Print(v any) (string, error) {
	var sb strings.Builder
	if err := fprintValue(&sb, v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Fprint is Print writing to w.
func Fprint(w io.Writer, v any) error {
	s, err := Print(v)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

func fprintValue(sb *strings.Builder, v any) error {
	switch v := v.(type) {
	case *Object:
		if v.Len() == 0 {
			sb.WriteString("{}\n")
			return nil
		}
		return fprintObject(sb, v, 0)
	case []any:
		if len(v) == 0 {
			sb.WriteString("[]\n")
			return nil
		}
		return fprintArray(sb, v, 0)
	}
	s, err := scalarText(v)
	if err != nil {
		return err
	}
	sb.WriteString(s)
	sb.WriteByte('\n')
	return nil
}

func fprintObject(sb *strings.Builder, obj *Object, indent int) error {
	pad := strings.Repeat("  ", indent)
	for _, f := range obj.Fields() {
		sb.WriteString(pad)
		sb.WriteString(keyText(f.Key))
		sb.WriteByte(':')
		if err := fprintNested(sb, f.Value, indent); err != nil {
			return err
		}
	}
	return nil
}

func fprintArray(sb *strings.Builder, items []any, indent int) error {
	pad := strings.Repeat("  ", indent)
	for _, item := range items {
		sb.WriteString(pad)
		sb.WriteByte('-')
		if err := fprintNested(sb, item, indent); err != nil {
			return err
		}
	}
	return nil
}

// fprintNested writes the value side of an entry or item, choosing between
// an inline scalar, an inline empty collection, and a nested block.
func fprintNested(sb *strings.Builder, v any, indent int) error {
	switch v := v.(type) {
	case *Object:
		if v.Len() == 0 {
			sb.WriteString(" {}\n")
			return nil
		}
		sb.WriteByte('\n')
		return fprintObject(sb, v, indent+1)
	case []any:
		if len(v) == 0 {
			sb.WriteString(" []\n")
			return nil
		}
		sb.WriteByte('\n')
		return fprintArray(sb, v, indent+1)
	}
	s, err := scalarText(v)
	if err != nil {
		return err
	}
	sb.WriteByte(' ')
	sb.WriteString(s)
	sb.WriteByte('\n')
	return nil
}

// scalarText renders a scalar value as it should appear in the output,
// quoting strings whose bare text would read back as something else.
func scalarText(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "~", nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", fmt.Errorf("mxyaml: cannot print non-finite float %v", v)
		}
		s := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s, nil
	case string:
		if needsQuote(v) {
			return quote(v), nil
		}
		return v, nil
	}
	return "", fmt.Errorf("mxyaml: cannot print value of type %T", v)
}

func keyText(key string) string {
	if needsQuote(key) {
		return quote(key)
	}
	return key
}

// needsQuote reports whether s, written bare, would fail to read back as
// exactly the string s: it re-resolves to another type, opens a structural
// construct, hides behind a comment, or sheds whitespace.
func needsQuote(s string) bool {
	if s == "" {
		return true
	}
	if _, isString := resolveScalar(s).(*ast.String); !isString {
		return true
	}
	switch s[0] {
	case '-', '!', '#', '&', '*', '[', ']', '{', '}', '|', '>', '\'', '"', '%', '@', '`', '?', ':', ',':
		return true
	}
	if strings.ContainsAny(s, "\n\r#") || strings.Contains(s, ": ") {
		return true
	}
	// Opening delimiters and quotes anywhere in the text would leave the
	// scanner's bracket or quote state open when read back bare.
	if strings.ContainsAny(s, `'"[{(`) {
		return true
	}
	if strings.HasSuffix(s, ":") {
		return true
	}
	if s == "..." || strings.HasPrefix(s, "... ") {
		return true
	}
	// A trailing block-scalar indicator would read back as a header.
	if strings.HasSuffix(s, " |") || strings.HasSuffix(s, " >") {
		return true
	}
	if s[0] == ' ' || s[len(s)-1] == ' ' || s[0] == '\t' || s[len(s)-1] == '\t' {
		return true
	}
	return false
}

// quote renders s as a double-quoted scalar, inverting the escapes the
// scalar resolver understands.
func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteByte(s[i])
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
