package mxyaml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScanLogicalLines(t *testing.T) {
	src := "name: John\n\n  age: 30   \n# full-line comment\nhobbies: reading # trailing\n"
	lines, err := scan(src)
	require.NoError(t, err)

	require.Equal(t, []line{
		{indent: 0, content: "name: John", num: 1},
		{indent: 2, content: "age: 30", num: 3},
		{indent: 0, content: "hobbies: reading", num: 5},
	}, lines)
}

func TestScanCommentStripping(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		content string
	}{
		{"mid token", "- foo#bar", "- foo"},
		{"inside double quotes", `- "baz#bax"`, `- "baz#bax"`},
		{"inside single quotes", "- 'quux#xyzzy'", "- 'quux#xyzzy'"},
		{"inside flow", "a: {b: c#d}", "a: {b: c#d}"},
		{"after flow closes", "a: {b: c} #gone", "a: {b: c}"},
		{"inside magix key", "+key[a#b](c): d", "+key[a#b](c): d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := scan(tt.src)
			require.NoError(t, err)
			require.Len(t, lines, 1)
			require.Equal(t, tt.content, lines[0].content)
		})
	}
}

func TestScanTabIndentation(t *testing.T) {
	_, err := scan("a: 1\n\tb: 2\n")
	require.ErrorIs(t, err, ErrIndentation)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, 2, perr.Line)
	require.Equal(t, 1, perr.Column)
}

func TestScanFlowSpansLines(t *testing.T) {
	src := "a: {x: 1,\n    y: 2,\n    z: [3, 4]}\nb: done\n"
	lines, err := scan(src)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, "a: {x: 1, y: 2, z: [3, 4]}", lines[0].content)
	require.Equal(t, 1, lines[0].num)
	require.Equal(t, "b: done", lines[1].content)
	require.Equal(t, 4, lines[1].num)
}

func TestScanUnterminatedQuote(t *testing.T) {
	_, err := scan("name: \"oops\n")
	require.ErrorIs(t, err, ErrUnterminatedQuote)
}

func TestScanUnterminatedFlowAtEOF(t *testing.T) {
	_, err := scan("a: {x: 1\n")
	require.ErrorIs(t, err, ErrUnterminatedFlowCollection)

	_, err = scan("[1, 2\n")
	require.ErrorIs(t, err, ErrUnterminatedFlowCollection)
}

func TestScanUnbalancedBracketInKey(t *testing.T) {
	_, err := scan("+key[label: value\n")
	require.ErrorIs(t, err, ErrUnbalancedBracketInKey)

	_, err = scan("+key[a](open: value\n")
	require.ErrorIs(t, err, ErrUnbalancedBracketInKey)
}

func TestScanDocumentMarkers(t *testing.T) {
	for _, src := range []string{"---\na: 1\n", "--- doc\n", "...\n"} {
		_, err := scan(src)
		require.ErrorIs(t, err, ErrUnsupportedFeature, "input %q", src)
	}
}

func TestScanFoldedScalarRejected(t *testing.T) {
	_, err := scan("key: >\n  folded text\n")
	require.ErrorIs(t, err, ErrUnsupportedFeature)
}

func TestScanLiteralBlock(t *testing.T) {
	src := "command: |\n  { open } = import('test');\n  open(\"Magix-Introduction.md\");\nnext: 1\n"
	lines, err := scan(src)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	require.True(t, lines[0].hasLit)
	require.Equal(t, "command:", lines[0].content)
	require.Equal(t, "{ open } = import('test');\nopen(\"Magix-Introduction.md\");\n", lines[0].literal)
	require.Equal(t, "next: 1", lines[1].content)
}

func TestScanTrailingIndicatorIsNotHeader(t *testing.T) {
	lines, err := scan("cmd: echo hi |\nnext: 1\n")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.False(t, lines[0].hasLit)
	require.Equal(t, "cmd: echo hi |", lines[0].content)
	require.Equal(t, "next: 1", lines[1].content)

	lines, err = scan("cmd: cat f >\n")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.False(t, lines[0].hasLit)
	require.Equal(t, "cmd: cat f >", lines[0].content)
}

func TestScanOpenParenInValue(t *testing.T) {
	lines, err := scan("note: smile (\n")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, "note: smile (", lines[0].content)
}

func TestScanLiteralBlockBlankLines(t *testing.T) {
	src := "text: |\n  first\n\n  third\n\n\n"
	lines, err := scan(src)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, "first\n\nthird\n", lines[0].literal)
}

func TestScanLiteralBlockDeeperIndent(t *testing.T) {
	src := "text: |\n  if x:\n    nested\n"
	lines, err := scan(src)
	require.NoError(t, err)
	require.Equal(t, "if x:\n  nested\n", lines[0].literal)
}

func TestScanEmptyLiteralBlock(t *testing.T) {
	lines, err := scan("text: |\n")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.True(t, lines[0].hasLit)
	require.Equal(t, "", lines[0].literal)
}

func TestScanCRLF(t *testing.T) {
	lines, err := scan("a: 1\r\nb: 2\r\n")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, "a: 1", lines[0].content)
	require.Equal(t, "b: 2", lines[1].content)
}

func TestParseErrorMessage(t *testing.T) {
	_, err := scan("\tkey: value\n")
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 1, column 1")

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, KindIndentation, perr.Kind)
}
