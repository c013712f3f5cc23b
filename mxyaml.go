package mxyaml

import "github.com/magix-dev/mxyaml/ast"

// Parse reads a document in the restricted dialect and returns its parse
// tree. data is copied once up front; String nodes alias that copy wherever
// no escape sequence or literal block forced a rewrite, so the caller may
// reuse data freely. On failure the returned error is a *ParseError and no
// partial tree is produced.
func Parse(data []byte, opts ...Option) (ast.Node, error) {
	cfg := config{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	lines, err := scan(string(data))
	if err != nil {
		return nil, err
	}
	p := &parser{lines: lines, maxDepth: cfg.maxDepth}
	return p.parseDocument()
}
