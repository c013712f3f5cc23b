package mxyaml

import "fmt"

const defaultMaxDepth = 1000

type config struct {
	maxDepth int
}

// Option configures a Parse call.
type Option func(*config) error

// MaxDepth caps the nesting depth the parser will follow before failing
// with a recursion-limit error. n must be positive.
func MaxDepth(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("mxyaml: max depth must be positive, got %d", n)
		}
		c.maxDepth = n
		return nil
	}
}
