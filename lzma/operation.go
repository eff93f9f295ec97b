package lzma

import "fmt"

// operation represents a literal or a match. A literal has distance zero and
// length one. A short rep is a match of length one with the distance of the
// most recent match.
type operation struct {
	distance int
	n        int
}

// lit creates a literal operation.
func lit() operation { return operation{n: 1} }

// isLiteral returns whether the operation is a literal.
func (op operation) isLiteral() bool { return op.distance == 0 }

// String returns a string representation of the operation.
func (op operation) String() string {
	if op.isLiteral() {
		return "L"
	}
	return fmt.Sprintf("M{%d,%d}", op.distance, op.n)
}
