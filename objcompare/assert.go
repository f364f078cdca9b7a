package objcompare

import "fmt"

// CompareError is the failure Assert reports when two values are unequal.
// It carries the breadcrumb path and both operands
type CompareError struct {
	Path Path
	A, B interface{}

	hideVals bool
}

func (e *CompareError) Error() string {
	if e.hideVals {
		return fmt.Sprintf("value at compound %s does not match", e.Path)
	}
	return fmt.Sprintf("value at compound %s does not match:\na: %s\nb: %s",
		e.Path, repr(e.A), repr(e.B))
}

// Assert returns an error if a does not equal b under the default
// configuration. see Comparer.Assert
func Assert(a, b interface{}) error {
	return defaultComparer.Assert(a, b)
}

// Assert returns nil when a equals b, and otherwise a *CompareError whose
// message holds the diff path and, unless the comparer was built with
// WithoutValues, the full representation of both operands
func (c *Comparer) Assert(a, b interface{}) error {
	p := c.diff(a, b, 0)
	if p == nil {
		return nil
	}
	return &CompareError{Path: p, A: a, B: b, hideVals: c.hideVals}
}
