package objcompare

import (
	"fmt"
	"strings"
)

// Path is a breadcrumb to the first divergence between two compared
// values: an ordered run of mapping keys and sequence indices, ending in
// a description of the mismatch. An empty path means the values are equal
type Path []interface{}

// String renders the path as a compact literal, eg ["value", 1, "0 != 1"]
func (p Path) String() string {
	segs := make([]string, len(p))
	for i, seg := range p {
		switch s := seg.(type) {
		case string:
			segs[i] = fmt.Sprintf("%q", s)
		default:
			segs[i] = fmt.Sprintf("%v", seg)
		}
	}
	return "[" + strings.Join(segs, ", ") + "]"
}

// Diff returns the breadcrumb path to the first difference between a and
// b under the default configuration. see Comparer.Diff
func Diff(a, b interface{}) Path {
	return defaultComparer.Diff(a, b)
}

// Diff returns an empty path if a equals b, and otherwise the breadcrumb
// path to the first divergence.
//
//	Diff([]interface{}{map[string]interface{}{"first": 0}},
//	     []interface{}{map[string]interface{}{"first": 1}})
//	// Path{0, "first", "0 != 1"}
//
// Traversal mirrors Compare's dispatch exactly and is deterministic:
// sequences walk by ascending index, mappings walk their keys sorted by
// string form. The terminal element describes the mismatch: two
// representations joined by " != " for leaf values, a length message for
// sequences of differing lengths, and a category message (eg "list is not
// a dict") when container shapes disagree. Diff never panics for
// well-formed inputs
func (c *Comparer) Diff(a, b interface{}) Path {
	return c.diff(a, b, 0)
}
