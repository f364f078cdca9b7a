package objcompare

import (
	"errors"
	"fmt"
	"math"
	"reflect"
)

// DefaultTolerance is the maximum absolute difference under which two
// numbers compare equal when no explicit tolerance is configured
const DefaultTolerance = 1e-6

// ErrMaxDepth is the failure a depth-guarded comparer reports when input
// nesting exceeds the configured maximum
var ErrMaxDepth = errors.New("max depth exceeded")

// Equaler is implemented by values that define their own equality. values
// of the Other kind that implement Equaler are compared with it instead of
// reflection
type Equaler interface {
	Equal(v interface{}) bool
}

// Comparer holds comparison configuration. the zero value is not useful;
// construct with New
type Comparer struct {
	tolerance float64
	maxDepth  int
	hideVals  bool
}

// Option is a function that adjusts a Comparer, zero or more Options can
// be passed to New
type Option func(c *Comparer)

// WithTolerance sets the maximum absolute difference under which two
// numbers compare equal. Negative values are treated as zero
func WithTolerance(tolerance float64) Option {
	return func(c *Comparer) {
		if tolerance < 0 {
			tolerance = 0
		}
		c.tolerance = tolerance
	}
}

// WithMaxDepth guards against pathologically deep inputs: when nesting
// exceeds depth the comparison fails closed, reporting an ErrMaxDepth
// terminal in the diff path. zero (the default) means unbounded
func WithMaxDepth(depth int) Option {
	return func(c *Comparer) {
		c.maxDepth = depth
	}
}

// WithoutValues omits the full representations of both operands from
// Assert failure messages, which is useful when the values are large
func WithoutValues() Option {
	return func(c *Comparer) {
		c.hideVals = true
	}
}

// New creates a Comparer, using the default configuration unless changed
// by options
func New(opts ...Option) *Comparer {
	c := &Comparer{tolerance: DefaultTolerance}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultComparer = New()

// Compare returns true if a equals b under the default configuration.
// see Comparer.Compare
func Compare(a, b interface{}) bool {
	return defaultComparer.Compare(a, b)
}

// Compare returns true if a structurally equals b, false if not.
//
// Both operands are tagged with a structural kind, and equality requires
// matching kinds before contents are considered: numbers of any type
// compare within tolerance, strings compare exactly, sequences compare
// element-wise by index, mappings by key set then per-key value, sets by
// exact membership. Anything else compares by its own equality (Equaler
// when implemented, deep reflection otherwise), requiring identical
// dynamic types. Compare never panics for well-formed inputs; mismatched
// categories are simply unequal
func (c *Comparer) Compare(a, b interface{}) bool {
	return c.diff(a, b, 0) == nil
}

// diff is the single comparison engine: it returns nil when a equals b,
// and otherwise the breadcrumb path to the first divergence found along
// the deterministic walk (ascending index for sequences, string-sorted
// keys for mappings). Compare and Diff both run through here so their
// dispatch can never drift apart
func (c *Comparer) diff(a, b interface{}, depth int) Path {
	if c.maxDepth > 0 && depth > c.maxDepth {
		return Path{fmt.Sprintf("%s (depth > %d)", ErrMaxDepth, c.maxDepth)}
	}

	ka, kb := kindOf(a), kindOf(b)
	switch {
	case ka == kindNumber && kb == kindNumber:
		if math.Abs(asFloat(a)-asFloat(b)) <= c.tolerance {
			return nil
		}
		return Path{mismatch(a, b)}
	case ka == kindMapping:
		if kb != kindMapping {
			return Path{typeName(b) + " is not a dict"}
		}
		return c.diffMapping(reflect.ValueOf(a), reflect.ValueOf(b), depth)
	case ka == kindSequence:
		if kb != kindSequence {
			return Path{typeName(b) + " is not a list"}
		}
		return c.diffSequence(reflect.ValueOf(a), reflect.ValueOf(b), depth)
	case ka == kindSet:
		if kb != kindSet {
			return Path{typeName(b) + " is not a set"}
		}
		if setsEqual(reflect.ValueOf(a), reflect.ValueOf(b)) {
			return nil
		}
		return Path{mismatch(a, b)}
	case ka == kindText && kb == kindText:
		if reflect.ValueOf(a).String() == reflect.ValueOf(b).String() {
			return nil
		}
		return Path{mismatch(a, b)}
	}

	if equalOther(a, b) {
		return nil
	}
	return Path{mismatch(a, b)}
}

func (c *Comparer) diffMapping(a, b reflect.Value, depth int) Path {
	keysA, keysB := sortedKeys(a), sortedKeys(b)
	// mismatched key sets report as a comparison of the two sorted key
	// lists: a length mismatch at the mapping's own path, or the first
	// differing key by sorted position
	if p := c.diff(keyList(keysA), keyList(keysB), depth+1); p != nil {
		return p
	}
	for i, ka := range keysA {
		va := a.MapIndex(ka).Interface()
		vb := b.MapIndex(keysB[i]).Interface()
		if p := c.diff(va, vb, depth+1); p != nil {
			return append(Path{ka.Interface()}, p...)
		}
	}
	return nil
}

func (c *Comparer) diffSequence(a, b reflect.Value, depth int) Path {
	if a.Len() != b.Len() {
		return Path{fmt.Sprintf("len neq (%d != %d): %s != %s",
			a.Len(), b.Len(), repr(a.Interface()), repr(b.Interface()))}
	}
	for i := 0; i < a.Len(); i++ {
		if p := c.diff(a.Index(i).Interface(), b.Index(i).Interface(), depth+1); p != nil {
			return append(Path{i}, p...)
		}
	}
	return nil
}

// setsEqual reports exact set equality: same cardinality, same elements
// under native equality. set elements do not recurse and do not get
// numeric tolerance
func setsEqual(a, b reflect.Value) bool {
	if a.Len() != b.Len() {
		return false
	}
	members := make(map[interface{}]struct{}, b.Len())
	for _, k := range b.MapKeys() {
		members[k.Interface()] = struct{}{}
	}
	for _, k := range a.MapKeys() {
		if _, ok := members[k.Interface()]; !ok {
			return false
		}
	}
	return true
}

// equalOther is the fallback for the Other kind and for mismatched
// categories: dynamic types must match, then the value's own equality
// decides. reflect.DeepEqual backstops types that aren't comparable with
// ==, so the fallback never panics
func equalOther(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if eq, ok := a.(Equaler); ok {
		return eq.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}

func mismatch(a, b interface{}) string {
	return repr(a) + " != " + repr(b)
}

func keyList(keys []reflect.Value) []interface{} {
	list := make([]interface{}, len(keys))
	for i, k := range keys {
		list[i] = k.Interface()
	}
	return list
}
