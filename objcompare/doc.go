// Package objcompare compares arbitrary go values for structural equality
// with numeric tolerance, and reports a breadcrumb path to the first point
// of divergence when they differ.
//
// It exists because the language's built-in notions of equality very nearly
// suit the needs of validating serialized structured data, except for
// comparison of floats and similar: numbers that survive a serialization
// round-trip routinely come back as a different numeric type or with
// float error, and those should still compare equal. Container shape is the
// opposite: a list is never equal to a set or a dict, even with identical
// contents, because a shape change in serialized data is a real bug.
//
// Values are classified into a closed set of structural kinds before any
// recursion happens:
//
//	Number    all integer & float types, in any combination
//	Text      strings, compared exactly
//	Sequence  slices & arrays, compared element-wise by index
//	Set       maps with struct{} values (see the Set type), exact membership
//	Mapping   all other maps, compared by key set then per-key value
//	Other     everything else, compared by native equality
//
// Comparison is pure and stateless, so every function here is safe for
// concurrent use. Recursion depth is bounded only by input nesting; see
// WithMaxDepth for an opt-in guard.
package objcompare
