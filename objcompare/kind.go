package objcompare

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// kind defines the closed set of structural categories a value can belong
// to. every comparison starts by tagging both operands with a kind, and
// only matching kinds recurse into contents
type kind uint8

const (
	kindOther kind = iota
	kindNumber
	kindText
	kindSequence
	kindSet
	kindMapping
)

// String names kinds the way they read in diff messages
func (k kind) String() string {
	switch k {
	case kindNumber:
		return "number"
	case kindText:
		return "string"
	case kindSequence:
		return "list"
	case kindSet:
		return "set"
	case kindMapping:
		return "dict"
	}
	return "object"
}

// Set is an unordered collection. Any map with struct{} values is treated
// as set-like; Set is the generic spelling for callers that don't already
// have one
type Set map[interface{}]struct{}

// NewSet returns a Set of the given elements
func NewSet(elems ...interface{}) Set {
	s := make(Set, len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}
	return s
}

var emptyStruct = reflect.TypeOf(struct{}{})

// kindOf tags a value with its structural kind. tagging happens once per
// value, up front, so the recursive comparison never re-probes types
func kindOf(v interface{}) kind {
	if v == nil {
		return kindOther
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return kindNumber
	case reflect.String:
		return kindText
	case reflect.Slice, reflect.Array:
		return kindSequence
	case reflect.Map:
		if rv.Type().Elem() == emptyStruct {
			return kindSet
		}
		return kindMapping
	}
	return kindOther
}

// asFloat widens any numeric value to float64 for tolerance comparison
func asFloat(v interface{}) float64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	}
	return rv.Float()
}

// typeName names a value for category-mismatch messages: structural kinds
// by their kind name, everything else by its go type
func typeName(v interface{}) string {
	if v == nil {
		return "nil"
	}
	if k := kindOf(v); k != kindOther {
		return k.String()
	}
	t := reflect.TypeOf(v)
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// repr renders a value for diff messages. containers print in a compact
// literal style ("[1, 2]", `{"a": 1}`) so breadcrumbs read well in test
// output; strings are quoted, everything else defers to the fmt package
func repr(v interface{}) string {
	switch kindOf(v) {
	case kindText:
		return fmt.Sprintf("%q", reflect.ValueOf(v).String())
	case kindSequence:
		rv := reflect.ValueOf(v)
		elems := make([]string, rv.Len())
		for i := range elems {
			elems[i] = repr(rv.Index(i).Interface())
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case kindSet:
		rv := reflect.ValueOf(v)
		elems := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			elems = append(elems, repr(k.Interface()))
		}
		sort.Strings(elems)
		return "{" + strings.Join(elems, ", ") + "}"
	case kindMapping:
		rv := reflect.ValueOf(v)
		keys := sortedKeys(rv)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = repr(k.Interface()) + ": " + repr(rv.MapIndex(k).Interface())
		}
		return "{" + strings.Join(pairs, ", ") + "}"
	}
	return fmt.Sprintf("%v", v)
}

// sortedKeys returns a map's keys ordered by their string form. this is
// the fixed traversal order for mappings, so first-divergence results are
// deterministic across calls
func sortedKeys(rv reflect.Value) []reflect.Value {
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	return keys
}
