// Package nicenum formats numbers for human reading: comma-grouped
// integers, floats rounded to a precision increment with space-grouped
// fractional digits, and memory sizes.
package nicenum

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Format renders a number human-readably. Integers are comma-grouped as
// is. Floats are rounded to the nearest multiple of precision; the
// integer digits group with commas and the fractional digits group in
// threes with spaces.
//
//	Format(23456789, 3)        // "23,456,789"
//	Format(123567.0, 1000)     // "124,000"
//	Format(123567.0, 0.1)      // "123,567.0"
//	Format(5.3918e-07, 1e-10)  // "0.000 000 539 2"
func Format(v interface{}, precision float64) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return humanize.Comma(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return humanize.BigComma(new(big.Int).SetUint64(rv.Uint()))
	}
	f := rv.Float()
	rounded := math.Round(f/precision) * precision
	digits := fracDigits(precision)
	s := strconv.FormatFloat(rounded, 'f', digits, 64)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	parts := strings.SplitN(s, ".", 2)
	out := groupInt(parts[0])
	if len(parts) == 2 {
		out += "." + groupFrac(parts[1])
	}
	if neg {
		out = "-" + out
	}
	return out
}

// groupInt comma-groups a plain digit string. big.Int keeps the grouping
// exact for magnitudes that do not fit in an int64
func groupInt(digits string) string {
	i, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return digits
	}
	return humanize.BigComma(i)
}

// fracDigits counts how many fractional digits a precision increment
// implies; computed by repeated scaling rather than log10 to dodge float
// error at powers of ten
func fracDigits(precision float64) int {
	digits := 0
	for p := precision; p < 1 && digits < 20; p *= 10 {
		digits++
	}
	return digits
}

// groupFrac splits fractional digits into space-separated groups of three
func groupFrac(frac string) string {
	var groups []string
	for i := 0; i < len(frac); i += 3 {
		end := i + 3
		if end > len(frac) {
			end = len(frac)
		}
		groups = append(groups, frac[i:end])
	}
	return strings.Join(groups, " ")
}

// FormatMemory renders a byte count with binary-divisor units, capping at
// gigabytes.
//
//	FormatMemory(2)          // "2.0B"
//	FormatMemory(2000000000) // "1.86GB"
func FormatMemory(bytes float64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%.1fB", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.2fKB", bytes/1024)
	case bytes < 1024*1024*1024:
		return fmt.Sprintf("%.2fMB", bytes/(1024*1024))
	}
	return fmt.Sprintf("%.2fGB", bytes/(1024*1024*1024))
}
