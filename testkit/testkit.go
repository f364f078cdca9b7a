// Package testkit holds auxiliary helpers to facilitate testing: tolerance
// assertions for numbers and number sequences, file, folder, zip and XML
// equality assertions, a controllable clock, and a call counter. Assertion helpers
// take a testing.TB first and fail the test on mismatch.
package testkit

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/verkstead/toolkit/objcompare"
	"github.com/verkstead/toolkit/osutil"
)

// NumbersEqual fails the test if a and b differ by more than tolerance
func NumbersEqual(t testing.TB, a, b, tolerance float64) {
	t.Helper()
	if !objcompare.New(objcompare.WithTolerance(tolerance)).Compare(a, b) {
		t.Fatalf("%v != %v (tolerance %v)", a, b, tolerance)
	}
}

// NumberSequencesEqual fails the test unless for every element of a the
// corresponding element of b is equal within tolerance. Sequences of
// different lengths fail
func NumberSequencesEqual(t testing.TB, a, b []float64, tolerance float64) {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("sequence length mismatch, a: %v, b: %v", a, b)
	}
	cmp := objcompare.New(objcompare.WithTolerance(tolerance))
	for i := range a {
		if !cmp.Compare(a[i], b[i]) {
			t.Fatalf("%v != %v (element %d)", a, b, i)
		}
	}
}

// Between fails the test unless a < b < c
func Between(t testing.TB, a, b, c float64) {
	t.Helper()
	if !(a < b && b < c) {
		t.Fatalf("%v is not between %v and %v", b, a, c)
	}
}

// BetweenEq fails the test unless a <= b <= c
func BetweenEq(t testing.TB, a, b, c float64) {
	t.Helper()
	if !(a <= b && b <= c) {
		t.Fatalf("%v is not between %v and %v (inclusive)", b, a, c)
	}
}

// PrefixSuffix fails the test unless s starts with prefix and ends with
// suffix
func PrefixSuffix(t testing.TB, s, prefix, suffix string) {
	t.Helper()
	if !strings.HasPrefix(s, prefix) {
		t.Fatalf("%q does not start with %q", s, prefix)
	}
	if !strings.HasSuffix(s, suffix) {
		t.Fatalf("%q does not end with %q", s, suffix)
	}
}

// PermissionBitsEqual fails the test if the file modes of the two paths
// differ
func PermissionBitsEqual(t testing.TB, calcPath, idealPath string) {
	t.Helper()
	calc, err := os.Stat(calcPath)
	if err != nil {
		t.Fatalf("stat %s: %v", calcPath, err)
	}
	ideal, err := os.Stat(idealPath)
	if err != nil {
		t.Fatalf("stat %s: %v", idealPath, err)
	}
	if calc.Mode() != ideal.Mode() {
		t.Fatalf("mode %v (%s) != mode %v (%s)",
			calc.Mode(), calcPath, ideal.Mode(), idealPath)
	}
}

// CRCEqual fails the test if the two files have different content CRCs
func CRCEqual(t testing.TB, calcPath, idealPath string) {
	t.Helper()
	crc1, err := osutil.CRCFromFile(calcPath)
	if err != nil {
		t.Fatalf("crc %s: %v", calcPath, err)
	}
	crc2, err := osutil.CRCFromFile(idealPath)
	if err != nil {
		t.Fatalf("crc %s: %v", idealPath, err)
	}
	if crc1 != crc2 {
		t.Fatalf("ideal: %s (%d) != calc: %s (%d)", idealPath, crc2, calcPath, crc1)
	}
}

// TextFilesEqual fails the test if the two files are not equal as text.
// It first compares content CRCs, and only when those differ falls back to
// comparing line by line, ignoring trailing whitespace. The fallback
// exists because there can be discrepancies between newlines
func TextFilesEqual(t testing.TB, calcPath, idealPath string) {
	t.Helper()
	crc1, err1 := osutil.CRCFromFile(calcPath)
	crc2, err2 := osutil.CRCFromFile(idealPath)
	if err1 == nil && err2 == nil && crc1 == crc2 {
		return
	}
	calc, err := readLines(calcPath)
	if err != nil {
		t.Fatalf("read %s: %v", calcPath, err)
	}
	ideal, err := readLines(idealPath)
	if err != nil {
		t.Fatalf("read %s: %v", idealPath, err)
	}
	for i := 0; i < len(calc) || i < len(ideal); i++ {
		var lc, li string
		if i < len(calc) {
			lc = strings.TrimRight(calc[i], " \t\r")
		}
		if i < len(ideal) {
			li = strings.TrimRight(ideal[i], " \t\r")
		}
		if lc != li {
			t.Fatalf("files differ at line %d: %q != %q", i+1, lc, li)
		}
	}
}

// FoldersEqual fails the test if the two folders hold different file
// trees. Relative paths are compared case-insensitively in sorted order;
// matching files are then compared pairwise with compare, which defaults
// to CRCEqual. Pass a different compare to switch off of extensions
func FoldersEqual(t testing.TB, calcDir, idealDir string, compare func(t testing.TB, calcPath, idealPath string)) {
	t.Helper()
	if compare == nil {
		compare = CRCEqual
	}
	calcRel, calcAbs, err := folderFiles(calcDir)
	if err != nil {
		t.Fatalf("list %s: %v", calcDir, err)
		return
	}
	idealRel, idealAbs, err := folderFiles(idealDir)
	if err != nil {
		t.Fatalf("list %s: %v", idealDir, err)
		return
	}
	if strings.Join(calcRel, "\n") != strings.Join(idealRel, "\n") {
		t.Fatalf("file lists differ, ideal: %v, calc: %v", idealRel, calcRel)
		return
	}
	for i := range calcAbs {
		compare(t, calcAbs[i], idealAbs[i])
	}
}

// folderFiles returns a folder's files as lowered slash-separated
// relative paths plus the matching absolute paths, both sorted by the
// relative form
func folderFiles(dir string) (rel, abs []string, err error) {
	files, err := osutil.IterFiles(dir, "*")
	if err != nil {
		return nil, nil, err
	}
	type entry struct {
		rel, abs string
	}
	entries := make([]entry, 0, len(files))
	for _, path := range files {
		r, err := filepath.Rel(dir, path)
		if err != nil {
			return nil, nil, err
		}
		entries = append(entries, entry{strings.ToLower(filepath.ToSlash(r)), path})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].rel < entries[j].rel })
	for _, e := range entries {
		rel = append(rel, e.rel)
		abs = append(abs, e.abs)
	}
	return rel, abs, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

// CallCounter counts the number of times its Func is invoked. Useful for
// callback plumbing in tests
type CallCounter struct {
	count int
}

// Incr adds one to the count and returns the new value
func (c *CallCounter) Incr() int {
	c.count++
	return c.count
}

// Count returns the number of recorded calls
func (c *CallCounter) Count() int { return c.count }

// Func returns a callback that increments the counter when invoked
func (c *CallCounter) Func() func() {
	return func() { c.Incr() }
}

// Funcf returns a fmt-style callback that increments the counter,
// discarding its arguments
func (c *CallCounter) Funcf() func(string, ...interface{}) {
	return func(string, ...interface{}) { c.Incr() }
}
