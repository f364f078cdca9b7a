package testkit

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// recordingTB captures assertion failures so the helpers' failure paths
// can be tested without failing the real test
type recordingTB struct {
	testing.TB
	failed bool
	msg    string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Fatalf(format string, args ...interface{}) {
	r.failed = true
	r.msg = fmt.Sprintf(format, args...)
}

func TestNumbersEqual(t *testing.T) {
	NumbersEqual(t, 1, 1.0001, 0.001)
	NumbersEqual(t, -1, -1, 0)

	rec := &recordingTB{}
	NumbersEqual(rec, 1, 2, 0.5)
	require.True(t, rec.failed)
	require.Equal(t, "1 != 2 (tolerance 0.5)", rec.msg)
}

func TestNumberSequencesEqual(t *testing.T) {
	NumberSequencesEqual(t, []float64{1, 2, 3}, []float64{1, 2.0001, 3}, 0.001)
	NumberSequencesEqual(t, nil, nil, 0)

	rec := &recordingTB{}
	NumberSequencesEqual(rec, []float64{1, 2}, []float64{1, 2, 3}, 0)
	require.True(t, rec.failed)
	require.Contains(t, rec.msg, "length mismatch")

	rec = &recordingTB{}
	NumberSequencesEqual(rec, []float64{1, 2, 3}, []float64{1, 5, 3}, 0.5)
	require.True(t, rec.failed)
	require.Contains(t, rec.msg, "(element 1)")
}

func TestBetween(t *testing.T) {
	Between(t, 1, 2, 3)
	BetweenEq(t, 1, 1, 3)
	BetweenEq(t, 1, 3, 3)

	rec := &recordingTB{}
	Between(rec, 1, 1, 3)
	require.True(t, rec.failed)

	rec = &recordingTB{}
	BetweenEq(rec, 1, 0.5, 3)
	require.True(t, rec.failed)
}

func TestPrefixSuffix(t *testing.T) {
	PrefixSuffix(t, "hello world", "hello", "world")

	rec := &recordingTB{}
	PrefixSuffix(rec, "hello world", "world", "world")
	require.True(t, rec.failed)
	require.Contains(t, rec.msg, "does not start with")
}

func writeFile(t *testing.T, name, contents string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), mode))
	// umask can strip bits at creation
	require.NoError(t, os.Chmod(path, mode))
	return path
}

func TestPermissionBitsEqual(t *testing.T) {
	a := writeFile(t, "a", "x", 0o644)
	b := writeFile(t, "b", "y", 0o644)
	PermissionBitsEqual(t, a, b)

	c := writeFile(t, "c", "z", 0o600)
	rec := &recordingTB{}
	PermissionBitsEqual(rec, a, c)
	require.True(t, rec.failed)
	require.Contains(t, rec.msg, "mode")
}

func TestCRCEqual(t *testing.T) {
	a := writeFile(t, "a", "same contents", 0o644)
	b := writeFile(t, "b", "same contents", 0o644)
	CRCEqual(t, a, b)

	c := writeFile(t, "c", "different contents", 0o644)
	rec := &recordingTB{}
	CRCEqual(rec, a, c)
	require.True(t, rec.failed)
}

func TestTextFilesEqual(t *testing.T) {
	a := writeFile(t, "a", "line one\nline two\n", 0o644)
	b := writeFile(t, "b", "line one\nline two\n", 0o644)
	TextFilesEqual(t, a, b)

	// trailing whitespace and newline discrepancies are not differences
	c := writeFile(t, "c", "line one  \r\nline two", 0o644)
	TextFilesEqual(t, a, c)

	d := writeFile(t, "d", "line one\nline 2\n", 0o644)
	rec := &recordingTB{}
	TextFilesEqual(rec, a, d)
	require.True(t, rec.failed)
	require.Contains(t, rec.msg, "line 2")
}

// writeTree lays out files (slash-separated relative name to contents)
// under a fresh temp dir
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, contents := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	}
	return dir
}

func TestFoldersEqual(t *testing.T) {
	calc := writeTree(t, map[string]string{"a.txt": "x", "sub/b.txt": "y"})
	ideal := writeTree(t, map[string]string{"a.txt": "x", "sub/b.txt": "y"})
	FoldersEqual(t, calc, ideal, nil)
}

func TestFoldersEqualIgnoresNameCase(t *testing.T) {
	calc := writeTree(t, map[string]string{"A.TXT": "x"})
	ideal := writeTree(t, map[string]string{"a.txt": "x"})
	FoldersEqual(t, calc, ideal, nil)
}

func TestFoldersEqualReportsListMismatch(t *testing.T) {
	calc := writeTree(t, map[string]string{"a.txt": "x", "b.txt": "y"})
	ideal := writeTree(t, map[string]string{"a.txt": "x"})
	rec := &recordingTB{}
	FoldersEqual(rec, calc, ideal, nil)
	require.True(t, rec.failed)
	require.Contains(t, rec.msg, "file lists differ")
}

func TestFoldersEqualReportsContentMismatch(t *testing.T) {
	calc := writeTree(t, map[string]string{"a.txt": "x"})
	ideal := writeTree(t, map[string]string{"a.txt": "y"})
	rec := &recordingTB{}
	FoldersEqual(rec, calc, ideal, nil)
	require.True(t, rec.failed)
}

func TestFoldersEqualCustomCompare(t *testing.T) {
	calc := writeTree(t, map[string]string{"a.txt": "x"})
	ideal := writeTree(t, map[string]string{"a.txt": "y"})
	n := 0
	FoldersEqual(t, calc, ideal, func(testing.TB, string, string) { n++ })
	require.Equal(t, 1, n)
}

func TestCallCounter(t *testing.T) {
	c := &CallCounter{}
	fn := c.Func()
	fn()
	fn()
	require.Equal(t, 2, c.Count())
	require.Equal(t, 3, c.Incr())

	ff := c.Funcf()
	ff("ignored %s", "args")
	require.Equal(t, 4, c.Count())
}
