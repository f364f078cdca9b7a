package osutil

import (
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCRCFromFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	c := filepath.Join(dir, "c")
	require.NoError(t, os.WriteFile(a, []byte("same"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("same"), 0o644))
	require.NoError(t, os.WriteFile(c, []byte("different"), 0o644))

	crcA, err := CRCFromFile(a)
	require.NoError(t, err)
	crcB, err := CRCFromFile(b)
	require.NoError(t, err)
	crcC, err := CRCFromFile(c)
	require.NoError(t, err)
	require.Equal(t, crcA, crcB)
	require.NotEqual(t, crcA, crcC)

	_, err = CRCFromFile(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestIterFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub", "subsub"), 0o755))
	want := []string{
		filepath.Join(dir, "one.txt"),
		filepath.Join(dir, "sub", "two.txt"),
		filepath.Join(dir, "sub", "subsub", "three.txt"),
	}
	for _, p := range want {
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.bin"), nil, 0o644))

	got, err := IterFiles(dir, "*.txt")
	require.NoError(t, err)
	require.ElementsMatch(t, want, got)

	all, err := IterFiles(dir, "*")
	require.NoError(t, err)
	require.Len(t, all, 4)
}

func TestListDirEx(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.txt"), nil, 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "d.yaml"), 0o755))

	got, err := ListDirEx(dir, "*.yaml")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "b.yaml"),
		filepath.Join(dir, "d.yaml"),
	}, got)
}

func TestRetry(t *testing.T) {
	calls := 0
	err := Retry(3, 0, 1, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	calls = 0
	err = Retry(3, 0, 1, func() error {
		calls++
		if calls < 3 {
			return errors.New("flaky")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)

	calls = 0
	boom := errors.New("boom")
	err = Retry(2, 0, 1, func() error {
		calls++
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 2, calls)
}

func TestRetryBackoff(t *testing.T) {
	var slept []time.Duration
	oldSleep := Sleep
	Sleep = func(d time.Duration) { slept = append(slept, d) }
	defer func() { Sleep = oldSleep }()

	err := Retry(4, time.Second, 2, func() error { return errors.New("nope") })
	require.Error(t, err)
	require.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, slept)
}

func TestRetryValidatesArgs(t *testing.T) {
	fn := func() error { return nil }
	require.Error(t, Retry(0, 0, 1, fn))
	require.Error(t, Retry(1, -time.Second, 1, fn))
	require.Error(t, Retry(1, 0, 0.5, fn))
}

func TestRunWithTimeout(t *testing.T) {
	require.NoError(t, RunWithTimeout(time.Second, func() error { return nil }))

	boom := errors.New("boom")
	require.ErrorIs(t, RunWithTimeout(time.Second, func() error { return boom }), boom)

	err := RunWithTimeout(5*time.Millisecond, func() error {
		time.Sleep(250 * time.Millisecond)
		return nil
	})
	require.ErrorIs(t, err, ErrTimeout)
}

func TestIsLocalPortOpen(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	require.False(t, IsLocalPortOpen(port))
	ln.Close()
	require.True(t, IsLocalPortOpen(port))
}
