// Package osutil holds filesystem and IO helpers: file CRCs, pattern
// listing, bounded retry, timeouts, and local port probing.
package osutil

import (
	"errors"
	"fmt"
	"hash/crc32"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"time"
)

// ErrTimeout is returned by RunWithTimeout when the operation does not
// finish in time
var ErrTimeout = errors.New("operation timed out")

// Sleep is the function used to wait between retry attempts. It is a
// package variable so tests can substitute their own, the default is
// time.Sleep
var Sleep = time.Sleep

// CRCFromFile returns the 32-bit CRC of the file's contents
func CRCFromFile(path string) (uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return crc32.ChecksumIEEE(data), nil
}

// IterFiles returns every file under dir, recursively, whose base name
// matches pattern (filepath.Match syntax)
func IterFiles(dir, pattern string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ok, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return err
		}
		if ok {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// ListDirEx returns the joined paths of dir's immediate entries whose
// names match pattern (filepath.Match syntax)
func ListDirEx(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}

// Retry invokes fn up to attempts times, sleeping wait between attempts
// and multiplying the wait by backoff after each one. It returns nil on
// the first success, or the last error.
//
// attempts must be >= 1, wait >= 0 and backoff >= 1
func Retry(attempts int, wait time.Duration, backoff float64, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("attempts must be >= 1, got %d", attempts)
	}
	if wait < 0 {
		return fmt.Errorf("wait must be >= 0, got %v", wait)
	}
	if backoff < 1 {
		return fmt.Errorf("backoff must be >= 1, got %v", backoff)
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		if wait > 0 {
			Sleep(wait)
			wait = time.Duration(float64(wait) * backoff)
		}
	}
	return err
}

// RunWithTimeout runs fn on its own goroutine and waits at most d for it
// to finish, returning ErrTimeout on expiry. The goroutine is not
// interrupted on timeout, it keeps running to completion with its result
// discarded
func RunWithTimeout(d time.Duration, fn func() error) error {
	done := make(chan error, 1)
	go func() { done <- fn() }()
	select {
	case err := <-done:
		return err
	case <-time.After(d):
		return ErrTimeout
	}
}

// IsLocalPortOpen returns true if port can be bound on the local host.
// This only checks an instant in time, the port may be taken after the
// check but before this function even returns
func IsLocalPortOpen(port int) bool {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return false
	}
	ln.Close()
	return true
}
