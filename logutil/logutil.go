// Package logutil is log-file housekeeping: timestamped log filenames,
// pruning of old log files, long-line folding, and apex/log handlers that
// write indented multi-line output or timestamped files.
package logutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// DefaultLayout is the time layout embedded in timestamped filenames
const DefaultLayout = "2006-01-02-15-04-05"

// DefaultKeep is how many old log files TimestampedLogFilename leaves
// behind when pruning
const DefaultKeep = 15

type nameConfig struct {
	layout string
	sep    string
	base   string
	ext    string
	t      time.Time
	pid    int
	keep   int
}

// NameOption adjusts how timestamped filenames are built
type NameOption func(cfg *nameConfig)

// WithLayout sets the time layout, default DefaultLayout
func WithLayout(layout string) NameOption {
	return func(cfg *nameConfig) { cfg.layout = layout }
}

// WithSep sets the separator between the filename head and the timestamp,
// default "_"
func WithSep(sep string) NameOption {
	return func(cfg *nameConfig) { cfg.sep = sep }
}

// WithTime pins the timestamp to t instead of the current UTC time
func WithTime(t time.Time) NameOption {
	return func(cfg *nameConfig) { cfg.t = t }
}

// WithBasename sets the log file prefix, default is the folder's base name
func WithBasename(base string) NameOption {
	return func(cfg *nameConfig) { cfg.base = base }
}

// WithExt sets the log file extension, default ".log"
func WithExt(ext string) NameOption {
	return func(cfg *nameConfig) { cfg.ext = ext }
}

// WithPID pins the pid component instead of the current process id
func WithPID(pid int) NameOption {
	return func(cfg *nameConfig) { cfg.pid = pid }
}

// WithKeep sets how many old files pruning leaves, default DefaultKeep
func WithKeep(n int) NameOption {
	return func(cfg *nameConfig) { cfg.keep = n }
}

func buildConfig(opts []NameOption) *nameConfig {
	cfg := &nameConfig{
		layout: DefaultLayout,
		sep:    "_",
		ext:    ".log",
		pid:    os.Getpid(),
		keep:   DefaultKeep,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.t.IsZero() {
		cfg.t = time.Now().UTC()
	}
	return cfg
}

// Timestamp formats t with layout, using the current UTC time when t is
// the zero time
func Timestamp(layout string, t time.Time) string {
	if t.IsZero() {
		t = time.Now().UTC()
	}
	return t.Format(layout)
}

// TimestampedFilename returns "{head}{sep}{timestamp}{ext}" for the given
// filename.
//
//	TimestampedFilename("/logs/blah.log", WithTime(t))
//	// "/logs/blah_2010-09-08-07-06-05.log"
func TimestampedFilename(filename string, opts ...NameOption) string {
	cfg := buildConfig(opts)
	ext := filepath.Ext(filename)
	head := filename[:len(filename)-len(ext)]
	return fmt.Sprintf("%s%s%s%s", head, cfg.sep, cfg.t.Format(cfg.layout), ext)
}

// TimestampedLogFilename returns "<folder>/<base>_<timestamp>_pid<pid><ext>",
// pruning old matching siblings in folder down to the retention count on
// the way. Pruning failures are ignored, the filename is still returned
func TimestampedLogFilename(folder string, opts ...NameOption) string {
	cfg := buildConfig(opts)
	if cfg.base == "" {
		cfg.base = filepath.Base(folder)
	}
	name := fmt.Sprintf("%s_%s_pid%d%s",
		cfg.base, cfg.t.Format(cfg.layout), cfg.pid, cfg.ext)
	pattern := fmt.Sprintf("*%s_*%s", cfg.base, cfg.ext)
	_ = RemoveOldFiles(folder, pattern, cfg.keep)
	return filepath.Join(folder, name)
}

// RemoveOldFiles removes the oldest files in dir matching pattern
// (filepath.Match syntax) so that only maxFiles matches remain. If
// maxFiles is 0, all matches are removed. Individual removal failures are
// skipped
func RemoveOldFiles(dir, pattern string, maxFiles int) error {
	if maxFiles < 0 {
		return fmt.Errorf("maxFiles must be >= 0, got %d", maxFiles)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	type candidate struct {
		path  string
		mtime time.Time
	}
	var matches []candidate
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		matches = append(matches, candidate{filepath.Join(dir, e.Name()), info.ModTime()})
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].mtime.After(matches[j].mtime)
	})
	keep := maxFiles
	if keep > len(matches) {
		keep = len(matches)
	}
	for _, m := range matches[keep:] {
		_ = os.Remove(m.path)
	}
	return nil
}

// WrapLine folds a long line into chunks of at most maxLen characters.
// Chunks after the first carry prefix, which counts toward their length.
// maxLines caps the total number of chunks, 0 means no cap; anything past
// the cap is dropped.
//
// A prefix of maxLen or longer leaves no room for content, so folding
// degrades to one character of content per chunk and those chunks exceed
// maxLen
func WrapLine(s string, maxLines, maxLen int, prefix string) []string {
	if maxLen < 1 || len(s) <= maxLen {
		return []string{s}
	}
	lines := []string{s[:maxLen]}
	step := maxLen - len(prefix)
	if step < 1 {
		step = 1
	}
	remaining := maxLines - 1
	for i := maxLen; i < len(s); i += step {
		if maxLines > 0 && remaining <= 0 {
			break
		}
		end := i + step
		if end > len(s) {
			end = len(s)
		}
		lines = append(lines, prefix+s[i:end])
		remaining--
	}
	return lines
}
