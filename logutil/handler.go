package logutil

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/apex/log"
)

const entryTimeLayout = "2006-01-02 15:04:05"

func levelLetter(l log.Level) string {
	switch l {
	case log.DebugLevel:
		return "D"
	case log.InfoLevel:
		return "I"
	case log.WarnLevel:
		return "W"
	case log.ErrorLevel:
		return "E"
	case log.FatalLevel:
		return "F"
	}
	return "?"
}

// IndentHandler is an apex/log handler that writes "<timestamp> <level>
// <message>" lines and indents every continuation line of a multi-line
// message to sit directly beneath the first, so stack traces and wrapped
// output stay visually grouped with their entry header
type IndentHandler struct {
	mu sync.Mutex
	w  io.Writer
}

// NewIndentHandler returns an IndentHandler writing to w
func NewIndentHandler(w io.Writer) *IndentHandler {
	return &IndentHandler{w: w}
}

// HandleLog implements the log.Handler interface
func (h *IndentHandler) HandleLog(e *log.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	head := fmt.Sprintf("%s %s ", e.Timestamp.Format(entryTimeLayout), levelLetter(e.Level))
	msg := strings.ReplaceAll(e.Message, "\n", "\n"+strings.Repeat(" ", len(head)))
	_, err := fmt.Fprintf(h.w, "%s%s%s\n", head, msg, fields(e))
	return err
}

// FileHandler is an apex/log handler that appends entries to a
// timestamped log file created with TimestampedLogFilename, pruning old
// siblings when opened
type FileHandler struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// NewFileHandler opens a timestamped log file in folder and returns a
// handler writing to it. Options are passed through to
// TimestampedLogFilename
func NewFileHandler(folder string, opts ...NameOption) (*FileHandler, error) {
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return nil, err
	}
	path := TimestampedLogFilename(folder, opts...)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileHandler{f: f, path: path}, nil
}

// Path returns the log file's path
func (h *FileHandler) Path() string { return h.path }

// HandleLog implements the log.Handler interface
func (h *FileHandler) HandleLog(e *log.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.f, "%s %s %s%s\n",
		e.Timestamp.Format(entryTimeLayout), levelLetter(e.Level), e.Message, fields(e))
	return err
}

// Close closes the underlying file
func (h *FileHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.f.Close()
}

// fields renders an entry's fields as " k=v" pairs in name order
func fields(e *log.Entry) string {
	if len(e.Fields) == 0 {
		return ""
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields[name])
	}
	return b.String()
}
