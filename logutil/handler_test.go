package logutil

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/require"
)

func TestIndentHandler(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := &log.Logger{Handler: NewIndentHandler(buf), Level: log.InfoLevel}

	logger.Info("Line one\nLine two sits directly beneath line one")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasSuffix(lines[0], " I Line one"), "got %q", lines[0])
	// continuation lines sit under the header: timestamp (19) + spaces
	// and level letter (3)
	require.Equal(t, strings.Repeat(" ", 22)+"Line two sits directly beneath line one", lines[1])
}

func TestIndentHandlerSingleLine(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := &log.Logger{Handler: NewIndentHandler(buf), Level: log.InfoLevel}

	logger.WithField("port", 8080).Warn("listening")

	out := strings.TrimRight(buf.String(), "\n")
	require.True(t, strings.HasSuffix(out, " W listening port=8080"), "got %q", out)
	require.NotContains(t, out, "\n")
}

func TestIndentHandlerLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := &log.Logger{Handler: NewIndentHandler(buf), Level: log.DebugLevel}

	logger.Debug("d")
	logger.Error("e")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasSuffix(lines[0], " D d"))
	require.True(t, strings.HasSuffix(lines[1], " E e"))
}

func TestFileHandler(t *testing.T) {
	dir := t.TempDir()
	h, err := NewFileHandler(dir,
		WithBasename("app"),
		WithPID(7),
		WithTime(time.Date(2021, 3, 2, 1, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	require.Contains(t, h.Path(), "app_2021-03-02-01-00-00_pid7.log")

	logger := &log.Logger{Handler: h, Level: log.InfoLevel}
	logger.WithField("attempt", 2).Info("saving scene")
	require.NoError(t, h.Close())

	raw, err := os.ReadFile(h.Path())
	require.NoError(t, err)
	require.Contains(t, string(raw), " I saving scene attempt=2")
}

func TestFileHandlerCreatesFolder(t *testing.T) {
	dir := t.TempDir() + "/nested/logs"
	h, err := NewFileHandler(dir, WithBasename("app"))
	require.NoError(t, err)
	defer h.Close()

	_, err = os.Stat(h.Path())
	require.NoError(t, err)
}
