package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/jask/tasklist/internal/config"
)

func TestFormatterLine(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, logrus.InfoLevel)
	l.WithFields(logrus.Fields{"source": "rest", "error": errors.New("timeout")}).Error("refresh failed")

	line := buf.String()
	require.Regexp(t, regexp.MustCompile(`^\S+ ERROR \[tasklist\] event_id=[0-9a-f-]{36} msg="refresh failed" error="timeout" source="rest"\n$`), line)
}

func TestLevelFilters(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, logrus.InfoLevel)
	l.Debug("hidden")
	require.Empty(t, buf.String())
}

func TestOpenWritesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "tasklist.log")
	l, closer, err := Open(config.LogConfig{Path: path, Level: "warn", MaxSizeMB: 1}, true)
	require.NoError(t, err)
	require.Equal(t, logrus.DebugLevel, l.GetLevel())
	l.Warn("soft failure")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `msg="logger initialized"`)
	require.Contains(t, string(data), `msg="soft failure"`)
}

func TestOpenRejectsBadLevel(t *testing.T) {
	t.Parallel()

	_, _, err := Open(config.LogConfig{Path: filepath.Join(t.TempDir(), "x.log"), Level: "loud"}, false)
	require.Error(t, err)
}
