// Package logging sets up the diagnostic log. The terminal belongs to the UI,
// so entries go to a rotating file instead of stderr.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jask/tasklist/internal/config"
)

// Formatter writes one line per entry: time, level, event id, message, fields.
type Formatter struct {
	SystemName string
}

func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	fmt.Fprintf(b, "%s %-5s [%s] event_id=%s msg=%q",
		entry.Time.Format("2006-01-02T15:04:05.000Z07:00"),
		strings.ToUpper(entry.Level.String()),
		f.SystemName,
		uuid.NewString(),
		entry.Message,
	)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, " %s=%q", k, fmt.Sprint(entry.Data[k]))
	}

	if entry.HasCaller() {
		fmt.Fprintf(b, " caller=%s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line)
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// New builds a logger writing to w.
func New(w io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&Formatter{SystemName: "tasklist"})
	l.SetLevel(level)
	return l
}

// Open builds the file-backed logger described by cfg. The returned closer
// flushes and closes the rotating file.
func Open(cfg config.LogConfig, debug bool) (*logrus.Logger, io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log.level: %w", err)
	}
	if debug {
		level = logrus.DebugLevel
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}

	file := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	l := New(file, level)
	l.SetReportCaller(level >= logrus.DebugLevel)
	l.WithField("path", cfg.Path).Info("logger initialized")
	return l, file, nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	return New(io.Discard, logrus.PanicLevel)
}
