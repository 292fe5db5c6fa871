// Package logger provides the structured logging engine for tarsnap-prune.
// Uses log/slog writing to stderr and, when a home directory is known, an
// append-only log file. Archive deletions additionally produce audit
// entries in a separate append-only audit log.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Logger wraps slog.Logger with tarsnap-prune specific utilities.
type Logger struct {
	*slog.Logger
	auditW io.Writer // append-only audit log writer (nil = disabled)
}

// Init initialises the global logger. Safe to call multiple times.
func Init(level, format, logFile, home string, debug bool) (*Logger, error) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	if debug {
		lvl = slog.LevelDebug
	}

	// Build multi-writer: always write to stderr, optionally to file
	writers := []io.Writer{os.Stderr}

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0750); err == nil {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
			if err == nil {
				writers = append(writers, f)
			}
		}
	}

	out := io.MultiWriter(writers...)

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: lvl, AddSource: debug}
	if format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	base := slog.New(handler)
	slog.SetDefault(base)

	// Audit log
	var auditW io.Writer
	if home != "" {
		auditPath := filepath.Join(home, "audit.log")
		if af, err := os.OpenFile(auditPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640); err == nil {
			auditW = af
		}
	}

	return &Logger{
		Logger: base,
		auditW: auditW,
	}, nil
}

// AuditEntry represents a single audit log event.
type AuditEntry struct {
	Timestamp time.Time `json:"ts"`
	Op        string    `json:"op"`
	User      string    `json:"user"`
	KeepSpec  string    `json:"keep_spec,omitempty"`
	Archives  []string  `json:"archives,omitempty"`
	Result    string    `json:"result"` // success | failure
}

// Audit writes an append-only audit log entry.
func (l *Logger) Audit(entry AuditEntry) {
	l.Info("audit",
		"op", entry.Op,
		"user", entry.User,
		"keep_spec", entry.KeepSpec,
		"archives", len(entry.Archives),
		"result", entry.Result,
	)
	if l.auditW == nil {
		return
	}
	line := fmt.Sprintf(`{"ts":%q,"op":%q,"user":%q,"keep_spec":%q,"archives":%q,"result":%q}`+"\n",
		entry.Timestamp.UTC().Format(time.RFC3339),
		entry.Op, entry.User, entry.KeepSpec,
		strings.Join(entry.Archives, ","), entry.Result,
	)
	_, _ = l.auditW.Write([]byte(line))
}
