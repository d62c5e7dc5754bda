// Package logger provides structured logging with custom levels and formatting
// for colorgen.
//
// Log output format:
//
//	2006-01-02T15:04:05.000Z [LEVEL] message | key=value, key2=value2
//
// Custom levels beyond the standard slog set:
//   - LevelTrace (-8): per-file write tracing
//   - LevelFail  (12): errors that end the run
package logger

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// ///////////////////////////////////////////////
// Custom Levels
// ///////////////////////////////////////////////

const (
	LevelTrace slog.Level = -8
	LevelDebug slog.Level = slog.LevelDebug // -4
	LevelInfo  slog.Level = slog.LevelInfo  // 0
	LevelWarn  slog.Level = slog.LevelWarn  // 4
	LevelError slog.Level = slog.LevelError // 8
	LevelFail  slog.Level = 12
)

// levelNames maps accepted level strings to levels.
var levelNames = map[string]slog.Level{
	"trace": LevelTrace,
	"debug": LevelDebug,
	"info":  LevelInfo,
	"warn":  LevelWarn,
	"error": LevelError,
	"fail":  LevelFail,
}

// levelName returns the display name for a log level.
func levelName(l slog.Level) string {
	switch {
	case l <= LevelTrace:
		return "TRACE"
	case l <= LevelDebug:
		return "DEBUG"
	case l <= LevelInfo:
		return "INFO"
	case l <= LevelWarn:
		return "WARN"
	case l <= LevelError:
		return "ERROR"
	default:
		return "FAIL"
	}
}

// ParseLevel converts a level string to slog.Level (case-insensitive).
// Returns LevelInfo for unrecognized strings.
func ParseLevel(s string) slog.Level {
	if l, ok := levelNames[strings.ToLower(s)]; ok {
		return l
	}
	return LevelInfo
}

// ValidLevel reports whether s names a level understood by [ParseLevel].
func ValidLevel(s string) bool {
	_, ok := levelNames[strings.ToLower(s)]
	return ok
}

// ///////////////////////////////////////////////
// Handler
// ///////////////////////////////////////////////

const timeFormat = "2006-01-02T15:04:05.000Z"

// Handler is a slog.Handler that writes one line per record:
//
//	2006-01-02T15:04:05.000Z [WARN] hex color missing leading '#', accepted | scheme=ForestNight, role=Border
//
// Values that would break the "k=v, k=v" layout (spaces, commas, quotes,
// empty strings) are written Go-quoted, so catalog paths and error text stay
// a single field. Group attributes are flattened to dotted keys.
type Handler struct {
	w     io.Writer
	mu    *sync.Mutex
	level slog.Level
	// pre holds attributes from [Handler.WithAttrs], already formatted.
	pre   []byte
	group string
}

// NewHandler creates a Handler that writes to w, filtering records below level.
func NewHandler(w io.Writer, level slog.Level) *Handler {
	return &Handler{w: w, level: level, mu: &sync.Mutex{}}
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats and writes a log record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	line := make([]byte, 0, 160)
	line = r.Time.UTC().AppendFormat(line, timeFormat)
	line = append(line, " ["...)
	line = append(line, levelName(r.Level)...)
	line = append(line, "] "...)
	line = append(line, r.Message...)

	attrs := slices.Clone(h.pre)
	r.Attrs(func(a slog.Attr) bool {
		attrs = appendAttr(attrs, h.group, a)
		return true
	})
	if len(attrs) > 0 {
		line = append(line, " | "...)
		line = append(line, attrs...)
	}
	line = append(line, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(line)
	return err
}

// WithAttrs returns a Handler that writes attrs on every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.pre = slices.Clone(h.pre)
	for _, a := range attrs {
		h2.pre = appendAttr(h2.pre, h.group, a)
	}
	return &h2
}

// WithGroup returns a Handler that prefixes later keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.group = joinKey(h.group, name)
	return &h2
}

// appendAttr appends a as "key=value" to dst, separated from earlier
// attributes by ", ".
func appendAttr(dst []byte, group string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			group = joinKey(group, a.Key)
		}
		for _, ga := range a.Value.Group() {
			dst = appendAttr(dst, group, ga)
		}
		return dst
	}
	if len(dst) > 0 {
		dst = append(dst, ", "...)
	}
	dst = append(dst, joinKey(group, a.Key)...)
	dst = append(dst, '=')
	v := a.Value.String()
	if needsQuote(v) {
		return strconv.AppendQuote(dst, v)
	}
	return append(dst, v...)
}

func joinKey(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}

func needsQuote(s string) bool {
	return s == "" || strings.ContainsAny(s, " ,=|\"\t\r\n")
}

// ///////////////////////////////////////////////
// Logger Constructor
// ///////////////////////////////////////////////

// Options configures [New].
type Options struct {
	// Level is the minimum level written.
	Level slog.Level
	// File, when set, also appends log lines to a rotating file.
	File string
	// MaxSizeMB is the size at which File is rotated.
	MaxSizeMB int
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates a slog.Logger writing to console and, if opts.File is set, to
// a rotating log file. The returned io.Closer must be closed to flush the file.
func New(console io.Writer, opts Options) (*slog.Logger, io.Closer) {
	if opts.File == "" {
		return slog.New(NewHandler(console, opts.Level)), nopCloser{}
	}
	lj := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: 3,
		MaxAge:     28,
	}
	return slog.New(NewHandler(io.MultiWriter(console, lj), opts.Level)), lj
}

// ///////////////////////////////////////////////
// Helper Functions
// ///////////////////////////////////////////////

// Trace logs a message at LevelTrace.
func Trace(logger *slog.Logger, msg string, args ...any) {
	logger.Log(context.Background(), LevelTrace, msg, args...)
}

// Fail logs a message at LevelFail.
func Fail(logger *slog.Logger, msg string, args ...any) {
	logger.Log(context.Background(), LevelFail, msg, args...)
}
