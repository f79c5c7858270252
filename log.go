package rpn

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/itchyny/timefmt-go"
)

// LogLevel is the severity of a log line. Higher levels are more verbose.
type LogLevel int

const (
	LevelError LogLevel = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

var levelNames = [...]string{
	LevelError: "ERROR",
	LevelWarn:  "WARN",
	LevelInfo:  "INFO",
	LevelDebug: "DEBUG",
}

func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLogLevel parses a level name case-insensitively. Unknown names,
// including the empty string, yield LevelWarn.
func ParseLogLevel(s string) LogLevel {
	s = strings.ToUpper(s)
	if s == "WARNING" {
		return LevelWarn
	}
	for l, name := range levelNames {
		if s == name {
			return LogLevel(l)
		}
	}
	return LevelWarn
}

// DefaultTimeLayout is the strftime layout of log timestamps.
const DefaultTimeLayout = "%Y-%m-%dT%H:%M:%SZ"

// Logger receives the evaluator's push/reduce traces and failures.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)

	// With returns a child logger that appends fields to every line.
	With(fields map[string]any) Logger
}

type logField struct {
	key   string
	value string
}

// logSink is the writer shared by a logger and all of its children.
type logSink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *logSink) write(line []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.w.Write(line)
}

// textLogger writes one line per entry:
//
//	[LEVEL] <timestamp> message key=value ...
//
// Fields are sorted by key. Values holding white space are quoted.
type textLogger struct {
	sink   *logSink
	level  LogLevel
	layout string // strftime; empty omits the timestamp
	now    func() time.Time
	fields []logField
}

// NewLogger returns a logger writing entries at or below level to w, or to
// os.Stderr when w is nil.
func NewLogger(level LogLevel, w io.Writer) Logger {
	return NewLoggerWithLayout(level, w, DefaultTimeLayout)
}

// NewLoggerWithLayout is like NewLogger but renders timestamps with the given
// strftime layout. An empty layout omits timestamps.
func NewLoggerWithLayout(level LogLevel, w io.Writer, layout string) Logger {
	if w == nil {
		w = os.Stderr
	}
	return &textLogger{
		sink:   &logSink{w: w},
		level:  level,
		layout: layout,
		now:    time.Now,
	}
}

func (l *textLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	merged := make(map[string]string, len(l.fields)+len(fields))
	for _, f := range l.fields {
		merged[f.key] = f.value
	}
	for k, v := range fields {
		merged[k] = fieldValue(v)
	}
	child := *l
	child.fields = make([]logField, 0, len(merged))
	for k, v := range merged {
		child.fields = append(child.fields, logField{k, v})
	}
	sort.Slice(child.fields, func(i, j int) bool { return child.fields[i].key < child.fields[j].key })
	return &child
}

func (l *textLogger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args) }
func (l *textLogger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args) }
func (l *textLogger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args) }
func (l *textLogger) Errorf(format string, args ...any) { l.logf(LevelError, format, args) }

func (l *textLogger) logf(level LogLevel, format string, args []any) {
	if level > l.level {
		return
	}
	buf := make([]byte, 0, 128)
	buf = append(buf, '[')
	buf = append(buf, level.String()...)
	buf = append(buf, "] "...)
	if l.layout != "" {
		buf = append(buf, timefmt.Format(l.now().UTC(), l.layout)...)
		buf = append(buf, ' ')
	}
	buf = fmt.Appendf(buf, format, args...)
	for _, f := range l.fields {
		buf = append(buf, ' ')
		buf = append(buf, f.key...)
		buf = append(buf, '=')
		buf = append(buf, f.value...)
	}
	buf = append(buf, '\n')
	l.sink.write(buf)
}

func fieldValue(v any) string {
	s, ok := v.(string)
	if !ok {
		return fmt.Sprint(v)
	}
	if s == "" || strings.IndexFunc(s, func(r rune) bool { return r <= ' ' }) >= 0 {
		return strconv.Quote(s)
	}
	return s
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any)        {}
func (noopLogger) Infof(string, ...any)         {}
func (noopLogger) Warnf(string, ...any)         {}
func (noopLogger) Errorf(string, ...any)        {}
func (l noopLogger) With(map[string]any) Logger { return l }

// NewNoopLogger returns a logger that discards everything.
func NewNoopLogger() Logger {
	return noopLogger{}
}
