// Logger construction and a log/slog handler backed by logrus
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// NewLogger initializes the logger with appropriate level
func NewLogger(debugMode bool) *logrus.Logger {
	return NewLoggerTo(os.Stdout, debugMode)
}

// NewLoggerTo is NewLogger writing to out.
func NewLoggerTo(out io.Writer, debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}

// NewSlog returns a *slog.Logger whose records are written by logger.
func NewSlog(logger *logrus.Logger) *slog.Logger {
	return slog.New(NewSlogHandler(logger))
}

// SlogHandler forwards slog records to a logrus logger.
type SlogHandler struct {
	logger *logrus.Logger
	fields logrus.Fields
	groups []string
}

func NewSlogHandler(logger *logrus.Logger) *SlogHandler {
	return &SlogHandler{logger: logger, fields: logrus.Fields{}}
}

func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.logger.IsLevelEnabled(toLogrusLevel(level))
}

func (h *SlogHandler) Handle(ctx context.Context, record slog.Record) error {
	fields := make(logrus.Fields, len(h.fields)+record.NumAttrs())
	for k, v := range h.fields {
		fields[k] = v
	}
	prefix := h.prefix()
	record.Attrs(func(attr slog.Attr) bool {
		addAttr(fields, prefix, attr)
		return true
	})

	entry := h.logger.WithContext(ctx).WithFields(fields)
	if !record.Time.IsZero() {
		entry = entry.WithTime(record.Time)
	}
	entry.Log(toLogrusLevel(record.Level), record.Message)
	return nil
}

func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	prefix := h.prefix()
	for _, attr := range attrs {
		addAttr(clone.fields, prefix, attr)
	}
	return clone
}

func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := h.clone()
	clone.groups = append(clone.groups, name)
	return clone
}

func (h *SlogHandler) clone() *SlogHandler {
	fields := make(logrus.Fields, len(h.fields))
	for k, v := range h.fields {
		fields[k] = v
	}
	return &SlogHandler{
		logger: h.logger,
		fields: fields,
		groups: append([]string(nil), h.groups...),
	}
}

func (h *SlogHandler) prefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}

func addAttr(fields logrus.Fields, prefix string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}
	if attr.Value.Kind() == slog.KindGroup {
		group := prefix
		if attr.Key != "" {
			group += attr.Key + "."
		}
		for _, a := range attr.Value.Group() {
			addAttr(fields, group, a)
		}
		return
	}
	fields[prefix+attr.Key] = attr.Value.Any()
}

func toLogrusLevel(level slog.Level) logrus.Level {
	switch {
	case level >= slog.LevelError:
		return logrus.ErrorLevel
	case level >= slog.LevelWarn:
		return logrus.WarnLevel
	case level >= slog.LevelInfo:
		return logrus.InfoLevel
	}
	return logrus.DebugLevel
}
