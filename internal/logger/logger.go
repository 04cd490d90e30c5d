package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options mirror the log section of the host config. Level takes zerolog names
// (debug, info, warn, error); HumanReadable switches to the console format the CLI
// uses; a nil Writer means stderr, keeping stdout free for command output.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
}

// Logger is the structured logger shared by the host services, the registry and
// every plugin. Each subsystem derives its own with Component, so entries carry a
// "component" field such as "registry" or "theme". Plugin loggers add a "plugin"
// field with the plugin id. A nil *Logger is valid and logs nothing.
type Logger struct {
	base zerolog.Logger
}

// New builds the root logger from opts. Entries are timestamped; an unknown level
// is an error rather than a silent fallback.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	var output io.Writer = writer
	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.RFC3339
		output = console
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &Logger{base: logger}, nil
}

// Nop discards everything. Tests and library callers without a log sink use it.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop()}
}

// WithFields derives a logger that adds fields to every entry, e.g. the plugin id
// or theme name an operation is about.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}

	builder := l.base.With()
	for key, value := range fields {
		builder = builder.Interface(key, value)
	}

	derived := Logger{base: builder.Logger()}
	return &derived
}

// Component tags entries with the subsystem that wrote them.
func (l *Logger) Component(name string) *Logger {
	if l == nil {
		return nil
	}
	derived := Logger{base: l.base.With().Str("component", name).Logger()}
	return &derived
}

// Info records host lifecycle milestones.
func (l *Logger) Info(msg string) {
	if l == nil {
		return
	}
	l.base.Info().Msg(msg)
}

// Debug is for per-broadcast and per-file detail, off at the default level.
func (l *Logger) Debug(msg string) {
	if l == nil {
		return
	}
	l.base.Debug().Msg(msg)
}

// Warn records requests the host refused or recovered from without failing.
func (l *Logger) Warn(msg string) {
	if l == nil {
		return
	}
	l.base.Warn().Msg(msg)
}

// Error records err under the "error" field. A nil err logs msg alone.
func (l *Logger) Error(err error, msg string) {
	if l == nil {
		return
	}
	event := l.base.Error()
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(msg)
}
