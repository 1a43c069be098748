// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for go-brainstorm.
//
// The server logs JSON to stdout. The terminal client cannot write to stdout
// while the TUI owns the screen, so it logs to a file next to the binary.
// Request-scoped loggers travel in the context; use FromContext or
// FromRequest to get them back.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger so the whole zerolog API is available.
type Logger struct {
	zerolog.Logger
}

// NewLogger constructs a *Logger for the given role label (e.g. "server")
// that writes JSON to os.Stdout.
//
// The logger is configured with:
//   - global log level set to Debug (all levels are emitted);
//   - a "role" field set to role, for filtering logs of one component;
//   - a "ts" timestamp field added to every log entry;
//   - a "func" caller field with the fully-qualified function name
//     instead of the default file:line format.
//
// Example usage:
//
//	log := logger.NewLogger("brainstorm-server")
//	log.Info().Str("addr", cfg.Server.HTTPAddress).Msg("server started")
func NewLogger(role string) *Logger {
	return New(os.Stdout, role)
}

// NewFileLogger constructs a *Logger like [NewLogger] that appends to the
// file name in the directory of the running executable. It is used by the
// terminal client, whose stdout belongs to the UI.
//
// If the executable path cannot be resolved or the file cannot be opened,
// the logger writes to os.Stderr instead.
//
// Example usage:
//
//	log := logger.NewFileLogger("brainstorm-client", "brainstorm-client.log")
func NewFileLogger(role, name string) *Logger {
	var w io.Writer = os.Stderr

	execPath, err := os.Executable()
	if err == nil {
		path := filepath.Join(filepath.Dir(execPath), name)
		if f, openErr := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); openErr == nil {
			w = f
		}
	}

	return New(w, role)
}

// New builds a logger writing JSON to w with the same fields as
// [NewLogger]. Tests pass a bytes.Buffer to inspect the output.
func New(w io.Writer, role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	l := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{l}
}

// Nop discards everything. Used in tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy that can be enriched without touching l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithContext stores l in ctx.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromRequest returns the logger stored in the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger stored in ctx, or zerolog's default
// logger when there is none. It never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
