// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the shop server. Every entry is JSON on
// stdout and carries the process role, a timestamp and the calling function.
// Handlers and services pick up the request-scoped logger (with its trace_id)
// through FromRequest or FromContext.
package logger

import (
	"context"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const traceIDField = "trace_id"

// Logger embeds zerolog.Logger, so the usual Info/Warn/Err chains work on it.
type Logger struct {
	zerolog.Logger
}

// NewLogger builds the process logger. role tags every entry ("go-shop-server",
// "migrations"). level is a zerolog level name; anything unparsable means debug.
func NewLogger(role string, level string) *Logger {
	zerolog.SetGlobalLevel(parseLevel(level))
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}

	zl := zerolog.New(os.Stdout).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{zl}
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.DebugLevel
	}
	return lvl
}

// Nop discards everything. Used by tests and by wiring that has no logger yet.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// WithTraceID returns a copy of l that stamps trace_id on every entry.
// The receiver is left untouched.
func (l *Logger) WithTraceID(traceID string) *Logger {
	return &Logger{l.With().Str(traceIDField, traceID).Logger()}
}

// FromRequest returns the logger the trace middleware stored on r.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger stored on ctx, or zerolog's global logger
// when none was attached. It never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
