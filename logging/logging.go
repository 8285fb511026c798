// Package logging builds the zap loggers used by the arena binaries.
//
// Output goes to stderr unless a file is configured, in which case it is
// written through a rolling lumberjack file. The terminal frontend always
// logs to a file so log lines never draw over the board.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects where and how much to log.
type Config struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// File enables rolling file output at this path.
	File string
	// JSON switches from the console encoder to one JSON object per line.
	JSON bool
}

// Rolling file policy.
const (
	MaxSizeMB  = 10
	MaxBackups = 3
	MaxAgeDays = 7
)

// New returns a sugared logger and a function that flushes and closes it.
func New(cfg Config) (*zap.SugaredLogger, func(), error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	var (
		sink    zapcore.WriteSyncer
		closers []io.Closer
	)
	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    MaxSizeMB,
			MaxBackups: MaxBackups,
			MaxAge:     MaxAgeDays,
		}
		sink = zapcore.AddSync(lj)
		closers = append(closers, lj)
	} else {
		sink = zapcore.Lock(os.Stderr)
	}

	logger := zap.New(zapcore.NewCore(encoder(cfg.JSON), sink, level), zap.AddCaller())
	sugar := logger.Sugar()

	closeFn := func() {
		_ = sugar.Sync()
		for _, c := range closers {
			_ = c.Close()
		}
	}
	return sugar, closeFn, nil
}

// ParseLevel maps a level name to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}

func encoder(json bool) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	if json {
		return zapcore.NewJSONEncoder(cfg)
	}
	return zapcore.NewConsoleEncoder(cfg)
}
