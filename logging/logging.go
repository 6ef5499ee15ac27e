// Package logging provides structured logging functionality.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/wheel"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string
	Console    bool
	File       bool
	FilePath   string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days

	// Out receives console logs, os.Stderr when nil. Reports go to stdout.
	Out io.Writer
}

// DefaultLogConfig returns the default logging configuration.
func DefaultLogConfig() LogConfig {
	home, _ := os.UserHomeDir()
	return LogConfig{
		Level:      "warn",
		Console:    true,
		File:       false,
		FilePath:   filepath.Join(home, ".config", "wheel", "logs", "wheel.log"),
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     30,
	}
}

// NewLoggerWithConfig creates a new logger with the specified configuration.
func NewLoggerWithConfig(cfg LogConfig) zerolog.Logger {
	var writers []io.Writer

	if cfg.Console {
		out := cfg.Out
		if out == nil {
			out = os.Stderr
		}
		writers = append(writers, zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	}

	// File writer with rotation
	if cfg.File && cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err == nil {
			writers = append(writers, &lumberjack.Logger{
				Filename:   cfg.FilePath,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAge,
				Compress:   true,
			})
		}
	}

	var writer io.Writer
	switch len(writers) {
	case 0:
		return zerolog.Nop()
	case 1:
		writer = writers[0]
	default:
		writer = zerolog.MultiLevelWriter(writers...)
	}

	return zerolog.New(writer).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

func parseLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(level)
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}

// WithSymbol adds a symbol to the logger context.
func WithSymbol(logger zerolog.Logger, symbol string) zerolog.Logger {
	return logger.With().Str("symbol", symbol).Logger()
}

// LogTransaction logs a transaction recorded in a ledger.
func LogTransaction(logger zerolog.Logger, tx wheel.Transaction) {
	logger.Info().
		Str("event", "transaction").
		Str("date", tx.Date.String()).
		Str("action", string(tx.Action)).
		Str("symbol", tx.Symbol).
		Stringer("quantity", tx.Quantity).
		Stringer("price", tx.Price).
		Str("id", tx.ID).
		Msg("Transaction recorded")
}
