// Package logging builds the zap logger shared by the commands.
package logging

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation of the log file.
const (
	maxSizeMB = 50
	keepDays  = 14
)

type Config struct {
	Level   string    // debug, info, warn, error
	File    string    // Optional rotating log file receiving every level
	Console io.Writer // Human readable output, usually stderr
}

func New(config Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(config.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	encConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	cores := make([]zapcore.Core, 0, 2)
	if config.Console != nil {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encConfig),
			zapcore.Lock(zapcore.AddSync(config.Console)),
			zap.LevelEnablerFunc(func(l zapcore.Level) bool {
				return l >= level
			})))
	}
	// The file keeps everything, debug included, as JSON lines.
	if config.File != "" {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encConfig),
			zapcore.AddSync(&lumberjack.Logger{
				Filename: config.File,
				MaxSize:  maxSizeMB,
				MaxAge:   keepDays,
			}),
			zap.LevelEnablerFunc(func(l zapcore.Level) bool {
				return l >= zap.DebugLevel
			})))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}
