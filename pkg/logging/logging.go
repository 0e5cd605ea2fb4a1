// Package logging builds the diagnostic logger for a single codesnap
// invocation. The logger is an explicit collaborator handed to the engine;
// it is never installed as a process-wide global.
package logging

import (
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls how the invocation logger is assembled.
type Options struct {
	Verbose bool   // Verbose lowers the console level to Debug.
	File    string // File, when non-empty, tees JSON output to a rotating log file.
}

// New returns a logger writing human-readable output to stderr, plus a
// closer that flushes it. When opts.File is set, a second JSON core writes
// to that path through lumberjack rotation.
func New(opts Options) (*zap.Logger, func()) {
	level := zapcore.InfoLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)

	core := consoleCore
	if opts.File != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			fileWriter,
			zapcore.DebugLevel,
		)
		core = zapcore.NewTee(consoleCore, fileCore)
	}

	logger := zap.New(core)
	return logger, func() { syncLogger(logger) }
}

// syncLogger flushes the logger. Syncing stderr fails with EINVAL on some
// platforms when it is neither a terminal nor a regular file, so those
// errors are swallowed.
func syncLogger(logger *zap.Logger) {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if err := logger.Sync(); err != nil {
		if !strings.Contains(strings.ToLower(err.Error()), "invalid argument") {
			log.Printf("logger sync failed: %v", err)
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
