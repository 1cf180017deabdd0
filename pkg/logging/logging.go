package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type RotateOptions struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// FileLogger builds a JSON logger writing both to stdout and to a rotated
// file at path. The returned closer releases the file.
func FileLogger(level logrus.Level, path string, opts RotateOptions) (io.Closer, *logrus.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 100
	}
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(io.MultiWriter(os.Stdout, rotator))
	logger.SetLevel(level)
	return rotator, logger, nil
}

func ConsoleLogger(level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	return logger
}
