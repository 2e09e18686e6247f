// internal/utils/logger.go
package utils

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerOptions struct {
	Level      string
	Format     string // "json" or "text"; empty picks by environment
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Production bool
}

// ConfigureLogger sets up the standard logrus logger and returns the rotating
// file writer, if any, so the caller can close it on shutdown.
func ConfigureLogger(opts LoggerOptions) io.Closer {
	format := opts.Format
	if format == "" {
		format = "text"
		if opts.Production {
			format = "json"
		}
	}

	if format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05Z07:00",
		})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if opts.File == "" {
		logrus.SetOutput(os.Stdout)
		return nil
	}

	rotating := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}
	logrus.SetOutput(io.MultiWriter(os.Stdout, rotating))
	return rotating
}
