// Package logging configures the process-wide logrus logger. Output always goes
// to stdout and can additionally be written to a rotating file and mirrored to
// Logstash.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level        string
	Format       string
	File         string
	MaxSizeMB    int
	MaxBackups   int
	MaxAgeDays   int
	LogstashAddr string
}

// Setup configures logrus.StandardLogger and returns a function that flushes
// and closes the extra sinks.
func Setup(cfg Config) (*logrus.Logger, func()) {
	logger := logrus.StandardLogger()

	level, err := logrus.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.EqualFold(cfg.Format, "text") {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	}

	writers := []io.Writer{os.Stdout}
	var closers []io.Closer

	if path := strings.TrimSpace(cfg.File); path != "" {
		rotator := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    orDefault(cfg.MaxSizeMB, 10),
			MaxBackups: orDefault(cfg.MaxBackups, 7),
			MaxAge:     orDefault(cfg.MaxAgeDays, 7),
			Compress:   true,
		}
		writers = append(writers, rotator)
		closers = append(closers, rotator)
	}

	if addr := strings.TrimSpace(cfg.LogstashAddr); addr != "" {
		ls, err := NewLogstashWriter(addr)
		if err != nil {
			logger.WithError(err).Warn("logstash sink disabled")
		} else {
			writers = append(writers, ls)
			closers = append(closers, ls)
		}
	}

	logger.SetOutput(io.MultiWriter(writers...))

	return logger, func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}
}

func orDefault(v, d int) int {
	if v <= 0 {
		return d
	}
	return v
}
