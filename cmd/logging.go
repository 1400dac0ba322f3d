package cmd

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/jfmyers9/crates/pkg/discogs"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogger creates a logger with the specified configuration.
// The returned closer is nil when logging to stderr.
func setupLogger(logFile, logLevel string) (zerolog.Logger, io.Closer) {
	// Parse log level
	level := zerolog.WarnLevel
	switch logLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	case "disabled":
		level = zerolog.Disabled
	}

	if logFile == "" {
		// Pretty console output on stderr
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(level).
			With().
			Timestamp().
			Logger(), nil
	}

	lj := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
	}

	logger := zerolog.New(lj).
		Level(level).
		With().
		Timestamp().
		Logger()

	return logger, lj
}

// exitCode maps an error to the process exit status: 2 when the requested
// entity does not exist, 1 otherwise.
func exitCode(err error) int {
	var nf *discogs.NotFoundError
	if errors.As(err, &nf) {
		return 2
	}
	return 1
}
