package logger

import (
	"io"
	"os"
	"path/filepath"
	"postman-backend/internal/helper"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	AppLogger  = zerolog.New(os.Stderr).With().Timestamp().Logger()
	HttpLogger = zerolog.Nop()
)

// Init wires AppLogger (console + app.log, with caller) and HttpLogger (http.log only)
// under dir/<dd-mm-yyyy>. An empty dir keeps everything on the console.
func Init(level, dir string) {
	appLogLevel := parseLogLevel(level, zerolog.InfoLevel)

	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return filepath.Base(file) + ":" + strconv.Itoa(line)
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

	var appOut io.Writer = console
	var httpOut io.Writer = io.Discard

	if dir != "" {
		logPath := filepath.Join(dir, helper.GetCurrentTimeWithFormat("02-01-2006"))
		if err := os.MkdirAll(logPath, 0o755); err != nil {
			log.Error().Err(err).Msg("Failed to create log directory")
		} else {
			if appFile, err := openLogFile(filepath.Join(logPath, "app.log")); err == nil {
				appOut = zerolog.MultiLevelWriter(console, appFile)
			}
			if httpFile, err := openLogFile(filepath.Join(logPath, "http.log")); err == nil {
				httpOut = httpFile
			}
		}
	}

	AppLogger = zerolog.New(appOut).
		Level(appLogLevel).
		With().
		Timestamp().
		Caller().
		Logger()

	HttpLogger = zerolog.New(httpOut).
		Level(appLogLevel).
		With().
		Timestamp().
		Logger()

	zerolog.DefaultContextLogger = &AppLogger
}

func openLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o664)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to open log file")
		return nil, err
	}
	return f, nil
}

func parseLogLevel(levelStr string, defaultLevel zerolog.Level) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return defaultLevel
	}
}
