// Package logger configures the global zerolog logger of the membership service.
package logger

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelWriter splits log output by level.
// Trace and warn get their own writer, error and up go to ErrorWriter,
// debug and info go to InfoWriter.
type LevelWriter struct {
	io.Writer
	ErrorWriter io.Writer
	InfoWriter  io.Writer
	TraceWriter io.Writer
	WarnWriter  io.Writer
}

// WriteLevel implements zerolog.LevelWriter.
func (lw *LevelWriter) WriteLevel(l zerolog.Level, p []byte) (n int, err error) {
	var w io.Writer

	if l == zerolog.Disabled {
		return 0, nil
	}

	switch {
	case l == zerolog.TraceLevel:
		w = lw.TraceWriter
	case l == zerolog.WarnLevel:
		w = lw.WarnWriter
	case l > zerolog.WarnLevel:
		w = lw.ErrorWriter
	default:
		w = lw.InfoWriter
	}

	return w.Write(p) //nolint:wrapcheck
}

// Init the zerolog logger.
// Depending on the config it enables all, some or no logger at all.
// Be sure to enable at least one logger for output.
func Init(cfg Log) error {
	var (
		logLevel, err = zerolog.ParseLevel(cfg.LogLevel)
		writers       []io.Writer
		stack         bool
	)

	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("loglevel %s is not supported", cfg.LogLevel))
	}

	if cfg.ServiceName == "" {
		return ErrServiceNameIsEmpty
	}

	if cfg.AppName == "" {
		return ErrAppNameIsEmpty
	}

	// use zerolog stack marshal func if trace level is set
	if logLevel == zerolog.TraceLevel {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack //nolint:reassign
		stack = true
	}

	zerolog.SetGlobalLevel(logLevel)
	zerolog.ErrorHandler = ErrorHandler //nolint:reassign

	ph := NewPrometheusHook(cfg.ServiceName)

	if cfg.Console.Enabled {
		writers = append(writers, NewConsoleWriter(cfg))
	}

	if cfg.File.Enabled {
		if fw := newRollingLevelFiles(cfg.File); fw != nil {
			writers = append(writers, fw)
		}
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).Hook(ph).With().
		Timestamp().
		Str("app", cfg.AppName)

	switch {
	case cfg.ReportCaller && stack:
		ctx = ctx.Stack()
	case cfg.ReportCaller:
		ctx = ctx.Caller()
	}

	log.Logger = ctx.Logger()

	return nil
}

// NewRollingFile returns a lumberjack writer for one rotated file below dir.
func NewRollingFile(dir string, f RollingFile) io.Writer {
	return &lumberjack.Logger{
		Filename:   path.Join(dir, f.Name),
		MaxSize:    f.MaxSize,
		MaxAge:     f.MaxAge,
		MaxBackups: f.MaxBackups,
		LocalTime:  false,
		Compress:   false,
	}
}

// newRollingLevelFiles uses LevelWriter and lumberjack to create file based log.
func newRollingLevelFiles(cfg LogFile) io.Writer {
	if err := os.MkdirAll(cfg.Path, 0o750); err != nil { //nolint: mnd
		log.Error().Err(err).Str("path", cfg.Path).Msg("can't create log directory")

		return nil
	}

	return &LevelWriter{
		ErrorWriter: NewRollingFile(cfg.Path, cfg.Error()),
		InfoWriter:  NewRollingFile(cfg.Path, cfg.Info()),
		TraceWriter: NewRollingFile(cfg.Path, cfg.Trace()),
		WarnWriter:  NewRollingFile(cfg.Path, cfg.Warn()),
	}
}

// NewConsoleWriter creates the console LevelWriter, info on stdout and the rest on stderr.
func NewConsoleWriter(cfg Log) io.Writer {
	wrap := func(out *os.File) io.Writer {
		if !cfg.Console.UseConsoleWriter {
			return out
		}

		return zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    false,
			TimeFormat: zerolog.TimeFieldFormat,
		}
	}

	return &LevelWriter{
		ErrorWriter: wrap(os.Stderr),
		InfoWriter:  wrap(os.Stdout),
		TraceWriter: wrap(os.Stderr),
		WarnWriter:  wrap(os.Stderr),
	}
}
