// Package fiber provides the zerolog access log middleware of the web service.
package fiber

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GoMembership/GoMembership/internal/logger"
)

// Config implements fiber middleware struct.
type Config struct {
	// Next defines a function to skip this middleware when returned true.
	//
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// Config of the logger.
	Config logger.Log

	// CacheControlError max-age caching on chain errors.
	CacheControlError string

	// CheckAliveURI for disabling logging of check alive http calls.
	CheckAliveURI string

	// SkipPrefixes are path prefixes which are never logged, e.g. /static.
	SkipPrefixes []string

	// UserLocal is the fiber.Locals key holding a value with a Login field or a fmt.Stringer.
	// Optional. Default: "CurrentUser"
	UserLocal string
}

// ConfigDefault is the default config for fiber.
var ConfigDefault = Config{
	Next:              nil,
	CacheControlError: "max-age=0",
	UserLocal:         "CurrentUser",
}

func configDefault(config ...Config) Config {
	if len(config) < 1 {
		return ConfigDefault
	}

	cfg := config[0]

	if cfg.CacheControlError == "" {
		cfg.CacheControlError = ConfigDefault.CacheControlError
	}

	if cfg.UserLocal == "" {
		cfg.UserLocal = ConfigDefault.UserLocal
	}

	return cfg
}

// loginer is implemented by the session user.
type loginer interface {
	LoginName() string
}

// New creates a new fiber access logging middleware using zerolog.
func New(config ...Config) fiber.Handler {
	var (
		writers    []io.Writer
		cfg        = configDefault(config...)
		once       sync.Once
		errHandler fiber.ErrorHandler
	)

	if cfg.Config.File.Enabled {
		if w := newRollingAccessFile(&cfg.Config); w != nil {
			writers = append(writers, w)
		}
	}

	// console access log needs both the console and the access log switch.
	if cfg.Config.Console.Enabled && cfg.Config.EnableAccessLogToConsole {
		if cfg.Config.Console.UseConsoleWriter {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:          os.Stdout,
				NoColor:      false,
				TimeFormat:   zerolog.TimeFieldFormat,
				PartsExclude: []string{"level"},
			})
		} else {
			writers = append(writers, os.Stdout)
		}
	}

	accessLogger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger().
		Level(zerolog.NoLevel)

	return func(ctx *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(ctx) {
			return ctx.Next()
		}

		for _, prefix := range cfg.SkipPrefixes {
			if strings.HasPrefix(ctx.Path(), prefix) {
				return ctx.Next()
			}
		}

		once.Do(func() {
			errHandler = ctx.App().ErrorHandler
		})

		start := time.Now()

		chainErr := ctx.Next()
		if chainErr != nil {
			if errH := errHandler(ctx, chainErr); errH != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError) //nolint:errcheck // ok here
				ctx.Response().Header.Set(fiber.HeaderCacheControl, cfg.CacheControlError)
			}
		}

		elapsed := time.Since(start).Seconds()
		ctx.Response().Header.Set("X-Performance", fmt.Sprintf("%f", elapsed))

		if cfg.Config.DisableCheckAlive && string(ctx.Request().RequestURI()) == cfg.CheckAliveURI {
			return nil
		}

		// fasthttp normalizes the path, the log wants what the client sent.
		p := ctx.Path()
		if len(ctx.Queries()) > 0 {
			p = p + "?" + string(ctx.Request().URI().QueryString())
		}

		event := accessLogger.Log().Str("IP", ctx.IP()).
			Int("status", ctx.Response().StatusCode()).
			Float64("X-Performance", elapsed).
			Str("URI", p).
			Str("method", ctx.Method()).
			Bytes("host", ctx.Request().Host()).
			Str(fiber.HeaderXForwardedFor, ctx.Get(fiber.HeaderXForwardedFor)).
			Str(fiber.HeaderUserAgent, ctx.Get(fiber.HeaderUserAgent)).
			Str(fiber.HeaderReferer, ctx.Get(fiber.HeaderReferer))

		if u, ok := ctx.Locals(cfg.UserLocal).(loginer); ok {
			event.Str("user", u.LoginName())
		}

		if chainErr != nil {
			event.Err(chainErr)
		}

		event.Send()

		return nil
	}
}

// newRollingAccessFile uses lumberjack to create file based access log.
func newRollingAccessFile(cfg *logger.Log) io.Writer {
	if cfg.File.Path != "" {
		if err := os.MkdirAll(cfg.File.Path, 0o750); err != nil {
			log.Error().Err(err).Str("path", cfg.File.Path).Msg("can't create log directory")

			return nil
		}
	}

	return logger.NewRollingFile(cfg.File.Path, cfg.File.Access())
}
