package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoMembership/GoMembership/internal/auth"
	"github.com/GoMembership/GoMembership/internal/config"
	adapter "github.com/GoMembership/GoMembership/internal/logger/adapter/fiber"
	"github.com/GoMembership/GoMembership/internal/web/handler/login"
	"github.com/GoMembership/GoMembership/internal/web/handler/logout"
	"github.com/GoMembership/GoMembership/internal/web/handler/role"
	authmw "github.com/GoMembership/GoMembership/internal/web/middleware/auth"
	"github.com/GoMembership/GoMembership/internal/web/session"
)

const (
	// CheckAlivePath answers 200 while the service accepts traffic and 503 during shutdown.
	CheckAlivePath = "/checkalive"
	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"
	// StaticPath serves the embedded css and javascript.
	StaticPath = "/static"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	authService  *auth.Service
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown blocks until SIGINT or SIGTERM and stops the http server gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// CheckAlive reports the readiness of the service.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// New creates the web service: middleware chain, templates, static files and the handlers.
// replay keeps rejected role editor submissions, see session.NewReplay.
func New(cfg *config.Config, db *gorm.DB, replay *session.Replay) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	if replay == nil {
		panic("replay cannot be nil")
	}

	templateEngine := html.NewFileSystem(templatesFS(), ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize:    8192,
			AppName:           "GoMembership",
			CaseSensitive:     true,
			Prefork:           false,
			Immutable:         true,
			Views:             templateEngine,
			PassLocalsToViews: true,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(adapter.New(adapter.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
		SkipPrefixes:  []string{StaticPath},
	}))

	if cfg.Webserver.CookieEncryptionKey != "" {
		app.Use(encryptcookie.New(encryptcookie.Config{Key: cfg.Webserver.CookieEncryptionKey}))
	}

	// serve embedded static files
	app.Use(StaticPath,
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	service := &Service{
		cfg:         cfg,
		App:         app,
		db:          db,
		authService: auth.NewService(db),
	}
	service.alive.Store(true)

	app.Get(CheckAlivePath, service.CheckAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// session check, everything below needs a login
	app.Use(authmw.Middleware)
	app.Use(auth.AddRightsToLocals(service.authService))

	if err := login.Handler.Init(app, cfg, db); err != nil {
		log.Fatal().Err(err).Msg("failed to init login handler")
	}

	logout.Handler.Init(app, cfg)
	role.Handler.Init(app, cfg, db, service.authService, replay)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(role.Path)
	})

	return service
}
