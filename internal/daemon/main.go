// Package daemon wires the database, the session storage, the web service and the
// background jobs of a running GoMembership instance.
package daemon

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoMembership/GoMembership/internal/config"
	"github.com/GoMembership/GoMembership/internal/db/dsn"
	"github.com/GoMembership/GoMembership/internal/db/models"
	"github.com/GoMembership/GoMembership/internal/web"
	"github.com/GoMembership/GoMembership/internal/web/session"
)

const sessionTable = "sessions"

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
	sweeper    *Sweeper
}

// Start serves http until SIGINT or SIGTERM, the role expiry job runs alongside when enabled.
func (d *Daemon) Start() error {
	if d.sweeper != nil {
		d.sweeper.Start()
		defer d.sweeper.Stop()
	}

	go func() {
		if err := d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port)); err != nil {
			log.Error().Err(err).Msg("web service stopped")
		}
	}()

	d.webService.WaitShutdown()

	return nil
}

// New opens and migrates the database, seeds a fresh installation and builds the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	db, err := gorm.Open(dialector(cfg), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect %s database", cfg.DB.GormEngine)
	}

	if err = db.AutoMigrate(models.All()...); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	if err = seed(cfg, db); err != nil {
		return nil, errors.Wrap(err, "failed to seed database")
	}

	storage := sessionStorage(cfg)
	session.Init(storage, cfg.Webserver.Session.ExpiryTime)

	replay := session.NewReplay(session.Store.Storage, cfg.Webserver.Session.ReplayExpiryTime)

	d := &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db, replay),
	}

	if cfg.Jobs.Enabled {
		if d.sweeper, err = NewSweeper(db, cfg.Jobs.RoleExpirySpec); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// dialector selects the gorm driver of the configured engine.
func dialector(cfg *config.Config) gorm.Dialector {
	switch cfg.DB.GormEngine {
	case config.EnginePostgres:
		return gormpostgres.Open(dsn.Create(cfg))
	case config.EngineSQLite:
		return sqlite.Open(dsn.Create(cfg))
	default:
		return gormmysql.Open(dsn.Create(cfg))
	}
}

// sessionStorage keeps the sessions in the application database.
// sqlite has no session storage, a nil storage keeps the sessions in memory.
func sessionStorage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.GormEngine {
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         sessionTable,
		})
	case config.EngineSQLite:
		log.Warn().Msg("sqlite engine: sessions are kept in memory and lost on restart")
		return nil
	default:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         sessionTable,
		})
	}
}
