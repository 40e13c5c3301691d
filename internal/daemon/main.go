// Package daemon wires the database, session storage and web service
// together and runs them until shutdown.
package daemon

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/storage"
	sessionmemory "github.com/gofiber/storage/memory/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoStoreInvoice/GoStoreInvoice/internal/config"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/db/dsn"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/db/models"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/logger"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/web"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)

	go func() {
		if err := d.webService.Start(addr); err != nil {
			log.Fatal().Err(err).Msg("web service failed")
		}
	}()

	d.webService.WaitShutdown()

	return nil
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	if err := logger.Init(cfg.Log); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize logger")
	}

	db, err := gorm.Open(openDialector(cfg), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
		&models.User{},
		&models.Setting{},
		&models.Order{},
		&models.OrderItem{},
		&models.Invoice{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	seed(cfg, db)

	session.Init(sessionStorage(cfg))

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db),
	}
}

// openDialector picks the GORM driver for the configured database.
func openDialector(cfg *config.Config) gorm.Dialector {
	switch cfg.DB.Driver {
	case config.DBDriverMySQL:
		return gormmysql.Open(dsn.Create(cfg))
	case config.DBDriverPostgres:
		return gormpostgres.Open(dsn.Create(cfg))
	default:
		return sqlite.Open(dsn.Create(cfg))
	}
}

// sessionStorage picks the fiber session storage matching the database
// driver. The sqlite driver keeps sessions in memory since the database is
// file-local anyway.
func sessionStorage(cfg *config.Config) storage.Storage {
	switch cfg.DB.Driver {
	case config.DBDriverMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         "sessions",
		})
	case config.DBDriverPostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			Username: cfg.DB.User,
			Password: cfg.DB.Password,
			Database: cfg.DB.Name,
			Table:    "sessions",
		})
	default:
		return sessionmemory.New()
	}
}
