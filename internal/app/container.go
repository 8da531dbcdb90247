package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"job-connect/internal/config"
	"job-connect/internal/database"
	"job-connect/internal/database/migration"
	dbpostgres "job-connect/internal/database/postgres"
	"job-connect/internal/database/seeder"
	"job-connect/internal/infrastructure/cache"
	"job-connect/internal/infrastructure/storage"
	"job-connect/internal/pkg/jwt"
	"job-connect/internal/repository"
	"job-connect/internal/repository/memory"
	"job-connect/internal/ws"
	"job-connect/migrations"

	"github.com/sirupsen/logrus"
)

// Container owns the process-wide dependencies.
type Container struct {
	Config config.Config
	Logger *logrus.Logger

	DB    database.DB
	Store repository.Store
	Cache *cache.Redis
	Files storage.Storage
	JWT   jwt.Service
	Hub   *ws.Hub
}

func NewContainer(ctx context.Context, cfg config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	switch cfg.Database.Driver {
	case config.DriverMemory:
		c.Store = memory.New()
		if err := seedMemory(ctx, c.Store, cfg.Seed.SkillCatalogPath, logger); err != nil {
			return nil, err
		}
		logger.Warn("using in-memory store; data is lost on restart")
	default:
		db, err := dbpostgres.Connect(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		c.DB = db
		if cfg.Database.AutoMigrate {
			if err := (migration.Runner{FS: migrations.FS, Logger: logger}).Run(ctx, db.SQLDB()); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
		c.Store = repository.NewPostgresStore(db)
	}

	files, err := storage.New(cfg.Storage, logger)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Files = files

	c.Cache = cache.NewRedis(cfg.Redis, logger)
	c.JWT = jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	c.Hub = ws.NewHub(logger)

	return c, nil
}

// seedMemory loads the skill catalog into a fresh in-memory store. A missing
// catalog file only leaves the store empty.
func seedMemory(ctx context.Context, store repository.Store, path string, logger *logrus.Logger) error {
	cat, err := seeder.LoadCatalog(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.WithField("path", path).Warn("skill catalog not found; starting without skills")
			return nil
		}
		return err
	}
	return seeder.Runner{Seeders: seeder.Defaults(cat, false), Logger: logger}.Run(ctx, store)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
