package main

import (
	"context"
	"flag"
	"time"

	"job-connect/internal/config"
	"job-connect/internal/database/migration"
	dbpostgres "job-connect/internal/database/postgres"
	"job-connect/internal/database/seeder"
	"job-connect/internal/pkg/logger"
	"job-connect/internal/repository"
	"job-connect/migrations"

	"github.com/sirupsen/logrus"
)

func main() {
	seed := flag.Bool("seed", false, "seed the skill catalog after migrating")
	demo := flag.Bool("demo", false, "also seed the demo recruiter and jobs (implies -seed)")
	catalog := flag.String("catalog", "", "skill catalog path (defaults to SKILL_CATALOG_PATH)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	log := logger.New(cfg.Log)

	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatalf("migrate needs STORE_DRIVER=%s, got %q", config.DriverPostgres, cfg.Database.Driver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, log)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := (migration.Runner{FS: migrations.FS, Logger: log}).Run(ctx, db.SQLDB()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Info("migrations up to date")

	if !*seed && !*demo {
		return
	}

	path := *catalog
	if path == "" {
		path = cfg.Seed.SkillCatalogPath
	}
	cat, err := seeder.LoadCatalog(path)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}

	r := seeder.Runner{Seeders: seeder.Defaults(cat, *demo), Logger: log}
	if err := r.Run(ctx, repository.NewPostgresStore(db)); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.WithField("catalog", path).Info("seed complete")
}
