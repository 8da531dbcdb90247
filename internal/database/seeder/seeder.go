// Package seeder loads reference data through the repository layer, so the
// same seeders run against Postgres and the in-memory store.
package seeder

import (
	"context"

	"job-connect/internal/repository"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, store repository.Store) error
}
