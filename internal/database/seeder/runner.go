package seeder

import (
	"context"
	"fmt"

	"job-connect/internal/repository"

	"github.com/sirupsen/logrus"
)

type Runner struct {
	Seeders []Seeder
	Logger  *logrus.Logger
}

func (r Runner) Run(ctx context.Context, store repository.Store) error {
	if store == nil {
		return fmt.Errorf("nil store")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, store); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.WithField("seeder", s.Name()).Info("seed applied")
		}
	}
	return nil
}
