package seeder

import (
	"context"
	"errors"
	"strings"

	"job-connect/internal/domain/skill"
	"job-connect/internal/repository"

	"github.com/google/uuid"
)

type SkillsSeeder struct {
	Skills []CatalogSkill
}

func (SkillsSeeder) Name() string { return "skills" }

// Run inserts missing skills. Existing names are left alone. Inserts are not
// grouped in a transaction: a lost race on one name must not abort the rest.
func (s SkillsSeeder) Run(ctx context.Context, store repository.Store) error {
	existing, err := store.Skills().List(ctx)
	if err != nil {
		return err
	}
	have := make(map[string]struct{}, len(existing))
	for _, sk := range existing {
		have[strings.ToLower(sk.Name)] = struct{}{}
	}

	for _, it := range s.Skills {
		if _, ok := have[strings.ToLower(it.Name)]; ok {
			continue
		}
		_, err := store.Skills().Create(ctx, skill.Skill{ID: uuid.New(), Name: it.Name, Category: it.Category})
		if err != nil && !errors.Is(err, repository.ErrConflict) {
			return err
		}
	}
	return nil
}
