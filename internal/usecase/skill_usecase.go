package usecase

import (
	"context"
	"errors"
	"strings"

	"job-connect/internal/domain/skill"
	"job-connect/internal/pkg/validation"
	"job-connect/internal/repository"

	"github.com/google/uuid"
)

type SkillInput struct {
	Name     string `json:"name" validate:"notblank,max=100"`
	Category string `json:"category" validate:"max=100"`
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]skill.Skill, error)
	AddSkill(ctx context.Context, in SkillInput) (skill.Skill, error)
}

type Skill struct {
	store repository.Store
}

func NewSkillUsecase(store repository.Store) *Skill {
	return &Skill{store: store}
}

func (u *Skill) ListSkills(ctx context.Context) ([]skill.Skill, error) {
	items, err := u.store.Skills().List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Skill) AddSkill(ctx context.Context, in SkillInput) (skill.Skill, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if errs := validation.Struct(in); !errs.Empty() {
		return skill.Skill{}, errs
	}

	created, err := u.store.Skills().Create(ctx, skill.Skill{ID: uuid.New(), Name: in.Name, Category: in.Category})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return skill.Skill{}, ErrConflict
		}
		return skill.Skill{}, ErrInternal
	}
	return created, nil
}

// resolveSkills collapses duplicates and reports unknown ids under field.
func resolveSkills(ctx context.Context, store repository.Store, field string, ids []uuid.UUID, errs validation.Errors) ([]uuid.UUID, error) {
	ids = skill.UniqueIDs(ids)
	if len(ids) == 0 {
		return ids, nil
	}
	found, err := store.Skills().FindByIDs(ctx, ids)
	if err != nil {
		return nil, ErrInternal
	}
	if len(found) != len(ids) {
		errs.Add(field, msgSkillChoice)
	}
	return ids, nil
}
