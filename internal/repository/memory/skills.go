package memory

import (
	"context"
	"strings"

	"job-connect/internal/domain/skill"
	"job-connect/internal/repository"

	"github.com/google/uuid"
)

type skillRepo struct{ s *Store }

func (r skillRepo) List(_ context.Context) ([]skill.Skill, error) {
	defer r.s.lock()()
	out := make([]skill.Skill, 0, len(r.s.data.skills))
	for _, sk := range r.s.data.skills {
		out = append(out, sk)
	}
	skill.SortByName(out)
	return out, nil
}

func (r skillRepo) Create(_ context.Context, sk skill.Skill) (skill.Skill, error) {
	defer r.s.lock()()
	if sk.ID == uuid.Nil {
		sk.ID = uuid.New()
	}
	sk.Name = strings.TrimSpace(sk.Name)
	for _, existing := range r.s.data.skills {
		if existing.ID == sk.ID || strings.EqualFold(existing.Name, sk.Name) {
			return skill.Skill{}, repository.ErrConflict
		}
	}
	sk.CreatedAt = r.s.clock.tick()
	r.s.data.skills[sk.ID] = sk
	return sk, nil
}

func (r skillRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]skill.Skill, error) {
	defer r.s.lock()()
	return r.s.skillsFor(skill.UniqueIDs(ids)), nil
}
