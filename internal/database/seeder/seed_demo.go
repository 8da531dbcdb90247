package seeder

import (
	"context"
	"fmt"
	"strings"

	"job-connect/internal/domain/account"
	"job-connect/internal/domain/job"
	"job-connect/internal/domain/profile"
	"job-connect/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DemoSeeder creates a recruiter with a few postings for local runs. It does
// nothing once the recruiter's username exists.
type DemoSeeder struct {
	Demo DemoCatalog
	Cost int
}

func (DemoSeeder) Name() string { return "demo" }

func (s DemoSeeder) Run(ctx context.Context, store repository.Store) error {
	rec := s.Demo.Recruiter
	exists, err := store.Accounts().ExistsByUsername(ctx, rec.Username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(rec.Password), cost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	skills, err := store.Skills().List(ctx)
	if err != nil {
		return err
	}
	byName := make(map[string]uuid.UUID, len(skills))
	for _, sk := range skills {
		byName[strings.ToLower(sk.Name)] = sk.ID
	}

	return store.WithTx(ctx, func(tx repository.Store) error {
		acc := account.Account{
			ID:           uuid.New(),
			Username:     strings.TrimSpace(rec.Username),
			PasswordHash: string(hash),
			Role:         account.RoleRecruiter,
		}
		if err := tx.Accounts().Create(ctx, acc); err != nil {
			return err
		}

		p := profile.RecruiterProfile{
			ID:             uuid.New(),
			AccountID:      acc.ID,
			CompanyName:    rec.CompanyName,
			CompanyWebsite: rec.Website,
			Location:       rec.Location,
		}
		if err := tx.RecruiterProfiles().Create(ctx, p); err != nil {
			return err
		}

		for _, it := range s.Demo.Jobs {
			j := job.Job{
				ID:             uuid.New(),
				RecruiterID:    p.ID,
				Title:          it.Title,
				Description:    it.Description,
				Requirements:   it.Requirements,
				Location:       it.Location,
				SalaryRange:    it.SalaryRange,
				EmploymentType: it.EmploymentType,
				IsActive:       true,
			}
			if _, err := tx.Jobs().Create(ctx, j); err != nil {
				return err
			}

			ids := make([]uuid.UUID, 0, len(it.Skills))
			for _, name := range it.Skills {
				if id, ok := byName[strings.ToLower(strings.TrimSpace(name))]; ok {
					ids = append(ids, id)
				}
			}
			if err := tx.Jobs().ReplaceSkills(ctx, j.ID, ids); err != nil {
				return err
			}
		}
		return nil
	})
}
