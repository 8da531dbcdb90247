package usecase

import (
	"context"
	"errors"
	"testing"

	"job-connect/internal/pkg/validation"
	"job-connect/internal/repository/memory"
)

func TestSkillUsecase_AddAndList(t *testing.T) {
	ctx := context.Background()
	uc := NewSkillUsecase(memory.New())

	if _, err := uc.AddSkill(ctx, SkillInput{Name: "  Go  ", Category: "language"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := uc.AddSkill(ctx, SkillInput{Name: "go"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for case-insensitive duplicate, got %v", err)
	}

	_, err := uc.AddSkill(ctx, SkillInput{Name: "   "})
	ve, ok := validation.AsErrors(err)
	if !ok || ve["name"] == "" {
		t.Fatalf("expected name error, got %v", err)
	}

	items, err := uc.ListSkills(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Go" {
		t.Fatalf("expected one trimmed skill, got %+v", items)
	}
}
