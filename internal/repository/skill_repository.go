package repository

import (
	"context"
	"strings"

	"job-connect/internal/database"
	"job-connect/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillRepository interface {
	List(ctx context.Context) ([]skill.Skill, error)
	Create(ctx context.Context, s skill.Skill) (skill.Skill, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]skill.Skill, error)
}

type PostgresSkillRepository struct {
	db database.Querier
}

func NewPostgresSkillRepository(db database.Querier) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) List(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, category, created_at FROM skills ORDER BY lower(name) ASC`)
	if err != nil {
		return nil, err
	}
	return collectSkills(rows)
}

func (r *PostgresSkillRepository) Create(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.Name = strings.TrimSpace(s.Name)
	row := r.db.QueryRow(ctx,
		`INSERT INTO skills (id, name, category) VALUES ($1, $2, $3) RETURNING created_at`,
		s.ID, s.Name, s.Category,
	)
	if err := row.Scan(&s.CreatedAt); err != nil {
		return skill.Skill{}, mapError(err)
	}
	return s, nil
}

// FindByIDs returns the skills that exist among ids, ordered by name.
func (r *PostgresSkillRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]skill.Skill, error) {
	if len(ids) == 0 {
		return []skill.Skill{}, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, created_at FROM skills WHERE id = ANY($1) ORDER BY lower(name) ASC`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	return collectSkills(rows)
}

func collectSkills(rows database.Rows) ([]skill.Skill, error) {
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// replaceSkillLinks rewrites a join table so owner links exactly skillIDs.
func replaceSkillLinks(ctx context.Context, db database.Querier, table, ownerCol string, ownerID uuid.UUID, skillIDs []uuid.UUID) error {
	if _, err := db.Exec(ctx, `DELETE FROM `+table+` WHERE `+ownerCol+` = $1`, ownerID); err != nil {
		return mapError(err)
	}
	ids := skill.UniqueIDs(skillIDs)
	if len(ids) == 0 {
		return nil
	}
	_, err := db.Exec(ctx,
		`INSERT INTO `+table+` (`+ownerCol+`, skill_id) SELECT $1, unnest($2::uuid[])`,
		ownerID, ids,
	)
	return mapError(err)
}

// loadSkillLinks returns skills per owner id for the given join table.
func loadSkillLinks(ctx context.Context, db database.Querier, table, ownerCol string, ownerIDs []uuid.UUID) (map[uuid.UUID][]skill.Skill, error) {
	out := make(map[uuid.UUID][]skill.Skill, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}
	rows, err := db.Query(ctx,
		`SELECT l.`+ownerCol+`, s.id, s.name, s.category, s.created_at
		 FROM `+table+` l
		 JOIN skills s ON s.id = l.skill_id
		 WHERE l.`+ownerCol+` = ANY($1)
		 ORDER BY lower(s.name) ASC`,
		ownerIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var owner uuid.UUID
		var s skill.Skill
		if err := rows.Scan(&owner, &s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
			return nil, err
		}
		out[owner] = append(out[owner], s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
