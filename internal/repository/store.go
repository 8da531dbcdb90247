package repository

import (
	"context"
	"errors"
	"fmt"

	"job-connect/internal/database"
)

// Store groups the repositories over one connection or transaction.
type Store interface {
	Accounts() AccountRepository
	Skills() SkillRepository
	ApplicantProfiles() ApplicantProfileRepository
	RecruiterProfiles() RecruiterProfileRepository
	Jobs() JobRepository
	Applications() ApplicationRepository
	Messages() MessageRepository

	// WithTx runs fn against a transactional Store. fn's error rolls back every
	// write made through tx; nil commits. Nested calls join the outer transaction.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

type PostgresStore struct {
	db database.DB
	q  database.Querier
}

func NewPostgresStore(db database.DB) *PostgresStore {
	return &PostgresStore{db: db, q: db}
}

func (s *PostgresStore) Accounts() AccountRepository {
	return NewPostgresAccountRepository(s.q)
}

func (s *PostgresStore) Skills() SkillRepository {
	return NewPostgresSkillRepository(s.q)
}

func (s *PostgresStore) ApplicantProfiles() ApplicantProfileRepository {
	return NewPostgresApplicantProfileRepository(s.q)
}

func (s *PostgresStore) RecruiterProfiles() RecruiterProfileRepository {
	return NewPostgresRecruiterProfileRepository(s.q)
}

func (s *PostgresStore) Jobs() JobRepository {
	return NewPostgresJobRepository(s.q)
}

func (s *PostgresStore) Applications() ApplicationRepository {
	return NewPostgresApplicationRepository(s.q)
}

func (s *PostgresStore) Messages() MessageRepository {
	return NewPostgresMessageRepository(s.q)
}

func (s *PostgresStore) WithTx(ctx context.Context, fn func(tx Store) error) (err error) {
	if s == nil || s.db == nil {
		return errors.New("nil db")
	}
	if _, inTx := s.q.(database.Tx); inTx {
		return fn(s)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.Background())
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(context.Background())
		}
	}()

	if err = fn(&PostgresStore{db: s.db, q: tx}); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
