package repository

import (
	"context"

	"job-connect/internal/database"
	"job-connect/internal/domain/account"

	"github.com/google/uuid"
)

type AccountRepository interface {
	Create(ctx context.Context, a account.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (account.Account, error)
	GetByUsername(ctx context.Context, username string) (account.Account, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type PostgresAccountRepository struct {
	db database.Querier
}

func NewPostgresAccountRepository(db database.Querier) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

const accountColumns = `id, username, password_hash, role, created_at, updated_at`

func (r *PostgresAccountRepository) Create(ctx context.Context, a account.Account) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO accounts (id, username, password_hash, role) VALUES ($1, $2, $3, $4)`,
		a.ID, a.Username, a.PasswordHash, string(a.Role),
	)
	return mapError(err)
}

func (r *PostgresAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (account.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

func (r *PostgresAccountRepository) GetByUsername(ctx context.Context, username string) (account.Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE lower(username) = $1`,
		account.NormalizeUsername(username),
	)
	return scanAccount(row)
}

func (r *PostgresAccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE lower(username) = $1)`,
		account.NormalizeUsername(username),
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanAccount(row database.Row) (account.Account, error) {
	var a account.Account
	var role string
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &role, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return account.Account{}, mapError(err)
	}
	a.Role = account.Role(role)
	return a, nil
}
