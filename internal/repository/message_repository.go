package repository

import (
	"context"

	"job-connect/internal/database"
	"job-connect/internal/domain/message"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, m message.Message) (message.Message, error)
	GetByID(ctx context.Context, id uuid.UUID) (message.Message, error)
	ListInbox(ctx context.Context, accountID uuid.UUID) ([]message.Message, error)
	ListSent(ctx context.Context, accountID uuid.UUID) ([]message.Message, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type PostgresMessageRepository struct {
	db database.Querier
}

func NewPostgresMessageRepository(db database.Querier) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

const messageSelect = `SELECT m.id, m.sender_id, m.recipient_id, s.username, rc.username,
	m.subject, m.body, m.is_read, m.created_at, m.updated_at
	FROM messages m
	JOIN accounts s ON s.id = m.sender_id
	JOIN accounts rc ON rc.id = m.recipient_id`

func (r *PostgresMessageRepository) Create(ctx context.Context, m message.Message) (message.Message, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO messages (id, sender_id, recipient_id, subject, body)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		m.ID, m.SenderID, m.RecipientID, m.Subject, m.Body,
	)
	if err := row.Scan(&m.CreatedAt, &m.UpdatedAt); err != nil {
		return message.Message{}, mapError(err)
	}
	return m, nil
}

func (r *PostgresMessageRepository) GetByID(ctx context.Context, id uuid.UUID) (message.Message, error) {
	rows, err := r.db.Query(ctx, messageSelect+` WHERE m.id = $1`, id)
	if err != nil {
		return message.Message{}, err
	}
	items, err := scanMessages(rows)
	if err != nil {
		return message.Message{}, err
	}
	if len(items) == 0 {
		return message.Message{}, ErrNotFound
	}
	return items[0], nil
}

func (r *PostgresMessageRepository) ListInbox(ctx context.Context, accountID uuid.UUID) ([]message.Message, error) {
	rows, err := r.db.Query(ctx, messageSelect+` WHERE m.recipient_id = $1 ORDER BY m.created_at DESC`, accountID)
	if err != nil {
		return nil, err
	}
	return scanMessages(rows)
}

func (r *PostgresMessageRepository) ListSent(ctx context.Context, accountID uuid.UUID) ([]message.Message, error) {
	rows, err := r.db.Query(ctx, messageSelect+` WHERE m.sender_id = $1 ORDER BY m.created_at DESC`, accountID)
	if err != nil {
		return nil, err
	}
	return scanMessages(rows)
}

func (r *PostgresMessageRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `UPDATE messages SET is_read = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanMessages(rows database.Rows) ([]message.Message, error) {
	defer rows.Close()

	out := make([]message.Message, 0)
	for rows.Next() {
		var m message.Message
		if err := rows.Scan(
			&m.ID, &m.SenderID, &m.RecipientID, &m.SenderUsername, &m.RecipientUsername,
			&m.Subject, &m.Body, &m.Read, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
