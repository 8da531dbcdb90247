package memory

import (
	"context"

	"job-connect/internal/domain/message"
	"job-connect/internal/repository"

	"github.com/google/uuid"
)

type messageRepo struct{ s *Store }

func (r messageRepo) Create(_ context.Context, m message.Message) (message.Message, error) {
	defer r.s.lock()()
	if _, ok := r.s.data.accounts[m.SenderID]; !ok {
		return message.Message{}, repository.ErrReference
	}
	if _, ok := r.s.data.accounts[m.RecipientID]; !ok {
		return message.Message{}, repository.ErrReference
	}
	if _, ok := r.s.data.messages[m.ID]; ok {
		return message.Message{}, repository.ErrConflict
	}
	now := r.s.clock.tick()
	m.CreatedAt, m.UpdatedAt = now, now
	m.Read = false
	r.s.data.messages[m.ID] = m
	return r.hydrate(m), nil
}

func (r messageRepo) GetByID(_ context.Context, id uuid.UUID) (message.Message, error) {
	defer r.s.lock()()
	m, ok := r.s.data.messages[id]
	if !ok {
		return message.Message{}, repository.ErrNotFound
	}
	return r.hydrate(m), nil
}

func (r messageRepo) ListInbox(_ context.Context, accountID uuid.UUID) ([]message.Message, error) {
	defer r.s.lock()()
	return r.filter(func(m message.Message) bool { return m.RecipientID == accountID }), nil
}

func (r messageRepo) ListSent(_ context.Context, accountID uuid.UUID) ([]message.Message, error) {
	defer r.s.lock()()
	return r.filter(func(m message.Message) bool { return m.SenderID == accountID }), nil
}

func (r messageRepo) MarkRead(_ context.Context, id uuid.UUID) error {
	defer r.s.lock()()
	m, ok := r.s.data.messages[id]
	if !ok {
		return repository.ErrNotFound
	}
	m.Read = true
	m.UpdatedAt = r.s.clock.tick()
	r.s.data.messages[id] = m
	return nil
}

func (r messageRepo) filter(keep func(message.Message) bool) []message.Message {
	out := make([]message.Message, 0)
	for _, m := range r.s.data.messages {
		if keep(m) {
			out = append(out, r.hydrate(m))
		}
	}
	message.SortNewestFirst(out)
	return out
}

func (r messageRepo) hydrate(m message.Message) message.Message {
	m.SenderUsername = r.s.data.accounts[m.SenderID].Username
	m.RecipientUsername = r.s.data.accounts[m.RecipientID].Username
	return m
}
