package usecase

import (
	"context"
	"errors"
	"strings"

	"job-connect/internal/access"
	"job-connect/internal/domain/message"
	"job-connect/internal/pkg/validation"
	"job-connect/internal/repository"

	"github.com/google/uuid"
)

type ComposeInput struct {
	RecipientID uuid.UUID `json:"recipient_id" validate:"required"`
	Subject     string    `json:"subject" validate:"notblank,max=255"`
	Body        string    `json:"body" validate:"notblank"`
}

type MessageUsecase interface {
	Compose(ctx context.Context, actor *access.Actor, in ComposeInput) (message.Message, error)
	Inbox(ctx context.Context, actor *access.Actor) ([]message.Message, error)
	Sent(ctx context.Context, actor *access.Actor) ([]message.Message, error)
	View(ctx context.Context, actor *access.Actor, id uuid.UUID) (message.Message, error)
}

type Message struct {
	store  repository.Store
	notify Notifier
}

func NewMessageUsecase(store repository.Store, notify Notifier) *Message {
	return &Message{store: store, notify: notify}
}

func (u *Message) Compose(ctx context.Context, actor *access.Actor, in ComposeInput) (message.Message, error) {
	if !actor.Authenticated() {
		return message.Message{}, ErrUnauthorized
	}

	in.Subject = strings.TrimSpace(in.Subject)
	in.Body = strings.TrimSpace(in.Body)
	errs := validation.Struct(in)
	if _, bad := errs["recipient_id"]; !bad {
		if _, err := u.store.Accounts().GetByID(ctx, in.RecipientID); err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return message.Message{}, ErrInternal
			}
			errs.Add("recipient_id", msgChoice)
		}
	}
	if !errs.Empty() {
		return message.Message{}, errs
	}

	created, err := u.store.Messages().Create(ctx, message.Message{
		ID:          uuid.New(),
		SenderID:    actor.AccountID,
		RecipientID: in.RecipientID,
		Subject:     in.Subject,
		Body:        in.Body,
	})
	if err != nil {
		if errors.Is(err, repository.ErrReference) {
			return message.Message{}, validation.Errors{"recipient_id": msgChoice}
		}
		return message.Message{}, ErrInternal
	}

	if u.notify != nil {
		u.notify.MessageReceived(created.RecipientID, created.ID, created.SenderUsername, created.Subject)
	}
	return created, nil
}

func (u *Message) Inbox(ctx context.Context, actor *access.Actor) ([]message.Message, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthorized
	}
	items, err := u.store.Messages().ListInbox(ctx, actor.AccountID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Message) Sent(ctx context.Context, actor *access.Actor) ([]message.Message, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthorized
	}
	items, err := u.store.Messages().ListSent(ctx, actor.AccountID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

// View shows a message to its sender or recipient. The recipient viewing it
// marks it read.
func (u *Message) View(ctx context.Context, actor *access.Actor, id uuid.UUID) (message.Message, error) {
	if !actor.Authenticated() {
		return message.Message{}, ErrUnauthorized
	}
	m, err := u.store.Messages().GetByID(ctx, id)
	if err != nil {
		return message.Message{}, mapRepoError(err)
	}
	if !m.VisibleTo(actor.AccountID) {
		return message.Message{}, ErrForbidden
	}
	if m.RecipientID == actor.AccountID && !m.Read {
		if err := u.store.Messages().MarkRead(ctx, m.ID); err != nil {
			return message.Message{}, mapRepoError(err)
		}
		m.Read = true
	}
	return m, nil
}
