package dto

import (
	"time"

	"job-connect/internal/domain/message"

	"github.com/google/uuid"
)

type MessageResponse struct {
	ID                uuid.UUID `json:"id"`
	SenderID          uuid.UUID `json:"sender_id"`
	SenderUsername    string    `json:"sender_username"`
	RecipientID       uuid.UUID `json:"recipient_id"`
	RecipientUsername string    `json:"recipient_username"`
	Subject           string    `json:"subject"`
	Body              string    `json:"body"`
	Read              bool      `json:"read"`
	CreatedAt         time.Time `json:"created_at"`
}

func NewMessageResponse(m message.Message) MessageResponse {
	return MessageResponse{
		ID:                m.ID,
		SenderID:          m.SenderID,
		SenderUsername:    m.SenderUsername,
		RecipientID:       m.RecipientID,
		RecipientUsername: m.RecipientUsername,
		Subject:           m.Subject,
		Body:              m.Body,
		Read:              m.Read,
		CreatedAt:         m.CreatedAt,
	}
}

func NewMessageResponses(items []message.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewMessageResponse(it))
	}
	return out
}
