package dto

import (
	"time"

	"job-connect/internal/domain/account"

	"github.com/google/uuid"
)

type AccountResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func NewAccountResponse(a account.Account) AccountResponse {
	return AccountResponse{ID: a.ID, Username: a.Username, Role: string(a.Role), CreatedAt: a.CreatedAt}
}

type SessionResponse struct {
	Account      AccountResponse `json:"account"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
}
