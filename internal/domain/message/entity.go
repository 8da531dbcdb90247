package message

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID                uuid.UUID
	SenderID          uuid.UUID
	RecipientID       uuid.UUID
	SenderUsername    string
	RecipientUsername string
	Subject           string
	Body              string
	Read              bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (m Message) VisibleTo(accountID uuid.UUID) bool {
	return accountID != uuid.Nil && (m.SenderID == accountID || m.RecipientID == accountID)
}

// SortNewestFirst orders by CreatedAt descending.
func SortNewestFirst(items []Message) {
	sort.SliceStable(items, func(i, k int) bool {
		return items[i].CreatedAt.After(items[k].CreatedAt)
	})
}
