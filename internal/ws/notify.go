package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventApplicationSubmitted = "application_submitted"
	EventApplicationStatus    = "application_status_changed"
	EventMessageReceived      = "message_received"
	EventJobPosted            = "job_posted"
)

type Event struct {
	Type      string            `json:"type"`
	Data      map[string]string `json:"data"`
	Timestamp string            `json:"timestamp"`
}

type sender interface {
	SendTo(accountID uuid.UUID, message []byte)
	Broadcast(message []byte)
}

// Notifier turns domain events into websocket frames. The zero value and a
// nil *Notifier drop every event.
type Notifier struct {
	hub sender
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	n := &Notifier{now: time.Now}
	if hub != nil {
		n.hub = hub
	}
	return n
}

func (n *Notifier) encode(kind string, data map[string]string) ([]byte, bool) {
	if n == nil || n.hub == nil {
		return nil, false
	}
	now := time.Now
	if n.now != nil {
		now = n.now
	}
	b, err := json.Marshal(Event{Type: kind, Data: data, Timestamp: now().UTC().Format(time.RFC3339)})
	if err != nil {
		return nil, false
	}
	return b, true
}

func (n *Notifier) ApplicationSubmitted(recruiterAccountID, applicationID, jobID uuid.UUID, jobTitle string) {
	b, ok := n.encode(EventApplicationSubmitted, map[string]string{
		"application_id": applicationID.String(),
		"job_id":         jobID.String(),
		"job_title":      jobTitle,
	})
	if ok {
		n.hub.SendTo(recruiterAccountID, b)
	}
}

func (n *Notifier) ApplicationStatusChanged(applicantAccountID, applicationID uuid.UUID, jobTitle, status string) {
	b, ok := n.encode(EventApplicationStatus, map[string]string{
		"application_id": applicationID.String(),
		"job_title":      jobTitle,
		"status":         status,
	})
	if ok {
		n.hub.SendTo(applicantAccountID, b)
	}
}

func (n *Notifier) MessageReceived(recipientID, messageID uuid.UUID, senderUsername, subject string) {
	b, ok := n.encode(EventMessageReceived, map[string]string{
		"message_id": messageID.String(),
		"sender":     senderUsername,
		"subject":    subject,
	})
	if ok {
		n.hub.SendTo(recipientID, b)
	}
}

func (n *Notifier) JobPosted(jobID uuid.UUID, title, companyName string) {
	b, ok := n.encode(EventJobPosted, map[string]string{
		"job_id":       jobID.String(),
		"title":        title,
		"company_name": companyName,
	})
	if ok {
		n.hub.Broadcast(b)
	}
}
