package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventProjectPosted        = "project_posted"
	EventProjectClosed        = "project_closed"
	EventApplicationSubmitted = "application_submitted"
	EventApplicationHired     = "application_hired"
)

type Event struct {
	Type          string     `json:"type"`
	ProjectID     uuid.UUID  `json:"project_id"`
	ApplicationID *uuid.UUID `json:"application_id,omitempty"`
	Title         string     `json:"title,omitempty"`
	CurrentHires  *int       `json:"current_hires,omitempty"`
	Timestamp     string     `json:"timestamp"`
}

// Notifier publishes domain events to every connected client.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) Publish(evt Event) {
	if n == nil || n.hub == nil || evt.Type == "" {
		return
	}
	if evt.Timestamp == "" {
		evt.Timestamp = n.now().UTC().Format(time.RFC3339)
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
