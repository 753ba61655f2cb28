package ws

import (
	"encoding/json"
	"strings"
	"time"
)

const EventCatalogUpdated = "catalog_updated"

type CatalogUpdatedEvent struct {
	Type      string `json:"type"`
	Title     string `json:"title,omitempty"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}

// Notifier turns catalog changes into hub broadcasts.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) CatalogUpdated(title, action string) {
	if n == nil || n.hub == nil {
		return
	}

	evt := CatalogUpdatedEvent{
		Type:      EventCatalogUpdated,
		Title:     strings.TrimSpace(title),
		Action:    action,
		Timestamp: n.now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
