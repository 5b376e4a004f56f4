package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventCreated     EventType = "school_created"
	EventUpdated     EventType = "school_updated"
	EventDeactivated EventType = "school_deactivated"
)

// SchoolEvent is published after a write has been persisted.
type SchoolEvent struct {
	ID     string    `json:"id"`
	Type   EventType `json:"type"`
	School School    `json:"school"`
	Time   time.Time `json:"time"`
}

func NewSchoolEvent(t EventType, school School) SchoolEvent {
	return SchoolEvent{
		ID:     uuid.NewString(),
		Type:   t,
		School: school,
		Time:   time.Now(),
	}
}
