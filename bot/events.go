package bot

import (
	"time"

	"github.com/google/uuid"
)

// Event describes a session transition operators care about. Events are
// advisory: publishing never blocks or fails the reply cycle.
type Event struct {
	ID       string    `json:"id"`
	Identity string    `json:"identity"`
	State    string    `json:"state"`
	Detail   string    `json:"detail,omitempty"`
	At       time.Time `json:"at"`
}

// Notifier receives session events, typically the operator monitor hub.
type Notifier interface {
	Publish(evt Event)
}

func newEvent(identity, state, detail string) Event {
	return Event{
		ID:       uuid.New().String(),
		Identity: identity,
		State:    state,
		Detail:   detail,
		At:       time.Now(),
	}
}
