package request

import "time"

const (
	EventRequestCreated  = "request.created"
	EventRequestResolved = "request.resolved"
)

// Event is published after a request is created or resolved.
type Event struct {
	Name       string          `json:"name"`
	Request    RequestResponse `json:"request"`
	OccurredAt time.Time       `json:"occurred_at"`
}
