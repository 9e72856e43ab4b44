package agent

import "github.com/ChicagoDave/townpaint/pkg/zone"

// EventKind names a population change.
type EventKind string

const (
	EventQueued          EventKind = "queued"
	EventSpawned         EventKind = "spawned"
	EventSettled         EventKind = "settled"
	EventRemoved         EventKind = "removed"
	EventTrimmed         EventKind = "trimmed"
	EventPlacementFailed EventKind = "placement_failed"
)

// Event records one population change during a tick.
type Event struct {
	Kind  EventKind `json:"kind"`
	Zone  zone.ID   `json:"zone"`
	Agent ID        `json:"agent,omitempty"`
	// Count is used by bulk events such as EventRemoved.
	Count int `json:"count,omitempty"`
}
