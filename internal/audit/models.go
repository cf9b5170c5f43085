package audit

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates the audited operations.
type EventType string

const (
	EventTokenIssued      EventType = "token.issued"
	EventUserRegistered   EventType = "user.registered"
	EventUserPromoted     EventType = "user.promoted"
	EventUserDeleted      EventType = "user.deleted"
	EventBiodataCreated   EventType = "biodata.created"
	EventBiodataUpdated   EventType = "biodata.updated"
	EventFavouriteAdded   EventType = "favourite.added"
	EventFavouriteRemoved EventType = "favourite.removed"
)

// Event is a structured audit record. Actor is the authenticated caller's
// email ("" for unauthenticated operations such as registration); Subject
// identifies the affected entity.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Type      EventType `json:"type"`
	Actor     string    `json:"actor,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	Device    string    `json:"device,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
