package model

import "time"

// Event status lifecycle: every event starts in pending_approval and is
// moved to approved or rejected by an admin decision.
const (
	EventStatusPending  = "pending_approval"
	EventStatusApproved = "approved"
	EventStatusRejected = "rejected"
)

// Event represents a user-submitted event request in the database.
type Event struct {
	ID        int64
	UserID    int64
	Title     string
	EventDate string
	Notes     string
	Status    string
	Paid      bool
	CreatedAt time.Time
}

// Invitee represents a named contact attached to an event at creation time.
type Invitee struct {
	ID      int64
	EventID int64
	Name    string
	Phone   string
}

// PendingEvent is an event pending approval joined with the requester's name.
type PendingEvent struct {
	Event
	Requester string
}

// InviteeRequest represents one invitee entry in an event creation request.
// Entries missing a name or phone are dropped, not rejected.
type InviteeRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CreateEventRequest represents an event creation request.
type CreateEventRequest struct {
	Title     string           `json:"title"`
	EventDate string           `json:"eventDate"`
	Notes     string           `json:"notes"`
	Invitees  []InviteeRequest `json:"invitees"`
}

// EventResponse represents an event as returned to its owner.
type EventResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	EventDate string `json:"eventDate"`
	Notes     string `json:"notes"`
	Status    string `json:"status"`
	Paid      bool   `json:"paid"`
}

// AdminEventResponse represents a pending event in the admin approval queue.
type AdminEventResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	EventDate string `json:"eventDate"`
	Notes     string `json:"notes"`
	Status    string `json:"status"`
	Paid      bool   `json:"paid"`
	Requester string `json:"requester"`
}

// DecisionRequest represents an admin approval decision.
type DecisionRequest struct {
	Decision string `json:"decision"`
}
