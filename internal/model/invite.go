package model

import "time"

// Invite status lifecycle: pending until the invitee responds; repeated
// responses overwrite each other, so none of the states is terminal.
const (
	InviteStatusPending  = "pending"
	InviteStatusApproved = "approved"
	InviteStatusRejected = "rejected"
	InviteStatusMaybe    = "maybe"
)

// Invite represents the per-invitee notification and response record,
// created only when the parent event is approved.
type Invite struct {
	ID          int64
	InviteeID   int64
	Status      string
	RespondedAt *time.Time
	CreatedAt   time.Time
}

// InviteDetail is an invite joined with its invitee and event, as shown on
// the public invite page.
type InviteDetail struct {
	ID        int64  `json:"id"`
	Status    string `json:"status"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Title     string `json:"title"`
	EventDate string `json:"eventDate"`
}

// EventInvite is an invite joined with its invitee, as listed in the admin
// view of an event's invites.
type EventInvite struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	Status      string     `json:"status"`
	RespondedAt *time.Time `json:"respondedAt"`
}

// RespondRequest represents an invitee's response to an invite.
type RespondRequest struct {
	Response string `json:"response"`
}
