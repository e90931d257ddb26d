// Package notify delivers invitation notifications to invitees when an
// event is approved. Delivery is best-effort: dispatch failures are logged
// by the caller and never fail the approval.
package notify

import (
	"context"
	"log/slog"
)

// Invitation carries everything a channel needs to notify one invitee.
type Invitation struct {
	InviteID    int64
	EventID     int64
	EventTitle  string
	EventDate   string
	InviteeName string
	Phone       string
}

// Dispatcher sends one invitation notification per call.
type Dispatcher interface {
	Dispatch(ctx context.Context, inv Invitation) error
}

// Log is a Dispatcher that only logs the notification. It is the default
// channel when WhatsApp delivery is not configured.
type Log struct{}

// Dispatch logs the invitation instead of delivering it.
func (Log) Dispatch(_ context.Context, inv Invitation) error {
	slog.Info("invite notification",
		"invitee", inv.InviteeName,
		"phone", inv.Phone,
		"event_id", inv.EventID,
		"invite_id", inv.InviteID,
	)
	return nil
}
