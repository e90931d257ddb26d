package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rsvpdesk/rsvpdesk-go/internal/model"
	"github.com/rsvpdesk/rsvpdesk-go/internal/notify"
	"github.com/rsvpdesk/rsvpdesk-go/internal/repository"
)

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrDateRequired     = errors.New("event date is required")
	ErrInviteesRequired = errors.New("invitees are required")
	ErrInvalidDecision  = errors.New("invalid decision")
	ErrEventNotFound    = errors.New("event not found")
)

// EventService handles the event approval lifecycle.
type EventService struct {
	events     *repository.EventRepository
	invites    *repository.InviteRepository
	dispatcher notify.Dispatcher
}

// NewEventService creates a new EventService.
func NewEventService(events *repository.EventRepository, invites *repository.InviteRepository, dispatcher notify.Dispatcher) *EventService {
	return &EventService{events: events, invites: invites, dispatcher: dispatcher}
}

// Create validates and stores a new event in pending_approval together with
// its invitees. Invitee entries missing a name or phone are dropped
// silently rather than failing the request; only the raw list being empty
// is an error.
func (s *EventService) Create(ctx context.Context, ownerID int64, req model.CreateEventRequest) (int64, error) {
	if req.Title == "" {
		return 0, ErrTitleRequired
	}
	if req.EventDate == "" {
		return 0, ErrDateRequired
	}
	if len(req.Invitees) == 0 {
		return 0, ErrInviteesRequired
	}

	var invitees []model.Invitee
	for _, in := range req.Invitees {
		if in.Name == "" || in.Phone == "" {
			continue
		}
		invitees = append(invitees, model.Invitee{Name: in.Name, Phone: in.Phone})
	}

	event := &model.Event{
		UserID:    ownerID,
		Title:     req.Title,
		EventDate: req.EventDate,
		Notes:     req.Notes,
		Status:    model.EventStatusPending,
		Paid:      false,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.events.Create(ctx, event, invitees); err != nil {
		return 0, err
	}

	return event.ID, nil
}

// ListMine returns all events owned by the caller, newest first.
func (s *EventService) ListMine(ctx context.Context, ownerID int64) ([]model.EventResponse, error) {
	events, err := s.events.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result := make([]model.EventResponse, len(events))
	for i, e := range events {
		result[i] = model.EventResponse{
			ID:        e.ID,
			Title:     e.Title,
			EventDate: e.EventDate,
			Notes:     e.Notes,
			Status:    e.Status,
			Paid:      e.Paid,
		}
	}
	return result, nil
}

// MarkPaid sets paid=true on an event owned by the caller. Events owned by
// other users are indistinguishable from absent ones.
func (s *EventService) MarkPaid(ctx context.Context, eventID, ownerID int64) error {
	err := s.events.MarkPaid(ctx, eventID, ownerID)
	if errors.Is(err, repository.ErrEventNotFound) {
		return ErrEventNotFound
	}
	return err
}

// ListPending returns all events awaiting a decision, newest first, with
// the requester's name attached.
func (s *EventService) ListPending(ctx context.Context) ([]model.AdminEventResponse, error) {
	events, err := s.events.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.AdminEventResponse, len(events))
	for i, e := range events {
		result[i] = model.AdminEventResponse{
			ID:        e.ID,
			Title:     e.Title,
			EventDate: e.EventDate,
			Notes:     e.Notes,
			Status:    e.Status,
			Paid:      e.Paid,
			Requester: e.Requester,
		}
	}
	return result, nil
}

// Decide applies an admin decision to an event. On approval, one pending
// invite is created per invitee in the same transaction as the status
// update, and the dispatcher is invoked once per invitee after commit.
// Deciding is not guarded against repetition: re-approving an
// already-approved event creates a second batch of invites.
func (s *EventService) Decide(ctx context.Context, eventID int64, decision string) error {
	if decision != model.EventStatusApproved && decision != model.EventStatusRejected {
		return ErrInvalidDecision
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	tx, err := s.events.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.events.UpdateStatusTx(ctx, tx, eventID, decision); err != nil {
		return err
	}

	var notifications []notify.Invitation
	if decision == model.EventStatusApproved {
		invitees, err := s.events.ListInviteesTx(ctx, tx, eventID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, invitee := range invitees {
			invite := &model.Invite{
				InviteeID: invitee.ID,
				Status:    model.InviteStatusPending,
				CreatedAt: now,
			}
			if err := s.invites.CreateTx(ctx, tx, invite); err != nil {
				return err
			}
			notifications = append(notifications, notify.Invitation{
				InviteID:    invite.ID,
				EventID:     event.ID,
				EventTitle:  event.Title,
				EventDate:   event.EventDate,
				InviteeName: invitee.Name,
				Phone:       invitee.Phone,
			})
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	for _, n := range notifications {
		if err := s.dispatcher.Dispatch(ctx, n); err != nil {
			slog.Warn("invite notification failed",
				"invite_id", n.InviteID, "phone", n.Phone, "error", err)
		}
	}

	return nil
}
