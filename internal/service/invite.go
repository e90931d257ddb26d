package service

import (
	"context"
	"errors"
	"time"

	"github.com/rsvpdesk/rsvpdesk-go/internal/model"
	"github.com/rsvpdesk/rsvpdesk-go/internal/repository"
)

var (
	ErrInviteNotFound  = errors.New("invite not found")
	ErrInvalidResponse = errors.New("invalid response")
)

// InviteService handles invite lookup and responses.
type InviteService struct {
	invites *repository.InviteRepository
}

// NewInviteService creates a new InviteService.
func NewInviteService(invites *repository.InviteRepository) *InviteService {
	return &InviteService{invites: invites}
}

// Get returns an invite with its invitee and event details. Public: the
// invite ID in the shared link is the only credential.
func (s *InviteService) Get(ctx context.Context, id int64) (model.InviteDetail, error) {
	detail, err := s.invites.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInviteNotFound) {
			return model.InviteDetail{}, ErrInviteNotFound
		}
		return model.InviteDetail{}, err
	}
	return *detail, nil
}

// Respond records an invitee's response, overwriting any prior one. The
// last response is authoritative; there is no one-shot restriction.
func (s *InviteService) Respond(ctx context.Context, id int64, response string) error {
	switch response {
	case model.InviteStatusApproved, model.InviteStatusRejected, model.InviteStatusMaybe:
	default:
		return ErrInvalidResponse
	}

	err := s.invites.UpdateResponse(ctx, id, response, time.Now().UTC())
	if errors.Is(err, repository.ErrInviteNotFound) {
		return ErrInviteNotFound
	}
	return err
}

// ListByEvent returns all invites for an event's invitees, newest-created
// first. An unknown event simply yields an empty list.
func (s *InviteService) ListByEvent(ctx context.Context, eventID int64) ([]model.EventInvite, error) {
	invites, err := s.invites.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if invites == nil {
		invites = make([]model.EventInvite, 0)
	}
	return invites, nil
}
