package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rsvpdesk/rsvpdesk-go/internal/model"
	"github.com/rsvpdesk/rsvpdesk-go/internal/service"
)

// InviteHandler handles HTTP requests for invites. Lookup and respond are
// public; the invite ID in the shared link is the only credential.
type InviteHandler struct {
	service *service.InviteService
}

// NewInviteHandler creates a new InviteHandler.
func NewInviteHandler(svc *service.InviteService) *InviteHandler {
	return &InviteHandler{service: svc}
}

// HandleGet handles GET /api/invites/{invite_id} requests.
func (h *InviteHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	inviteID, ok := urlID(r, "invite_id")
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse("invite not found"))
		return
	}

	detail, err := h.service.Get(r.Context(), inviteID)
	if err != nil {
		if errors.Is(err, service.ErrInviteNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]model.InviteDetail{"invite": detail})
}

// HandleRespond handles POST /api/invites/{invite_id}/respond requests.
func (h *InviteHandler) HandleRespond(w http.ResponseWriter, r *http.Request) {
	inviteID, ok := urlID(r, "invite_id")
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse("invite not found"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	if err := h.service.Respond(r.Context(), inviteID, req.Response); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidResponse):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrInviteNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": req.Response})
}

// HandleListByEvent handles GET /api/admin/events/{event_id}/invites requests.
func (h *InviteHandler) HandleListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := urlID(r, "event_id")
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse("event not found"))
		return
	}

	invites, err := h.service.ListByEvent(r.Context(), eventID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string][]model.EventInvite{"invites": invites})
}
