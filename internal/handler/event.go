package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rsvpdesk/rsvpdesk-go/internal/middleware"
	"github.com/rsvpdesk/rsvpdesk-go/internal/model"
	"github.com/rsvpdesk/rsvpdesk-go/internal/service"
)

// EventHandler handles HTTP requests for the event lifecycle.
type EventHandler struct {
	service *service.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{service: svc}
}

// HandleCreate handles POST /api/events requests.
func (h *EventHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	id, err := h.service.Create(r.Context(), session.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTitleRequired),
			errors.Is(err, service.ErrDateRequired),
			errors.Is(err, service.ErrInviteesRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// HandleListMine handles GET /api/events/mine requests.
func (h *EventHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	events, err := h.service.ListMine(r.Context(), session.UserID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string][]model.EventResponse{"events": events})
}

// HandlePay handles POST /api/events/{event_id}/pay requests.
func (h *EventHandler) HandlePay(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	eventID, ok := urlID(r, "event_id")
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse("event not found"))
		return
	}

	if err := h.service.MarkPaid(r.Context(), eventID, session.UserID); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "paid"})
}

// HandleListPending handles GET /api/admin/events requests.
func (h *EventHandler) HandleListPending(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.ListPending(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string][]model.AdminEventResponse{"events": events})
}

// HandleDecide handles POST /api/admin/events/{event_id}/decision requests.
func (h *EventHandler) HandleDecide(w http.ResponseWriter, r *http.Request) {
	eventID, ok := urlID(r, "event_id")
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse("event not found"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	if err := h.service.Decide(r.Context(), eventID, req.Decision); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDecision):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrEventNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": req.Decision})
}
