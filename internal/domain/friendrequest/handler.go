package friendrequest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/friendcircle/friendship-api/internal/pkg/response"
	"github.com/friendcircle/friendship-api/internal/pkg/validator"
)

// Handler handles friend request HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates friend request handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get handles GET /friend-requests?sender_id&receiver_id
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	senderID, receiverID, ok := requestPairQuery(w, r)
	if !ok {
		return
	}

	req, err := h.service.Get(r.Context(), senderID, receiverID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if req == nil {
		response.NotFound(w, "Friend request not found")
		return
	}

	response.OK(w, req)
}

// Exists handles GET /friend-requests/exists?sender_id&receiver_id
func (h *Handler) Exists(w http.ResponseWriter, r *http.Request) {
	senderID, receiverID, ok := requestPairQuery(w, r)
	if !ok {
		return
	}

	exists, err := h.service.Exists(r.Context(), senderID, receiverID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !exists {
		response.NotFound(w, "Friend request not found")
		return
	}

	response.OK(w, true)
}

// ListBySender handles GET /friend-requests/sender/{senderId}
func (h *Handler) ListBySender(w http.ResponseWriter, r *http.Request) {
	senderID, err := strconv.ParseInt(chi.URLParam(r, "senderId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid sender ID")
		return
	}

	requests, err := h.service.ListBySender(r.Context(), senderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, requests)
}

// ListByReceiver handles GET /friend-requests/receiver/{receiverId}
func (h *Handler) ListByReceiver(w http.ResponseWriter, r *http.Request) {
	receiverID, err := strconv.ParseInt(chi.URLParam(r, "receiverId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid receiver ID")
		return
	}

	requests, err := h.service.ListByReceiver(r.Context(), receiverID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, requests)
}

// Send handles POST /friend-requests
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ErrorWithDetails(w, http.StatusBadRequest, "BAD_REQUEST", "Validation failed", fieldErrors)
		return
	}

	created, err := h.service.Send(r.Context(), req.SenderID, req.ReceiverID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, created)
}

// Accept handles POST /friend-requests/accept?sender_id&receiver_id
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	senderID, receiverID, ok := requestPairQuery(w, r)
	if !ok {
		return
	}

	f, err := h.service.Accept(r.Context(), senderID, receiverID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, f)
}

// Reject handles POST /friend-requests/reject?sender_id&receiver_id
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	senderID, receiverID, ok := requestPairQuery(w, r)
	if !ok {
		return
	}

	if err := h.service.Reject(r.Context(), senderID, receiverID); err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, map[string]string{"status": "rejected"})
}

// requestPairQuery parses the sender_id/receiver_id query parameters,
// writing a 400 response on failure.
func requestPairQuery(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	senderID, err1 := strconv.ParseInt(r.URL.Query().Get("sender_id"), 10, 64)
	receiverID, err2 := strconv.ParseInt(r.URL.Query().Get("receiver_id"), 10, 64)
	if err1 != nil || err2 != nil {
		response.BadRequest(w, "sender_id and receiver_id must be numeric")
		return 0, 0, false
	}
	return senderID, receiverID, true
}

// writeServiceError maps domain errors onto HTTP responses. Saga step
// failures stay 500: the caller may retry the whole accept.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidUserID),
		errors.Is(err, ErrSelfRequest),
		errors.Is(err, ErrUserMissing):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrAlreadyExists):
		response.Conflict(w, err.Error())
	default:
		log.Error().Err(err).Msg("Friend request failed")
		response.InternalError(w)
	}
}
