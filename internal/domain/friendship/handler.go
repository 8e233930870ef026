package friendship

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/friendcircle/friendship-api/internal/pkg/response"
	"github.com/friendcircle/friendship-api/internal/pkg/validator"
)

// Handler handles friendship HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates friendship handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetByUsers handles GET /friendships?user_id1&user_id2
func (h *Handler) GetByUsers(w http.ResponseWriter, r *http.Request) {
	userID1, userID2, ok := userPairQuery(w, r)
	if !ok {
		return
	}

	f, err := h.service.Get(r.Context(), userID1, userID2)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if f == nil {
		response.NotFound(w, "Friendship not found")
		return
	}

	response.OK(w, f)
}

// ListForUser handles GET /friendships/user/{userId}
func (h *Handler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userId")
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	views, err := h.service.ListViews(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if len(views) == 0 {
		response.NotFound(w, "User has no friends")
		return
	}

	response.OK(w, views)
}

// Exists handles GET /friendships/exists?user_id1&user_id2
func (h *Handler) Exists(w http.ResponseWriter, r *http.Request) {
	userID1, userID2, ok := userPairQuery(w, r)
	if !ok {
		return
	}

	exists, err := h.service.Exists(r.Context(), userID1, userID2)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !exists {
		response.NotFound(w, "Friendship not found")
		return
	}

	response.OK(w, true)
}

// MutualFriends handles GET /friendships/mutual_friends?user_id1&user_id2
func (h *Handler) MutualFriends(w http.ResponseWriter, r *http.Request) {
	userID1, userID2, ok := userPairQuery(w, r)
	if !ok {
		return
	}

	count, err := h.service.MutualFriendsCount(r.Context(), userID1, userID2)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, count)
}

// Create handles POST /friendships
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateFriendshipRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ErrorWithDetails(w, http.StatusBadRequest, "BAD_REQUEST", "Validation failed", fieldErrors)
		return
	}

	f, err := h.service.Create(r.Context(), req.UserID1, req.UserID2, req.ChatID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, f)
}

// ToggleBlock handles PATCH /friendships/{id}/block_by/{userId}
func (h *Handler) ToggleBlock(w http.ResponseWriter, r *http.Request) {
	otherID, err := idParam(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid friendship ID")
		return
	}
	blockerID, err := idParam(r, "userId")
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	view, err := h.service.ToggleBlock(r.Context(), otherID, blockerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, view)
}

// Delete handles DELETE /friendships?user_id1&user_id2
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID1, userID2, ok := userPairQuery(w, r)
	if !ok {
		return
	}

	if err := h.service.Unfriend(r.Context(), userID1, userID2); err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, map[string]string{"status": "deleted"})
}

// idParam parses a positive int64 path parameter.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidUserID
	}
	return id, nil
}

// userPairQuery parses the user_id1/user_id2 query parameters, writing a 400
// response on failure.
func userPairQuery(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	userID1, err1 := strconv.ParseInt(r.URL.Query().Get("user_id1"), 10, 64)
	userID2, err2 := strconv.ParseInt(r.URL.Query().Get("user_id2"), 10, 64)
	if err1 != nil || err2 != nil {
		response.BadRequest(w, "user_id1 and user_id2 must be numeric")
		return 0, 0, false
	}
	return userID1, userID2, true
}

// writeServiceError maps domain errors onto HTTP responses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidUserID),
		errors.Is(err, ErrSelfRelation),
		errors.Is(err, ErrInvalidChatID),
		errors.Is(err, ErrUserMissing),
		errors.Is(err, ErrChatMissing):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrChatInUse):
		response.Conflict(w, err.Error())
	case errors.Is(err, ErrNotAParty):
		response.Forbidden(w, err.Error())
	default:
		log.Error().Err(err).Msg("Friendship request failed")
		response.InternalError(w)
	}
}
