package status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/friendcircle/friendship-api/internal/domain/friendrequest"
	"github.com/friendcircle/friendship-api/internal/domain/friendship"
	"github.com/friendcircle/friendship-api/internal/pkg/response"
)

type Handler struct {
	resolver *Resolver
}

func NewHandler(resolver *Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// StatusResponse is the payload of the status endpoint.
type StatusResponse struct {
	UserID1 int64  `json:"userId1"`
	UserID2 int64  `json:"userId2"`
	Status  Status `json:"status"`
}

// Get resolves the relationship status of user_id1 towards user_id2.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID1, err1 := strconv.ParseInt(r.URL.Query().Get("user_id1"), 10, 64)
	userID2, err2 := strconv.ParseInt(r.URL.Query().Get("user_id2"), 10, 64)
	if err1 != nil || err2 != nil {
		response.BadRequest(w, "user_id1 and user_id2 must be numeric")
		return
	}

	st, err := h.resolver.Between(r.Context(), userID1, userID2)
	if err != nil {
		switch {
		case errors.Is(err, friendrequest.ErrInvalidUserID), errors.Is(err, friendship.ErrInvalidUserID),
			errors.Is(err, friendrequest.ErrSelfRequest), errors.Is(err, friendship.ErrSelfRelation):
			response.BadRequest(w, err.Error())
		default:
			log.Error().Err(err).Int64("user_id1", userID1).Int64("user_id2", userID2).Msg("Failed to resolve relationship status")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, StatusResponse{UserID1: userID1, UserID2: userID2, Status: st})
}
