package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating-platform/internal/middleware"
	q "github.com/iliyamo/store-rating-platform/internal/queue"
	"github.com/iliyamo/store-rating-platform/internal/repository"
	queue_publisher "github.com/iliyamo/store-rating-platform/internal/service"
)

// RatingHandler serves rating submissions.
type RatingHandler struct {
	Ratings *repository.RatingRepo
	Stores  *repository.StoreRepo
}

func NewRatingHandler(ratings *repository.RatingRepo, stores *repository.StoreRepo) *RatingHandler {
	return &RatingHandler{Ratings: ratings, Stores: stores}
}

type submitRatingReq struct {
	UserID  uint64 `json:"userId"` // optional; must match the token when set
	StoreID uint64 `json:"storeId"`
	Score   int    `json:"score"`
}

// SubmitRating upserts the caller's score for a store and responds
// with the recomputed aggregate. The score is validated before the
// ledger is touched, so an out-of-range submission mutates nothing.
// The rating user is always the token subject; a mismatching userId
// in the body is rejected rather than silently ignored.
func (h *RatingHandler) SubmitRating(c echo.Context) error {
	uid, err := middleware.CallerID(c)
	if err != nil {
		return jsonError(c, http.StatusUnauthorized, CodeAuthentication, "unauthorized")
	}

	var req submitRatingReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "invalid body")
	}
	if req.UserID != 0 && req.UserID != uid {
		return jsonError(c, http.StatusForbidden, CodeAuthorization, "cannot rate on behalf of another user")
	}
	if req.StoreID == 0 {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "storeId required")
	}
	if req.Score < 1 || req.Score > 5 {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "score must be an integer between 1 and 5")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	overall, err := h.Ratings.Upsert(ctx, uid, req.StoreID, uint8(req.Score))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrStoreNotFound):
			return jsonError(c, http.StatusNotFound, CodeNotFound, "store not found")
		case errors.Is(err, repository.ErrUserNotFound):
			return jsonError(c, http.StatusNotFound, CodeNotFound, "user not found")
		}
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "rating update failed")
	}

	// Fire-and-forget audit event; the rating is already committed and
	// a broker outage must not fail the request.
	storeName := ""
	if s, serr := h.Stores.GetByID(ctx, req.StoreID); serr == nil {
		storeName = s.Name
	}
	go func(ev q.RatingSubmittedEvent) {
		pctx, pcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pcancel()
		_ = queue_publisher.PublishRatingSubmitted(pctx, ev)
	}(q.RatingSubmittedEvent{
		UserID:        uid,
		StoreID:       req.StoreID,
		StoreName:     storeName,
		Score:         uint8(req.Score),
		OverallRating: overall,
		SubmittedAt:   time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "Rating updated successfully!",
		"overallRating": overall,
	})
}
