package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ReviewHandler holds dependencies for threaded review handlers.
type ReviewHandler struct {
	uc     usecase.ReviewUsecase
	logger *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler, injected by Fx.
func NewReviewHandler(uc usecase.ReviewUsecase, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		uc:     uc,
		logger: logger,
	}
}

type createReviewRequest struct {
	Text           string     `json:"text" validate:"required,min=1,max=4000"`
	ParentReviewID *uuid.UUID `json:"parentReviewId"`
}

// CreateReview posts a review or, when parentReviewId is set, a reply.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	productID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	review, err := h.uc.CreateReview(c.Request().Context(), usecase.CreateReviewInput{
		AuthorID:       userID,
		ProductID:      productID,
		Text:           req.Text,
		ParentReviewID: req.ParentReviewID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newReviewView(review), "Review posted successfully")
}

// ListProductReviews returns a product's reviews assembled into threads.
func (h *ReviewHandler) ListProductReviews(c echo.Context) error {
	productID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	threads, err := h.uc.ListProductReviews(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newReviewThreadViews(threads), "Reviews retrieved successfully")
}

// ListReplies returns the direct replies of one review, oldest first.
func (h *ReviewHandler) ListReplies(c echo.Context) error {
	reviewID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	replies, err := h.uc.ListReplies(c.Request().Context(), reviewID)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*reviewView, 0, len(replies))
	for _, reply := range replies {
		views = append(views, newReviewView(reply))
	}

	return response.Success(c, http.StatusOK, views, "Replies retrieved successfully")
}

// DeleteReview removes the calling user's own review.
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	reviewID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteReview(c.Request().Context(), userID, reviewID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Review deleted"}, "Review deleted successfully")
}
