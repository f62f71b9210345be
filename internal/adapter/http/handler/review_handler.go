package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/usecase"
)

// MissingReviewFieldsMessage is returned when a review submission lacks a field
const MissingReviewFieldsMessage = "All fields (movieId, title, rating, comment) are required."

// ReviewHandler handles movie review submissions
type ReviewHandler struct {
	reviewUC usecase.ReviewUsecase
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewUC usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{reviewUC: reviewUC}
}

// SubmitReview handles POST /api/v1/reviews
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	var input usecase.SubmitReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleInvalidRequest(c, MissingReviewFieldsMessage)
		return
	}
	input.RequestID = c.GetString(requestIDKey)

	output, err := h.reviewUC.Submit(c.Request.Context(), &input)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, output)
}
