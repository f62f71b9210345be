package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/usecase"
)

// PredictionHandler handles prediction history endpoints
type PredictionHandler struct {
	predictionUC usecase.PredictionUsecase
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(predictionUC usecase.PredictionUsecase) *PredictionHandler {
	return &PredictionHandler{predictionUC: predictionUC}
}

// ListPredictions handles GET /api/v1/predictions
func (h *PredictionHandler) ListPredictions(c *gin.Context) {
	pagination := ParsePagination(c)

	output, err := h.predictionUC.List(c.Request.Context(), pagination.Limit, pagination.Offset)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// GetPrediction handles GET /api/v1/predictions/:id
func (h *PredictionHandler) GetPrediction(c *gin.Context) {
	id, err := ExtractUUIDParam(c, "id")
	if err != nil {
		HandleInvalidUUID(c, "prediction id")
		return
	}

	output, err := h.predictionUC.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// GetStats handles GET /api/v1/predictions/stats
func (h *PredictionHandler) GetStats(c *gin.Context) {
	output, err := h.predictionUC.Stats(c.Request.Context())
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}
