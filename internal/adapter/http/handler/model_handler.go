package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/usecase"
)

// ModelService exposes the served model to administrators
type ModelService interface {
	Info() (*usecase.ModelInfo, error)
	Reload(ctx context.Context, version string) (*usecase.ModelInfo, error)
}

// ReloadModelRequest is the optional body of POST /api/v1/model/reload
type ReloadModelRequest struct {
	Version string `json:"version"`
}

// ModelHandler handles model administration endpoints
type ModelHandler struct {
	models ModelService
	logger *zap.Logger
}

// NewModelHandler creates a new model handler
func NewModelHandler(models ModelService, logger *zap.Logger) *ModelHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModelHandler{models: models, logger: logger}
}

// GetModel handles GET /api/v1/model
func (h *ModelHandler) GetModel(c *gin.Context) {
	info, err := h.models.Info()
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}
	c.Header(ModelVersionHeader, info.Version)
	respondSuccess(c, http.StatusOK, info)
}

// ReloadModel handles POST /api/v1/model/reload
func (h *ModelHandler) ReloadModel(c *gin.Context) {
	var req ReloadModelRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			HandleInvalidRequest(c, "request body must be a JSON object")
			return
		}
	}

	info, err := h.models.Reload(c.Request.Context(), req.Version)
	if err != nil {
		h.logger.Warn("Model reload request failed",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("version", req.Version),
			zap.Error(err),
		)
		HandleUsecaseError(c, err)
		return
	}
	c.Header(ModelVersionHeader, info.Version)
	respondSuccess(c, http.StatusOK, info)
}
