package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/model"
	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/usecase"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

// MapUsecaseError maps usecase errors to HTTP error responses.
// It provides consistent error handling across all enveloped handlers.
func MapUsecaseError(err error) ErrorResponse {
	switch {
	case errors.Is(err, usecase.ErrMissingField), errors.Is(err, usecase.ErrMalformedRequest):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_REQUEST",
			Message:    "invalid request",
		}
	case errors.Is(err, usecase.ErrPredictionNotFound):
		return ErrorResponse{
			StatusCode: http.StatusNotFound,
			Code:       "NOT_FOUND",
			Message:    "prediction not found",
		}
	case errors.Is(err, model.ErrArtifactNotFound):
		return ErrorResponse{
			StatusCode: http.StatusNotFound,
			Code:       "NOT_FOUND",
			Message:    "model artifact not found",
		}
	case errors.Is(err, model.ErrArtifactUnreadable):
		return ErrorResponse{
			StatusCode: http.StatusBadGateway,
			Code:       "ARTIFACT_UNREADABLE",
			Message:    "model artifact could not be read",
		}
	case errors.Is(err, model.ErrDimensionMismatch):
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       "ARTIFACT_MISMATCH",
			Message:    "vectorizer and classifier do not match",
		}
	case errors.Is(err, usecase.ErrModelNotLoaded):
		return ErrorResponse{
			StatusCode: http.StatusServiceUnavailable,
			Code:       "MODEL_NOT_LOADED",
			Message:    "model not loaded",
		}
	case errors.Is(err, usecase.ErrHistoryDisabled):
		return ErrorResponse{
			StatusCode: http.StatusServiceUnavailable,
			Code:       "HISTORY_DISABLED",
			Message:    "prediction history is disabled",
		}
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorResponse{
			StatusCode: http.StatusGatewayTimeout,
			Code:       "TIMEOUT",
			Message:    "operation timed out",
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       "INTERNAL_ERROR",
			Message:    "internal server error",
		}
	}
}

// HandleUsecaseError handles a usecase error by sending an appropriate HTTP response.
// It maps the error to an HTTP status and sends a JSON error response.
func HandleUsecaseError(c *gin.Context, err error) {
	errResp := MapUsecaseError(err)
	respondError(c, errResp.StatusCode, errResp.Code, errResp.Message)
}

// HandleInvalidUUID handles an invalid UUID parameter error.
func HandleInvalidUUID(c *gin.Context, paramName string) {
	respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid "+paramName)
}

// HandleInvalidRequest handles a generic invalid request error.
func HandleInvalidRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, "INVALID_REQUEST", message)
}
