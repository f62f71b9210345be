package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/usecase"
)

// Error bodies of POST /predict
const (
	MissingTextMessage      = "Missing 'text' key in JSON request"
	InternalErrorMessage    = "Internal Server Error"
	MalformedRequestMessage = "Malformed JSON request"
)

// ModelVersionHeader names the artifact version that served a prediction
const ModelVersionHeader = "X-Model-Version"

// PredictResponse is the body of a successful prediction
type PredictResponse struct {
	Review    string `json:"review"`
	Sentiment string `json:"sentiment"`
}

// PredictErrorResponse is the body of a failed prediction
type PredictErrorResponse struct {
	Error string `json:"error"`
}

// PredictHandler handles POST /predict
type PredictHandler struct {
	sentimentUC     usecase.SentimentUsecase
	malformedStatus int
	logger          *zap.Logger
}

// NewPredictHandler creates a new predict handler. malformedStatus is the
// status returned for bodies that are not a JSON object.
func NewPredictHandler(sentimentUC usecase.SentimentUsecase, malformedStatus int, logger *zap.Logger) *PredictHandler {
	if malformedStatus == 0 {
		malformedStatus = http.StatusInternalServerError
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PredictHandler{
		sentimentUC:     sentimentUC,
		malformedStatus: malformedStatus,
		logger:          logger,
	}
}

// Predict handles POST /predict
func (h *PredictHandler) Predict(c *gin.Context) {
	requestID := c.GetString(requestIDKey)
	log := h.logger.With(zap.String("request_id", requestID))

	text, err := parsePredictRequest(c)
	if err != nil {
		h.respondPredictError(c, log, err)
		return
	}
	log.Debug("Prediction requested", zap.Int("text_length", len(text)))

	out, err := h.sentimentUC.Predict(c.Request.Context(), &usecase.PredictInput{
		Text:      text,
		RequestID: requestID,
	})
	if err != nil {
		h.respondPredictError(c, log, err)
		return
	}

	log.Info("Prediction served",
		zap.String("sentiment", out.Sentiment.String()),
		zap.Float64("probability", out.Probability),
		zap.String("model_version", out.ModelVersion),
	)
	c.Header(ModelVersionHeader, out.ModelVersion)
	c.JSON(http.StatusOK, PredictResponse{
		Review:    out.Review,
		Sentiment: out.Sentiment.String(),
	})
}

// parsePredictRequest extracts the text field. A body that is not exactly one
// JSON object of valid UTF-8, or a text that is not a string, is
// ErrMalformedRequest; an absent text is ErrMissingField.
func parsePredictRequest(c *gin.Context) (string, error) {
	data, err := c.GetRawData()
	if err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrMalformedRequest, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: body is not valid UTF-8", usecase.ErrMalformedRequest)
	}

	// Unmarshal rejects trailing data after the first value
	var body map[string]json.RawMessage
	if err := json.Unmarshal(data, &body); err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrMalformedRequest, err)
	}
	if body == nil {
		return "", fmt.Errorf("%w: body is null", usecase.ErrMalformedRequest)
	}

	raw, ok := body["text"]
	if !ok {
		return "", usecase.ErrMissingField
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", fmt.Errorf("%w: text is null", usecase.ErrMalformedRequest)
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", fmt.Errorf("%w: text is not a string", usecase.ErrMalformedRequest)
	}
	return text, nil
}

func (h *PredictHandler) respondPredictError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, usecase.ErrMissingField):
		log.Warn("Prediction rejected: missing text")
		c.JSON(http.StatusBadRequest, PredictErrorResponse{Error: MissingTextMessage})
	case errors.Is(err, usecase.ErrMalformedRequest):
		log.Warn("Prediction rejected: malformed body", zap.Error(err))
		msg := MalformedRequestMessage
		if h.malformedStatus >= http.StatusInternalServerError {
			msg = InternalErrorMessage
		}
		c.JSON(h.malformedStatus, PredictErrorResponse{Error: msg})
	default:
		log.Error("Prediction failed", zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, PredictErrorResponse{Error: InternalErrorMessage})
	}
}
