package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/entity"
	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/model"
	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/repository"
)

// PredictInput represents the input for a sentiment prediction
type PredictInput struct {
	Text      string
	RequestID string
}

// PredictOutput represents the output of a sentiment prediction
type PredictOutput struct {
	Review       string      `json:"review"`
	Sentiment    model.Label `json:"sentiment"`
	Probability  float64     `json:"-"`
	ModelName    string      `json:"-"`
	ModelVersion string      `json:"-"`
}

// SentimentUsecase defines the interface for sentiment prediction
type SentimentUsecase interface {
	Predict(ctx context.Context, input *PredictInput) (*PredictOutput, error)
}

type sentimentUsecase struct {
	inference *InferenceService
	predRepo  repository.PredictionRepository
	metrics   MetricsRecorder
	logger    *zap.Logger
}

// NewSentimentUsecase creates a new sentiment usecase. predRepo may be nil,
// in which case predictions are not recorded.
func NewSentimentUsecase(
	inference *InferenceService,
	predRepo repository.PredictionRepository,
	metrics MetricsRecorder,
	logger *zap.Logger,
) SentimentUsecase {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &sentimentUsecase{
		inference: inference,
		predRepo:  predRepo,
		metrics:   metrics,
		logger:    logger,
	}
}

// Predict classifies input.Text with the served model
func (u *sentimentUsecase) Predict(ctx context.Context, input *PredictInput) (*PredictOutput, error) {
	if input == nil {
		return nil, ErrMissingField
	}

	start := time.Now()
	res, err := u.inference.Infer(input.Text)
	latency := time.Since(start)
	if err != nil {
		u.metrics.ObservePredictionError(errorKind(err))
		return nil, err
	}
	u.metrics.ObservePrediction(res.Label.String(), latency)

	u.record(ctx, input, res, latency)

	return &PredictOutput{
		Review:       input.Text,
		Sentiment:    res.Label,
		Probability:  res.Probability,
		ModelName:    res.ModelName,
		ModelVersion: res.ModelVersion,
	}, nil
}

func (u *sentimentUsecase) record(ctx context.Context, input *PredictInput, res *InferenceResult, latency time.Duration) {
	if u.predRepo == nil {
		return
	}
	p := entity.NewPrediction(input.RequestID, input.Text, res.Label.String(), res.ModelName, res.ModelVersion)
	p.SetResult(res.Probability, latency)
	if err := u.predRepo.Create(ctx, p); err != nil {
		u.logger.Warn("Failed to record prediction",
			zap.String("request_id", input.RequestID),
			zap.Error(err),
		)
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrModelNotLoaded):
		return "model_not_loaded"
	case errors.Is(err, model.ErrDimensionMismatch):
		return "dimension_mismatch"
	default:
		return "internal"
	}
}
