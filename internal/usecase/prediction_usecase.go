package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/entity"
	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/model"
	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/repository"
)

// Error definitions for prediction history
var (
	ErrHistoryDisabled    = errors.New("prediction history is disabled")
	ErrPredictionNotFound = errors.New("prediction not found")
)

// PredictionOutput represents one recorded prediction
type PredictionOutput struct {
	ID           uuid.UUID `json:"id"`
	RequestID    string    `json:"request_id,omitempty"`
	Review       string    `json:"review"`
	Sentiment    string    `json:"sentiment"`
	Probability  float64   `json:"probability"`
	ModelName    string    `json:"model_name"`
	ModelVersion string    `json:"model_version"`
	LatencyMs    float64   `json:"latency_ms"`
	MovieID      string    `json:"movie_id,omitempty"`
	MovieTitle   string    `json:"movie_title,omitempty"`
	Rating       int       `json:"rating,omitempty"`
	CreatedAt    string    `json:"created_at"`
}

// PredictionListOutput represents a paginated prediction list
type PredictionListOutput struct {
	Predictions []*PredictionOutput `json:"predictions"`
	Total       int64               `json:"total"`
	Limit       int                 `json:"limit"`
	Offset      int                 `json:"offset"`
	HasMore     bool                `json:"has_more"`
}

// PredictionStatsOutput counts recorded predictions per sentiment
type PredictionStatsOutput struct {
	Total        int64   `json:"total"`
	Positive     int64   `json:"positive"`
	Negative     int64   `json:"negative"`
	PositiveRate float64 `json:"positive_rate"`
}

// PredictionUsecase defines the interface for reading the prediction history
type PredictionUsecase interface {
	GetByID(ctx context.Context, id uuid.UUID) (*PredictionOutput, error)
	List(ctx context.Context, limit, offset int) (*PredictionListOutput, error)
	Stats(ctx context.Context) (*PredictionStatsOutput, error)
}

type predictionUsecase struct {
	predRepo repository.PredictionRepository
}

// NewPredictionUsecase creates a new prediction history usecase
func NewPredictionUsecase(predRepo repository.PredictionRepository) PredictionUsecase {
	return &predictionUsecase{predRepo: predRepo}
}

// GetByID retrieves one recorded prediction
func (u *predictionUsecase) GetByID(ctx context.Context, id uuid.UUID) (*PredictionOutput, error) {
	if u.predRepo == nil {
		return nil, ErrHistoryDisabled
	}

	p, err := u.predRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPredictionNotFound
	}
	return toPredictionOutput(p), nil
}

// List retrieves recorded predictions, newest first
func (u *predictionUsecase) List(ctx context.Context, limit, offset int) (*PredictionListOutput, error) {
	if u.predRepo == nil {
		return nil, ErrHistoryDisabled
	}

	predictions, total, err := u.predRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	outputs := make([]*PredictionOutput, len(predictions))
	for i, p := range predictions {
		outputs[i] = toPredictionOutput(p)
	}

	return &PredictionListOutput{
		Predictions: outputs,
		Total:       total,
		Limit:       limit,
		Offset:      offset,
		HasMore:     int64(offset+len(predictions)) < total,
	}, nil
}

// Stats counts recorded predictions per sentiment
func (u *predictionUsecase) Stats(ctx context.Context) (*PredictionStatsOutput, error) {
	if u.predRepo == nil {
		return nil, ErrHistoryDisabled
	}

	counts, err := u.predRepo.CountBySentiment(ctx)
	if err != nil {
		return nil, err
	}

	out := &PredictionStatsOutput{
		Positive: counts[model.LabelPositive.String()],
		Negative: counts[model.LabelNegative.String()],
	}
	out.Total = out.Positive + out.Negative
	if out.Total > 0 {
		out.PositiveRate = float64(out.Positive) / float64(out.Total)
	}
	return out, nil
}

func toPredictionOutput(p *entity.Prediction) *PredictionOutput {
	return &PredictionOutput{
		ID:           p.ID,
		RequestID:    p.RequestID,
		Review:       p.Review,
		Sentiment:    p.Sentiment,
		Probability:  p.Probability,
		ModelName:    p.ModelName,
		ModelVersion: p.ModelVersion,
		LatencyMs:    float64(p.LatencyMicros) / 1000,
		MovieID:      p.MovieID,
		MovieTitle:   p.MovieTitle,
		Rating:       p.Rating,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}
