package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/entity"
	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/repository"
)

// SubmitReviewInput represents a movie review submission
type SubmitReviewInput struct {
	MovieID   string     `json:"movieId" binding:"required"`
	Title     string     `json:"title" binding:"required"`
	Rating    int        `json:"rating" binding:"required,min=1,max=10"`
	Comment   string     `json:"comment" binding:"required"`
	Timestamp *time.Time `json:"timestamp"`
	RequestID string     `json:"-"`
}

// SubmitReviewOutput represents a stored movie review
type SubmitReviewOutput struct {
	ID        uuid.UUID `json:"id"`
	MovieID   string    `json:"movie_id"`
	Title     string    `json:"title"`
	Rating    int       `json:"rating"`
	Sentiment string    `json:"sentiment"`
	CreatedAt string    `json:"created_at"`
}

// ReviewUsecase defines the interface for movie review submissions
type ReviewUsecase interface {
	Submit(ctx context.Context, input *SubmitReviewInput) (*SubmitReviewOutput, error)
}

type reviewUsecase struct {
	inference *InferenceService
	predRepo  repository.PredictionRepository
	metrics   MetricsRecorder
	logger    *zap.Logger
}

// NewReviewUsecase creates a new review usecase. Reviews are stored, so a nil
// predRepo makes every submission fail with ErrHistoryDisabled.
func NewReviewUsecase(
	inference *InferenceService,
	predRepo repository.PredictionRepository,
	metrics MetricsRecorder,
	logger *zap.Logger,
) ReviewUsecase {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &reviewUsecase{
		inference: inference,
		predRepo:  predRepo,
		metrics:   metrics,
		logger:    logger,
	}
}

// Submit classifies the review comment and stores it with its movie metadata
func (u *reviewUsecase) Submit(ctx context.Context, input *SubmitReviewInput) (*SubmitReviewOutput, error) {
	if err := validateReview(input); err != nil {
		return nil, err
	}
	if u.predRepo == nil {
		return nil, ErrHistoryDisabled
	}

	start := time.Now()
	res, err := u.inference.Infer(input.Comment)
	latency := time.Since(start)
	if err != nil {
		u.metrics.ObservePredictionError(errorKind(err))
		return nil, err
	}
	u.metrics.ObservePrediction(res.Label.String(), latency)

	p := entity.NewPrediction(input.RequestID, input.Comment, res.Label.String(), res.ModelName, res.ModelVersion)
	p.SetResult(res.Probability, latency)
	p.SetMovie(input.MovieID, input.Title, input.Rating)
	if input.Timestamp != nil && !input.Timestamp.IsZero() {
		p.CreatedAt = input.Timestamp.UTC()
	}

	if err := u.predRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to store review: %w", err)
	}

	u.logger.Info("Review stored",
		zap.String("id", p.ID.String()),
		zap.String("movie_id", p.MovieID),
		zap.String("sentiment", p.Sentiment),
	)

	return &SubmitReviewOutput{
		ID:        p.ID,
		MovieID:   p.MovieID,
		Title:     p.MovieTitle,
		Rating:    p.Rating,
		Sentiment: p.Sentiment,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}, nil
}

func validateReview(input *SubmitReviewInput) error {
	if input == nil {
		return ErrMissingField
	}
	if strings.TrimSpace(input.MovieID) == "" ||
		strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Comment) == "" {
		return ErrMissingField
	}
	if input.Rating < 1 || input.Rating > 10 {
		return fmt.Errorf("%w: rating must be between 1 and 10", ErrMalformedRequest)
	}
	return nil
}
