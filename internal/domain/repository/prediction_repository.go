package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/entity"
)

// PredictionRepository defines the interface for prediction audit records
type PredictionRepository interface {
	// Create stores a prediction record
	Create(ctx context.Context, prediction *entity.Prediction) error

	// GetByID retrieves a prediction by ID; nil when absent
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Prediction, error)

	// List retrieves predictions, newest first, with pagination
	List(ctx context.Context, limit, offset int) ([]*entity.Prediction, int64, error)

	// CountBySentiment counts predictions per sentiment label
	CountBySentiment(ctx context.Context) (map[string]int64, error)
}
