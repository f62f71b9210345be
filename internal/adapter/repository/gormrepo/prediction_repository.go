package gormrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/entity"
	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/repository"
)

type predictionRepository struct {
	db *gorm.DB
}

// NewPredictionRepository creates a new prediction repository
func NewPredictionRepository(db *gorm.DB) repository.PredictionRepository {
	return &predictionRepository{db: db}
}

func (r *predictionRepository) Create(ctx context.Context, prediction *entity.Prediction) error {
	return r.db.WithContext(ctx).Create(prediction).Error
}

func (r *predictionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Prediction, error) {
	var prediction entity.Prediction
	err := r.db.WithContext(ctx).First(&prediction, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prediction, nil
}

func (r *predictionRepository) List(ctx context.Context, limit, offset int) ([]*entity.Prediction, int64, error) {
	var predictions []*entity.Prediction
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.Prediction{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&predictions).Error
	if err != nil {
		return nil, 0, err
	}

	return predictions, total, nil
}

func (r *predictionRepository) CountBySentiment(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Sentiment string
		Count     int64
	}
	err := r.db.WithContext(ctx).
		Model(&entity.Prediction{}).
		Select("sentiment, COUNT(*) AS count").
		Group("sentiment").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Sentiment] = row.Count
	}
	return counts, nil
}
