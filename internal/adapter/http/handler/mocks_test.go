package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/usecase"
)

// MockSentimentUsecase is a mock implementation of SentimentUsecase
type MockSentimentUsecase struct {
	mock.Mock
}

func (m *MockSentimentUsecase) Predict(ctx context.Context, input *usecase.PredictInput) (*usecase.PredictOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.PredictOutput), args.Error(1)
}

// MockPredictionUsecase is a mock implementation of PredictionUsecase
type MockPredictionUsecase struct {
	mock.Mock
}

func (m *MockPredictionUsecase) GetByID(ctx context.Context, id uuid.UUID) (*usecase.PredictionOutput, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.PredictionOutput), args.Error(1)
}

func (m *MockPredictionUsecase) List(ctx context.Context, limit, offset int) (*usecase.PredictionListOutput, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.PredictionListOutput), args.Error(1)
}

func (m *MockPredictionUsecase) Stats(ctx context.Context) (*usecase.PredictionStatsOutput, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.PredictionStatsOutput), args.Error(1)
}

// MockModelService is a mock implementation of ModelService
type MockModelService struct {
	mock.Mock
}

func (m *MockModelService) Info() (*usecase.ModelInfo, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ModelInfo), args.Error(1)
}

func (m *MockModelService) Reload(ctx context.Context, version string) (*usecase.ModelInfo, error) {
	args := m.Called(ctx, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ModelInfo), args.Error(1)
}

// MockReviewUsecase is a mock implementation of ReviewUsecase
type MockReviewUsecase struct {
	mock.Mock
}

func (m *MockReviewUsecase) Submit(ctx context.Context, input *usecase.SubmitReviewInput) (*usecase.SubmitReviewOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SubmitReviewOutput), args.Error(1)
}
