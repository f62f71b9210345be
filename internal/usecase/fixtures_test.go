package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/entity"
	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/model"
)

const testModel = "SentimentAnalysisModel"

// newTestArtifact builds an artifact whose positive terms point to Positive.
// An inverted artifact flips every coefficient.
func newTestArtifact(t *testing.T, version string, inverted bool) *model.Artifact {
	t.Helper()

	tr, err := model.NewTransformer(model.TransformerParams{
		Vocabulary: map[string]int{"fantastic": 0, "great": 1, "terrible": 2, "boring": 3},
		IDF:        []float64{1.5, 1.2, 1.5, 1.4},
	})
	require.NoError(t, err)

	coef := []float64{2, 1.5, -2, -1.5}
	if inverted {
		for i := range coef {
			coef[i] = -coef[i]
		}
	}
	c, err := model.NewClassifier(model.ClassifierParams{Coef: coef, Intercept: -0.1, Classes: []int{0, 1}})
	require.NoError(t, err)

	a, err := model.NewArtifact(testModel, version, tr, c)
	require.NoError(t, err)
	return a
}

// fakeLoader serves artifacts from a map of version to artifact
type fakeLoader struct {
	mu        sync.Mutex
	artifacts map[string]*model.Artifact
	latest    string
	calls     atomic.Int32
	delay     time.Duration
	requested []string
}

func newFakeLoader(latest string, artifacts ...*model.Artifact) *fakeLoader {
	l := &fakeLoader{artifacts: make(map[string]*model.Artifact), latest: latest}
	for _, a := range artifacts {
		l.artifacts[a.Version] = a
	}
	return l
}

func (l *fakeLoader) Load(ctx context.Context, modelName, version string) (*model.Artifact, error) {
	l.calls.Add(1)
	l.mu.Lock()
	l.requested = append(l.requested, version)
	l.mu.Unlock()
	if l.delay > 0 {
		select {
		case <-time.After(l.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if modelName != testModel {
		return nil, fmt.Errorf("%w: model %s", model.ErrArtifactNotFound, modelName)
	}
	if version == model.LatestVersion {
		version = l.latest
	}
	a, ok := l.artifacts[version]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", model.ErrArtifactNotFound, modelName, version)
	}
	return a, nil
}

// MockPredictionRepository is a mock implementation of PredictionRepository
type MockPredictionRepository struct {
	mock.Mock
}

func (m *MockPredictionRepository) Create(ctx context.Context, prediction *entity.Prediction) error {
	args := m.Called(ctx, prediction)
	return args.Error(0)
}

func (m *MockPredictionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Prediction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) List(ctx context.Context, limit, offset int) ([]*entity.Prediction, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Prediction), args.Get(1).(int64), args.Error(2)
}

func (m *MockPredictionRepository) CountBySentiment(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// MockMetricsRecorder is a mock implementation of MetricsRecorder
type MockMetricsRecorder struct {
	mock.Mock
}

func (m *MockMetricsRecorder) ObservePrediction(sentiment string, d time.Duration) {
	m.Called(sentiment, d)
}

func (m *MockMetricsRecorder) ObservePredictionError(kind string) {
	m.Called(kind)
}

func (m *MockMetricsRecorder) ObserveReload(success bool) {
	m.Called(success)
}

func (m *MockMetricsRecorder) SetModelInfo(modelName, version string) {
	m.Called(modelName, version)
}
