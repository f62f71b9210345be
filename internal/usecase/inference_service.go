package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/model"
)

// ArtifactLoader loads a model artifact from the registry
type ArtifactLoader interface {
	Load(ctx context.Context, modelName, version string) (*model.Artifact, error)
}

// InferenceConfig selects the model an InferenceService serves
type InferenceConfig struct {
	ModelName   string
	Version     string
	LoadTimeout time.Duration
}

// InferenceResult is a prediction together with the artifact that produced it
type InferenceResult struct {
	model.Prediction
	ModelName    string
	ModelVersion string
}

// ModelInfo describes the currently served artifact
type ModelInfo struct {
	Name           string    `json:"name"`
	Version        string    `json:"version"`
	VocabularySize int       `json:"vocabulary_size"`
	LoadedAt       time.Time `json:"loaded_at"`
}

// InferenceService owns the served artifact. Predictions read it through an
// atomic pointer; reloads replace the pointer, never the artifact's contents.
type InferenceService struct {
	loader  ArtifactLoader
	cfg     InferenceConfig
	current atomic.Pointer[model.Artifact]
	reloads singleflight.Group
	logger  *zap.Logger
	metrics MetricsRecorder
}

// NewInferenceService loads the configured artifact and returns a ready service.
// A failed load is returned to the caller and no service is created.
func NewInferenceService(ctx context.Context, loader ArtifactLoader, cfg InferenceConfig, logger *zap.Logger, metrics MetricsRecorder) (*InferenceService, error) {
	s := newInferenceService(loader, cfg, logger, metrics)
	if _, err := s.load(ctx, s.cfg.Version); err != nil {
		return nil, fmt.Errorf("failed to load initial model: %w", err)
	}
	return s, nil
}

// NewInferenceServiceWithArtifact returns a service already serving artifact
func NewInferenceServiceWithArtifact(artifact *model.Artifact, loader ArtifactLoader, cfg InferenceConfig, logger *zap.Logger, metrics MetricsRecorder) *InferenceService {
	s := newInferenceService(loader, cfg, logger, metrics)
	s.install(artifact)
	return s
}

func newInferenceService(loader ArtifactLoader, cfg InferenceConfig, logger *zap.Logger, metrics MetricsRecorder) *InferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = nopRecorder{}
	}
	if cfg.Version == "" {
		cfg.Version = model.LatestVersion
	}
	return &InferenceService{
		loader:  loader,
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
	}
}

// Predict returns the sentiment label of text
func (s *InferenceService) Predict(text string) (model.Label, error) {
	res, err := s.Infer(text)
	if err != nil {
		return "", err
	}
	return res.Label, nil
}

// Infer runs the current artifact on text. The artifact is read once, so the
// transform and the classification always come from the same version.
func (s *InferenceService) Infer(text string) (res *InferenceResult, err error) {
	artifact := s.current.Load()
	if artifact == nil {
		return nil, ErrModelNotLoaded
	}

	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("prediction panicked: %v", r)
		}
	}()

	p, err := artifact.Predict(text)
	if err != nil {
		return nil, err
	}
	return &InferenceResult{
		Prediction:   p,
		ModelName:    artifact.ModelName,
		ModelVersion: artifact.Version,
	}, nil
}

// Reload loads version (or the configured selector when empty) and swaps it in.
// Concurrent reloads of the same version share one load, which is bounded by
// LoadTimeout rather than by any single caller's cancellation. On failure the
// current artifact keeps serving.
func (s *InferenceService) Reload(ctx context.Context, version string) (*ModelInfo, error) {
	if version == "" {
		version = s.cfg.Version
	}

	loadCtx := context.WithoutCancel(ctx)
	v, err, shared := s.reloads.Do(version, func() (interface{}, error) {
		return s.load(loadCtx, version)
	})
	if err != nil {
		s.metrics.ObserveReload(false)
		s.logger.Error("Model reload failed, keeping current model",
			zap.String("model", s.cfg.ModelName),
			zap.String("requested_version", version),
			zap.String("serving_version", s.servingVersion()),
			zap.Error(err),
		)
		return nil, err
	}
	s.metrics.ObserveReload(true)

	info := infoOf(v.(*model.Artifact))
	s.logger.Info("Model reloaded",
		zap.String("model", info.Name),
		zap.String("version", info.Version),
		zap.Bool("shared", shared),
	)
	return info, nil
}

// Info describes the served artifact, or returns ErrModelNotLoaded
func (s *InferenceService) Info() (*ModelInfo, error) {
	artifact := s.current.Load()
	if artifact == nil {
		return nil, ErrModelNotLoaded
	}
	return infoOf(artifact), nil
}

// Ready reports whether an artifact is installed
func (s *InferenceService) Ready() bool {
	return s.current.Load() != nil
}

// Artifact returns the served artifact
func (s *InferenceService) Artifact() *model.Artifact {
	return s.current.Load()
}

func (s *InferenceService) load(ctx context.Context, version string) (*model.Artifact, error) {
	if s.loader == nil {
		return nil, fmt.Errorf("%w: no artifact loader configured", model.ErrArtifactNotFound)
	}
	if s.cfg.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.LoadTimeout)
		defer cancel()
	}

	artifact, err := s.loader.Load(ctx, s.cfg.ModelName, version)
	if err != nil {
		return nil, err
	}
	s.install(artifact)
	return artifact, nil
}

func (s *InferenceService) install(artifact *model.Artifact) {
	s.current.Store(artifact)
	s.metrics.SetModelInfo(artifact.ModelName, artifact.Version)
}

func (s *InferenceService) servingVersion() string {
	if artifact := s.current.Load(); artifact != nil {
		return artifact.Version
	}
	return ""
}

func infoOf(a *model.Artifact) *ModelInfo {
	return &ModelInfo{
		Name:           a.ModelName,
		Version:        a.Version,
		VocabularySize: a.VocabularySize(),
		LoadedAt:       a.LoadedAt,
	}
}
