package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/model"
)

// Loader resolves a model version in a Store and loads its vectorizer and
// classifier as one artifact.
type Loader struct {
	store          Store
	logger         *zap.Logger
	vectorizerFile string
	classifierFile string
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithVectorizerFile overrides the vectorizer file named in manifests
func WithVectorizerFile(name string) LoaderOption {
	return func(l *Loader) { l.vectorizerFile = name }
}

// WithClassifierFile overrides the classifier file named in manifests
func WithClassifierFile(name string) LoaderOption {
	return func(l *Loader) { l.classifierFile = name }
}

// NewLoader creates a new artifact loader
func NewLoader(store Store, logger *zap.Logger, opts ...LoaderOption) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Loader{store: store, logger: logger}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// StoreName returns the name of the backing store
func (l *Loader) StoreName() string {
	return l.store.Name()
}

// Resolve maps "latest" (or an empty selector) to the highest published version
func (l *Loader) Resolve(ctx context.Context, modelName, version string) (string, error) {
	if version != "" && version != model.LatestVersion {
		return version, nil
	}
	versions, err := l.store.Versions(ctx, modelName)
	if err != nil {
		return "", err
	}
	latest, ok := newVersionIndex(versions).Latest()
	if !ok {
		return "", fmt.Errorf("%w: model %s has no versions", model.ErrArtifactNotFound, modelName)
	}
	return latest, nil
}

// Load fetches, verifies and decodes one model version
func (l *Loader) Load(ctx context.Context, modelName, version string) (*model.Artifact, error) {
	start := time.Now()

	resolved, err := l.Resolve(ctx, modelName, version)
	if err != nil {
		return nil, err
	}

	raw, err := l.store.Fetch(ctx, modelName, resolved, ManifestFile)
	if err != nil {
		return nil, err
	}
	manifest, err := ParseManifest(raw)
	if err != nil {
		return nil, err
	}
	if manifest.Name != "" && manifest.Name != modelName {
		return nil, fmt.Errorf("%w: manifest names model %q, expected %q",
			model.ErrArtifactUnreadable, manifest.Name, modelName)
	}
	if manifest.Version != "" && manifest.Version != resolved {
		return nil, fmt.Errorf("%w: manifest names version %q, expected %q",
			model.ErrArtifactUnreadable, manifest.Version, resolved)
	}

	vectorizerFile := manifest.Vectorizer
	if l.vectorizerFile != "" {
		vectorizerFile = l.vectorizerFile
	}
	classifierFile := manifest.Classifier
	if l.classifierFile != "" {
		classifierFile = l.classifierFile
	}

	var (
		transformer *model.Transformer
		classifier  *model.Classifier
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var params model.TransformerParams
		if err := l.fetchJSON(gctx, manifest, modelName, resolved, vectorizerFile, &params); err != nil {
			return err
		}
		t, err := model.NewTransformer(params)
		if err != nil {
			return err
		}
		transformer = t
		return nil
	})
	g.Go(func() error {
		var params model.ClassifierParams
		if err := l.fetchJSON(gctx, manifest, modelName, resolved, classifierFile, &params); err != nil {
			return err
		}
		c, err := model.NewClassifier(params)
		if err != nil {
			return err
		}
		classifier = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if manifest.VocabularySize > 0 && manifest.VocabularySize != transformer.Dim() {
		return nil, fmt.Errorf("%w: manifest declares %d features, vectorizer has %d",
			model.ErrDimensionMismatch, manifest.VocabularySize, transformer.Dim())
	}

	artifact, err := model.NewArtifact(modelName, resolved, transformer, classifier)
	if err != nil {
		return nil, err
	}

	l.logger.Info("Loaded model artifact",
		zap.String("store", l.store.Name()),
		zap.String("model", modelName),
		zap.String("requested_version", version),
		zap.String("version", resolved),
		zap.Int("vocabulary_size", artifact.VocabularySize()),
		zap.Duration("duration", time.Since(start)),
	)
	return artifact, nil
}

func (l *Loader) fetchJSON(ctx context.Context, manifest *Manifest, modelName, version, file string, out any) error {
	data, err := l.store.Fetch(ctx, modelName, version, file)
	if err != nil {
		return err
	}
	if err := manifest.Verify(file, data); err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", model.ErrArtifactUnreadable, file, err)
	}
	return nil
}
