package model

import (
	"fmt"
	"time"
)

// LatestVersion selects the highest version known to the registry
const LatestVersion = "latest"

// Artifact is a matched vectorizer/classifier pair loaded from one registry version.
// It is never mutated after NewArtifact returns.
type Artifact struct {
	ModelName   string
	Version     string
	Transformer *Transformer
	Classifier  *Classifier
	LoadedAt    time.Time
}

// Prediction is the outcome of running an artifact on one text
type Prediction struct {
	Label       Label
	Decision    float64
	Probability float64
}

// NewArtifact pairs a transformer with a classifier, rejecting pairs that
// disagree on dimensionality.
func NewArtifact(modelName, version string, t *Transformer, c *Classifier) (*Artifact, error) {
	if t == nil || c == nil {
		return nil, fmt.Errorf("%w: artifact %s/%s is incomplete", ErrArtifactUnreadable, modelName, version)
	}
	if t.Dim() != c.Dim() {
		return nil, fmt.Errorf("%w: artifact %s/%s vectorizer has %d features, classifier has %d",
			ErrDimensionMismatch, modelName, version, t.Dim(), c.Dim())
	}
	return &Artifact{
		ModelName:   modelName,
		Version:     version,
		Transformer: t,
		Classifier:  c,
		LoadedAt:    time.Now().UTC(),
	}, nil
}

// Predict transforms text and classifies the resulting vector
func (a *Artifact) Predict(text string) (Prediction, error) {
	vec := a.Transformer.Transform(text)
	score, err := a.Classifier.Decision(vec)
	if err != nil {
		return Prediction{}, err
	}
	prob, err := a.Classifier.Probability(vec)
	if err != nil {
		return Prediction{}, err
	}
	return Prediction{
		Label:       a.Classifier.label(score),
		Decision:    score,
		Probability: prob,
	}, nil
}

// VocabularySize returns the number of features of the artifact
func (a *Artifact) VocabularySize() int {
	return a.Transformer.Dim()
}
