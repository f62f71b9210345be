package model

import (
	"fmt"
	"math"
)

// ClassifierParams is the serialized form of a fitted linear classifier.
// Classes lists the class values in decision order; the second class wins
// when the decision function is positive.
type ClassifierParams struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
	Classes   []int     `json:"classes,omitempty"`
}

// Classifier applies a linear decision function to feature vectors.
// It is immutable after construction and safe for concurrent use.
type Classifier struct {
	coef      []float64
	intercept float64
	// positiveAbove is true when a positive decision selects the Positive label
	positiveAbove bool
}

// NewClassifier validates params and builds a Classifier
func NewClassifier(p ClassifierParams) (*Classifier, error) {
	if len(p.Coef) == 0 {
		return nil, fmt.Errorf("%w: classifier has no coefficients", ErrArtifactUnreadable)
	}
	for i, w := range p.Coef {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: coefficient %d is not finite", ErrArtifactUnreadable, i)
		}
	}
	if math.IsNaN(p.Intercept) || math.IsInf(p.Intercept, 0) {
		return nil, fmt.Errorf("%w: intercept is not finite", ErrArtifactUnreadable)
	}

	classes := p.Classes
	if classes == nil {
		classes = []int{0, 1}
	}
	if len(classes) != 2 || !isBinaryClasses(classes) {
		return nil, fmt.Errorf("%w: expected binary classes {0, 1}, got %v", ErrArtifactUnreadable, classes)
	}

	return &Classifier{
		coef:          append([]float64(nil), p.Coef...),
		intercept:     p.Intercept,
		positiveAbove: classes[1] == 1,
	}, nil
}

func isBinaryClasses(classes []int) bool {
	return (classes[0] == 0 && classes[1] == 1) || (classes[0] == 1 && classes[1] == 0)
}

// Dim returns the number of features the classifier was fitted on
func (c *Classifier) Dim() int {
	return len(c.coef)
}

// Decision returns intercept + coef·vec
func (c *Classifier) Decision(vec FeatureVector) (float64, error) {
	if vec.Dim != len(c.coef) {
		return 0, fmt.Errorf("%w: vector has %d features, classifier expects %d",
			ErrDimensionMismatch, vec.Dim, len(c.coef))
	}
	score := c.intercept
	for i, idx := range vec.Indices {
		score += c.coef[idx] * vec.Values[i]
	}
	return score, nil
}

// Predict thresholds the decision function at zero
func (c *Classifier) Predict(vec FeatureVector) (Label, error) {
	score, err := c.Decision(vec)
	if err != nil {
		return "", err
	}
	return c.label(score), nil
}

// Probability returns the logistic probability of the Positive label
func (c *Classifier) Probability(vec FeatureVector) (float64, error) {
	score, err := c.Decision(vec)
	if err != nil {
		return 0, err
	}
	if !c.positiveAbove {
		score = -score
	}
	return 1 / (1 + math.Exp(-score)), nil
}

func (c *Classifier) label(score float64) Label {
	if (score > 0) == c.positiveAbove {
		return LabelPositive
	}
	return LabelNegative
}
