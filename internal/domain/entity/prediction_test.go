package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewPrediction(t *testing.T) {
	p := NewPrediction("req-1", "great movie", "Positive", "SentimentAnalysisModel", "3")

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "req-1", p.RequestID)
	assert.Equal(t, "great movie", p.Review)
	assert.Equal(t, "Positive", p.Sentiment)
	assert.Equal(t, "SentimentAnalysisModel", p.ModelName)
	assert.Equal(t, "3", p.ModelVersion)
	assert.Equal(t, float64(0), p.Probability)
	assert.True(t, p.IsPositive())
}

func TestPrediction_SetResult(t *testing.T) {
	p := NewPrediction("req-2", "dull", "Negative", "m", "1")

	p.SetResult(0.12, 1500*time.Microsecond)

	assert.Equal(t, 0.12, p.Probability)
	assert.Equal(t, int64(1500), p.LatencyMicros)
	assert.False(t, p.IsPositive())
}

func TestPrediction_SetMovie(t *testing.T) {
	p := NewPrediction("req-3", "loved it", "Positive", "m", "1")
	assert.False(t, p.IsReview())

	p.SetMovie("tt0111161", "The Shawshank Redemption", 5)

	assert.Equal(t, "tt0111161", p.MovieID)
	assert.Equal(t, "The Shawshank Redemption", p.MovieTitle)
	assert.Equal(t, 5, p.Rating)
	assert.True(t, p.IsReview())
}

func TestPrediction_TableName(t *testing.T) {
	p := Prediction{}
	assert.Equal(t, "predictions", p.TableName())
}
