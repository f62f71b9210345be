package entity

import (
	"time"

	"github.com/google/uuid"
)

// Prediction is an audit record of one served prediction
type Prediction struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	RequestID     string    `json:"request_id" gorm:"type:varchar(64);index"`
	Review        string    `json:"review" gorm:"type:text;not null"`
	Sentiment     string    `json:"sentiment" gorm:"type:varchar(16);not null;index"`
	Probability   float64   `json:"probability"`
	ModelName     string    `json:"model_name" gorm:"type:varchar(128);not null"`
	ModelVersion  string    `json:"model_version" gorm:"type:varchar(64);not null"`
	LatencyMicros int64     `json:"latency_us" gorm:"default:0"`

	// Movie review metadata, set only for submitted reviews
	MovieID    string `json:"movie_id,omitempty" gorm:"type:varchar(64);index"`
	MovieTitle string `json:"movie_title,omitempty" gorm:"type:varchar(256)"`
	Rating     int    `json:"rating,omitempty" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName returns the table name for GORM
func (Prediction) TableName() string {
	return "predictions"
}

// NewPrediction creates a new Prediction record
func NewPrediction(requestID, review, sentiment, modelName, modelVersion string) *Prediction {
	return &Prediction{
		ID:           uuid.New(),
		RequestID:    requestID,
		Review:       review,
		Sentiment:    sentiment,
		ModelName:    modelName,
		ModelVersion: modelVersion,
	}
}

// SetResult sets the scoring details of the prediction
func (p *Prediction) SetResult(probability float64, latency time.Duration) {
	p.Probability = probability
	p.LatencyMicros = latency.Microseconds()
}

// SetMovie attaches movie review metadata to the prediction
func (p *Prediction) SetMovie(movieID, title string, rating int) {
	p.MovieID = movieID
	p.MovieTitle = title
	p.Rating = rating
}

// IsReview returns true if the prediction came from a movie review submission
func (p *Prediction) IsReview() bool {
	return p.MovieID != ""
}

// IsPositive returns true if the prediction was Positive
func (p *Prediction) IsPositive() bool {
	return p.Sentiment == "Positive"
}
