package usecase

import "time"

// MetricsRecorder receives prediction and reload observations
type MetricsRecorder interface {
	ObservePrediction(sentiment string, d time.Duration)
	ObservePredictionError(kind string)
	ObserveReload(success bool)
	SetModelInfo(modelName, version string)
}

type nopRecorder struct{}

func (nopRecorder) ObservePrediction(string, time.Duration) {}
func (nopRecorder) ObservePredictionError(string)           {}
func (nopRecorder) ObserveReload(bool)                      {}
func (nopRecorder) SetModelInfo(string, string)             {}
