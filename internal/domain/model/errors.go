package model

import "errors"

// Artifact and prediction errors
var (
	ErrArtifactNotFound   = errors.New("artifact not found")
	ErrArtifactUnreadable = errors.New("artifact unreadable")
	ErrDimensionMismatch  = errors.New("feature dimension mismatch")
)
