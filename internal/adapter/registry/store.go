package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/model"
)

// ManifestFile is the name of the manifest stored with every version
const ManifestFile = "manifest.yaml"

// Store is a versioned artifact registry backend.
// Implementations return model.ErrArtifactNotFound for unknown models, versions or files.
type Store interface {
	// Name identifies the backend in logs and health output
	Name() string

	// Versions lists the published versions of a model
	Versions(ctx context.Context, modelName string) ([]string, error)

	// Fetch returns the raw bytes of one file of a model version
	Fetch(ctx context.Context, modelName, version, file string) ([]byte, error)
}

// validateName rejects identifiers that could escape a store's namespace
func validateName(kind, name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%w: invalid %s %q", model.ErrArtifactNotFound, kind, name)
	}
	return nil
}

func validateRef(modelName, version, file string) error {
	if err := validateName("model name", modelName); err != nil {
		return err
	}
	if err := validateName("version", version); err != nil {
		return err
	}
	return validateName("file", file)
}
