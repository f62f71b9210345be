package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/model"
)

// FileStore reads artifacts from a directory tree laid out as <root>/<model>/<version>/<file>
type FileStore struct {
	root string
}

// NewFileStore creates a FileStore rooted at root
func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

func (s *FileStore) Name() string { return "file" }

func (s *FileStore) Versions(ctx context.Context, modelName string) ([]string, error) {
	if err := validateName("model name", modelName); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(s.root, modelName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: model %s", model.ErrArtifactNotFound, modelName)
		}
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}

	versions := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			versions = append(versions, e.Name())
		}
	}
	return versions, nil
}

func (s *FileStore) Fetch(ctx context.Context, modelName, version, file string) ([]byte, error) {
	if err := validateRef(modelName, version, file); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.root, modelName, version, file))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s/%s/%s", model.ErrArtifactNotFound, modelName, version, file)
		}
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	return data, nil
}
