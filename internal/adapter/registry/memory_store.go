package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/model"
)

// MemoryStore keeps artifacts in process memory. It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	models map[string]map[string]map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{models: make(map[string]map[string]map[string][]byte)}
}

func (s *MemoryStore) Name() string { return "memory" }

// Put stores one file of a model version, replacing any previous content
func (s *MemoryStore) Put(modelName, version, file string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	versions, ok := s.models[modelName]
	if !ok {
		versions = make(map[string]map[string][]byte)
		s.models[modelName] = versions
	}
	files, ok := versions[version]
	if !ok {
		files = make(map[string][]byte)
		versions[version] = files
	}
	files[file] = append([]byte(nil), data...)
}

// Delete removes a model version
func (s *MemoryStore) Delete(modelName, version string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if versions, ok := s.models[modelName]; ok {
		delete(versions, version)
	}
}

func (s *MemoryStore) Versions(ctx context.Context, modelName string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	versions, ok := s.models[modelName]
	if !ok {
		return nil, fmt.Errorf("%w: model %s", model.ErrArtifactNotFound, modelName)
	}
	out := make([]string, 0, len(versions))
	for v := range versions {
		out = append(out, v)
	}
	return out, nil
}

func (s *MemoryStore) Fetch(ctx context.Context, modelName, version, file string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.models[modelName][version][file]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s/%s", model.ErrArtifactNotFound, modelName, version, file)
	}
	return append([]byte(nil), data...), nil
}
