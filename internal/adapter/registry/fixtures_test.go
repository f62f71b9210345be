package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/model"
)

const testModel = "SentimentAnalysisModel"

func testBundle(version string) *Bundle {
	return &Bundle{
		Manifest: Manifest{Name: testModel, Version: version},
		Vectorizer: model.TransformerParams{
			Vocabulary: map[string]int{"fantastic": 0, "great": 1, "terrible": 2, "boring": 3},
			IDF:        []float64{1.5, 1.2, 1.5, 1.4},
		},
		Classifier: model.ClassifierParams{
			Coef:      []float64{2.0, 1.5, -2.0, -1.5},
			Intercept: -0.1,
		},
	}
}

func memoryStoreWith(t *testing.T, bundles ...*Bundle) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	for _, b := range bundles {
		require.NoError(t, store.PutBundle(b))
	}
	return store
}

func writeBundle(t *testing.T, root string, b *Bundle) {
	t.Helper()
	files, err := b.Encode()
	require.NoError(t, err)

	dir := filepath.Join(root, b.Manifest.Name, b.Manifest.Version)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
	}
}

func mustFetch(t *testing.T, s Store, version, file string) []byte {
	t.Helper()
	data, err := s.Fetch(context.Background(), testModel, version, file)
	require.NoError(t, err)
	return data
}
