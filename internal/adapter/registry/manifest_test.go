package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/model"
)

func TestParseManifest(t *testing.T) {
	t.Run("fills default file names", func(t *testing.T) {
		m, err := ParseManifest([]byte("name: SentimentAnalysisModel\nversion: \"3\"\nvocabulary_size: 5000\n"))

		require.NoError(t, err)
		assert.Equal(t, testModel, m.Name)
		assert.Equal(t, "3", m.Version)
		assert.Equal(t, 5000, m.VocabularySize)
		assert.Equal(t, DefaultVectorizerFile, m.Vectorizer)
		assert.Equal(t, DefaultClassifierFile, m.Classifier)
	})

	t.Run("keeps explicit file names and metrics", func(t *testing.T) {
		data := []byte(`
name: SentimentAnalysisModel
version: "4"
vectorizer: tfidf_vectorizer_v4.json
classifier: logreg_v4.json
metrics:
  accuracy: 0.88
`)
		m, err := ParseManifest(data)

		require.NoError(t, err)
		assert.Equal(t, "tfidf_vectorizer_v4.json", m.Vectorizer)
		assert.Equal(t, "logreg_v4.json", m.Classifier)
		assert.InDelta(t, 0.88, m.Metrics["accuracy"], 1e-9)
	})

	t.Run("invalid yaml is unreadable", func(t *testing.T) {
		m, err := ParseManifest([]byte("name: [unterminated"))

		assert.ErrorIs(t, err, model.ErrArtifactUnreadable)
		assert.Nil(t, m)
	})
}

func TestManifest_Verify(t *testing.T) {
	data := []byte(`{"coef":[1]}`)
	m := &Manifest{Checksums: map[string]string{
		"classifier.json": Checksum(data),
		"prefixed.json":   "sha256:" + Checksum(data),
	}}

	assert.NoError(t, m.Verify("classifier.json", data))
	assert.NoError(t, m.Verify("prefixed.json", data))
	assert.NoError(t, m.Verify("unlisted.json", []byte("anything")))
	assert.ErrorIs(t, m.Verify("classifier.json", []byte(`{"coef":[2]}`)), model.ErrArtifactUnreadable)
}

func TestBundle_Encode(t *testing.T) {
	files, err := testBundle("1").Encode()
	require.NoError(t, err)

	require.Contains(t, files, ManifestFile)
	require.Contains(t, files, DefaultVectorizerFile)
	require.Contains(t, files, DefaultClassifierFile)

	m, err := ParseManifest(files[ManifestFile])
	require.NoError(t, err)
	assert.Equal(t, 4, m.VocabularySize)
	assert.NoError(t, m.Verify(DefaultVectorizerFile, files[DefaultVectorizerFile]))
	assert.NoError(t, m.Verify(DefaultClassifierFile, files[DefaultClassifierFile]))
}
