package registry

import (
	"encoding/json"
	"fmt"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/model"
)

// Bundle is the decoded form of one published model version
type Bundle struct {
	Manifest   Manifest
	Vectorizer model.TransformerParams
	Classifier model.ClassifierParams
}

// Encode serializes the bundle into the files of a version and records their
// checksums in the manifest.
func (b *Bundle) Encode() (map[string][]byte, error) {
	m := b.Manifest
	if m.Vectorizer == "" {
		m.Vectorizer = DefaultVectorizerFile
	}
	if m.Classifier == "" {
		m.Classifier = DefaultClassifierFile
	}
	if m.VocabularySize == 0 {
		m.VocabularySize = len(b.Vectorizer.IDF)
	}

	vectorizer, err := json.Marshal(b.Vectorizer)
	if err != nil {
		return nil, fmt.Errorf("failed to encode vectorizer: %w", err)
	}
	classifier, err := json.Marshal(b.Classifier)
	if err != nil {
		return nil, fmt.Errorf("failed to encode classifier: %w", err)
	}

	m.Checksums = map[string]string{
		m.Vectorizer: Checksum(vectorizer),
		m.Classifier: Checksum(classifier),
	}
	manifest, err := m.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}

	return map[string][]byte{
		ManifestFile: manifest,
		m.Vectorizer: vectorizer,
		m.Classifier: classifier,
	}, nil
}

// PutBundle encodes b and stores it under its manifest name and version
func (s *MemoryStore) PutBundle(b *Bundle) error {
	files, err := b.Encode()
	if err != nil {
		return err
	}
	for name, data := range files {
		s.Put(b.Manifest.Name, b.Manifest.Version, name, data)
	}
	return nil
}
