package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/model"
)

// Default file names inside a version
const (
	DefaultVectorizerFile = "vectorizer.json"
	DefaultClassifierFile = "classifier.json"
)

// Manifest describes one published model version
type Manifest struct {
	Name           string             `yaml:"name"`
	Version        string             `yaml:"version"`
	Vectorizer     string             `yaml:"vectorizer"`
	Classifier     string             `yaml:"classifier"`
	VocabularySize int                `yaml:"vocabulary_size"`
	Checksums      map[string]string  `yaml:"checksums,omitempty"`
	Metrics        map[string]float64 `yaml:"metrics,omitempty"`
	CreatedAt      time.Time          `yaml:"created_at,omitempty"`
}

// ParseManifest decodes a manifest and fills in default file names
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: parse manifest: %v", model.ErrArtifactUnreadable, err)
	}
	if m.Vectorizer == "" {
		m.Vectorizer = DefaultVectorizerFile
	}
	if m.Classifier == "" {
		m.Classifier = DefaultClassifierFile
	}
	return &m, nil
}

// Marshal encodes the manifest as YAML
func (m *Manifest) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}

// Verify checks data against the manifest checksum of file, if one is recorded
func (m *Manifest) Verify(file string, data []byte) error {
	want, ok := m.Checksums[file]
	if !ok || want == "" {
		return nil
	}
	got := Checksum(data)
	if !strings.EqualFold(strings.TrimPrefix(want, "sha256:"), got) {
		return fmt.Errorf("%w: checksum mismatch for %s", model.ErrArtifactUnreadable, file)
	}
	return nil
}

// Checksum returns the hex SHA-256 of data
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
