package model

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// DefaultVocabularySize is the max_features the vectorizers are fitted with
const DefaultVocabularySize = 5000

// Norm names accepted in TransformerParams
const (
	NormL2   = "l2"
	NormNone = "none"
)

// tokenPattern matches runs of two or more word characters
var tokenPattern = regexp.MustCompile(`[\pL\pN_]{2,}`)

// TransformerParams is the serialized form of a fitted TF-IDF vectorizer
type TransformerParams struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
	StopWords  []string       `json:"stop_words,omitempty"`
	NGramRange [2]int         `json:"ngram_range,omitempty"`
	Lowercase  *bool          `json:"lowercase,omitempty"`
	Norm       string         `json:"norm,omitempty"`
}

// Vocabulary maps terms to feature indices and carries the fitted IDF weights
type Vocabulary struct {
	terms map[string]int
	idf   []float64
}

// Size returns the number of features
func (v *Vocabulary) Size() int {
	return len(v.idf)
}

// Index returns the feature index of term
func (v *Vocabulary) Index(term string) (int, bool) {
	idx, ok := v.terms[term]
	return idx, ok
}

// IDF returns the inverse document frequency weight of a feature index
func (v *Vocabulary) IDF(idx int) float64 {
	return v.idf[idx]
}

// Transformer converts raw text into TF-IDF feature vectors.
// It is immutable after construction and safe for concurrent use.
type Transformer struct {
	vocab     *Vocabulary
	stopWords map[string]struct{}
	minN      int
	maxN      int
	lowercase bool
	norm      string
}

// NewTransformer validates params and builds a Transformer
func NewTransformer(p TransformerParams) (*Transformer, error) {
	if len(p.IDF) == 0 {
		return nil, fmt.Errorf("%w: vectorizer has no features", ErrArtifactUnreadable)
	}
	if len(p.Vocabulary) != len(p.IDF) {
		return nil, fmt.Errorf("%w: vocabulary has %d terms but %d idf weights",
			ErrArtifactUnreadable, len(p.Vocabulary), len(p.IDF))
	}

	seen := make([]bool, len(p.IDF))
	terms := make(map[string]int, len(p.Vocabulary))
	for term, idx := range p.Vocabulary {
		if idx < 0 || idx >= len(p.IDF) {
			return nil, fmt.Errorf("%w: term %q has index %d out of range", ErrArtifactUnreadable, term, idx)
		}
		if seen[idx] {
			return nil, fmt.Errorf("%w: index %d assigned twice", ErrArtifactUnreadable, idx)
		}
		seen[idx] = true
		terms[term] = idx
	}
	for i, w := range p.IDF {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: idf weight %d is not finite", ErrArtifactUnreadable, i)
		}
	}

	minN, maxN := p.NGramRange[0], p.NGramRange[1]
	if minN == 0 && maxN == 0 {
		minN, maxN = 1, 2
	}
	if minN < 1 || maxN < minN {
		return nil, fmt.Errorf("%w: invalid ngram range [%d, %d]", ErrArtifactUnreadable, minN, maxN)
	}

	norm := p.Norm
	if norm == "" {
		norm = NormL2
	}
	if norm != NormL2 && norm != NormNone {
		return nil, fmt.Errorf("%w: unsupported norm %q", ErrArtifactUnreadable, norm)
	}

	stopWords := p.StopWords
	if stopWords == nil {
		stopWords = englishStopWords
	}

	lowercase := true
	if p.Lowercase != nil {
		lowercase = *p.Lowercase
	}

	return &Transformer{
		vocab:     &Vocabulary{terms: terms, idf: append([]float64(nil), p.IDF...)},
		stopWords: stopWordSet(stopWords),
		minN:      minN,
		maxN:      maxN,
		lowercase: lowercase,
		norm:      norm,
	}, nil
}

// Vocabulary returns the fitted vocabulary
func (t *Transformer) Vocabulary() *Vocabulary {
	return t.vocab
}

// Dim returns the dimensionality of every vector produced by Transform
func (t *Transformer) Dim() int {
	return t.vocab.Size()
}

// Tokenize lowercases text, splits it into tokens and drops stop words
func (t *Transformer) Tokenize(text string) []string {
	if t.lowercase {
		text = strings.ToLower(text)
	}
	raw := tokenPattern.FindAllString(text, -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if _, stop := t.stopWords[tok]; !stop {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Transform computes the TF-IDF vector of text. Terms outside the vocabulary
// are ignored; text without known terms yields the zero vector.
func (t *Transformer) Transform(text string) FeatureVector {
	tokens := t.Tokenize(text)

	counts := make(map[int]float64)
	for n := t.minN; n <= t.maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			var term string
			if n == 1 {
				term = tokens[i]
			} else {
				term = strings.Join(tokens[i:i+n], " ")
			}
			if idx, ok := t.vocab.terms[term]; ok {
				counts[idx]++
			}
		}
	}

	vec := FeatureVector{
		Dim:     t.vocab.Size(),
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for idx := range counts {
		vec.Indices = append(vec.Indices, idx)
	}
	sort.Ints(vec.Indices)

	var sumSq float64
	for _, idx := range vec.Indices {
		w := counts[idx] * t.vocab.idf[idx]
		vec.Values = append(vec.Values, w)
		sumSq += w * w
	}

	if t.norm == NormL2 && sumSq > 0 {
		norm := math.Sqrt(sumSq)
		for i := range vec.Values {
			vec.Values[i] /= norm
		}
	}
	return vec
}
