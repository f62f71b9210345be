package model

// FeatureVector is a sparse vector over a vocabulary's index space.
// Indices are strictly increasing and always lower than Dim.
type FeatureVector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// NNZ returns the number of non-zero entries
func (v FeatureVector) NNZ() int {
	return len(v.Indices)
}

// Dense expands the vector to a Dim-length slice
func (v FeatureVector) Dense() []float64 {
	out := make([]float64, v.Dim)
	for i, idx := range v.Indices {
		out[idx] = v.Values[i]
	}
	return out
}
