package registry

import (
	"strconv"

	"github.com/google/btree"
)

// versionIndex orders version identifiers so "latest" resolves to the highest one.
// Numeric identifiers compare numerically and rank above non-numeric ones,
// which compare lexically.
type versionIndex struct {
	tree *btree.BTreeG[string]
}

func newVersionIndex(versions []string) *versionIndex {
	tree := btree.NewG[string](8, versionLess)
	for _, v := range versions {
		if v != "" {
			tree.ReplaceOrInsert(v)
		}
	}
	return &versionIndex{tree: tree}
}

// Latest returns the highest version
func (i *versionIndex) Latest() (string, bool) {
	return i.tree.Max()
}

// Len returns the number of distinct versions
func (i *versionIndex) Len() int {
	return i.tree.Len()
}

// Sorted returns all versions in ascending order
func (i *versionIndex) Sorted() []string {
	out := make([]string, 0, i.tree.Len())
	i.tree.Ascend(func(v string) bool {
		out = append(out, v)
		return true
	})
	return out
}

func versionLess(a, b string) bool {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		if na != nb {
			return na < nb
		}
		return a < b
	case errA == nil:
		return false
	case errB == nil:
		return true
	default:
		return a < b
	}
}
