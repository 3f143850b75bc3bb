package neighbors

import "fmt"

// FromMap converts a sparse index → neighbors association into a dense
// Mapping over n objects. Keys absent from src get an empty list.
// Returns ErrNeighborIndex if a key or a neighbor lies outside [0, n).
func FromMap(src map[int][]int, n int) (Mapping, error) {
	m := make(Mapping, n)
	for i := range m {
		m[i] = []int{}
	}
	for k, nbrs := range src {
		if k < 0 || k >= n {
			return nil, fmt.Errorf("%w: key %d (n=%d)", ErrNeighborIndex, k, n)
		}
		m[k] = append([]int(nil), nbrs...)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks that every neighbor index lies within [0, len(m)).
func (m Mapping) Validate() error {
	n := len(m)
	for i, nbrs := range m {
		for _, j := range nbrs {
			if j < 0 || j >= n {
				return fmt.Errorf("%w: object %d lists %d (n=%d)", ErrNeighborIndex, i, j, n)
			}
		}
	}
	return nil
}

// Edges returns the total number of (object, neighbor) entries.
func (m Mapping) Edges() int {
	total := 0
	for _, nbrs := range m {
		total += len(nbrs)
	}
	return total
}

// Symmetric reports whether j ∈ m[i] implies i ∈ m[j] for every pair.
// m must be valid.
func (m Mapping) Symmetric() bool {
	sets := make([]map[int]struct{}, len(m))
	for i, nbrs := range m {
		sets[i] = make(map[int]struct{}, len(nbrs))
		for _, j := range nbrs {
			sets[i][j] = struct{}{}
		}
	}
	for i, nbrs := range m {
		for _, j := range nbrs {
			if _, ok := sets[j][i]; !ok {
				return false
			}
		}
	}
	return true
}

// Normalize returns a new Mapping in which every neighbor list is
// deduplicated (first occurrence wins) and, when ignoreSelf is set, object i
// no longer lists itself. The input is not modified.
//
// Normalize is idempotent. Complexity: O(total list length).
func Normalize(m Mapping, ignoreSelf bool) Mapping {
	out := make(Mapping, len(m))
	seen := make(map[int]struct{})
	for i, nbrs := range m {
		clear(seen)
		list := make([]int, 0, len(nbrs))
		for _, j := range nbrs {
			if ignoreSelf && j == i {
				continue
			}
			if _, dup := seen[j]; dup {
				continue
			}
			seen[j] = struct{}{}
			list = append(list, j)
		}
		out[i] = list
	}
	return out
}

// Relabel replaces every neighbor index with labels[index], keeping the
// per-object order of m. len(labels) must equal len(m).
func Relabel[L any](m Mapping, labels []L) ([][]L, error) {
	if len(labels) != len(m) {
		return nil, fmt.Errorf("%w: %d labels for %d objects", ErrLabelLength, len(labels), len(m))
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	out := make([][]L, len(m))
	for i, nbrs := range m {
		row := make([]L, len(nbrs))
		for k, j := range nbrs {
			row[k] = labels[j]
		}
		out[i] = row
	}
	return out, nil
}
