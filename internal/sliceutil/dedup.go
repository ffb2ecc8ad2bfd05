package sliceutil

// DedupBy returns a new slice holding the first occurrence of every element of s,
// in the order they were first seen. Two elements are duplicates when equal(candidate, kept)
// reports true for some element already kept.
//
// Every candidate is compared against all survivors, so the cost is O(len(s) * survivors).
// No hashing or ordering is assumed: equal may be non-reflexive or non-transitive
// and the result still follows the rule above literally.
func DedupBy[T any](s []T, equal func(a, b T) bool) []T {
	out := make([]T, 0, len(s))
	for _, candidate := range s {
		dup := false
		for _, kept := range out {
			if equal(candidate, kept) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, candidate)
		}
	}
	return out
}
