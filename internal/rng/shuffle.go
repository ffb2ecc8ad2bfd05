package rng

// Shuffle permutes s in place, uniformly at random (Fisher-Yates).
// From the last index down to 1, position i is swapped with a uniform index in [0, i].
// A nil src falls back to Default(). The caller owns s; no copy is made and
// no locking is done.
func Shuffle[T any](s []T, src Source) {
	if src == nil {
		src = Default()
	}
	for i := len(s) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
