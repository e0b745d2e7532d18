package reltuple

// Project applies f to every tuple of batch and pushes the result into
// sink. Input order is preserved; the output is not necessarily sorted.
func Project[T, U any](batch Tuples[T], f func(T) U, sink func(U)) {
	for _, t := range batch.items {
		sink(f(t))
	}
}

// Intersect performs a two-pointer merge over two sorted batches, pushing
// x into sink exactly once whenever x appears in both a and b.
func Intersect[T any](a, b Tuples[T], sink func(T)) {
	cmp := a.cmp
	if cmp == nil {
		cmp = b.cmp
	}
	i, j := 0, 0
	for i < len(a.items) && j < len(b.items) {
		c := cmp(a.items[i], b.items[j])
		switch {
		case c < 0:
			i++
		case c > 0:
			j++
		default:
			sink(a.items[i])
			i++
			j++
		}
	}
}

// Diff pushes x into sink exactly once for every x in a that is not
// contained in any batch of excluders (excluders are treated as a set
// union).
func Diff[T any](a Tuples[T], excluders []Tuples[T], sink func(T)) {
	for _, t := range a.items {
		if !ContainsAny(t, excluders) {
			sink(t)
		}
	}
}

// Pair is the key-value tuple type of Join's inputs. Product has no
// default pairing; a caller that wants pairs from it passes a combiner
// that builds a Pair.
type Pair[L, R any] struct {
	Fst L
	Snd R
}

// Join performs a sort-merge equijoin. a and b must be sorted by their
// key component (keyCmp). For every pair of maximal equal-key runs, g is
// called once per pair in the Cartesian product of the two runs' values.
func Join[K, L, R any](a Tuples[Pair[K, L]], b Tuples[Pair[K, R]], keyCmp func(K, K) int, g func(K, L, R)) {
	ai, bi := a.items, b.items
	i, j := 0, 0
	for i < len(ai) && j < len(bi) {
		c := keyCmp(ai[i].Fst, bi[j].Fst)
		switch {
		case c < 0:
			i++
		case c > 0:
			j++
		default:
			k := ai[i].Fst
			iEnd := i
			for iEnd < len(ai) && keyCmp(ai[iEnd].Fst, k) == 0 {
				iEnd++
			}
			jEnd := j
			for jEnd < len(bi) && keyCmp(bi[jEnd].Fst, k) == 0 {
				jEnd++
			}
			for x := i; x < iEnd; x++ {
				for y := j; y < jEnd; y++ {
					g(k, ai[x].Snd, bi[y].Snd)
				}
			}
			i, j = iEnd, jEnd
		}
	}
}
