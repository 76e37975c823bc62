package utils

import (
	"fmt"
	"sort"

	"golang.org/x/exp/constraints"
)

// MaxAbsDiff returns max_i |a[i] - b[i]|, or NaN if any difference is NaN.
// Panics if a and b do not have the same length.
func MaxAbsDiff[T constraints.Float](a, b []T) (max T) {

	if len(a) != len(b) {
		panic(fmt.Sprintf("cannot MaxAbsDiff: len(a)=%d != len(b)=%d", len(a), len(b)))
	}

	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		if d != d {
			return d
		}
		if d > max {
			max = d
		}
	}

	return
}

// Apply returns a new slice whose i-th element is f(s[i]).
func Apply[T, U any](s []T, f func(T) U) (r []U) {
	r = make([]U, len(s))
	for i := range s {
		r[i] = f(s[i])
	}
	return
}

// GetKeys returns the keys of the input map.
// Order is not guaranteed.
func GetKeys[K constraints.Ordered, V any](m map[K]V) (keys []K) {

	keys = make([]K, len(m))

	var i int
	for key := range m {
		keys[i] = key
		i++
	}

	return
}

// GetSortedKeys returns the sorted keys of a map.
func GetSortedKeys[K constraints.Ordered, V any](m map[K]V) (keys []K) {
	keys = GetKeys(m)
	SortSlice(keys)
	return
}

// SortSlice sorts a slice in place.
func SortSlice[T constraints.Ordered](s []T) {
	sort.Slice(s, func(i, j int) bool {
		return s[i] < s[j]
	})
}
