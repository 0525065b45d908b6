// Package lookup provides first-match linear scans over small slices.
package lookup

// First returns the first element for which match reports true.
func First[T any](items []T, match func(T) bool) (T, bool) {
	for _, item := range items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// FirstByKey returns the first element whose key equals want.
func FirstByKey[T any, K comparable](items []T, key func(T) K, want K) (T, bool) {
	return First(items, func(item T) bool {
		return key(item) == want
	})
}
