package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Remove deletes the first occurrence of item, preserving order.
// It reports whether the item was found.
func Remove[T comparable](slice []T, item T) ([]T, bool) {
	i := FindIndex(slice, item)
	if i < 0 {
		return slice, false
	}
	return append(slice[:i], slice[i+1:]...), true
}
