package shared

// Identified is implemented by records kept in a flat list and addressed by id
type Identified interface {
	Identity() string
}

// IndexOf returns the position of the record with id, or -1
func IndexOf[T Identified](items []T, id string) int {
	for i, item := range items {
		if item.Identity() == id {
			return i
		}
	}
	return -1
}

// Prepend returns a new slice with item placed first
func Prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

// RemoveByID returns a new slice without the record with id.
// The second result is false when no record matched.
func RemoveByID[T Identified](items []T, id string) ([]T, bool) {
	i := IndexOf(items, id)
	if i < 0 {
		return items, false
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...), true
}
