package collector

// PathMap maps normalized file paths to the records discovered for
// them. Keys iterate in first-insertion order and records keep their
// discovery order, so output built from a PathMap is deterministic.
//
// The zero value is an empty map ready to use. A nil *PathMap reads as
// empty.
type PathMap[T any] struct {
	keys  []string
	items map[string][]T
}

// NewPathMap returns an empty PathMap.
func NewPathMap[T any]() *PathMap[T] {
	return &PathMap[T]{items: make(map[string][]T)}
}

// Append adds v to the records of path.
func (m *PathMap[T]) Append(path string, v T) {
	if m.items == nil {
		m.items = make(map[string][]T)
	}
	if _, ok := m.items[path]; !ok {
		m.keys = append(m.keys, path)
	}
	m.items[path] = append(m.items[path], v)
}

// Get returns the records of path in discovery order.
func (m *PathMap[T]) Get(path string) []T {
	if m == nil {
		return nil
	}
	return m.items[path]
}

// Keys returns the paths in first-insertion order.
func (m *PathMap[T]) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Len returns the number of distinct paths.
func (m *PathMap[T]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}
