package fmap

// ForgettingMap holds at most MaxAssociations key-value associations.
// When a new association would exceed that limit, the least retrieved
// association is forgotten to make room; ties between equally-least-retrieved
// associations are broken by forgetting the one inserted last.
type ForgettingMap[K comparable, V any] interface {
	Add(key K, value V) (bool, error)
	Find(key K) (V, bool)
	Capacity() int
	Size() int
	Range(onEach func(key K, value V) bool)
	Stats() Stats
	Equal(other ForgettingMap[K, V]) bool
	Hash() uint32
}

type Options struct {
	MaxAssociations int
}
