package fmap

// Stats is a point-in-time copy of the container counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	TieBreaks uint64
}
