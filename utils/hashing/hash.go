package hashing

import (
	"encoding/binary"
	"hash/crc32"
)

// EntryDigest hashes one key-value pair. The key is length-prefixed so that
// ("ab", "c") and ("a", "bc") produce different digests.
func EntryDigest(key string, value string) uint32 {
	buffer := make([]byte, 4+len(key)+len(value))
	binary.BigEndian.PutUint32(buffer[0:4], uint32(len(key)))
	copy(buffer[4:], key)
	copy(buffer[4+len(key):], value)
	return crc32.ChecksumIEEE(buffer)
}

// Combine folds a digest into an accumulator. The fold is commutative, so the
// result does not depend on the order entries are visited in.
func Combine(acc uint32, digest uint32) uint32 {
	return acc ^ digest
}

// MixCapacity binds an accumulated entry digest to a capacity, so containers
// holding the same entries under different capacities hash differently.
func MixCapacity(acc uint32, capacity int) uint32 {
	buffer := make([]byte, 12)
	binary.BigEndian.PutUint32(buffer[0:4], acc)
	binary.BigEndian.PutUint64(buffer[4:12], uint64(capacity))
	return crc32.ChecksumIEEE(buffer)
}
