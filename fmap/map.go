package fmap

import (
	"fmt"
	"reflect"
	"sync"

	"forgetting-map/utils/hashing"

	"github.com/phuslu/log"
)

var ErrInvalidCapacity = fmt.Errorf("max associations must be at least 1")
var ErrNilAssociation = fmt.Errorf("key or value must not be nil")
var ErrLedgerOutOfSync = fmt.Errorf("retrieval ledger lost track of a full store")

type forgettingMap[K comparable, V any] struct {
	logger log.Logger
	option Options
	store  map[K]V
	ledger *ledger[K]
	stats  Stats
	lock   *sync.Mutex
}

// New creates a forgetting map holding at most option.MaxAssociations
// associations. The logger is only written to on fault paths; pass
// logging.CreateNopLogger() to silence it.
func New[K comparable, V any](logger log.Logger, option *Options) (ForgettingMap[K, V], error) {
	if option == nil || option.MaxAssociations < 1 {
		return nil, ErrInvalidCapacity
	}

	return &forgettingMap[K, V]{
		logger: logger,
		option: *option,
		store:  make(map[K]V, option.MaxAssociations),
		ledger: newLedger[K](option.MaxAssociations),
		lock:   &sync.Mutex{},
	}, nil
}

// Add inserts a new association. It reports false with a nil error when the
// key is already present; Add never updates in place. When the store is at
// capacity the least retrieved association is forgotten first, breaking ties
// towards the one inserted last.
func (fm *forgettingMap[K, V]) Add(key K, value V) (bool, error) {
	if isNil(key) || isNil(value) {
		return false, ErrNilAssociation
	}

	fm.lock.Lock()
	defer fm.lock.Unlock()

	if _, ok := fm.store[key]; ok {
		fm.logger.Debug().Msg("association already present")
		return false, nil
	}

	if len(fm.store) < fm.option.MaxAssociations {
		fm.insert(key, value)
		return true, nil
	}

	evicted, tied, ok := fm.ledger.LeastRetrieved()

	// unreachable while the store and ledger stay in sync
	if !ok {
		fm.logger.Error().Msg("store at capacity but retrieval ledger is empty")
		return false, ErrLedgerOutOfSync
	}

	if tied {
		fm.logger.Debug().Msg("multiple least retrieved associations, forgetting the newest")
		fm.stats.TieBreaks++
	}

	delete(fm.store, evicted)
	fm.ledger.Remove(evicted)
	fm.stats.Evictions++

	fm.insert(key, value)
	return true, nil
}

// Find returns the value associated with key and bumps its retrieval count.
// A miss returns the zero value and false without mutating anything.
func (fm *forgettingMap[K, V]) Find(key K) (V, bool) {
	fm.lock.Lock()
	defer fm.lock.Unlock()

	value, ok := fm.store[key]
	if !ok {
		fm.stats.Misses++
		var zero V
		return zero, false
	}

	fm.ledger.Increment(key)
	fm.stats.Hits++
	return value, true
}

// Capacity needs no lock since the configured maximum never changes.
func (fm *forgettingMap[K, V]) Capacity() int {
	return fm.option.MaxAssociations
}

func (fm *forgettingMap[K, V]) Size() int {
	fm.lock.Lock()
	defer fm.lock.Unlock()
	return len(fm.store)
}

// Range visits every association in insertion order. It iterates a snapshot
// taken under the lock, so the callback never sees live internals and
// retrieval counts are untouched.
func (fm *forgettingMap[K, V]) Range(onEach func(K, V) bool) {
	fm.lock.Lock()

	type association struct {
		key   K
		value V
	}

	entries := make([]association, 0, len(fm.store))
	node := fm.ledger.listHead
	for i := 0; i < fm.ledger.length; i++ {
		entries = append(entries, association{key: node.key, value: fm.store[node.key]})
		node = node.next
	}

	fm.lock.Unlock()

	for _, entry := range entries {
		if !onEach(entry.key, entry.value) {
			break
		}
	}
}

func (fm *forgettingMap[K, V]) Stats() Stats {
	fm.lock.Lock()
	defer fm.lock.Unlock()
	return fm.stats
}

// Equal reports whether both containers share the same capacity and the same
// current key-value pairs. Retrieval counts and insertion order are not part
// of the comparison. The other container is only observed through Capacity,
// Size and Range, so no counts are bumped on either side.
func (fm *forgettingMap[K, V]) Equal(other ForgettingMap[K, V]) bool {
	if other == nil {
		return false
	}

	if fm.Capacity() != other.Capacity() {
		return false
	}

	fm.lock.Lock()
	entries := make(map[K]V, len(fm.store))
	for key, value := range fm.store {
		entries[key] = value
	}
	fm.lock.Unlock()

	if len(entries) != other.Size() {
		return false
	}

	equal := true
	other.Range(func(key K, value V) bool {
		stored, ok := entries[key]
		if !ok || !reflect.DeepEqual(stored, value) {
			equal = false
			return false
		}
		return true
	})

	return equal
}

// Hash digests the capacity and the current association set. The per-entry
// digests are folded commutatively, so containers that compare Equal hash
// identically regardless of insertion order.
func (fm *forgettingMap[K, V]) Hash() uint32 {
	fm.lock.Lock()
	defer fm.lock.Unlock()

	var acc uint32
	for key, value := range fm.store {
		acc = hashing.Combine(acc, hashing.EntryDigest(fmt.Sprintf("%v", key), fmt.Sprintf("%v", value)))
	}

	return hashing.MixCapacity(acc, fm.option.MaxAssociations)
}

func (fm *forgettingMap[K, V]) insert(key K, value V) {
	fm.store[key] = value
	fm.ledger.Append(key)
}

// isNil catches nil interfaces and nil values of nilable kinds. Zero scalars
// like 0 and "" are legitimate keys and values.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
