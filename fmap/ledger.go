package fmap

// ledger tracks how often each resident key has been retrieved.
// Nodes form a circular doubly-linked list in insertion order; the order is
// fixed when a key is appended and is never changed by retrievals, because
// the tie-break on eviction depends on it.
type ledger[K comparable] struct {
	nodes    map[K]*ledgerNode[K]
	listHead *ledgerNode[K]
	length   int
}

type ledgerNode[K comparable] struct {
	key   K
	count uint64
	prev  *ledgerNode[K]
	next  *ledgerNode[K]
}

func newLedger[K comparable](size int) *ledger[K] {
	return &ledger[K]{
		nodes:    make(map[K]*ledgerNode[K], size),
		listHead: nil,
	}
}

func (l *ledger[K]) Size() int {
	return l.length
}

// Append records a new key with a retrieval count of zero at the end of the
// insertion order.
func (l *ledger[K]) Append(key K) {
	node := &ledgerNode[K]{
		key: key,
	}

	node.prev = node
	node.next = node

	l.nodes[key] = node

	if l.listHead != nil {
		tail := l.listHead.prev
		tail.next = node
		node.prev = tail
		node.next = l.listHead
		l.listHead.prev = node
	} else {
		l.listHead = node
	}

	l.length++
}

func (l *ledger[K]) Increment(key K) bool {
	node, ok := l.nodes[key]
	if !ok {
		return false
	}
	node.count++
	return true
}

func (l *ledger[K]) Remove(key K) bool {
	node, ok := l.nodes[key]
	if !ok {
		return false
	}

	delete(l.nodes, key)

	node.prev.next = node.next
	node.next.prev = node.prev

	if l.listHead == node {
		l.listHead = node.next
	}

	if l.length == 1 {
		l.listHead = nil
	}

	l.length--
	return true
}

// LeastRetrieved walks the ring in insertion order and picks the key to
// forget next: the lowest retrieval count, and among equal counts the key
// inserted last. The tied result reports whether more than one key shared
// the minimum.
func (l *ledger[K]) LeastRetrieved() (key K, tied bool, ok bool) {
	if l.listHead == nil {
		var zero K
		return zero, false, false
	}

	minNode := l.listHead
	matches := 1

	for node := l.listHead.next; node != l.listHead; node = node.next {
		if node.count < minNode.count {
			minNode = node
			matches = 1
		} else if node.count == minNode.count {
			minNode = node
			matches++
		}
	}

	return minNode.key, matches > 1, true
}
