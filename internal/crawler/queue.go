package crawler

// FrontierQueue is a FIFO queue of frontier entries. Breadth-first
// dequeue order is the contract here, not an artifact of the backing
// container: it decides which pages survive a max-pages truncation.
//
// Dequeue is O(1) amortized. A head index advances through the backing
// slice and the dead prefix is compacted once it dominates the slice.
type FrontierQueue struct {
	entries []FrontierEntry
	head    int
}

// NewFrontierQueue creates an empty frontier queue.
func NewFrontierQueue() *FrontierQueue {
	return &FrontierQueue{}
}

// Enqueue appends an entry to the tail of the queue.
func (q *FrontierQueue) Enqueue(entry FrontierEntry) {
	q.entries = append(q.entries, entry)
}

// Dequeue removes and returns the head entry. The second return value
// is false when the queue is empty.
func (q *FrontierQueue) Dequeue() (FrontierEntry, bool) {
	if q.head >= len(q.entries) {
		return FrontierEntry{}, false
	}

	entry := q.entries[q.head]
	q.entries[q.head] = FrontierEntry{}
	q.head++

	// Reclaim the consumed prefix once it outweighs the live tail.
	if q.head > len(q.entries)/2 && q.head > 32 {
		q.entries = append(q.entries[:0], q.entries[q.head:]...)
		q.head = 0
	}

	return entry, true
}

// Len returns the number of pending entries.
func (q *FrontierQueue) Len() int {
	return len(q.entries) - q.head
}

// VisitedSet tracks normalized URLs that have been dequeued for
// processing. URLs are marked at dequeue time, not at enqueue time, so
// the same URL may sit in the frontier more than once; the extra
// dequeues must be skipped by the caller.
type VisitedSet struct {
	urls map[string]struct{}
}

// NewVisitedSet creates an empty visited set.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{urls: make(map[string]struct{})}
}

// Mark records a URL as visited.
func (v *VisitedSet) Mark(url string) {
	v.urls[url] = struct{}{}
}

// Contains reports whether a URL has already been visited.
func (v *VisitedSet) Contains(url string) bool {
	_, ok := v.urls[url]
	return ok
}

// Len returns the number of visited URLs.
func (v *VisitedSet) Len() int {
	return len(v.urls)
}
