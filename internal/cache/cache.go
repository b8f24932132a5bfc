package cache

import (
	"container/list"
	"sync"
	"time"
)

// Cache is a capacity- and time-bounded key/value store. Entries expire a
// fixed duration after they were written, regardless of reads, so a stale
// value is never served no matter how often it is hit. Once capacity is
// exceeded the least recently used entry is evicted. Safe for concurrent
// use; the hit/miss decision around it is deliberately not atomic, a rare
// double computation on a race is acceptable.
type Cache[V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[string]*list.Element
	order    *list.List // front = most recently used

	now func() time.Time
}

type entry[V any] struct {
	key       string
	value     V
	writtenAt time.Time
}

// New creates a cache holding at most capacity entries, each expiring ttl
// after its write. Zero capacity or ttl disables the respective bound.
func New[V any](capacity int, ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		now:      time.Now,
	}
}

// Get returns the live value for key, if any. An expired entry is removed
// and reported as a miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	e := el.Value.(*entry[V])
	if c.expired(e) {
		c.remove(el)
		return zero, false
	}
	c.order.MoveToFront(el)
	return e.value, true
}

// Put stores value under key, resetting the entry's expiry clock, and
// evicts the least recently used entry when over capacity.
func (c *Cache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		e := el.Value.(*entry[V])
		e.value = value
		e.writtenAt = c.now()
		c.order.MoveToFront(el)
		return
	}

	c.entries[key] = c.order.PushFront(&entry[V]{key: key, value: value, writtenAt: c.now()})

	if c.capacity > 0 && c.order.Len() > c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.remove(oldest)
		}
	}
}

// Sweep drops every expired entry and reports how many were removed.
// Expiry is otherwise enforced lazily on Get, which can leave dead entries
// pinned between requests.
func (c *Cache[V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if c.expired(el.Value.(*entry[V])) {
			c.remove(el)
			removed++
		}
		el = prev
	}
	return removed
}

// Len reports the number of stored entries, expired ones included.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *Cache[V]) expired(e *entry[V]) bool {
	return c.ttl > 0 && c.now().Sub(e.writtenAt) > c.ttl
}

func (c *Cache[V]) remove(el *list.Element) {
	delete(c.entries, el.Value.(*entry[V]).key)
	c.order.Remove(el)
}
