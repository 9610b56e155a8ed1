package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/bpl-lane/mosaic-relayer/internal/metrics"
)

// LRU is a bounded cache with per-entry expiry. The relayer uses it for
// registry lookups whose results are stable for long stretches, such as the
// token-id to token-contract mapping.
type LRU[K comparable, V any] struct {
	name  string
	mu    sync.Mutex
	cap   int
	ttl   time.Duration
	byKey map[K]*list.Element
	order *list.List
	clock func() time.Time
}

type item[K comparable, V any] struct {
	key     K
	value   V
	expires time.Time
}

func NewLRU[K comparable, V any](name string, capacity int, ttl time.Duration) *LRU[K, V] {
	return &LRU[K, V]{
		name:  name,
		cap:   capacity,
		ttl:   ttl,
		byKey: make(map[K]*list.Element, capacity),
		order: list.New(),
		clock: time.Now,
	}
}

func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.byKey[key]
	if !ok {
		metrics.CacheMissesTotal.WithLabelValues(c.name).Inc()
		var zero V
		return zero, false
	}

	it := elem.Value.(*item[K, V])
	if c.clock().After(it.expires) {
		c.drop(elem)
		metrics.CacheMissesTotal.WithLabelValues(c.name).Inc()
		var zero V
		return zero, false
	}

	c.order.MoveToFront(elem)
	metrics.CacheHitsTotal.WithLabelValues(c.name).Inc()
	return it.value, true
}

func (c *LRU[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.byKey[key]; ok {
		c.order.MoveToFront(elem)
		it := elem.Value.(*item[K, V])
		it.value = value
		it.expires = c.clock().Add(c.ttl)
		return
	}

	if c.order.Len() >= c.cap {
		if oldest := c.order.Back(); oldest != nil {
			c.drop(oldest)
		}
	}
	c.byKey[key] = c.order.PushFront(&item[K, V]{
		key:     key,
		value:   value,
		expires: c.clock().Add(c.ttl),
	})
}

func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *LRU[K, V]) drop(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.byKey, elem.Value.(*item[K, V]).key)
}
