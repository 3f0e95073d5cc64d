package memory

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// ViewStateRepository holds live per-user view state (recording sessions,
// advisor conversations, scraping simulators). Entries expire after ttl of
// inactivity and onEvict lets the owner cancel pending timers.
type ViewStateRepository[T any] struct {
	cache *cache.Cache
	ttl   time.Duration

	// serializes GetOrCreate
	mu sync.Mutex
}

func NewViewStateRepository[T any](ttl time.Duration, onEvict func(key string, value T)) *ViewStateRepository[T] {
	c := cache.New(ttl, ttl/4)
	if onEvict != nil {
		c.OnEvicted(func(key string, v interface{}) {
			if value, ok := v.(T); ok {
				onEvict(key, value)
			}
		})
	}
	return &ViewStateRepository[T]{cache: c, ttl: ttl}
}

func (r *ViewStateRepository[T]) Save(key string, value T) {
	r.cache.Set(key, value, cache.DefaultExpiration)
}

// Get returns the entry and refreshes its expiry.
func (r *ViewStateRepository[T]) Get(key string) (T, bool) {
	var zero T
	x, found := r.cache.Get(key)
	if !found {
		return zero, false
	}
	value, ok := x.(T)
	if !ok {
		return zero, false
	}
	// Replace fails if a Delete won the race, so the entry stays gone.
	_ = r.cache.Replace(key, value, cache.DefaultExpiration)
	return value, true
}

// GetOrCreate returns the entry for key, storing create() first when there is
// none. Concurrent callers for the same key share one value.
func (r *ViewStateRepository[T]) GetOrCreate(key string, create func() T) T {
	r.mu.Lock()
	defer r.mu.Unlock()

	if value, ok := r.Get(key); ok {
		return value
	}
	value := create()
	r.Save(key, value)
	return value
}

// Touch pushes back the expiry of an entry still in use. Missing keys are ignored.
func (r *ViewStateRepository[T]) Touch(key string) {
	if x, found := r.cache.Get(key); found {
		_ = r.cache.Replace(key, x, cache.DefaultExpiration)
	}
}

// Delete removes the entry and runs the eviction hook.
func (r *ViewStateRepository[T]) Delete(key string) {
	r.cache.Delete(key)
}

func (r *ViewStateRepository[T]) Count() int {
	return r.cache.ItemCount()
}
