package service

import (
	"sync"

	"github.com/MKhiriev/vault-guard/models"
)

type clientListCache struct {
	mu         sync.Mutex
	list       models.PasswordList
	loaded     bool
	stale      bool
	generation uint64
	// resetAt is the generation of the last Reset. Lists requested before
	// it belong to a previous session.
	resetAt uint64

	subscribers listeners[func(models.PasswordList, bool)]
}

// NewClientListCache returns an empty cache. An empty cache is never fresh.
func NewClientListCache() ClientListCache {
	return &clientListCache{}
}

func (c *clientListCache) Snapshot() (models.PasswordList, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyLocked(), c.freshLocked()
}

func (c *clientListCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *clientListCache) Replace(list models.PasswordList, generation uint64) {
	c.mu.Lock()
	if generation < c.resetAt {
		c.mu.Unlock()
		return
	}
	c.list = list.Dedup()
	c.loaded = true
	// a mutation landed while this list was in flight
	c.stale = generation != c.generation
	snapshot, fresh := c.copyLocked(), c.freshLocked()
	c.mu.Unlock()

	c.notify(snapshot, fresh)
}

func (c *clientListCache) Invalidate() {
	c.mu.Lock()
	c.generation++
	c.stale = true
	snapshot := c.copyLocked()
	c.mu.Unlock()

	c.notify(snapshot, false)
}

func (c *clientListCache) Reset() {
	c.mu.Lock()
	c.generation++
	c.resetAt = c.generation
	c.list, c.loaded, c.stale = nil, false, false
	c.mu.Unlock()

	c.notify(models.PasswordList{}, false)
}

func (c *clientListCache) Subscribe(fn func(list models.PasswordList, fresh bool)) func() {
	return c.subscribers.add(fn)
}

func (c *clientListCache) freshLocked() bool {
	return c.loaded && !c.stale
}

func (c *clientListCache) copyLocked() models.PasswordList {
	out := make(models.PasswordList, len(c.list))
	copy(out, c.list)
	return out
}

func (c *clientListCache) notify(list models.PasswordList, fresh bool) {
	for _, fn := range c.subscribers.snapshot() {
		fn(list, fresh)
	}
}
