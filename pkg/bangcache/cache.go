package bangcache

import (
	"sync"
	"time"

	"github.com/elliotchance/orderedmap/v3"
	domainKabang "github.com/kabang/kabang/domains/kabang"
)

// DefaultTTL is how long an entry stays valid after it was cached.
const DefaultTTL = 5 * time.Minute

type entry struct {
	record   domainKabang.Kabang
	cachedAt time.Time
}

type defaultSlot struct {
	url       string
	cachedAt  time.Time
	permanent bool
}

// Stats is a diagnostic view of the cache.
type Stats struct {
	Entries          int
	LiveEntries      int
	TTL              time.Duration
	HasDefault       bool
	PermanentDefault bool
}

// Cache maps triggers to records for a bounded time and holds the default
// engine slot. Expiry is checked lazily on read; nothing sweeps in the background.
type Cache struct {
	mu      sync.RWMutex
	entries *orderedmap.OrderedMap[string, entry]
	def     *defaultSlot
	ttl     time.Duration
	now     func() time.Time
}

type Option func(*Cache)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates an empty cache. A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		entries: orderedmap.NewOrderedMap[string, entry](),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) TTL() time.Duration {
	return c.ttl
}

func (c *Cache) expired(cachedAt, now time.Time) bool {
	return now.Sub(cachedAt) > c.ttl
}

// GetRecord returns the cached record for bang if it is still valid. An
// expired entry is evicted.
func (c *Cache) GetRecord(bang string) (domainKabang.Kabang, bool) {
	now := c.now()

	c.mu.RLock()
	e, ok := c.entries.Get(bang)
	c.mu.RUnlock()
	if !ok {
		return domainKabang.Kabang{}, false
	}
	if !c.expired(e.cachedAt, now) {
		return e.record, true
	}

	c.mu.Lock()
	// Re-check under the write lock, a concurrent Set may have refreshed it.
	if current, still := c.entries.Get(bang); still && c.expired(current.cachedAt, now) {
		c.entries.Delete(bang)
	} else if still {
		c.mu.Unlock()
		return current.record, true
	}
	c.mu.Unlock()
	return domainKabang.Kabang{}, false
}

// Get returns the cached target URL for bang.
func (c *Cache) Get(bang string) (string, bool) {
	record, ok := c.GetRecord(bang)
	if !ok {
		return "", false
	}
	return record.URL, true
}

// GetDefault returns the default engine URL. A permanent default never expires.
func (c *Cache) GetDefault() (string, bool) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.def == nil {
		return "", false
	}
	if !c.def.permanent && c.expired(c.def.cachedAt, now) {
		c.def = nil
		return "", false
	}
	return c.def.url, true
}

// Set caches url for bang, keeping the name and category already known for it.
func (c *Cache) Set(bang, url string) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	record := domainKabang.Kabang{Bang: bang, URL: url, Name: bang}
	if prev, ok := c.entries.Get(bang); ok {
		record.ID = prev.record.ID
		record.Name = prev.record.DisplayName()
		record.Category = prev.record.Category
		record.IsDefault = prev.record.IsDefault
		record.CreatedAt = prev.record.CreatedAt
	}
	c.entries.Set(bang, entry{record: record, cachedAt: now})
}

// SetFull replaces whatever is cached for the record's bang.
func (c *Cache) SetFull(record domainKabang.Kabang) {
	now := c.now()
	if record.Name == "" {
		record.Name = record.Bang
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Set(record.Bang, entry{record: record, cachedAt: now})
}

// SetDefault stores a TTL-bound default engine URL.
func (c *Cache) SetDefault(url string) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.def = &defaultSlot{url: url, cachedAt: now}
}

// SetPermanentDefault stores a default engine URL exempt from expiry until the
// slot is cleared. Only the resync command uses it.
func (c *Cache) SetPermanentDefault(url string) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.def = &defaultSlot{url: url, cachedAt: now, permanent: true}
}

// ClearDefault empties the default slot, permanent or not.
func (c *Cache) ClearDefault() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.def = nil
}

// DemoteDefaults clears IsDefault on every cached record except keep, so the
// cached records hold at most one default like the store does. Entry ages are
// left alone.
func (c *Cache) DemoteDefaults(keep string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for el := c.entries.Front(); el != nil; el = el.Next() {
		if el.Key == keep || !el.Value.record.IsDefault {
			continue
		}
		demoted := el.Value
		demoted.record.IsDefault = false
		c.entries.Set(el.Key, demoted)
	}
}

// Delete drops the entry for bang.
func (c *Cache) Delete(bang string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Delete(bang)
}

// GetAll returns every live record in insertion order and evicts expired ones.
func (c *Cache) GetAll() []domainKabang.Kabang {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	records := make([]domainKabang.Kabang, 0, c.entries.Len())
	var stale []string
	for el := c.entries.Front(); el != nil; el = el.Next() {
		if c.expired(el.Value.cachedAt, now) {
			stale = append(stale, el.Key)
			continue
		}
		records = append(records, el.Value.record)
	}
	for _, bang := range stale {
		c.entries.Delete(bang)
	}
	return records
}

// Replace swaps the whole content in one step. When permanentDefault is not
// empty it becomes the permanent default, otherwise the default slot is emptied.
func (c *Cache) Replace(records []domainKabang.Kabang, permanentDefault string) {
	now := c.now()

	fresh := orderedmap.NewOrderedMap[string, entry]()
	for _, record := range records {
		if record.Name == "" {
			record.Name = record.Bang
		}
		fresh.Set(record.Bang, entry{record: record, cachedAt: now})
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = fresh
	c.def = nil
	if permanentDefault != "" {
		c.def = &defaultSlot{url: permanentDefault, cachedAt: now, permanent: true}
	}
}

// Clear drops all entries and the default slot, including a permanent default.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = orderedmap.NewOrderedMap[string, entry]()
	c.def = nil
}

// Size is the raw entry count, expired entries included.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries.Len()
}

func (c *Cache) Stats() Stats {
	now := c.now()

	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{Entries: c.entries.Len(), TTL: c.ttl}
	for el := c.entries.Front(); el != nil; el = el.Next() {
		if !c.expired(el.Value.cachedAt, now) {
			stats.LiveEntries++
		}
	}
	if c.def != nil && (c.def.permanent || !c.expired(c.def.cachedAt, now)) {
		stats.HasDefault = true
		stats.PermanentDefault = c.def.permanent
	}
	return stats
}
