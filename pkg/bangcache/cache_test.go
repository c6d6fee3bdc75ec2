package bangcache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	domainKabang "github.com/kabang/kabang/domains/kabang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func strPtr(s string) *string { return &s }

func TestCache_SetGetWithinTTL(t *testing.T) {
	clock := newFakeClock()
	c := New(5*time.Minute, WithClock(clock.Now))

	c.Set("g", "https://google.com/search?q={query}")
	clock.Advance(5 * time.Minute)

	url, ok := c.Get("g")
	require.True(t, ok, "entry must still be valid at exactly TTL")
	assert.Equal(t, "https://google.com/search?q={query}", url)
}

func TestCache_ExpiredEntryIsEvicted(t *testing.T) {
	clock := newFakeClock()
	c := New(5*time.Minute, WithClock(clock.Now))

	c.Set("g", "https://google.com")
	clock.Advance(5*time.Minute + time.Second)

	_, ok := c.Get("g")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Size(), "expired entry must be evicted on read")
}

func TestCache_SetPreservesNameAndCategory(t *testing.T) {
	c := New(time.Minute)
	c.SetFull(domainKabang.Kabang{ID: 7, Bang: "gh", Name: "GitHub", URL: "https://github.com", Category: strPtr("Development")})

	c.Set("gh", "https://github.com/search?q={query}")

	record, ok := c.GetRecord("gh")
	require.True(t, ok)
	assert.Equal(t, "GitHub", record.Name)
	assert.Equal(t, "Development", record.CategoryName())
	assert.Equal(t, int64(7), record.ID)
	assert.Equal(t, "https://github.com/search?q={query}", record.URL)
}

func TestCache_SetFullReplacesEverything(t *testing.T) {
	c := New(time.Minute)
	c.SetFull(domainKabang.Kabang{Bang: "gh", Name: "GitHub", URL: "https://github.com", Category: strPtr("Development")})

	c.SetFull(domainKabang.Kabang{Bang: "gh", URL: "https://gitlab.com"})

	record, ok := c.GetRecord("gh")
	require.True(t, ok)
	assert.Equal(t, "gh", record.Name, "name falls back to the trigger")
	assert.Nil(t, record.Category)
}

func TestCache_DefaultExpires(t *testing.T) {
	clock := newFakeClock()
	c := New(time.Minute, WithClock(clock.Now))

	c.SetDefault("https://duckduckgo.com/?q={query}")
	_, ok := c.GetDefault()
	require.True(t, ok)

	clock.Advance(2 * time.Minute)
	_, ok = c.GetDefault()
	assert.False(t, ok)
}

func TestCache_PermanentDefaultSurvivesTTLUntilClear(t *testing.T) {
	clock := newFakeClock()
	c := New(time.Minute, WithClock(clock.Now))

	c.SetPermanentDefault("https://example.com/s?q={query}")
	clock.Advance(24 * time.Hour)

	url, ok := c.GetDefault()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/s?q={query}", url)
	assert.True(t, c.Stats().PermanentDefault)

	c.Clear()
	_, ok = c.GetDefault()
	assert.False(t, ok)
}

func TestCache_GetAllKeepsInsertionOrderAndEvicts(t *testing.T) {
	clock := newFakeClock()
	c := New(time.Minute, WithClock(clock.Now))

	c.Set("a", "https://a.example")
	clock.Advance(45 * time.Second)
	c.Set("b", "https://b.example")
	c.Set("c", "https://c.example")
	clock.Advance(30 * time.Second)

	all := c.GetAll()
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].Bang)
	assert.Equal(t, "c", all[1].Bang)
	assert.Equal(t, 2, c.Size())
}

func TestCache_ReplaceSwapsContentAndPromotesDefault(t *testing.T) {
	c := New(time.Minute)
	c.Set("old", "https://old.example")
	c.SetDefault("https://old-default.example")

	c.Replace([]domainKabang.Kabang{
		{Bang: "g", URL: "https://google.com/search?q={query}", IsDefault: true},
		{Bang: "b", URL: "https://bing.com/search?q={query}"},
	}, "https://google.com/search?q={query}")

	_, ok := c.Get("old")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Size())

	url, ok := c.GetDefault()
	require.True(t, ok)
	assert.Equal(t, "https://google.com/search?q={query}", url)
	assert.True(t, c.Stats().PermanentDefault)
}

func TestCache_DeleteAndClearDefault(t *testing.T) {
	c := New(time.Minute)
	c.Set("g", "https://google.com")
	c.SetPermanentDefault("https://google.com")

	c.Delete("g")
	c.ClearDefault()

	_, ok := c.Get("g")
	assert.False(t, ok)
	_, ok = c.GetDefault()
	assert.False(t, ok)
}

func TestCache_DemoteDefaultsKeepsOneDefault(t *testing.T) {
	clock := newFakeClock()
	c := New(time.Minute, WithClock(clock.Now))
	c.SetFull(domainKabang.Kabang{Bang: "a", URL: "https://a.example/?q={query}", IsDefault: true})
	clock.Advance(30 * time.Second)
	c.SetFull(domainKabang.Kabang{Bang: "b", URL: "https://b.example/?q={query}", IsDefault: true})

	c.DemoteDefaults("b")

	records := c.GetAll()
	require.Len(t, records, 2)
	assert.False(t, records[0].IsDefault)
	assert.True(t, records[1].IsDefault)

	// Demoting does not refresh the entry.
	clock.Advance(45 * time.Second)
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bang := fmt.Sprintf("b%d", i%8)
			for j := 0; j < 200; j++ {
				c.Set(bang, fmt.Sprintf("https://example.com/%d", j))
				c.Get(bang)
				c.GetAll()
				if j%50 == 0 {
					c.SetDefault("https://example.com")
					c.GetDefault()
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 8, c.Size())
}
