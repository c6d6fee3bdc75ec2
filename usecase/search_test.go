package usecase

import (
	"context"
	"net/url"
	"testing"

	"github.com/kabang/kabang/commands"
	"github.com/kabang/kabang/core/config"
	domainKabang "github.com/kabang/kabang/domains/kabang"
	domainSearch "github.com/kabang/kabang/domains/search"
	"github.com/kabang/kabang/pkg/bangcache"
	pkgError "github.com/kabang/kabang/pkg/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchFixture struct {
	cache    *bangcache.Cache
	failover *fakeFailover
	repo     domainKabang.IKabangRepository
	registry *commands.Registry
	svc      SearchService
}

func newSearchFixture(t *testing.T, repo domainKabang.IKabangRepository) *searchFixture {
	t.Helper()
	f := &searchFixture{
		cache:    bangcache.New(bangcache.DefaultTTL),
		failover: connectedFailover(),
		repo:     repo,
		registry: commands.NewRegistry(),
	}
	f.svc = NewSearchService(f.cache, f.failover, repo, f.registry, config.SearchConfig{})
	commands.RegisterBuiltins(f.registry, commands.Deps{
		Cache:     f.cache,
		Failover:  f.failover,
		Kabangs:   repo,
		Bookmarks: newBookmarkRepo(t),
		Lookup:    f.svc,
	})
	return f
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		query   string
		ok      bool
		command bool
		trigger string
		terms   string
	}{
		{query: "!g hello world", ok: true, trigger: "g", terms: "hello world"},
		{query: "!gh", ok: true, trigger: "gh"},
		{query: "!!sync", ok: true, command: true, trigger: "sync"},
		{query: "!!add gh https://github.com", ok: true, command: true, trigger: "add", terms: "gh https://github.com"},
		{query: "plbefore", ok: false},
		{query: "hello !g", ok: false},
		{query: "! g", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			parsed, ok := ParseQuery(tt.query)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.command, parsed.Command)
			assert.Equal(t, tt.trigger, parsed.Trigger)
			assert.Equal(t, tt.terms, parsed.Terms)
		})
	}
}

func TestBuildSearchURL(t *testing.T) {
	tests := []struct {
		name     string
		template string
		terms    string
		want     string
	}{
		{"spaces become plus", "https://g.com/search?q={query}", "hello world", "https://g.com/search?q=hello+world"},
		{"reserved characters encoded", "https://g.com/?q={query}", "a&b=c/d", "https://g.com/?q=a%26b%3Dc%2Fd"},
		{"unreserved marks kept", "https://g.com/?q={query}", "!nosuch test", "https://g.com/?q=!nosuch+test"},
		{"utf-8 encoded", "https://g.com/?q={query}", "café", "https://g.com/?q=caf%C3%A9"},
		{"only first placeholder", "https://g.com/{query}?q={query}", "x", "https://g.com/x?q={query}"},
		{"no placeholder", "https://g.com/home", "ignored", "https://g.com/home"},
		{"empty terms", "https://g.com/?q={query}", "", "https://g.com/?q="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildSearchURL(tt.template, tt.terms))
		})
	}
}

func TestResolve_BangFromCache(t *testing.T) {
	f := newSearchFixture(t, newKabangRepo(t))
	f.cache.Set("g", "https://www.google.com/search?q={query}")

	res, err := f.svc.Resolve(context.Background(), "!g hello world")
	require.NoError(t, err)
	assert.Equal(t, domainSearch.ResolutionBang, res.Kind)
	assert.Equal(t, "https://www.google.com/search?q=hello+world", res.Location)
	assert.Equal(t, "g", res.Trigger)
	assert.Equal(t, "hello world", res.Terms)
}

func TestResolve_BangFromStoreIsCached(t *testing.T) {
	repo := newKabangRepo(t)
	seedKabang(t, repo, domainKabang.Kabang{Name: "GitHub", Bang: "gh", URL: "https://github.com/search?q={query}"})
	f := newSearchFixture(t, repo)

	res, err := f.svc.Resolve(context.Background(), "!gh kabang")
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/search?q=kabang", res.Location)

	record, ok := f.cache.GetRecord("gh")
	require.True(t, ok)
	assert.Equal(t, "GitHub", record.Name)
}

func TestResolve_PlainQueryUsesDefault(t *testing.T) {
	f := newSearchFixture(t, newKabangRepo(t))
	f.cache.SetDefault("https://example.com/s?q={query}")

	res, err := f.svc.Resolve(context.Background(), "plbefore")
	require.NoError(t, err)
	assert.Equal(t, domainSearch.ResolutionDefault, res.Kind)
	assert.Equal(t, "https://example.com/s?q=plbefore", res.Location)
}

func TestResolve_UnknownTriggerSearchesFullQuery(t *testing.T) {
	f := newSearchFixture(t, newKabangRepo(t))
	f.cache.SetDefault("https://example.com/s?q={query}")

	res, err := f.svc.Resolve(context.Background(), "!nosuch test")
	require.NoError(t, err)
	assert.Equal(t, domainSearch.ResolutionDefault, res.Kind)
	assert.Equal(t, "https://example.com/s?q=!nosuch+test", res.Location)

	parsed, err := url.Parse(res.Location)
	require.NoError(t, err)
	assert.Equal(t, "!nosuch test", parsed.Query().Get("q"))
}

func TestResolve_DefaultLoadedFromStore(t *testing.T) {
	repo := newKabangRepo(t)
	seedKabang(t, repo, domainKabang.Kabang{Name: "DuckDuckGo", Bang: "ddg", URL: "https://duckduckgo.com/?q={query}", IsDefault: true})
	f := newSearchFixture(t, repo)

	res, err := f.svc.Resolve(context.Background(), "weather")
	require.NoError(t, err)
	assert.Equal(t, "https://duckduckgo.com/?q=weather", res.Location)

	cached, ok := f.cache.GetDefault()
	require.True(t, ok)
	assert.Equal(t, "https://duckduckgo.com/?q={query}", cached)
}

func TestResolve_NoDefaultConfigured(t *testing.T) {
	f := newSearchFixture(t, newKabangRepo(t))

	_, err := f.svc.Resolve(context.Background(), "anything")
	var notFound pkgError.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "No default search engine configured", err.Error())
}

func TestResolve_EmptyQuery(t *testing.T) {
	f := newSearchFixture(t, newKabangRepo(t))

	_, err := f.svc.Resolve(context.Background(), "")
	var validation pkgError.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestResolve_WhitespaceQuerySearchesDefault(t *testing.T) {
	f := newSearchFixture(t, newKabangRepo(t))
	f.cache.SetDefault("https://example.com/s?q={query}")

	res, err := f.svc.Resolve(context.Background(), "  ")
	require.NoError(t, err)
	assert.Equal(t, domainSearch.ResolutionDefault, res.Kind)
	assert.Equal(t, "https://example.com/s?q=++", res.Location)
}

func TestResolve_DashboardTrigger(t *testing.T) {
	f := newSearchFixture(t, newKabangRepo(t))

	res, err := f.svc.Resolve(context.Background(), "!KaBang")
	require.NoError(t, err)
	assert.Equal(t, domainSearch.ResolutionDashboard, res.Kind)
	assert.Equal(t, "/dashboard", res.Location)
}

func TestResolve_SyncCommand(t *testing.T) {
	repo := newKabangRepo(t)
	seedKabang(t, repo, domainKabang.Kabang{Name: "Google", Bang: "g", URL: "https://www.google.com/search?q={query}", IsDefault: true})
	seedKabang(t, repo, domainKabang.Kabang{Name: "YouTube", Bang: "yt", URL: "https://www.youtube.com/results?search_query={query}"})
	f := newSearchFixture(t, repo)
	f.cache.Set("stale", "https://stale.example/{query}")

	res, err := f.svc.Resolve(context.Background(), "!!sync")
	require.NoError(t, err)
	assert.Equal(t, domainSearch.ResolutionCommand, res.Kind)
	require.NotNil(t, res.Outcome)
	assert.Equal(t, commands.CodeSyncSuccess, res.Outcome.Code)

	assert.Equal(t, 2, f.cache.Size())
	_, stale := f.cache.Get("stale")
	assert.False(t, stale)
	assert.True(t, f.cache.Stats().PermanentDefault)
}

func TestResolve_UnregisteredCommandSearchesFullQuery(t *testing.T) {
	f := newSearchFixture(t, newKabangRepo(t))
	f.cache.SetDefault("https://example.com/s?q={query}")

	res, err := f.svc.Resolve(context.Background(), "!!nosuch")
	require.NoError(t, err)
	assert.Equal(t, domainSearch.ResolutionDefault, res.Kind)
	assert.Equal(t, "https://example.com/s?q=!!nosuch", res.Location)
}

func TestResolve_StoreDownServesCachedDefault(t *testing.T) {
	f := newSearchFixture(t, brokenRepo{})
	f.cache.SetDefault("https://example.com/s?q={query}")

	res, err := f.svc.Resolve(context.Background(), "!unknown term")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/s?q=!unknown+term", res.Location)
	assert.Equal(t, 1, f.failover.marked)
}

func TestResolve_StoreDownWithoutDefault(t *testing.T) {
	f := newSearchFixture(t, brokenRepo{})
	f.failover.connected = false
	f.failover.canReconnect = false

	_, err := f.svc.Resolve(context.Background(), "hello")
	var notFound pkgError.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
