package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/kabang/kabang/commands"
	domainKabang "github.com/kabang/kabang/domains/kabang"
	domainSearch "github.com/kabang/kabang/domains/search"
	"github.com/kabang/kabang/pkg/bangcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSuggestionFixture() (*bangcache.Cache, domainSearch.ISuggestionUsecase) {
	cache := bangcache.New(bangcache.DefaultTTL)
	cache.SetFull(domainKabang.Kabang{Name: "Google", Bang: "g", URL: "https://www.google.com/search?q={query}", Category: strPtr("Search")})
	cache.SetFull(domainKabang.Kabang{Name: "GitHub", Bang: "gh", URL: "https://github.com/search?q={query}", Category: strPtr("Development")})
	cache.SetFull(domainKabang.Kabang{Name: "YouTube", Bang: "yt", URL: "https://www.youtube.com/results?search_query={query}"})

	registry := commands.NewRegistry()
	noop := func(context.Context, string) domainSearch.Outcome { return domainSearch.Outcome{} }
	registry.Register("sync", noop, commands.Metadata{Name: "Sync Cache", Category: "System"})
	registry.Register("mark", noop, commands.Metadata{Name: "Bookmark", Category: "Bookmarks"})

	return cache, NewSuggestionService(cache, registry)
}

func TestScore(t *testing.T) {
	tests := []struct {
		query, target string
		want          float64
	}{
		{"g", "g", 1.0},
		{"G", "g", 1.0},
		{"g", "gh", 0.9},
		{"hub", "github", 0.7},
		{"ghb", "github", 0.25},
		{"xyz", "github", 0},
		{"github", "gh", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query+"/"+tt.target, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.query, tt.target), 1e-9)
		})
	}
}

func TestRank_ExactAboveShorterPrefix(t *testing.T) {
	_, svc := newSuggestionFixture()

	result := svc.Rank("!g", 5)
	require.GreaterOrEqual(t, len(result.Triggers), 2)
	assert.Equal(t, "!g", result.Triggers[0])
	assert.Equal(t, "!gh", result.Triggers[1])
	assert.Equal(t, "Google (Search)", result.Descriptions[0])
}

func TestRank_IncludesCommandsAndRespectsLimit(t *testing.T) {
	_, svc := newSuggestionFixture()

	result := svc.Rank("!!sy", 5)
	require.NotEmpty(t, result.Triggers)
	assert.Equal(t, "!!sync", result.Triggers[0])
	assert.Equal(t, "Sync Cache (System)", result.Descriptions[0])

	limited := svc.Rank("!", 2)
	assert.Len(t, limited.Triggers, 2)
}

func TestRank_UncategorizedDescriptionIsName(t *testing.T) {
	_, svc := newSuggestionFixture()

	result := svc.Rank("!yt", 5)
	require.NotEmpty(t, result.Triggers)
	assert.Equal(t, "!yt", result.Triggers[0])
	assert.Equal(t, "YouTube", result.Descriptions[0])
}

func TestSuggest_RequiresBangPrefix(t *testing.T) {
	_, svc := newSuggestionFixture()

	result := svc.Suggest(context.Background(), "github", 5)
	assert.Empty(t, result.Triggers)
	assert.Equal(t, "github", result.Query)
}

func TestSuggest_CachedTriggerIsNotCompleted(t *testing.T) {
	_, svc := newSuggestionFixture()

	assert.Empty(t, svc.Suggest(context.Background(), "!gh", 5).Triggers)
	assert.NotEmpty(t, svc.Suggest(context.Background(), "!gi", 5).Triggers)
}

func TestSuggestions_OpenSearchFormat(t *testing.T) {
	_, svc := newSuggestionFixture()

	body, err := json.Marshal(svc.Suggest(context.Background(), "nothing", 5))
	require.NoError(t, err)
	assert.JSONEq(t, `["nothing", [], [], []]`, string(body))

	body, err = json.Marshal(svc.Rank("!yt", 1))
	require.NoError(t, err)
	assert.JSONEq(t, `["!yt", ["!yt"], ["YouTube"], []]`, string(body))
}
