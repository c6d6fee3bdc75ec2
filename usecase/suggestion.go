package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/kabang/kabang/commands"
	domainSearch "github.com/kabang/kabang/domains/search"
	"github.com/kabang/kabang/pkg/bangcache"
)

const DefaultSuggestionLimit = 5

// Score rates how well query matches target, case-insensitively:
// 1.0 exact, 0.9 prefix, 0.7 substring, 0.5*matched/len(target) for an
// in-order subsequence, 0 otherwise.
func Score(query, target string) float64 {
	q := strings.ToLower(query)
	t := strings.ToLower(target)

	switch {
	case t == q:
		return 1.0
	case strings.HasPrefix(t, q):
		return 0.9
	case strings.Contains(t, q):
		return 0.7
	}

	qr, tr := []rune(q), []rune(t)
	matched := 0
	for i := 0; i < len(tr) && matched < len(qr); i++ {
		if tr[i] == qr[matched] {
			matched++
		}
	}
	if matched == len(qr) && len(tr) > 0 {
		return 0.5 * float64(matched) / float64(len(tr))
	}
	return 0
}

type candidate struct {
	trigger     string
	description string
	score       float64
}

type suggestionService struct {
	cache    *bangcache.Cache
	registry *commands.Registry
}

func NewSuggestionService(cache *bangcache.Cache, registry *commands.Registry) domainSearch.ISuggestionUsecase {
	return &suggestionService{cache: cache, registry: registry}
}

// Suggest completes queries starting with "!". A trigger that already
// resolves from the cache gets no suggestions.
func (s *suggestionService) Suggest(_ context.Context, query string, limit int) domainSearch.Suggestions {
	if !strings.HasPrefix(query, "!") {
		return domainSearch.Suggestions{Query: query}
	}
	if parsed, ok := ParseQuery(query); ok && !parsed.Command {
		if _, cached := s.cache.Get(parsed.Trigger); cached {
			return domainSearch.Suggestions{Query: query}
		}
	}
	return s.Rank(query, limit)
}

// Rank scores cached bangs, then registered commands, against the query with
// its "!" or "!!" prefix removed.
func (s *suggestionService) Rank(query string, limit int) domainSearch.Suggestions {
	result := domainSearch.Suggestions{Query: query}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	term := strings.TrimPrefix(strings.TrimPrefix(query, "!"), "!")

	var pool []candidate
	for _, record := range s.cache.GetAll() {
		description := record.DisplayName()
		if category := record.CategoryName(); category != "" {
			description += " (" + category + ")"
		}
		pool = append(pool, candidate{
			trigger:     "!" + record.Bang,
			description: description,
			score:       max(Score(term, record.Bang), Score(term, record.DisplayName())),
		})
	}
	for _, cmd := range s.registry.List() {
		pool = append(pool, candidate{
			trigger:     "!!" + cmd.Bang,
			description: cmd.Name + " (" + cmd.Category + ")",
			score:       max(Score(term, cmd.Bang), Score(term, cmd.Name)),
		})
	}

	ranked := pool[:0]
	for _, c := range pool {
		if c.score > 0 {
			ranked = append(ranked, c)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	result.Triggers = make([]string, len(ranked))
	result.Descriptions = make([]string, len(ranked))
	for i, c := range ranked {
		result.Triggers[i] = c.trigger
		result.Descriptions[i] = c.description
	}
	return result
}
