package usecase

import (
	"context"
	"errors"

	domainKabang "github.com/kabang/kabang/domains/kabang"
	pkgError "github.com/kabang/kabang/pkg/error"
	"github.com/sirupsen/logrus"
)

type seedBang struct {
	Name      string
	Bang      string
	URL       string
	Category  string
	IsDefault bool
}

// PopularBangs is what the seed command inserts.
var PopularBangs = []seedBang{
	{Name: "Google", Bang: "g", URL: "https://www.google.com/search?q={query}", Category: "Search", IsDefault: true},
	{Name: "Bing", Bang: "b", URL: "https://www.bing.com/search?q={query}", Category: "Search"},
	{Name: "DuckDuckGo", Bang: "ddg", URL: "https://duckduckgo.com/?q={query}", Category: "Search"},
	{Name: "Brave Search", Bang: "brave", URL: "https://search.brave.com/search?q={query}", Category: "Search"},
	{Name: "Ecosia", Bang: "eco", URL: "https://www.ecosia.org/search?q={query}", Category: "Search"},
	{Name: "YouTube", Bang: "yt", URL: "https://www.youtube.com/results?search_query={query}", Category: "Social"},
	{Name: "Twitter/X", Bang: "x", URL: "https://x.com/search?q={query}", Category: "Social"},
	{Name: "Reddit", Bang: "r", URL: "https://www.reddit.com/search/?q={query}", Category: "Social"},
	{Name: "Instagram", Bang: "ig", URL: "https://www.instagram.com/explore/tags/{query}/", Category: "Social"},
	{Name: "LinkedIn", Bang: "li", URL: "https://www.linkedin.com/search/results/all/?keywords={query}", Category: "Social"},
	{Name: "GitHub", Bang: "gh", URL: "https://github.com/search?q={query}&type=repositories", Category: "Development"},
	{Name: "Stack Overflow", Bang: "so", URL: "https://stackoverflow.com/search?q={query}", Category: "Development"},
	{Name: "MDN Web Docs", Bang: "mdn", URL: "https://developer.mozilla.org/en-US/search?q={query}", Category: "Development"},
	{Name: "npm", Bang: "npm", URL: "https://www.npmjs.com/search?q={query}", Category: "Development"},
	{Name: "Docker Hub", Bang: "docker", URL: "https://hub.docker.com/search?q={query}", Category: "Development"},
	{Name: "Amazon", Bang: "amz", URL: "https://www.amazon.com/s?k={query}", Category: "Shopping"},
	{Name: "Wikipedia", Bang: "w", URL: "https://en.wikipedia.org/wiki/Special:Search?search={query}", Category: "Reference"},
	{Name: "Wiktionary", Bang: "wt", URL: "https://en.wiktionary.org/wiki/Special:Search?search={query}", Category: "Reference"},
	{Name: "Dictionary.com", Bang: "dict", URL: "https://www.dictionary.com/browse/{query}", Category: "Reference"},
	{Name: "Google Maps", Bang: "maps", URL: "https://www.google.com/maps/search/{query}", Category: "Maps"},
	{Name: "OpenStreetMap", Bang: "osm", URL: "https://www.openstreetmap.org/search?query={query}", Category: "Maps"},
	{Name: "Google News", Bang: "news", URL: "https://news.google.com/search?q={query}", Category: "News"},
	{Name: "Spotify", Bang: "spotify", URL: "https://open.spotify.com/search/{query}", Category: "Entertainment"},
	{Name: "Netflix", Bang: "netflix", URL: "https://www.netflix.com/search?q={query}", Category: "Entertainment"},
	{Name: "IMDb", Bang: "imdb", URL: "https://www.imdb.com/find?q={query}", Category: "Entertainment"},
	{Name: "Wayback Machine", Bang: "wayback", URL: "https://web.archive.org/web/*/{query}", Category: "Utilities"},
	{Name: "Translate", Bang: "tr", URL: "https://translate.google.com/?text={query}", Category: "Utilities"},
	{Name: "Gmail", Bang: "gmail", URL: "https://mail.google.com/mail/u/0/#search/{query}", Category: "Utilities"},
	{Name: "ChatGPT", Bang: "chat", URL: "https://chat.openai.com/?q={query}", Category: "AI"},
	{Name: "Claude", Bang: "claude", URL: "https://claude.ai/new?q={query}", Category: "AI"},
	{Name: "Perplexity", Bang: "p", URL: "https://www.perplexity.ai/search?q={query}", Category: "AI"},
	{Name: "Google Drive", Bang: "drive", URL: "https://drive.google.com/drive/search?q={query}", Category: "Files"},
	{Name: "Google Docs", Bang: "docs", URL: "https://docs.google.com/document/u/0/?q={query}", Category: "Files"},
}

type SeedResult struct {
	Inserted int
	Skipped  int
	Failed   int
}

// Seed inserts PopularBangs, skipping triggers or URLs that already exist. The
// default flag is only honored while no default engine is configured.
func Seed(ctx context.Context, repo domainKabang.IKabangRepository) (SeedResult, error) {
	var result SeedResult

	hasDefault := true
	if _, err := repo.GetDefault(ctx); err != nil {
		var notFound pkgError.NotFoundError
		if !errors.As(err, &notFound) {
			return result, err
		}
		hasDefault = false
	}

	for _, seed := range PopularBangs {
		category := seed.Category
		kabang := domainKabang.Kabang{
			Name:      seed.Name,
			Bang:      seed.Bang,
			URL:       seed.URL,
			Category:  &category,
			IsDefault: seed.IsDefault && !hasDefault,
		}

		err := repo.Create(ctx, &kabang)
		var conflict pkgError.ConflictError
		switch {
		case err == nil:
			result.Inserted++
			logrus.Infof("[SEED] Added %s (!%s) [%s]", seed.Name, seed.Bang, seed.Category)
		case errors.As(err, &conflict):
			result.Skipped++
			logrus.Infof("[SEED] Skipped %s (!%s), already exists", seed.Name, seed.Bang)
		default:
			result.Failed++
			logrus.WithError(err).Errorf("[SEED] Failed to add %s", seed.Name)
		}
	}

	logrus.Infof("[SEED] Inserted %d, skipped %d, total %d", result.Inserted, result.Skipped, len(PopularBangs))
	return result, nil
}
