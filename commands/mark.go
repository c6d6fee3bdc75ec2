package commands

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/kabang/kabang/core/database"
	domainBookmark "github.com/kabang/kabang/domains/bookmark"
	domainSearch "github.com/kabang/kabang/domains/search"
	pkgError "github.com/kabang/kabang/pkg/error"
	"github.com/kabang/kabang/validations"
	"github.com/sirupsen/logrus"
)

var (
	notesFirst = regexp.MustCompile(`^["'](.+?)["']\s+(.+)$`)
	urlFirst   = regexp.MustCompile(`^(.+?)\s+["'](.+?)["']$`)
)

func looksLikeURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// parseMarkArgs accepts `"notes" url`, `url "notes"`, `url` and `notes url`.
func parseMarkArgs(args string) (notes, url string) {
	trimmed := strings.TrimSpace(args)
	if trimmed == "" {
		return "", ""
	}

	if m := notesFirst.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	if m := urlFirst.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[2]), strings.TrimSpace(m[1])
	}

	words := strings.Fields(trimmed)
	if looksLikeURL(words[0]) {
		return "", words[0]
	}
	last := words[len(words)-1]
	if looksLikeURL(last) {
		return strings.TrimSpace(strings.TrimSuffix(trimmed, last)), last
	}
	return "", ""
}

// mark saves a bookmark with optional notes.
func (b *builtins) mark(ctx context.Context, args string) domainSearch.Outcome {
	notes, url := parseMarkArgs(args)
	if url == "" {
		return markInvalidFormat()
	}
	if validations.ValidateURL(url) != nil {
		return markInvalidURL()
	}
	if err := database.RequireConnection(ctx, b.Failover); err != nil {
		return markStoreUnavailable()
	}

	bookmark := domainBookmark.Bookmark{URL: url}
	if notes != "" {
		bookmark.Notes = &notes
	}
	if err := b.Bookmarks.Create(ctx, &bookmark); err != nil {
		err = database.WriteError(b.Failover, err)
		logrus.WithError(err).Errorf("[COMMAND] Failed to save bookmark %s", url)
		var unavailable pkgError.UnavailableError
		if errors.As(err, &unavailable) {
			return markStoreUnavailable()
		}
		return markStoreError()
	}

	logrus.Infof("[COMMAND] Saved bookmark %d -> %s", bookmark.ID, url)
	return markSaved(url)
}
