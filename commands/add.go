package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/kabang/kabang/core/database"
	domainKabang "github.com/kabang/kabang/domains/kabang"
	domainSearch "github.com/kabang/kabang/domains/search"
	pkgError "github.com/kabang/kabang/pkg/error"
	"github.com/kabang/kabang/validations"
	"github.com/sirupsen/logrus"
)

// add creates a bang from "<trigger> <url>" and sends the user to the URL.
func (b *builtins) add(ctx context.Context, args string) domainSearch.Outcome {
	parts := strings.Fields(args)
	if len(parts) < 2 || validations.ValidateBang(parts[0]) != nil {
		return addInvalidFormat()
	}
	bang, target := parts[0], parts[1]

	if validations.ValidateURL(target) != nil {
		return addInvalidURL()
	}
	if err := database.RequireConnection(ctx, b.Failover); err != nil {
		return addStoreUnavailable()
	}
	if _, exists := b.Lookup.LookupTrigger(ctx, bang); exists {
		return addExists(bang)
	}

	category := domainKabang.BookmarkCategory
	record := domainKabang.Kabang{
		Name:     bang,
		Bang:     bang,
		URL:      target,
		Category: &category,
	}
	if err := b.Kabangs.Create(ctx, &record); err != nil {
		err = database.WriteError(b.Failover, err)

		var conflict pkgError.ConflictError
		var unavailable pkgError.UnavailableError
		switch {
		case errors.As(err, &conflict):
			return addExists(bang)
		case errors.As(err, &unavailable):
			return addStoreUnavailable()
		default:
			logrus.WithError(err).Errorf("[COMMAND] Failed to add bang %q", bang)
			return addStoreError()
		}
	}

	b.Cache.SetFull(record)
	logrus.Infof("[COMMAND] Added bang !%s -> %s", bang, target)
	return domainSearch.RedirectOutcome(target)
}
