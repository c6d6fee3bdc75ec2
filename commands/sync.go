package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/kabang/kabang/core/database"
	domainKabang "github.com/kabang/kabang/domains/kabang"
	domainSearch "github.com/kabang/kabang/domains/search"
	"github.com/sirupsen/logrus"
)

// sync reloads every record into a staging slice and swaps it into the cache
// only once the load succeeded, so a failed run leaves the cache untouched.
func (b *builtins) sync(ctx context.Context, _ string) domainSearch.Outcome {
	log := logrus.WithField("run_id", uuid.NewString())
	log.Info("[COMMAND] Sync started")

	// List never returns a nil slice on success, so nil means the fallback fired.
	records, err := database.WithFallback(ctx, b.Failover, b.Kabangs.List, nil)
	if err != nil {
		log.WithError(err).Error("[COMMAND] Sync failed")
		return syncError()
	}
	if records == nil {
		log.Warn("[COMMAND] Sync aborted, database unavailable")
		return syncError()
	}

	b.Cache.Replace(records, defaultURL(records))
	log.WithField("count", len(records)).Info("[COMMAND] Sync completed")

	if b.Snapshot != nil {
		if err := b.Snapshot.Save(ctx, records); err != nil {
			log.WithError(err).Warn("[COMMAND] Failed to publish snapshot")
		}
	}
	return syncSuccess(len(records))
}

func defaultURL(records []domainKabang.Kabang) string {
	for _, record := range records {
		if record.IsDefault && record.URL != "" {
			return record.URL
		}
	}
	return ""
}
