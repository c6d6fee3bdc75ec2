package cache

import (
	"context"

	domainSearch "github.com/kabang/kabang/domains/search"
)

type CacheStats struct {
	Entries          int    `json:"entries"`
	LiveEntries      int    `json:"live_entries"`
	TTL              string `json:"ttl"`
	HasDefault       bool   `json:"has_default"`
	PermanentDefault bool   `json:"permanent_default"`
}

type ICacheUsecase interface {
	GetStats(ctx context.Context) (CacheStats, error)
	Clear(ctx context.Context) error
	Sync(ctx context.Context) (domainSearch.Outcome, error)
}
