package health

import (
	"context"
	"time"
)

type Status string

const (
	StatusOk       Status = "ok"
	StatusDegraded Status = "degraded"
)

type DatabaseStatus struct {
	Type      string `json:"type"`
	Connected bool   `json:"connected"`
}

type CacheStatus struct {
	Bangs int `json:"bangs"`
}

type HealthReport struct {
	Status    Status         `json:"status"`
	Database  DatabaseStatus `json:"database"`
	Cache     CacheStatus    `json:"cache"`
	StartedAt time.Time      `json:"started_at"`
	Uptime    string         `json:"uptime"`
	// Settings is only filled in debug mode.
	Settings  map[string]any `json:"settings,omitempty"`
}

type IHealthUsecase interface {
	Check(ctx context.Context) HealthReport
}
