package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	domainKabang "github.com/kabang/kabang/domains/kabang"
	"github.com/kabang/kabang/infrastructure/valkey"
	"github.com/sirupsen/logrus"
)

type snapshotPayload struct {
	SavedAt time.Time             `json:"saved_at"`
	Bangs   []domainKabang.Kabang `json:"bangs"`
}

// ValkeySnapshotStore keeps the last loaded record set under a single key so
// every instance sharing the Valkey server can warm its cache from it.
type ValkeySnapshotStore struct {
	client *valkey.Client
	key    string
}

func NewValkeySnapshotStore(client *valkey.Client) *ValkeySnapshotStore {
	return &ValkeySnapshotStore{
		client: client,
		key:    client.Key("snapshot", "bangs"),
	}
}

func (s *ValkeySnapshotStore) Save(ctx context.Context, kabangs []domainKabang.Kabang) error {
	data, err := json.Marshal(snapshotPayload{SavedAt: time.Now().UTC(), Bangs: kabangs})
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := s.client.SetString(ctx, s.key, string(data), 0); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	logrus.Debugf("[SNAPSHOT] Saved %d bangs to %s", len(kabangs), s.key)
	return nil
}

// Load returns the stored snapshot, or nil when none was saved yet.
func (s *ValkeySnapshotStore) Load(ctx context.Context) ([]domainKabang.Kabang, error) {
	raw, found, err := s.client.GetString(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if !found {
		return nil, nil
	}

	var payload snapshotPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	logrus.Debugf("[SNAPSHOT] Loaded %d bangs saved at %s", len(payload.Bangs), payload.SavedAt.Format(time.RFC3339))
	return payload.Bangs, nil
}
