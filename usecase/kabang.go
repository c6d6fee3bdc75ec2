package usecase

import (
	"context"
	"fmt"

	"github.com/kabang/kabang/core/database"
	domainKabang "github.com/kabang/kabang/domains/kabang"
	"github.com/kabang/kabang/pkg/bangcache"
	pkgError "github.com/kabang/kabang/pkg/error"
	"github.com/kabang/kabang/validations"
	"github.com/sirupsen/logrus"
)

type kabangService struct {
	repo     domainKabang.IKabangRepository
	failover database.Failover
	cache    *bangcache.Cache
	snapshot domainKabang.ISnapshotStore
}

// NewKabangService wires the record store, the cache and an optional snapshot
// store (nil disables snapshots).
func NewKabangService(repo domainKabang.IKabangRepository, failover database.Failover, cache *bangcache.Cache, snapshot domainKabang.ISnapshotStore) domainKabang.IKabangUsecase {
	return &kabangService{
		repo:     repo,
		failover: failover,
		cache:    cache,
		snapshot: snapshot,
	}
}

// List reads from the store, or from the cache while the store is down.
func (s *kabangService) List(ctx context.Context) ([]domainKabang.Kabang, error) {
	kabangs, err := database.WithFallbackFunc(ctx, s.failover, s.repo.List, s.cache.GetAll)
	if err != nil {
		return nil, err
	}
	if kabangs == nil {
		kabangs = []domainKabang.Kabang{}
	}
	return kabangs, nil
}

func (s *kabangService) Get(ctx context.Context, id int64) (domainKabang.Kabang, error) {
	kabang, err := database.WithFallback(ctx, s.failover, func(ctx context.Context) (*domainKabang.Kabang, error) {
		k, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &k, nil
	}, nil)
	if err != nil {
		return domainKabang.Kabang{}, err
	}
	if kabang != nil {
		return *kabang, nil
	}

	for _, cached := range s.cache.GetAll() {
		if cached.ID == id {
			return cached, nil
		}
	}
	return domainKabang.Kabang{}, pkgError.NotFoundError("kabang not found")
}

func (s *kabangService) Create(ctx context.Context, request domainKabang.CreateKabangRequest) (domainKabang.Kabang, error) {
	if err := validations.ValidateCreateKabang(ctx, request); err != nil {
		return domainKabang.Kabang{}, err
	}
	if err := database.RequireConnection(ctx, s.failover); err != nil {
		return domainKabang.Kabang{}, err
	}

	kabang := domainKabang.Kabang{
		Name:      request.Name,
		Bang:      request.Bang,
		URL:       request.URL,
		Category:  normalizeCategory(request.Category),
		IsDefault: request.IsDefault,
	}
	if err := s.repo.Create(ctx, &kabang); err != nil {
		return domainKabang.Kabang{}, database.WriteError(s.failover, err)
	}

	s.cacheWritten(nil, kabang)
	logrus.Infof("[KABANG] Created !%s -> %s", kabang.Bang, kabang.URL)
	return kabang, nil
}

func (s *kabangService) Update(ctx context.Context, id int64, request domainKabang.UpdateKabangRequest) (domainKabang.Kabang, error) {
	if err := validations.ValidateUpdateKabang(ctx, request); err != nil {
		return domainKabang.Kabang{}, err
	}
	if err := database.RequireConnection(ctx, s.failover); err != nil {
		return domainKabang.Kabang{}, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domainKabang.Kabang{}, database.WriteError(s.failover, err)
	}

	updated := existing
	if request.Name != nil {
		updated.Name = *request.Name
	}
	if request.Bang != nil {
		updated.Bang = *request.Bang
	}
	if request.URL != nil {
		updated.URL = *request.URL
	}
	if request.Category != nil {
		updated.Category = normalizeCategory(request.Category)
	}
	if request.IsDefault != nil {
		updated.IsDefault = *request.IsDefault
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return domainKabang.Kabang{}, database.WriteError(s.failover, err)
	}

	s.cacheWritten(&existing, updated)
	logrus.Infof("[KABANG] Updated !%s (id %d)", updated.Bang, updated.ID)
	return updated, nil
}

func (s *kabangService) Delete(ctx context.Context, id int64) (domainKabang.Kabang, error) {
	if err := database.RequireConnection(ctx, s.failover); err != nil {
		return domainKabang.Kabang{}, err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domainKabang.Kabang{}, database.WriteError(s.failover, err)
	}

	s.cache.Delete(deleted.Bang)
	if deleted.IsDefault {
		s.cache.ClearDefault()
	}
	logrus.Infof("[KABANG] Deleted !%s (id %d)", deleted.Bang, deleted.ID)
	return deleted, nil
}

func (s *kabangService) Export(ctx context.Context) ([]domainKabang.ExportBang, error) {
	kabangs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	bangs := make([]domainKabang.ExportBang, len(kabangs))
	for i, k := range kabangs {
		bangs[i] = domainKabang.ExportBang{
			Name:      k.Name,
			Bang:      k.Bang,
			URL:       k.URL,
			Category:  k.Category,
			IsDefault: k.IsDefault,
		}
	}
	return bangs, nil
}

// Import upserts each entry by bang. Invalid or failing entries are reported
// and skipped; entries already written stay written.
func (s *kabangService) Import(ctx context.Context, bangs []domainKabang.ExportBang) (domainKabang.ImportResult, error) {
	if err := database.RequireConnection(ctx, s.failover); err != nil {
		return domainKabang.ImportResult{}, err
	}

	result := domainKabang.ImportResult{Message: "Import completed", Errors: []string{}}
	for i, bang := range bangs {
		if err := validations.ValidateImportBang(ctx, bang); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("entry %d (%q): %v", i, bang.Bang, err))
			continue
		}

		kabang := domainKabang.Kabang{
			Name:      bang.Name,
			Bang:      bang.Bang,
			URL:       bang.URL,
			Category:  normalizeCategory(bang.Category),
			IsDefault: bang.IsDefault,
		}
		if _, err := s.repo.UpsertByBang(ctx, &kabang); err != nil {
			err = database.WriteError(s.failover, err)
			result.Errors = append(result.Errors, fmt.Sprintf("entry %d (%q): %v", i, bang.Bang, err))
			continue
		}

		s.cacheWritten(nil, kabang)
		result.Imported++
	}

	logrus.Infof("[KABANG] Imported %d of %d bangs (%d errors)", result.Imported, len(bangs), len(result.Errors))
	return result, nil
}

// WarmCache loads every record into the cache at startup. When the store is
// unreachable the last snapshot is used instead.
func (s *kabangService) WarmCache(ctx context.Context) int {
	records, err := database.WithFallback(ctx, s.failover, s.repo.List, nil)
	if err != nil {
		logrus.WithError(err).Warn("[CACHE] Warm-up from database failed")
	}

	if records != nil {
		s.cache.Replace(records, "")
		if url := defaultOf(records); url != "" {
			s.cache.SetDefault(url)
		}
		if s.snapshot != nil {
			if err := s.snapshot.Save(ctx, records); err != nil {
				logrus.WithError(err).Warn("[CACHE] Failed to publish snapshot")
			}
		}
		logrus.Infof("[CACHE] Initialized with %d bangs from database", len(records))
		return len(records)
	}

	if s.snapshot == nil {
		logrus.Warn("[CACHE] Database unavailable and no snapshot store, cache is empty")
		return 0
	}
	snapshot, err := s.snapshot.Load(ctx)
	if err != nil {
		logrus.WithError(err).Warn("[CACHE] Failed to load snapshot")
		return 0
	}
	s.cache.Replace(snapshot, "")
	if url := defaultOf(snapshot); url != "" {
		s.cache.SetDefault(url)
	}
	logrus.Infof("[CACHE] Initialized with %d bangs from snapshot", len(snapshot))
	return len(snapshot)
}

// cacheWritten mirrors a successful write into the cache. previous is the
// record as it was before an update.
func (s *kabangService) cacheWritten(previous *domainKabang.Kabang, current domainKabang.Kabang) {
	if previous != nil && previous.Bang != current.Bang {
		s.cache.Delete(previous.Bang)
	}
	s.cache.SetFull(current)

	switch {
	case current.IsDefault:
		s.cache.DemoteDefaults(current.Bang)
		s.cache.SetDefault(current.URL)
	case previous != nil && previous.IsDefault:
		s.cache.ClearDefault()
	}
}

// normalizeCategory treats an empty optional string as unset.
func normalizeCategory(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	v := *value
	return &v
}

func defaultOf(records []domainKabang.Kabang) string {
	for _, r := range records {
		if r.IsDefault {
			return r.URL
		}
	}
	return ""
}
