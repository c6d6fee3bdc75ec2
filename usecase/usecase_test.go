package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	domainKabang "github.com/kabang/kabang/domains/kabang"
	"github.com/kabang/kabang/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var errConnReset = errors.New("read tcp 127.0.0.1:5432: connection reset by peer")

type fakeFailover struct {
	mu           sync.Mutex
	connected    bool
	canReconnect bool
	marked       int
}

func connectedFailover() *fakeFailover {
	return &fakeFailover{connected: true, canReconnect: true}
}

func (f *fakeFailover) IsConnected(context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeFailover) Reconnect(context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.canReconnect {
		f.connected = true
	}
	return f.connected
}

func (f *fakeFailover) MarkDisconnected() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = false
	f.marked++
}

func (f *fakeFailover) Driver() string { return "sqlite" }

type staticSource struct {
	db *gorm.DB
}

func (s staticSource) DB() *gorm.DB { return s.db }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "kabang.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newKabangRepo(t *testing.T) *repository.KabangGormRepository {
	t.Helper()
	repo := repository.NewKabangGormRepository(staticSource{db: newTestDB(t)})
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func newBookmarkRepo(t *testing.T) *repository.BookmarkGormRepository {
	t.Helper()
	repo := repository.NewBookmarkGormRepository(staticSource{db: newTestDB(t)})
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func seedKabang(t *testing.T, repo domainKabang.IKabangRepository, k domainKabang.Kabang) domainKabang.Kabang {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &k))
	return k
}

// brokenRepo behaves like a store whose connection dropped mid-query.
type brokenRepo struct {
	domainKabang.IKabangRepository
}

func (brokenRepo) List(context.Context) ([]domainKabang.Kabang, error) {
	return nil, errConnReset
}

func (brokenRepo) GetByID(context.Context, int64) (domainKabang.Kabang, error) {
	return domainKabang.Kabang{}, errConnReset
}

func (brokenRepo) GetByBang(context.Context, string) (domainKabang.Kabang, error) {
	return domainKabang.Kabang{}, errConnReset
}

func (brokenRepo) GetDefault(context.Context) (domainKabang.Kabang, error) {
	return domainKabang.Kabang{}, errConnReset
}

func (brokenRepo) Create(context.Context, *domainKabang.Kabang) error {
	return errConnReset
}

func strPtr(s string) *string { return &s }
