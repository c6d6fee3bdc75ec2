package database

import (
	"context"
	"fmt"
	"time"

	"github.com/kabang/kabang/core/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// IsPooled reports whether the driver keeps a connection pool worth probing.
// SQLite runs on a single connection and is trusted to stay up once opened.
func IsPooled(driver string) bool {
	return driver == DriverPostgres
}

// DriverName normalizes the configured driver name.
func DriverName(cfg *config.Config) string {
	if cfg.Database.Driver == "" {
		return DriverSQLite
	}
	return cfg.Database.Driver
}

func newDialector(cfg *config.Config) (gorm.Dialector, error) {
	switch DriverName(cfg) {
	case DriverPostgres:
		dsn := cfg.Database.URI
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC connect_timeout=%d",
				cfg.Database.Host,
				cfg.Database.User,
				cfg.Database.Password,
				cfg.Database.Name,
				cfg.Database.Port,
				int(cfg.Failover.ConnectTimeout.Seconds()),
			)
		}
		return postgres.Open(dsn), nil
	case DriverSQLite:
		dsn := cfg.Database.URI
		if dsn == "" {
			dsn = fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", cfg.Database.Name)
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

// NewConnector returns a Connector that opens a fresh GORM handle for cfg.
func NewConnector(cfg *config.Config) Connector {
	return func(ctx context.Context) (*gorm.DB, error) {
		return Open(ctx, cfg)
	}
}

// Open initializes a database connection and verifies it with a ping.
func Open(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	dialector, err := newDialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if cfg.App.Debug {
		logLevel = logger.Info
	}

	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database (%s): %w", DriverName(cfg), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB instance: %w", err)
	}

	if IsPooled(DriverName(cfg)) {
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
	} else {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Failover.ConnectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database (%s): %w", DriverName(cfg), err)
	}

	return db, nil
}

func closeDB(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
