package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tracer/internal/store"
	"tracer/internal/store/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

type SqliteStore struct {
	db *gorm.DB
}

func NewSqliteStore(path string) (*SqliteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&cache=shared", path)
	// CGO_ENABLED=0 builds have no mattn/go-sqlite3; route through the
	// pure-Go modernc.org/sqlite driver registered as "sqlite".
	db, err := gorm.Open(&sqlite.Dialector{DriverName: "sqlite", DSN: dsn}, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}
	return newSqliteStore(db)
}

func NewSqliteStoreFromDB(db *gorm.DB) (*SqliteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("gorm db 不能为空")
	}
	return newSqliteStore(db)
}

func newSqliteStore(db *gorm.DB) (*SqliteStore, error) {
	models := []interface{}{
		&model.TraceRunModel{},
		&model.ExposureModel{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(2)
		sqlDB.SetMaxIdleConns(2)
	}
	return &SqliteStore{db: db}, nil
}

func (s *SqliteStore) Runs() store.RunRepository {
	return NewRunRepo(s.db)
}

func (s *SqliteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
