package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	apperrors "github.com/medibridge/medibridge-backend/internal/pkg/errors"
	"github.com/medibridge/medibridge-backend/internal/pkg/logger"
)

// SQLiteService owns the process-wide storage engine handle. Init is
// idempotent; Close resets state so a later Init re-provisions the schema.
type SQLiteService struct {
	mu   sync.Mutex
	path string
	db   *gorm.DB
	log  *logger.Logger
}

func NewSQLiteService(path string, logg *logger.Logger) *SQLiteService {
	return &SQLiteService{path: path, log: logg.With("service", "SQLiteService")}
}

// Init opens the engine and provisions the schema exactly once per service
// lifetime. Foreign key enforcement is switched on in the DSN so every
// pooled connection gets the pragma, not just the first one.
func (s *SQLiteService) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return nil
	}

	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create database directory: %w: %v", apperrors.ErrConnection, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on", s.path)

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("open sqlite at %s: %w: %v", s.path, apperrors.ErrConnection, err)
	}

	if err := AutoMigrateAll(conn); err != nil {
		return fmt.Errorf("auto migrate sqlite schema: %w: %v", apperrors.ErrConnection, err)
	}

	s.db = conn
	s.log.Info("SQLite initialized", "path", s.path)
	return nil
}

// DB returns the engine handle. The service must have been initialized.
func (s *SQLiteService) DB() (*gorm.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, fmt.Errorf("sqlite service not initialized: %w", apperrors.ErrConnection)
	}
	return s.db, nil
}

// HealthCheck runs a trivial round trip and reports the result as a
// boolean. Every failure mode maps to false; nothing is raised.
func (s *SQLiteService) HealthCheck(ctx context.Context) bool {
	if err := s.Init(); err != nil {
		return false
	}
	conn, err := s.DB()
	if err != nil {
		return false
	}
	var one int
	if err := conn.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		return false
	}
	return one == 1
}

// Close disposes the underlying pool and resets the service so a later
// Init starts clean.
func (s *SQLiteService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	s.db = nil
	if err != nil {
		return fmt.Errorf("unwrap sqlite pool: %w", err)
	}
	return sqlDB.Close()
}
