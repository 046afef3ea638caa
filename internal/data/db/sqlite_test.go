package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	apperrors "github.com/medibridge/medibridge-backend/internal/pkg/errors"
	"github.com/medibridge/medibridge-backend/internal/pkg/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	logg, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return logg
}

func TestSQLiteServiceLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "medibridge.db")
	svc := NewSQLiteService(path, newTestLogger(t))
	ctx := context.Background()

	if _, err := svc.DB(); !errors.Is(err, apperrors.ErrConnection) {
		t.Fatalf("DB before Init: expected ErrConnection, got %v", err)
	}

	if err := svc.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	// A second Init is a no-op on the same handle.
	if err := svc.Init(); err != nil {
		t.Fatalf("Init again: %v", err)
	}

	conn, err := svc.DB()
	if err != nil {
		t.Fatalf("DB: %v", err)
	}
	if !conn.Migrator().HasTable("conditions") {
		t.Fatalf("expected conditions table after Init")
	}
	if !conn.Migrator().HasTable("disease_symptom_associations") {
		t.Fatalf("expected disease_symptom_associations table after Init")
	}

	if !svc.HealthCheck(ctx) {
		t.Fatalf("HealthCheck: expected true")
	}

	if err := svc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := svc.DB(); !errors.Is(err, apperrors.ErrConnection) {
		t.Fatalf("DB after Close: expected ErrConnection, got %v", err)
	}

	// HealthCheck re-initializes after Close.
	if !svc.HealthCheck(ctx) {
		t.Fatalf("HealthCheck after Close: expected true")
	}
}

func TestSQLiteServiceHealthCheckBadPath(t *testing.T) {
	// A directory path cannot be opened as a database file.
	svc := NewSQLiteService(t.TempDir(), newTestLogger(t))
	if svc.HealthCheck(context.Background()) {
		t.Fatalf("HealthCheck: expected false for unopenable path")
	}
}
