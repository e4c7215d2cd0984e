package db

import (
	"context"
	"path/filepath"
	"testing"
)

func TestMigrationsUpAndDown(t *testing.T) {
	ctx := context.Background()
	conn, err := Init("sqlite", filepath.Join(t.TempDir(), "goals.db"))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer func() { _ = Close(conn) }()

	if err := RunMigrations(ctx, conn.DB, "sqlite"); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}

	var count int
	err = conn.Get(&count, `SELECT COUNT(*) FROM slots`)
	if err != nil {
		t.Fatalf("slots table missing after migration: %v", err)
	}

	if err := MigrateDown(ctx, conn.DB, "sqlite"); err != nil {
		t.Fatalf("MigrateDown: %v", err)
	}

	err = conn.Get(&count, `SELECT COUNT(*) FROM slots`)
	if err == nil {
		t.Error("slots table still present after rollback")
	}
}
