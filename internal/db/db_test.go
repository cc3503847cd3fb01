package db

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpenSQLiteCreatesParentDirAndTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "portfolio.db")

	gdb, err := Open(context.Background(), Options{Driver: DriverSQLite, Path: path})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	defer Close(gdb)

	for _, model := range Models() {
		if !gdb.Migrator().HasTable(model) {
			t.Fatalf("expected table for %T to exist", model)
		}
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), Options{Driver: "oracle"}); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestOpenPostgresRequiresURL(t *testing.T) {
	if _, err := Open(context.Background(), Options{Driver: DriverPostgres}); err == nil {
		t.Fatalf("expected error when DATABASE_URL is missing")
	}
}
