package repositories

import (
	"database/sql"
	"testing"

	"github.com/desertthunder/incense/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(shared.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if _, err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestSQLiteStore(t *testing.T) {
	t.Run("Get missing key", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewSQLiteStore(db)

		value, ok, err := store.Get("absent")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok || value != "" {
			t.Errorf("expected absent key, got %q (ok=%v)", value, ok)
		}
	})

	t.Run("Set then Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewSQLiteStore(db)

		if err := store.Set("quote-date", "Mon Oct 19 2026"); err != nil {
			t.Fatalf("failed to set key: %v", err)
		}

		value, ok, err := store.Get("quote-date")
		if err != nil {
			t.Fatalf("failed to get key: %v", err)
		}
		if !ok || value != "Mon Oct 19 2026" {
			t.Errorf("expected stored date, got %q (ok=%v)", value, ok)
		}
	})

	t.Run("Set overwrites", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewSQLiteStore(db)

		for _, v := range []string{"[]", `[{"id":"a"}]`} {
			if err := store.Set("incense-sessions", v); err != nil {
				t.Fatalf("failed to set key: %v", err)
			}
		}

		value, _, err := store.Get("incense-sessions")
		if err != nil {
			t.Fatalf("failed to get key: %v", err)
		}
		if value != `[{"id":"a"}]` {
			t.Errorf("expected last write to win, got %s", value)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM kv_store").Scan(&count); err != nil {
			t.Fatalf("failed to count rows: %v", err)
		}
		if count != 1 {
			t.Errorf("expected a single row after upsert, got %d", count)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewSQLiteStore(db)

		if err := store.Set("daily-quote", "One breath at a time."); err != nil {
			t.Fatalf("failed to set key: %v", err)
		}
		if err := store.Delete("daily-quote"); err != nil {
			t.Fatalf("failed to delete key: %v", err)
		}
		if err := store.Delete("daily-quote"); err != nil {
			t.Fatalf("deleting a missing key should not fail: %v", err)
		}

		if _, ok, _ := store.Get("daily-quote"); ok {
			t.Error("expected key to be gone")
		}
	})

	t.Run("Keys", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewSQLiteStore(db)

		for key, value := range map[string]string{"quote-date": "d", "daily-quote": "quote", "incense-sessions": "[]"} {
			if err := store.Set(key, value); err != nil {
				t.Fatalf("failed to set %s: %v", key, err)
			}
		}

		entries, err := store.Keys()
		if err != nil {
			t.Fatalf("failed to list keys: %v", err)
		}

		want := []string{"daily-quote", "incense-sessions", "quote-date"}
		if len(entries) != len(want) {
			t.Fatalf("expected %d keys, got %d", len(want), len(entries))
		}
		for i, e := range entries {
			if e.Key != want[i] {
				t.Errorf("entry %d: expected %s, got %s", i, want[i], e.Key)
			}
			if e.UpdatedAt.IsZero() {
				t.Errorf("entry %s: expected updated_at to be set", e.Key)
			}
		}
		if entries[0].Size != len("quote") {
			t.Errorf("expected size %d, got %d", len("quote"), entries[0].Size)
		}
	})

	t.Run("Closed database", func(t *testing.T) {
		db := setupTestDB(t)
		store := NewSQLiteStore(db)
		db.Close()

		if _, _, err := store.Get("quote-date"); err == nil {
			t.Error("expected error reading from closed database")
		}
		if err := store.Set("quote-date", "x"); err == nil {
			t.Error("expected error writing to closed database")
		}
	})
}
