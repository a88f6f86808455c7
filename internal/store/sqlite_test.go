package store

import (
	"testing"
	"time"

	"github.com/moodify-app/moodify/internal/shared"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return NewSQLiteStore(db)
}

func TestSQLiteStore(t *testing.T) {
	t.Run("Load Empty Table Returns Nil", func(t *testing.T) {
		s := newTestStore(t)

		record, err := s.Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if record != nil {
			t.Errorf("expected nil record, got %+v", record)
		}
	})

	t.Run("Save Then Load", func(t *testing.T) {
		s := newTestStore(t)

		record, err := ParseProviderResponse([]byte(`{"access_token":"at","refresh_token":"rt","expires_in":120,"token_type":"Bearer"}`), time.Unix(5000, 0))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if err := s.Save(record); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		loaded, err := s.Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if loaded == nil {
			t.Fatal("expected record, got nil")
		}
		if loaded.AccessToken != "at" {
			t.Errorf("expected access token at, got %q", loaded.AccessToken)
		}
		if loaded.ExpiresAt != 5120 {
			t.Errorf("expected expires_at 5120, got %d", loaded.ExpiresAt)
		}
	})

	t.Run("Save Replaces Previous Record", func(t *testing.T) {
		s := newTestStore(t)

		first, _ := ParseProviderResponse([]byte(`{"access_token":"first"}`), time.Unix(0, 0))
		second, _ := ParseProviderResponse([]byte(`{"access_token":"second"}`), time.Unix(0, 0))

		if err := s.Save(first); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := s.Save(second); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		loaded, err := s.Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if loaded.AccessToken != "second" {
			t.Errorf("expected access token second, got %q", loaded.AccessToken)
		}
	})

	t.Run("Delete Is Idempotent", func(t *testing.T) {
		s := newTestStore(t)

		record, _ := ParseProviderResponse([]byte(`{"access_token":"at"}`), time.Unix(0, 0))
		if err := s.Save(record); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if err := s.Delete(); err != nil {
			t.Fatalf("first delete: expected no error, got %v", err)
		}
		if err := s.Delete(); err != nil {
			t.Fatalf("second delete: expected no error, got %v", err)
		}

		loaded, err := s.Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if loaded != nil {
			t.Error("expected nil record after delete")
		}
	})
}
