package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileStore(t *testing.T) {
	t.Run("Load Missing File Returns Nil", func(t *testing.T) {
		s := NewFileStore(filepath.Join(t.TempDir(), "token.json"))

		record, err := s.Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if record != nil {
			t.Errorf("expected nil record, got %+v", record)
		}
	})

	t.Run("Save Then Load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "token.json")
		s := NewFileStore(path)

		record, err := ParseProviderResponse([]byte(`{"access_token":"at","refresh_token":"rt","expires_in":60}`), time.Unix(1000, 0))
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
		if loaded.AccessToken != "at" || loaded.RefreshToken != "rt" {
			t.Errorf("unexpected tokens: %q / %q", loaded.AccessToken, loaded.RefreshToken)
		}
		if loaded.ExpiresAt != 1060 {
			t.Errorf("expected expires_at 1060, got %d", loaded.ExpiresAt)
		}
	})

	t.Run("Save Restricts File Permissions", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		s := NewFileStore(path)

		record, _ := ParseProviderResponse([]byte(`{"access_token":"at"}`), time.Unix(0, 0))
		if err := s.Save(record); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("expected permissions 0600, got %o", perm)
		}
	})

	t.Run("Delete Is Idempotent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		s := NewFileStore(path)

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

		record2, err := s.Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if record2 != nil {
			t.Error("expected nil record after delete")
		}
	})

	t.Run("Load Corrupt File Returns Error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		if err := os.WriteFile(path, []byte("{corrupt"), 0600); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if _, err := NewFileStore(path).Load(); err == nil {
			t.Error("expected error for corrupt file")
		}
	})
}
