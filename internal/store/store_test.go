package store

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/types"
)

var testLogger = errors.NewLogger(slog.LevelError)

func sampleRecord(password string) types.UserRecord {
	return types.UserRecord{
		TargetRole: "Backend Engineer",
		Pricing:    types.PricingFree,
		Template:   "minimal",
		Password:   password,
		Resume: types.ResumeData{
			PersonalInfo: types.PersonalInfo{
				Name:  "Jane Doe",
				Role:  "Backend Engineer",
				Email: "jane@example.com",
			},
		},
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.GetUser(ctx, "missing")
	if !IsNotFound(err) {
		t.Fatalf("Expected not-found error, got %v", err)
	}

	record := sampleRecord("secret12")
	if err := s.PutUser(ctx, "jane", record); err != nil {
		t.Fatalf("PutUser failed: %v", err)
	}

	got, err := s.GetUser(ctx, "jane")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got.Password != "secret12" {
		t.Errorf("Expected stored password to round-trip, got %q", got.Password)
	}
	if got.Resume.PersonalInfo.Name != "Jane Doe" {
		t.Errorf("Expected resume name to round-trip, got %q", got.Resume.PersonalInfo.Name)
	}

	// Mutating the returned record must not affect stored state.
	got.Password = "changed"
	again, err := s.GetUser(ctx, "jane")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if again.Password != "secret12" {
		t.Error("Stored record was mutated through a returned copy")
	}

	if s.Len() != 1 {
		t.Errorf("Expected 1 record, got %d", s.Len())
	}
}

func TestMemoryStoreLastWriterWins(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.PutUser(ctx, "jane", sampleRecord("first111")); err != nil {
		t.Fatalf("PutUser failed: %v", err)
	}
	if err := s.PutUser(ctx, "jane", sampleRecord("second22")); err != nil {
		t.Fatalf("PutUser failed: %v", err)
	}

	got, err := s.GetUser(ctx, "jane")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got.Password != "second22" {
		t.Errorf("Expected last write to win, got password %q", got.Password)
	}
	if s.Len() != 1 {
		t.Errorf("Expected 1 record after overwrite, got %d", s.Len())
	}
}

func TestFirebaseStoreNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/Users/ghost.json" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		// Firebase answers missing keys with 200 and a "null" body.
		w.WriteHeader(http.StatusOK)
		if _, err := io.WriteString(w, "null"); err != nil {
			log.Printf("write: %v", err)
		}
	}))
	defer srv.Close()

	s := NewFirebaseStore(&config.StoreConfig{
		Enabled: true,
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, testLogger)

	_, err := s.GetUser(context.Background(), "ghost")
	if !IsNotFound(err) {
		t.Fatalf("Expected not-found error for null body, got %v", err)
	}
}

func TestFirebaseStoreRoundTrip(t *testing.T) {
	var mu sync.Mutex
	stored := map[string][]byte{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("auth") != "test-token" {
			t.Errorf("Expected auth token on request, got %q", r.URL.Query().Get("auth"))
		}

		mu.Lock()
		defer mu.Unlock()
		switch r.Method {
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			stored[r.URL.Path] = body
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(body)
		case http.MethodGet:
			body, ok := stored[r.URL.Path]
			w.WriteHeader(http.StatusOK)
			if !ok {
				_, _ = io.WriteString(w, "null")
				return
			}
			_, _ = w.Write(body)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer srv.Close()

	s := NewFirebaseStore(&config.StoreConfig{
		Enabled:   true,
		BaseURL:   srv.URL + "/", // trailing slash must not produce a double slash
		AuthToken: "test-token",
		Timeout:   5 * time.Second,
	}, testLogger)

	ctx := context.Background()
	record := sampleRecord("secret12")

	if err := s.PutUser(ctx, "jane", record); err != nil {
		t.Fatalf("PutUser failed: %v", err)
	}

	got, err := s.GetUser(ctx, "jane")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got.TargetRole != record.TargetRole {
		t.Errorf("Expected target role %q, got %q", record.TargetRole, got.TargetRole)
	}
	if got.Password != record.Password {
		t.Errorf("Expected password to round-trip, got %q", got.Password)
	}
}

func TestFirebaseStoreServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewFirebaseStore(&config.StoreConfig{
		Enabled: true,
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, testLogger)

	ctx := context.Background()

	if _, err := s.GetUser(ctx, "jane"); err == nil || IsNotFound(err) {
		t.Errorf("Expected store error on 500, got %v", err)
	}
	if err := s.PutUser(ctx, "jane", sampleRecord("secret12")); err == nil {
		t.Error("Expected store error on 500 write")
	}
}

func TestBackupSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "backup.json")
	b := NewBackup(path, testLogger)

	if _, err := b.Load("jane"); !IsNotFound(err) {
		t.Fatalf("Expected not-found before any save, got %v", err)
	}

	if err := b.Save("jane", sampleRecord("secret12")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := b.Save("john", sampleRecord("other456")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := b.Load("jane")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Password != "secret12" {
		t.Errorf("Expected password to round-trip through backup, got %q", got.Password)
	}

	// Overwrite keeps other entries intact.
	if err := b.Save("jane", sampleRecord("updated9")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	updated, err := b.Load("jane")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if updated.Password != "updated9" {
		t.Errorf("Expected updated password, got %q", updated.Password)
	}
	if _, err := b.Load("john"); err != nil {
		t.Errorf("Expected john to survive jane's update: %v", err)
	}
}

func TestFeedbackBoard(t *testing.T) {
	board := NewFeedbackBoard()

	if board.Len() != 0 {
		t.Fatalf("Expected empty board, got %d entries", board.Len())
	}

	first := board.Add("Alice", "alice@example.com", "Great templates", 5)
	second := board.Add("Bob", "bob@example.com", "Upload was slow", 3)

	if first.ID == "" || second.ID == "" {
		t.Error("Expected generated IDs")
	}
	if first.ID == second.ID {
		t.Error("Expected unique IDs per entry")
	}
	if first.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}

	entries := board.List()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	// Newest first.
	if entries[0].Name != "Bob" || entries[1].Name != "Alice" {
		t.Errorf("Expected newest-first ordering, got %s then %s", entries[0].Name, entries[1].Name)
	}

	// The returned slice is a copy.
	entries[0].Message = "mutated"
	if board.List()[0].Message != "Upload was slow" {
		t.Error("Board entries were mutated through a returned copy")
	}
}
