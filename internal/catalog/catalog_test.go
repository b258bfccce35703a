package catalog

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"camrec/internal/config"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "recordings")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.CatalogDir = filepath.Join(base, "catalog")

	store, err := Open(&cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestInsertResolvesDestination(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	entry, err := store.Insert(ctx, "team_standup-recording", "mp4")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if entry.ID == 0 {
		t.Fatal("entry has no id")
	}
	if !strings.HasPrefix(entry.URI, "camrec://recordings/") {
		t.Errorf("URI = %q, want camrec:// scheme", entry.URI)
	}
	if !strings.HasSuffix(entry.Path, ".mp4") {
		t.Errorf("Path = %q, want .mp4 suffix", entry.Path)
	}
	if entry.DisplayName != "Team Standup Recording" {
		t.Errorf("DisplayName = %q, want title-cased", entry.DisplayName)
	}
	if entry.Status != StatusPending {
		t.Errorf("Status = %s, want pending", entry.Status)
	}
}

func TestFinalizeStampsOutcome(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	ok, err := store.Insert(ctx, "good", "mp4")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	bad, err := store.Insert(ctx, "bad", "mp4")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := store.Finalize(ctx, ok.ID, 4096, 2*time.Second, ""); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if err := store.Finalize(ctx, bad.ID, 0, 0, "encoder exploded"); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	got, err := store.GetByID(ctx, ok.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != StatusComplete || got.Bytes != 4096 || got.DurationMS != 2000 {
		t.Fatalf("complete entry = %+v", got)
	}

	got, err = store.GetByID(ctx, bad.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != StatusFailed || got.Error != "encoder exploded" {
		t.Fatalf("failed entry = %+v", got)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	first, err := store.Insert(ctx, "first", "mp4")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := store.Insert(ctx, "second", "mp4"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := store.Finalize(ctx, first.ID, 1, time.Second, ""); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("List returned %d entries, want 2", len(all))
	}

	pending, err := store.List(ctx, StatusPending)
	if err != nil {
		t.Fatalf("List pending: %v", err)
	}
	if len(pending) != 1 || pending[0].DisplayName != "Second" {
		t.Fatalf("pending = %+v, want only the second entry", pending)
	}
}

func TestGetByIDMissingReturnsNil(t *testing.T) {
	store := newStore(t)
	entry, err := store.GetByID(context.Background(), 9999)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if entry != nil {
		t.Fatalf("entry = %+v, want nil", entry)
	}
}

func TestOpenRejectsSecondOpener(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "recordings")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.CatalogDir = filepath.Join(base, "catalog")

	first, err := Open(&cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer first.Close()

	if _, err := Open(&cfg); err == nil {
		t.Fatal("second Open succeeded while the catalog was locked")
	}

	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	second, err := Open(&cfg)
	if err != nil {
		t.Fatalf("Open after close: %v", err)
	}
	_ = second.Close()
}

func TestDisplayTitle(t *testing.T) {
	cases := map[string]string{
		"weekly_sync":        "Weekly Sync",
		"demo-day.take2":     "Demo Day Take2",
		"  already  spaced ": "Already Spaced",
		"":                   "",
	}
	for input, want := range cases {
		if got := DisplayTitle(input); got != want {
			t.Errorf("DisplayTitle(%q) = %q, want %q", input, got, want)
		}
	}
}
