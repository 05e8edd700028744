package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/countrycapture/internal/services/capture/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), ""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "capture.db")
	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}
}

func TestPutGetLevelRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	input := storage.Level{
		ID:           "42",
		CountryName:  "Chile",
		CountryTitle: "South America",
		CaptureText:  "Find the capital.",
		Hint:         "It starts with S.",
		Points:       120,
		Type:         "nation",
		Category:     "standard",
		Links: []storage.Link{
			{URL: "https://example.com/a", Label: "first"},
			{URL: "https://example.com/b"},
		},
	}
	if err := store.PutLevel(context.Background(), input); err != nil {
		t.Fatalf("put level: %v", err)
	}

	got, err := store.GetLevel(context.Background(), "42")
	if err != nil {
		t.Fatalf("get level: %v", err)
	}
	if diff := cmp.Diff(input, got); diff != "" {
		t.Fatalf("level mismatch (-want +got):\n%s", diff)
	}
}

func TestPutLevelReplacesExisting(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	first := storage.Level{ID: "7", CountryName: "Peru", Points: 10, Links: []storage.Link{{URL: "https://old"}}}
	if err := store.PutLevel(ctx, first); err != nil {
		t.Fatalf("put first: %v", err)
	}
	second := storage.Level{ID: "7", CountryName: "Peru", Points: 30}
	if err := store.PutLevel(ctx, second); err != nil {
		t.Fatalf("put second: %v", err)
	}

	got, err := store.GetLevel(ctx, "7")
	if err != nil {
		t.Fatalf("get level: %v", err)
	}
	if got.Points != 30 {
		t.Fatalf("points = %d, want 30", got.Points)
	}
	if len(got.Links) != 0 {
		t.Fatalf("links = %v, want none", got.Links)
	}
}

func TestPutLevelValidates(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	tests := []storage.Level{
		{CountryName: "Chile"},
		{ID: "1"},
		{ID: "1", CountryName: "Chile", Points: -1},
	}
	for _, level := range tests {
		if err := store.PutLevel(context.Background(), level); err == nil {
			t.Fatalf("expected validation error for %+v", level)
		}
	}
}

func TestGetLevelNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.GetLevel(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListLevelsOrdersByCountryName(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	for _, level := range []storage.Level{
		{ID: "3", CountryName: "Uruguay"},
		{ID: "1", CountryName: "Argentina"},
		{ID: "2", CountryName: "Chile"},
	} {
		if err := store.PutLevel(ctx, level); err != nil {
			t.Fatalf("put level: %v", err)
		}
	}

	levels, err := store.ListLevels(ctx)
	if err != nil {
		t.Fatalf("list levels: %v", err)
	}
	var names []string
	for _, level := range levels {
		names = append(names, level.CountryName)
	}
	if diff := cmp.Diff([]string{"Argentina", "Chile", "Uruguay"}, names); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestCompletionsListOldestFirst(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	if err := store.PutLevel(ctx, storage.Level{ID: "42", CountryName: "Chile"}); err != nil {
		t.Fatalf("put level: %v", err)
	}
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	for _, c := range []storage.Completion{
		{LevelID: "42", TeamName: "bob", CompletedAt: base.Add(time.Minute)},
		{LevelID: "42", TeamName: "alice", CompletedAt: base},
		{LevelID: "42", TeamName: "carol", CompletedAt: base.Add(time.Hour)},
	} {
		if err := store.AddCompletion(ctx, c); err != nil {
			t.Fatalf("add completion: %v", err)
		}
	}

	got, err := store.ListCompletions(ctx, "42")
	if err != nil {
		t.Fatalf("list completions: %v", err)
	}
	var teams []string
	for _, c := range got {
		teams = append(teams, c.TeamName)
	}
	if diff := cmp.Diff([]string{"alice", "bob", "carol"}, teams); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if !got[0].CompletedAt.Equal(base) {
		t.Fatalf("completed_at = %v, want %v", got[0].CompletedAt, base)
	}
}

func TestAddCompletionRejectsDuplicateTeam(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	if err := store.PutLevel(ctx, storage.Level{ID: "42", CountryName: "Chile"}); err != nil {
		t.Fatalf("put level: %v", err)
	}
	completion := storage.Completion{LevelID: "42", TeamName: "alice"}
	if err := store.AddCompletion(ctx, completion); err != nil {
		t.Fatalf("add completion: %v", err)
	}
	if err := store.AddCompletion(ctx, completion); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestAddCompletionRequiresKnownLevel(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	err := store.AddCompletion(context.Background(), storage.Completion{LevelID: "nope", TeamName: "alice"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestStoreRejectsCancelledContext(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.ListLevels(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestNilStoreIsNotConfigured(t *testing.T) {
	t.Parallel()

	var store *Store
	if _, err := store.GetLevel(context.Background(), "1"); err == nil {
		t.Fatal("expected error from nil store")
	}
	if err := store.Close(); err != nil {
		t.Fatalf("nil Close() = %v", err)
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "capture.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
