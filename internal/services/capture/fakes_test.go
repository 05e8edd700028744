package capture

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/louisbranch/countrycapture/internal/services/capture/storage"
)

type fakeStore struct {
	mu          sync.Mutex
	levels      map[string]storage.Level
	completions map[string][]storage.Completion
	err         error
}

func newFakeStore(levels ...storage.Level) *fakeStore {
	store := &fakeStore{
		levels:      map[string]storage.Level{},
		completions: map[string][]storage.Completion{},
	}
	for _, level := range levels {
		store.levels[level.ID] = level
	}
	return store
}

func (s *fakeStore) GetLevel(_ context.Context, levelID string) (storage.Level, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return storage.Level{}, s.err
	}
	level, ok := s.levels[levelID]
	if !ok {
		return storage.Level{}, storage.ErrNotFound
	}
	return level, nil
}

func (s *fakeStore) ListLevels(context.Context) ([]storage.Level, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]storage.Level, 0, len(s.levels))
	for _, level := range s.levels {
		out = append(out, level)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CountryName < out[j].CountryName })
	return out, nil
}

func (s *fakeStore) PutLevel(_ context.Context, level storage.Level) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels[level.ID] = level
	return nil
}

func (s *fakeStore) ListCompletions(_ context.Context, levelID string) ([]storage.Completion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]storage.Completion(nil), s.completions[levelID]...), nil
}

func (s *fakeStore) AddCompletion(_ context.Context, completion storage.Completion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.levels[completion.LevelID]; !ok {
		return storage.ErrNotFound
	}
	s.completions[completion.LevelID] = append(s.completions[completion.LevelID], completion)
	return nil
}

func (s *fakeStore) Close() error { return nil }

func chileLevel() storage.Level {
	return storage.Level{
		ID:           "42",
		CountryName:  "Chile",
		CountryTitle: "South America",
		CaptureText:  "Name the capital.",
		Links: []storage.Link{
			{URL: "https://example.com/chile", Label: "atlas"},
		},
		Hint:     "It starts with S.",
		Points:   120,
		Type:     "nation",
		Category: "standard",
	}
}

func seededStore() *fakeStore {
	store := newFakeStore(
		chileLevel(),
		storage.Level{ID: "7", CountryName: "Peru", CountryTitle: "Andes", Points: 80},
		storage.Level{ID: "9", CountryName: "Argentina", CountryTitle: "Pampas", Points: 60},
	)
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	store.completions["42"] = []storage.Completion{
		{LevelID: "42", TeamName: "alice", CompletedAt: base},
		{LevelID: "42", TeamName: "bob", CompletedAt: base.Add(time.Minute)},
	}
	return store
}

var _ storage.Store = (*fakeStore)(nil)
