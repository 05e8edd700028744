// Package storage defines the level catalog the capture host reads view
// state from.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested level is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a completion is already recorded.
	ErrAlreadyExists = errors.New("record already exists")
)

// Link is one reference attached to a level prompt.
type Link struct {
	URL   string
	Label string
}

// Level is one capturable country.
type Level struct {
	ID           string
	CountryName  string
	CountryTitle string
	CaptureText  string
	Links        []Link
	Hint         string
	Points       int
	Type         string
	Category     string
}

// Completion records a team that captured a level.
type Completion struct {
	LevelID     string
	TeamName    string
	CompletedAt time.Time
}

// LevelStore reads and seeds levels.
type LevelStore interface {
	GetLevel(ctx context.Context, levelID string) (Level, error)
	ListLevels(ctx context.Context) ([]Level, error)
	PutLevel(ctx context.Context, level Level) error
}

// CompletionStore reads and seeds completions.
type CompletionStore interface {
	// ListCompletions returns completions for a level, oldest first.
	ListCompletions(ctx context.Context, levelID string) ([]Completion, error)
	AddCompletion(ctx context.Context, completion Completion) error
}

// Store is the full catalog contract.
type Store interface {
	LevelStore
	CompletionStore
	Close() error
}
