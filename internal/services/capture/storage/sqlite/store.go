// Package sqlite provides a SQLite-backed level catalog.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/countrycapture/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/countrycapture/internal/services/capture/storage"
	"github.com/louisbranch/countrycapture/internal/services/capture/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists the level catalog in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite catalog and applies embedded migrations. The parent
// directory is created when missing.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	dsn := "file:" + cleanPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// PutLevel inserts or replaces one level and its links.
func (s *Store) PutLevel(ctx context.Context, level storage.Level) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	levelID := strings.TrimSpace(level.ID)
	countryName := strings.TrimSpace(level.CountryName)
	if levelID == "" {
		return fmt.Errorf("level id is required")
	}
	if countryName == "" {
		return fmt.Errorf("country name is required")
	}
	if level.Points < 0 {
		return fmt.Errorf("points must not be negative")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put level: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO levels (
		   id, country_name, country_title, capture_text, hint,
		   points, type, category, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   country_name = excluded.country_name,
		   country_title = excluded.country_title,
		   capture_text = excluded.capture_text,
		   hint = excluded.hint,
		   points = excluded.points,
		   type = excluded.type,
		   category = excluded.category,
		   updated_at = excluded.updated_at`,
		levelID,
		countryName,
		level.CountryTitle,
		level.CaptureText,
		level.Hint,
		level.Points,
		level.Type,
		level.Category,
		toMillis(time.Now()),
	); err != nil {
		return fmt.Errorf("put level: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM level_links WHERE level_id = ?`, levelID); err != nil {
		return fmt.Errorf("clear level links: %w", err)
	}
	for position, link := range level.Links {
		url := strings.TrimSpace(link.URL)
		if url == "" {
			continue
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO level_links (level_id, position, url, label) VALUES (?, ?, ?, ?)`,
			levelID,
			position,
			url,
			strings.TrimSpace(link.Label),
		); err != nil {
			return fmt.Errorf("put level link: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put level: %w", err)
	}
	return nil
}

// GetLevel returns one level by ID.
func (s *Store) GetLevel(ctx context.Context, levelID string) (storage.Level, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Level{}, err
	}
	levelID = strings.TrimSpace(levelID)
	if levelID == "" {
		return storage.Level{}, fmt.Errorf("level id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, country_name, country_title, capture_text, hint,
		        points, type, category
		   FROM levels
		  WHERE id = ?`,
		levelID,
	)
	level, err := scanLevel(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Level{}, storage.ErrNotFound
		}
		return storage.Level{}, fmt.Errorf("get level: %w", err)
	}
	links, err := s.listLinks(ctx, levelID)
	if err != nil {
		return storage.Level{}, err
	}
	level.Links = links
	return level, nil
}

// ListLevels returns every level ordered by country name, without links.
func (s *Store) ListLevels(ctx context.Context) ([]storage.Level, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, country_name, country_title, capture_text, hint,
		        points, type, category
		   FROM levels
		  ORDER BY country_name ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	defer rows.Close()

	var levels []storage.Level
	for rows.Next() {
		level, err := scanLevel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan level: %w", err)
		}
		levels = append(levels, level)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate levels: %w", err)
	}
	return levels, nil
}

// AddCompletion records a team capture of a level.
func (s *Store) AddCompletion(ctx context.Context, completion storage.Completion) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	levelID := strings.TrimSpace(completion.LevelID)
	teamName := strings.TrimSpace(completion.TeamName)
	if levelID == "" {
		return fmt.Errorf("level id is required")
	}
	if teamName == "" {
		return fmt.Errorf("team name is required")
	}
	completedAt := completion.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now()
	}
	if _, err := s.GetLevel(ctx, levelID); err != nil {
		return err
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO completions (level_id, team_name, completed_at) VALUES (?, ?, ?)`,
		levelID,
		teamName,
		toMillis(completedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("add completion: %w", err)
	}
	return nil
}

// ListCompletions returns completions for a level, oldest first.
func (s *Store) ListCompletions(ctx context.Context, levelID string) ([]storage.Completion, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	levelID = strings.TrimSpace(levelID)
	if levelID == "" {
		return nil, fmt.Errorf("level id is required")
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT level_id, team_name, completed_at
		   FROM completions
		  WHERE level_id = ?
		  ORDER BY completed_at ASC, rowid ASC`,
		levelID,
	)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer rows.Close()

	var completions []storage.Completion
	for rows.Next() {
		var completion storage.Completion
		var completedAt int64
		if err := rows.Scan(&completion.LevelID, &completion.TeamName, &completedAt); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		completion.CompletedAt = fromMillis(completedAt)
		completions = append(completions, completion)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completions: %w", err)
	}
	return completions, nil
}

func (s *Store) listLinks(ctx context.Context, levelID string) ([]storage.Link, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT url, label FROM level_links WHERE level_id = ? ORDER BY position ASC`,
		levelID,
	)
	if err != nil {
		return nil, fmt.Errorf("list level links: %w", err)
	}
	defer rows.Close()

	var links []storage.Link
	for rows.Next() {
		var link storage.Link
		if err := rows.Scan(&link.URL, &link.Label); err != nil {
			return nil, fmt.Errorf("scan level link: %w", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate level links: %w", err)
	}
	return links, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLevel(row rowScanner) (storage.Level, error) {
	var level storage.Level
	err := row.Scan(
		&level.ID,
		&level.CountryName,
		&level.CountryTitle,
		&level.CaptureText,
		&level.Hint,
		&level.Points,
		&level.Type,
		&level.Category,
	)
	return level, err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ storage.Store = (*Store)(nil)
