// Package seed loads level catalogs from YAML fixtures into a store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/louisbranch/countrycapture/internal/services/capture/storage"
)

// File is the top-level fixture document.
type File struct {
	Levels []Level `yaml:"levels"`
}

// Level is one fixture level. An empty ID is assigned on apply.
type Level struct {
	ID           string       `yaml:"id"`
	CountryName  string       `yaml:"country_name"`
	CountryTitle string       `yaml:"country_title"`
	CaptureText  string       `yaml:"capture_text"`
	Hint         string       `yaml:"hint"`
	Points       int          `yaml:"points"`
	Type         string       `yaml:"type"`
	Category     string       `yaml:"category"`
	Links        []Link       `yaml:"links"`
	Completions  []Completion `yaml:"completions"`
}

// Link is a fixture reference link.
type Link struct {
	URL   string `yaml:"url"`
	Label string `yaml:"label"`
}

// Completion is a fixture team capture.
type Completion struct {
	Team        string    `yaml:"team"`
	CompletedAt time.Time `yaml:"completed_at"`
}

// Result summarizes an apply run.
type Result struct {
	Levels      int
	Completions int
	Skipped     int
	AssignedIDs map[string]string
}

// Load decodes a fixture document, rejecting unknown fields.
func Load(r io.Reader) (File, error) {
	if r == nil {
		return File{}, errors.New("seed reader is required")
	}
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var file File
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("decode seed file: %w", err)
	}
	for idx, level := range file.Levels {
		if strings.TrimSpace(level.CountryName) == "" {
			return File{}, fmt.Errorf("level %d: country_name is required", idx)
		}
		if level.Points < 0 {
			return File{}, fmt.Errorf("level %d: points must not be negative", idx)
		}
	}
	return file, nil
}

// LoadFile reads and decodes the fixture at path.
func LoadFile(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// levelNamespace scopes the name-derived ids of fixture levels without one.
var levelNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://countrycapture/levels"))

// StableID derives a level id from countryName. The same name always maps to
// the same id.
func StableID(countryName string) string {
	return uuid.NewSHA1(levelNamespace, []byte(strings.TrimSpace(countryName))).String()
}

// Apply writes every level in file to store. A level without an id reuses the
// id of a stored level with the same country name, otherwise newID assigns
// one; newID defaults to StableID. Completions already recorded are skipped,
// so applying the same file twice leaves the catalog unchanged.
func Apply(ctx context.Context, store storage.Store, file File, newID func(countryName string) string) (Result, error) {
	if store == nil {
		return Result{}, errors.New("store is required")
	}
	if newID == nil {
		newID = StableID
	}
	existing, err := store.ListLevels(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list levels: %w", err)
	}
	idsByName := make(map[string]string, len(existing))
	for _, level := range existing {
		if _, ok := idsByName[level.CountryName]; !ok {
			idsByName[level.CountryName] = level.ID
		}
	}

	result := Result{AssignedIDs: map[string]string{}}
	for _, fixture := range file.Levels {
		levelID := strings.TrimSpace(fixture.ID)
		if levelID == "" {
			levelID = idsByName[fixture.CountryName]
			if levelID == "" {
				levelID = newID(fixture.CountryName)
			}
			result.AssignedIDs[fixture.CountryName] = levelID
		}
		idsByName[fixture.CountryName] = levelID
		level := storage.Level{
			ID:           levelID,
			CountryName:  fixture.CountryName,
			CountryTitle: fixture.CountryTitle,
			CaptureText:  fixture.CaptureText,
			Hint:         fixture.Hint,
			Points:       fixture.Points,
			Type:         fixture.Type,
			Category:     fixture.Category,
		}
		for _, link := range fixture.Links {
			level.Links = append(level.Links, storage.Link{URL: link.URL, Label: link.Label})
		}
		if err := store.PutLevel(ctx, level); err != nil {
			return result, fmt.Errorf("put level %s: %w", levelID, err)
		}
		result.Levels++

		for _, completion := range fixture.Completions {
			err := store.AddCompletion(ctx, storage.Completion{
				LevelID:     levelID,
				TeamName:    completion.Team,
				CompletedAt: completion.CompletedAt,
			})
			if errors.Is(err, storage.ErrAlreadyExists) {
				result.Skipped++
				continue
			}
			if err != nil {
				return result, fmt.Errorf("add completion %s/%s: %w", levelID, completion.Team, err)
			}
			result.Completions++
		}
	}
	return result, nil
}
