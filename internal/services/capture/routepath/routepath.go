// Package routepath defines capture service URL paths.
package routepath

import (
	"net/url"
	"strings"

	"github.com/louisbranch/countrycapture/internal/services/capture/modal"
)

const (
	// Root is the level index page.
	Root = "/"
	// LevelsPrefix prefixes every level route.
	LevelsPrefix = "/levels/"
	// Healthz is the liveness probe.
	Healthz = "/healthz"
	// Static serves embedded assets.
	Static = "/static/"
)

// Route patterns for http.ServeMux.
const (
	PatternIndex  = "GET /{$}"
	PatternModal  = "GET /levels/{levelID}/modal"
	PatternClose  = "POST /levels/{levelID}/close"
	PatternHint   = "POST /levels/{levelID}/hint"
	PatternAnswer = "POST /levels/{levelID}/answer"
	PatternHealth = "GET /healthz"
)

// Modal returns the modal URL for levelID.
func Modal(levelID string) string {
	return levelPath(levelID, "modal")
}

// Close returns the close-signal URL for levelID.
func Close(levelID string) string {
	return levelPath(levelID, "close")
}

// Hint returns the request-hint URL for levelID.
func Hint(levelID string) string {
	return levelPath(levelID, "hint")
}

// Answer returns the submit-answer URL for levelID.
func Answer(levelID string) string {
	return levelPath(levelID, "answer")
}

// Actions returns the modal control endpoints for levelID.
func Actions(levelID string) modal.Actions {
	return modal.Actions{
		CloseURL:  Close(levelID),
		HintURL:   Hint(levelID),
		SubmitURL: Answer(levelID),
	}
}

func levelPath(levelID, action string) string {
	return LevelsPrefix + url.PathEscape(strings.TrimSpace(levelID)) + "/" + action
}
