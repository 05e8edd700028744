// Package i18n resolves the request language and localized capture copy.
package i18n

import (
	"net/http"
	"strings"
	"time"

	platformi18n "github.com/louisbranch/countrycapture/internal/platform/i18n"
	"github.com/louisbranch/countrycapture/internal/services/capture/modal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the player's language preference.
	LangCookieName = "cc_lang"
)

// PageCopy holds localized text for the page shell and index.
type PageCopy struct {
	AppName           string
	LevelsTitle       string
	SearchPlaceholder string
	NoLevels          string
}

// ResolveTag determines the best language tag for the request.
// The bool reports whether the lang query param should be persisted.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return platformi18n.DefaultTag(), false
	}
	if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
		if tag, ok := platformi18n.ParseTag(value); ok {
			return tag, true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := platformi18n.ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return platformi18n.MatchTags(tags), false
		}
	}
	return platformi18n.DefaultTag(), false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// Resolve picks the request language and persists an explicit choice.
func Resolve(w http.ResponseWriter, r *http.Request) language.Tag {
	tag, persist := ResolveTag(r)
	if persist {
		SetLanguageCookie(w, tag)
	}
	return tag
}

// ModalCopy returns the modal labels for tag.
func ModalCopy(tag language.Tag) modal.Copy {
	loc := message.NewPrinter(tag)
	fallback := modal.DefaultCopy()
	return modal.Copy{
		TitlePrefix:       localize(loc, "capture.title_prefix", fallback.TitlePrefix),
		Close:             localize(loc, "capture.close", fallback.Close),
		HintHeading:       localize(loc, "capture.hint_heading", fallback.HintHeading),
		AnswerPlaceholder: localize(loc, "capture.answer_placeholder", fallback.AnswerPlaceholder),
		RequestHint:       localize(loc, "capture.request_hint", fallback.RequestHint),
		Submit:            localize(loc, "capture.submit", fallback.Submit),
		PointsLabel:       localize(loc, "capture.points_label", fallback.PointsLabel),
		StatType:          localize(loc, "capture.stat_type", fallback.StatType),
		StatCategory:      localize(loc, "capture.stat_category", fallback.StatCategory),
		StatFirstCapture:  localize(loc, "capture.stat_first_capture", fallback.StatFirstCapture),
		CompletedBy:       localize(loc, "capture.completed_by", fallback.CompletedBy),
	}
}

// Page returns the page shell copy for tag.
func Page(tag language.Tag) PageCopy {
	loc := message.NewPrinter(tag)
	return PageCopy{
		AppName:           localize(loc, "core.app_name", "Country Capture"),
		LevelsTitle:       localize(loc, "core.levels_title", "Levels"),
		SearchPlaceholder: localize(loc, "core.search_placeholder", "Search countries"),
		NoLevels:          localize(loc, "core.no_levels", "No levels match."),
	}
}

// Message localizes key, returning fallback when the catalog has no entry.
func Message(tag language.Tag, key, fallback string) string {
	return localize(message.NewPrinter(tag), key, fallback)
}

func localize(loc *message.Printer, key string, fallback string) string {
	if loc != nil && key != "" {
		value := strings.TrimSpace(loc.Sprintf(key))
		if value != "" && value != key {
			return value
		}
	}
	return fallback
}
