// Package i18n defines supported languages and tag matching.
package i18n

import (
	"strings"

	"github.com/louisbranch/countrycapture/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
)

var supportedTags = []language.Tag{
	language.MustParse(catalog.BaseLocale),
	language.MustParse("pt-BR"),
}

var matcher = language.NewMatcher(supportedTags)

// SupportedTags returns the languages with a message catalog.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supportedTags))
	copy(out, supportedTags)
	return out
}

// DefaultTag returns the fallback language.
func DefaultTag() language.Tag {
	return supportedTags[0]
}

// ParseTag parses value and reports whether it maps to a supported tag.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTag(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return DefaultTag(), false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultTag(), false
	}
	return supportedTags[index], true
}

// MatchTags returns the best supported tag for a preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supportedTags[index]
}
