package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestParseTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "pt-BR", want: "pt-BR", wantOK: true},
		{in: "pt", want: "pt-BR", wantOK: true},
		{in: "en", want: "en-US", wantOK: true},
		{in: "", want: "en-US", wantOK: false},
		{in: "not a tag!", want: "en-US", wantOK: false},
	}
	for _, tc := range tests {
		got, ok := ParseTag(tc.in)
		if got.String() != tc.want || ok != tc.wantOK {
			t.Fatalf("ParseTag(%q) = %s, %v; want %s, %v", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestMatchTagsFallsBackToDefault(t *testing.T) {
	t.Parallel()

	if got := MatchTags(nil); got != DefaultTag() {
		t.Fatalf("MatchTags(nil) = %s", got)
	}
	if got := MatchTags([]language.Tag{language.MustParse("pt-PT")}); got.String() != "pt-BR" {
		t.Fatalf("MatchTags(pt-PT) = %s", got)
	}
}

func TestSupportedTagsReturnsCopy(t *testing.T) {
	t.Parallel()

	tags := SupportedTags()
	tags[0] = language.Japanese
	if DefaultTag().String() != "en-US" {
		t.Fatalf("SupportedTags leaked internal slice")
	}
}
