package icons

import "strings"

const lucideSymbolPrefix = "lucide-"

var lucideIconNames = map[ID]string{
	Close:  "x",
	Hint:   "lightbulb",
	Submit: "send",
	Points: "trophy",
}

var lucidePaths = map[string][]string{
	"x": {"M18 6 6 18", "m6 6 12 12"},
	"lightbulb": {
		"M15 14c.2-1 .7-1.7 1.5-2.5 1-.9 1.5-2.2 1.5-3.5A6 6 0 0 0 6 8c0 1 .2 2.2 1.5 3.5.7.7 1.3 1.5 1.5 2.5",
		"M9 18h6",
		"M10 22h4",
	},
	"send": {
		"M14.536 21.686a.5.5 0 0 0 .937-.024l6.5-19a.496.496 0 0 0-.635-.635l-19 6.5a.5.5 0 0 0-.024.937l7.93 3.18a2 2 0 0 1 1.112 1.11z",
		"m21.854 2.147-10.94 10.939",
	},
	"trophy": {
		"M6 9H4.5a2.5 2.5 0 0 1 0-5H6",
		"M18 9h1.5a2.5 2.5 0 0 0 0-5H18",
		"M4 22h16",
		"M18 2H6v7a6 6 0 0 0 12 0V2Z",
	},
	"sparkle": {
		"M9.937 15.5A2 2 0 0 0 8.5 14.063l-6.135-1.582a.5.5 0 0 1 0-.962L8.5 9.936A2 2 0 0 0 9.937 8.5l1.582-6.135a.5.5 0 0 1 .963 0L14.063 8.5A2 2 0 0 0 15.5 9.937l6.135 1.581a.5.5 0 0 1 0 .964L15.5 14.063a2 2 0 0 0-1.437 1.437l-1.582 6.135a.5.5 0 0 1-.963 0z",
	},
}

var lucideSprite = buildSprite()

// LucideName returns the Lucide icon name for a core icon identifier.
func LucideName(id ID) (string, bool) {
	name, ok := lucideIconNames[id]
	return name, ok
}

// LucideNameOrDefault provides a stable Lucide name even when the icon ID is unknown.
func LucideNameOrDefault(id ID) string {
	if name, ok := lucideIconNames[id]; ok {
		return name
	}
	return "sparkle"
}

// LucideSymbolID returns the sprite symbol ID for a Lucide icon name.
func LucideSymbolID(name string) string {
	return lucideSymbolPrefix + name
}

// Href returns the fragment reference for id's sprite symbol.
func Href(id ID) string {
	return "#" + LucideSymbolID(LucideNameOrDefault(id))
}

// LucideSprite returns the SVG sprite markup for core Lucide icons.
func LucideSprite() string {
	return lucideSprite
}

func buildSprite() string {
	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" style="display:none">`)
	names := []string{"x", "lightbulb", "send", "trophy", "sparkle"}
	for _, name := range names {
		b.WriteString(`<symbol id="`)
		b.WriteString(LucideSymbolID(name))
		b.WriteString(`" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round">`)
		for _, d := range lucidePaths[name] {
			b.WriteString(`<path d="`)
			b.WriteString(d)
			b.WriteString(`"/>`)
		}
		b.WriteString(`</symbol>`)
	}
	b.WriteString(`</svg>`)
	return b.String()
}
