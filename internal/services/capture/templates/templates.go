// Package templates renders the capture page shell, level index and error
// fragments.
package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/louisbranch/countrycapture/internal/platform/icons"
	"github.com/louisbranch/countrycapture/internal/services/capture/i18n"
	"github.com/louisbranch/countrycapture/internal/services/capture/markup"
	"github.com/louisbranch/countrycapture/internal/services/capture/routepath"
)

// HTMXScriptURL is the htmx build the page shell loads.
const HTMXScriptURL = "https://unpkg.com/htmx.org@2.0.4"

// HTMXConfig lets htmx swap 4xx and 5xx fragments so localized errors reach
// the page. 204 still swaps nothing.
const HTMXConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"[45]..","swap":true,"error":true}]}`

// ModalRootID is the overlay container the modal is swapped into.
const ModalRootID = "modal-root"

// LevelSummary is one row of the level index.
type LevelSummary struct {
	ID          string
	CountryName string
	Points      int
	Completions int
}

// Layout renders a full HTML page around its children. modal, when non-nil,
// is rendered open inside the overlay container.
func Layout(title, lang string, modal templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		mw := markup.New(w)
		mw.Raw("<!doctype html>")
		mw.Open("html", "lang", lang)
		mw.Open("head")
		mw.Void("meta", "charset", "utf-8")
		mw.Void("meta", "name", "htmx-config", "content", HTMXConfig)
		mw.Element("title", title)
		mw.Void("link", "rel", "stylesheet", "href", routepath.Static+"capture.css")
		mw.Open("script", "src", HTMXScriptURL)
		mw.Close("script")
		mw.Close("head")
		mw.Open("body")
		mw.Raw(icons.LucideSprite())
		mw.Open("main", "id", "main")
		if err := mw.Err(); err != nil {
			return err
		}
		if err := templ.GetChildren(ctx).Render(ctx, w); err != nil {
			return err
		}
		mw.Close("main")
		mw.Open("div", "id", ModalRootID, "class", "fb-modal")
		if err := mw.Err(); err != nil {
			return err
		}
		if modal != nil {
			if err := modal.Render(ctx, w); err != nil {
				return err
			}
		}
		mw.Close("div")
		mw.Close("body")
		mw.Close("html")
		return mw.Err()
	})
}

// Index renders the level list with a search box.
func Index(levels []LevelSummary, query string, page i18n.PageCopy) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		mw := markup.New(w)
		mw.Element("h1", page.LevelsTitle)
		mw.Open("form", "method", "get", "action", routepath.Root, "class", "level-search")
		mw.Void("input",
			"type", "search",
			"name", "q",
			"value", query,
			"placeholder", page.SearchPlaceholder,
			"autocomplete", "off",
		)
		mw.Close("form")
		if len(levels) == 0 {
			mw.Element("p", page.NoLevels, "class", "level-empty")
			return mw.Err()
		}
		mw.Open("ul", "class", "level-list")
		for _, level := range levels {
			href := routepath.Modal(level.ID)
			mw.Open("li", "data-level-id", level.ID)
			mw.Element("a", level.CountryName,
				"href", href,
				"hx-get", href,
				"hx-target", "#"+ModalRootID,
				"hx-swap", "innerHTML",
			)
			mw.Raw(" ")
			mw.Element("span", strconv.Itoa(level.Points), "class", "level-points")
			mw.Raw(" ")
			mw.Element("span", strconv.Itoa(level.Completions), "class", "level-completions")
			mw.Close("li")
		}
		mw.Close("ul")
		return mw.Err()
	})
}

// ErrorState renders a short error message fragment.
func ErrorState(status int, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		mw := markup.New(w)
		mw.Open("div", "class", "fb-modal-content capture-error", "data-status", strconv.Itoa(status))
		mw.Element("p", message)
		mw.Close("div")
		return mw.Err()
	})
}
