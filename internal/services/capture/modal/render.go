package modal

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/countrycapture/internal/platform/icons"
	"github.com/louisbranch/countrycapture/internal/services/capture/markup"
)

// Element ids targeted by htmx swaps. Only one modal is visible at a time.
const (
	ModalID    = "capture-modal"
	HintID     = "capture-hint"
	HintTextID = "capture-hint-text"
)

// Component renders the full modal for state.
func Component(state ViewState, labels Copy, actions Actions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := markup.New(w)
		hw.Open("div", "class", "fb-modal-content", "id", ModalID, "data-level-id", state.LevelID)
		writeTitle(hw, state, labels, actions)
		writeForm(hw, state, labels, actions)
		writeHintRegion(hw, state, labels)
		writeFooter(hw, state, labels)
		hw.Close("div")
		return hw.Err()
	})
}

// HintRegion renders only the hint region, for partial swaps.
func HintRegion(state ViewState, labels Copy) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := markup.New(w)
		writeHintRegion(hw, state, labels)
		return hw.Err()
	})
}

// Empty renders nothing. Swapping it over the modal hides it.
func Empty() templ.Component {
	return templ.NopComponent
}

func writeTitle(hw *markup.Writer, state ViewState, labels Copy, actions Actions) {
	hw.Open("div", "class", "modal-title")
	hw.Open("h4")
	hw.Text(labels.TitlePrefix)
	hw.Open("span", "class", "country-name highlighted")
	hw.Text(state.CountryName)
	hw.Close("span")
	hw.Text(" - ")
	hw.Open("span", "class", "country-title")
	hw.Text(state.CountryTitle)
	hw.Close("span")
	hw.Close("h4")

	attrs := []string{"href", "#", "class", "js-close-modal", "aria-label", labels.Close}
	if actions.CloseURL != "" {
		attrs = append(attrs,
			"hx-post", actions.CloseURL,
			"hx-target", "#"+ModalID,
			"hx-swap", "outerHTML",
		)
	}
	hw.Open("a", attrs...)
	hw.Icon(icons.Close, "close")
	hw.Close("a")
	hw.Close("div")
}

func writeForm(hw *markup.Writer, state ViewState, labels Copy, actions Actions) {
	formAttrs := []string{"class", "fb-form country-capture-form"}
	if actions.SubmitURL != "" {
		formAttrs = append(formAttrs, "hx-post", actions.SubmitURL, "hx-swap", "none")
	}
	hw.Open("form", formAttrs...)
	hw.Void("input", "name", "level_id", "type", "hidden", "value", state.LevelID)
	hw.Open("textarea", "rows", "4", "class", "capture-text", "disabled", "")
	hw.Text(state.CaptureText)
	hw.Close("textarea")
	hw.Void("br")

	hw.Open("div", "class", "capture-links")
	for _, link := range state.CaptureLinks {
		label := link.Label
		if strings.TrimSpace(label) == "" {
			label = link.URL
		}
		hw.Open("a", "href", string(templ.URL(link.URL)), "target", "_blank", "rel", "noopener noreferrer")
		hw.Text(label)
		hw.Close("a")
	}
	hw.Close("div")
	hw.Void("br")

	hw.Open("fieldset", "class", "form-set")
	hw.Open("div", "class", "answer_no_bases form-el el--text")
	hw.Void("input",
		"placeholder", labels.AnswerPlaceholder,
		"name", "answer",
		"type", "text",
		"autocomplete", "off",
		"value", state.Answer,
	)
	hw.Close("div")
	hw.Close("fieldset")

	hw.Open("div", "class", "form-el--multiple-actions fb-column-container")
	hw.Open("div", "class", "col col-1-2")
	hintAttrs := []string{"class", "fb-cta cta--blue js-trigger-hint"}
	if actions.HintURL != "" {
		hintAttrs = append(hintAttrs,
			"hx-post", actions.HintURL,
			"hx-include", "closest form",
			"hx-target", "#"+HintID,
			"hx-swap", "outerHTML",
		)
	}
	hw.Open("a", hintAttrs...)
	hw.Icon(icons.Hint, "hint")
	hw.Open("span")
	hw.Text(labels.RequestHint)
	hw.Close("span")
	hw.Close("a")
	hw.Close("div")

	hw.Open("div", "class", "answer_no_bases col col-1-2 actions--right")
	submitAttrs := []string{"class", "fb-cta cta--yellow js-trigger-score"}
	if actions.SubmitURL != "" {
		submitAttrs = append(submitAttrs,
			"hx-post", actions.SubmitURL,
			"hx-include", "closest form",
			"hx-swap", "none",
		)
	}
	hw.Open("a", submitAttrs...)
	hw.Icon(icons.Submit, "submit")
	hw.Text(labels.Submit)
	hw.Close("a")
	hw.Close("div")
	hw.Close("div")
	hw.Close("form")
}

func writeHintRegion(hw *markup.Writer, state ViewState, labels Copy) {
	hw.Open("div", "class", "capture-hints-and-help", "id", HintID)
	hintAttrs := []string{"class", "capture-hint"}
	if !state.HasHint() {
		hintAttrs = append(hintAttrs, "hidden", "")
	}
	hw.Open("div", hintAttrs...)
	hw.Open("h4")
	hw.Text(labels.HintHeading)
	hw.Close("h4")
	hw.Open("div", "id", HintTextID)
	hw.Text(state.HintText)
	hw.Close("div")
	hw.Close("div")
	hw.Close("div")
}

func writeFooter(hw *markup.Writer, state ViewState, labels Copy) {
	hw.Open("footer", "class", "modal-footer fb-column-container")

	hw.Open("div", "class", "col col-1-2 country-capture-stats fb-column-container")
	hw.Open("div", "class", "points-display")
	hw.Icon(icons.Points, "points")
	hw.Open("span", "class", "points-number fb-numbers")
	hw.Text(strconv.Itoa(state.Points))
	hw.Close("span")
	hw.Open("span", "class", "points-label")
	hw.Text(labels.PointsLabel)
	hw.Close("span")
	hw.Close("div")

	hw.Open("div", "class", "country-stats")
	hw.Open("dl")
	writeStat(hw, labels.StatType, "country-type", state.CountryType)
	writeStat(hw, labels.StatCategory, "country-category", state.CountryCategory)
	writeStat(hw, labels.StatFirstCapture, "opponent-name country-owner", state.FirstCaptureOwner)
	hw.Close("dl")
	hw.Close("div")
	hw.Close("div")

	hw.Open("div", "class", "col col-1-2 country-capture-completed fb-column-container")
	hw.Open("span")
	hw.Text(labels.CompletedBy)
	hw.Close("span")
	hw.Open("ul", "class", "completed-list")
	for _, name := range state.CompletedBy {
		hw.Open("li")
		hw.Text(name)
		hw.Close("li")
	}
	hw.Close("ul")
	hw.Close("div")

	hw.Close("footer")
}

func writeStat(hw *markup.Writer, term, class, value string) {
	hw.Open("dt")
	hw.Text(term)
	hw.Close("dt")
	hw.Open("dd", "class", class)
	hw.Text(value)
	hw.Close("dd")
}
