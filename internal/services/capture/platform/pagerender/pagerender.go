// Package pagerender writes capture responses for full-page and htmx flows.
package pagerender

import (
	"bytes"
	"html"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/countrycapture/internal/services/capture/platform/httpx"
)

// Page describes one response. Fragment is sent to htmx requests; Full wraps
// it for plain navigation. A nil Full falls back to Fragment.
type Page struct {
	Title      string
	StatusCode int
	Fragment   templ.Component
	Full       templ.Component
}

// Write renders page for r. Rendering happens into a buffer so a failed
// render never leaves a partial body behind.
func Write(w http.ResponseWriter, r *http.Request, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}

	target := page.Full
	htmx := httpx.IsHTMXRequest(r)
	if htmx || target == nil {
		target = page.Fragment
	}
	if target == nil {
		target = templ.NopComponent
	}

	var buf bytes.Buffer
	if err := target.Render(httpx.RequestContext(r), &buf); err != nil {
		return err
	}
	body := buf.Bytes()
	if htmx {
		body = addTitleIfMissing(body, page.Title)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
	return nil
}

// TitleTag formats an escaped <title> element.
func TitleTag(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	return "<title>" + html.EscapeString(title) + "</title>"
}

func addTitleIfMissing(body []byte, title string) []byte {
	if len(body) == 0 || bytes.Contains(bytes.ToLower(body), []byte("<title")) {
		return body
	}
	tag := TitleTag(title)
	if tag == "" {
		return body
	}
	return append([]byte(tag), body...)
}
