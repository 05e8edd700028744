package capture

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/louisbranch/countrycapture/internal/services/capture/i18n"
	"github.com/louisbranch/countrycapture/internal/services/capture/modal"
	apperrors "github.com/louisbranch/countrycapture/internal/services/capture/platform/errors"
	"github.com/louisbranch/countrycapture/internal/services/capture/platform/httpx"
	"github.com/louisbranch/countrycapture/internal/services/capture/platform/pagerender"
	"github.com/louisbranch/countrycapture/internal/services/capture/routepath"
	"github.com/louisbranch/countrycapture/internal/services/capture/templates"
)

const (
	// AnswerField is the form field carrying the typed answer.
	AnswerField = "answer"
	// LevelIDField is the hidden form field carrying the level id.
	LevelIDField = "level_id"
	// SubmittedEvent is the htmx event raised after an answer is received.
	SubmittedEvent = "capture-submitted"
)

type handlers struct {
	service *Service
	logger  *zap.Logger
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	tag := i18n.Resolve(w, r)
	page := i18n.Page(tag)
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	levels, err := h.service.SearchLevels(r.Context(), query)
	if err != nil {
		h.writeError(w, r, tag, err)
		return
	}
	summaries := make([]templates.LevelSummary, 0, len(levels))
	for _, level := range levels {
		summaries = append(summaries, templates.LevelSummary(level))
	}
	index := templates.Index(summaries, query, page)
	h.write(w, r, pagerender.Page{
		Title:    page.AppName,
		Fragment: index,
		Full:     withBody(templates.Layout(page.AppName, tag.String(), nil), index),
	})
}

func (h handlers) handleModal(w http.ResponseWriter, r *http.Request) {
	tag := i18n.Resolve(w, r)
	levelID := r.PathValue("levelID")

	state, err := h.service.ViewState(r.Context(), levelID)
	if err != nil {
		h.writeError(w, r, tag, err)
		return
	}
	labels := i18n.ModalCopy(tag)
	controller := modal.NewController(modal.Bindings{})
	controller.Open(state)
	fragment := controller.Render(labels, routepath.Actions(state.LevelID))
	title := modal.Title(state, labels)
	h.write(w, r, pagerender.Page{
		Title:    title,
		Fragment: fragment,
		Full:     withBody(templates.Layout(title, tag.String(), fragment), templ.NopComponent),
	})
}

// handleClose answers with an empty body so the htmx swap removes the modal.
func (h handlers) handleClose(w http.ResponseWriter, r *http.Request) {
	tag := i18n.Resolve(w, r)
	levelID := r.PathValue("levelID")

	var closeErr error
	controller := modal.NewController(modal.Bindings{
		OnClose: func() { closeErr = h.service.Close(r.Context(), levelID) },
	})
	controller.Open(modal.ViewState{LevelID: levelID})
	controller.Close()
	if closeErr != nil {
		h.writeError(w, r, tag, closeErr)
		return
	}
	h.write(w, r, pagerender.Page{Fragment: controller.Render(i18n.ModalCopy(tag), modal.Actions{})})
}

func (h handlers) handleHint(w http.ResponseWriter, r *http.Request) {
	tag := i18n.Resolve(w, r)
	levelID := r.PathValue("levelID")
	if err := h.parseForm(r, levelID); err != nil {
		h.writeError(w, r, tag, err)
		return
	}

	var (
		controller *modal.Controller
		hintErr    error
	)
	controller = modal.NewController(modal.Bindings{
		OnRequestHint: func() {
			var hint string
			hint, hintErr = h.service.RequestHint(r.Context(), levelID)
			controller.SetHint(hint)
		},
	})
	controller.Open(modal.ViewState{LevelID: levelID, Answer: r.PostForm.Get(AnswerField)})
	controller.RequestHint()
	if hintErr != nil {
		h.writeError(w, r, tag, hintErr)
		return
	}
	h.write(w, r, pagerender.Page{Fragment: controller.RenderHint(i18n.ModalCopy(tag))})
}

// handleAnswer forwards the answer exactly as typed. Scoring happens
// elsewhere, so the response carries no body.
func (h handlers) handleAnswer(w http.ResponseWriter, r *http.Request) {
	tag := i18n.Resolve(w, r)
	levelID := r.PathValue("levelID")
	if err := h.parseForm(r, levelID); err != nil {
		h.writeError(w, r, tag, err)
		return
	}

	var submitErr error
	controller := modal.NewController(modal.Bindings{
		OnSubmitAnswer: func(answer string) {
			submitErr = h.service.SubmitAnswer(r.Context(), levelID, answer)
		},
	})
	controller.Open(modal.ViewState{LevelID: levelID})
	controller.SetAnswer(r.PostForm.Get(AnswerField))
	controller.Submit()
	if submitErr != nil {
		h.writeError(w, r, tag, submitErr)
		return
	}
	httpx.SetTrigger(w, SubmittedEvent)
	w.WriteHeader(http.StatusNoContent)
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok")
}

// parseForm reads the form body and rejects a level_id field that disagrees
// with the path.
func (h handlers) parseForm(r *http.Request, levelID string) error {
	if err := r.ParseForm(); err != nil {
		return apperrors.Wrap(apperrors.KindInvalidInput, "core.error.invalid_input", err)
	}
	if values, ok := r.PostForm[LevelIDField]; ok && len(values) > 0 && values[0] != levelID {
		return apperrors.EK(apperrors.KindInvalidInput, "core.error.invalid_input", "level id does not match route")
	}
	return nil
}

func (h handlers) writeError(w http.ResponseWriter, r *http.Request, tag language.Tag, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", httpx.RequestIDFrom(r)),
			zap.Error(err),
		)
	}
	message := http.StatusText(status)
	if key := apperrors.LocalizationKey(err); key != "" {
		message = i18n.Message(tag, key, message)
	}
	fragment := templates.ErrorState(status, message)
	if httpx.IsHTMXRequest(r) {
		httpx.SetRetarget(w, "#"+templates.ModalRootID, "innerHTML")
	}
	h.write(w, r, pagerender.Page{
		Title:      message,
		StatusCode: status,
		Fragment:   fragment,
		Full:       withBody(templates.Layout(message, tag.String(), nil), fragment),
	})
}

func (h handlers) write(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := pagerender.Write(w, r, page); err != nil {
		h.logger.Error("render failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", httpx.RequestIDFrom(r)),
			zap.Error(err),
		)
		httpx.WriteError(w, err)
	}
}

// withBody renders layout with body as its children.
func withBody(layout, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return layout.Render(templ.WithChildren(ctx, body), w)
	})
}
