// Package modal renders the country capture dialog and models its
// interaction signals.
//
// The dialog is a leaf render target. A host supplies a ViewState each time
// the modal opens and receives close, request-hint and submit-answer signals
// through Bindings. Nothing in this package persists state.
package modal

// Link is one entry in the capture links region.
type Link struct {
	URL   string
	Label string
}

// ViewState is the transient data the modal displays.
//
// Absent fields render as empty placeholders. HintText is empty until the
// player requests a hint.
type ViewState struct {
	LevelID           string
	CountryName       string
	CountryTitle      string
	CaptureText       string
	CaptureLinks      []Link
	HintText          string
	Answer            string
	Points            int
	CountryType       string
	CountryCategory   string
	FirstCaptureOwner string
	CompletedBy       []string
}

// HasHint reports whether hint data is present.
func (s ViewState) HasHint() bool {
	return s.HintText != ""
}

// Clone returns a copy that shares no slices with s.
func (s ViewState) Clone() ViewState {
	out := s
	if s.CaptureLinks != nil {
		out.CaptureLinks = append([]Link(nil), s.CaptureLinks...)
	}
	if s.CompletedBy != nil {
		out.CompletedBy = append([]string(nil), s.CompletedBy...)
	}
	return out
}

// Signal names an interaction the modal emits to its host.
type Signal string

const (
	SignalClose        Signal = "close"
	SignalRequestHint  Signal = "request_hint"
	SignalSubmitAnswer Signal = "submit_answer"
)

// String returns the wire name of the signal.
func (s Signal) String() string { return string(s) }

// Bindings are the host callbacks. Nil callbacks are skipped.
type Bindings struct {
	OnClose        func()
	OnRequestHint  func()
	OnSubmitAnswer func(answer string)
}

// Actions are the endpoints the rendered controls post to. Blank actions
// render the controls without htmx attributes.
type Actions struct {
	CloseURL  string
	HintURL   string
	SubmitURL string
}

// Copy holds the localized static text of the modal.
type Copy struct {
	TitlePrefix       string
	Close             string
	HintHeading       string
	AnswerPlaceholder string
	RequestHint       string
	Submit            string
	PointsLabel       string
	StatType          string
	StatCategory      string
	StatFirstCapture  string
	CompletedBy       string
}

// DefaultCopy returns the English source text.
func DefaultCopy() Copy {
	return Copy{
		TitlePrefix:       "capture_",
		Close:             "Close",
		HintHeading:       "hint_",
		AnswerPlaceholder: "Insert your answer",
		RequestHint:       "Request Hint",
		Submit:            "Submit",
		PointsLabel:       "PTS",
		StatType:          "type",
		StatCategory:      "category",
		StatFirstCapture:  "first_capture",
		CompletedBy:       "completed_by >",
	}
}

// Title returns the plain text of the title heading.
func Title(state ViewState, labels Copy) string {
	return labels.TitlePrefix + state.CountryName + " - " + state.CountryTitle
}
