package modal

import "github.com/a-h/templ"

// Controller drives one modal instance through hidden and visible states.
//
// A Controller is not safe for concurrent use; the modal is driven by one
// interaction at a time.
type Controller struct {
	bindings Bindings
	state    ViewState
	visible  bool
}

// NewController returns a hidden modal wired to bindings.
func NewController(bindings Bindings) *Controller {
	return &Controller{bindings: bindings}
}

// Visible reports whether the modal is open.
func (c *Controller) Visible() bool {
	return c.visible
}

// State returns a copy of the displayed state.
func (c *Controller) State() ViewState {
	return c.state.Clone()
}

// Open shows the modal with state. Any previous content, hint included, is
// replaced rather than merged.
func (c *Controller) Open(state ViewState) {
	c.state = state.Clone()
	c.visible = true
}

// Close hides the modal and emits one close signal. It reports false and
// emits nothing when the modal is already hidden.
func (c *Controller) Close() bool {
	if !c.visible {
		return false
	}
	c.visible = false
	c.state = ViewState{}
	if c.bindings.OnClose != nil {
		c.bindings.OnClose()
	}
	return true
}

// RequestHint emits a request-hint signal while visible.
func (c *Controller) RequestHint() bool {
	if !c.visible {
		return false
	}
	if c.bindings.OnRequestHint != nil {
		c.bindings.OnRequestHint()
	}
	return true
}

// SetHint stores hint text for display while visible.
func (c *Controller) SetHint(text string) bool {
	if !c.visible {
		return false
	}
	c.state.HintText = text
	return true
}

// SetAnswer updates the answer input while visible.
func (c *Controller) SetAnswer(text string) bool {
	if !c.visible {
		return false
	}
	c.state.Answer = text
	return true
}

// Submit emits submit-answer with the current answer text, which may be empty.
func (c *Controller) Submit() bool {
	if !c.visible {
		return false
	}
	if c.bindings.OnSubmitAnswer != nil {
		c.bindings.OnSubmitAnswer(c.state.Answer)
	}
	return true
}

// Render returns the modal markup, or an empty component when hidden.
func (c *Controller) Render(labels Copy, actions Actions) templ.Component {
	if !c.visible {
		return Empty()
	}
	return Component(c.state.Clone(), labels, actions)
}

// RenderHint returns the hint region markup, or an empty component when hidden.
func (c *Controller) RenderHint(labels Copy) templ.Component {
	if !c.visible {
		return Empty()
	}
	return HintRegion(c.state.Clone(), labels)
}
