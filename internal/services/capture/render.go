package capture

import (
	"context"
	"io"

	"golang.org/x/text/language"

	"github.com/louisbranch/countrycapture/internal/services/capture/i18n"
	"github.com/louisbranch/countrycapture/internal/services/capture/modal"
	"github.com/louisbranch/countrycapture/internal/services/capture/routepath"
)

// RenderLevel writes the open modal fragment for levelID to w.
func (s *Service) RenderLevel(ctx context.Context, levelID string, tag language.Tag, w io.Writer) error {
	state, err := s.ViewState(ctx, levelID)
	if err != nil {
		return err
	}
	controller := modal.NewController(modal.Bindings{})
	controller.Open(state)
	return controller.Render(i18n.ModalCopy(tag), routepath.Actions(state.LevelID)).Render(ctx, w)
}
