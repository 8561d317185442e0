package wizard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"luminadecor/internal/ai"
	"luminadecor/internal/log"
	"luminadecor/internal/results"
)

// resultsBrowser must be called with mu held.
func (s *Session) resultsBrowser(op string) (*results.Browser, error) {
	if s.state != StateResults {
		return nil, s.invalid(op)
	}
	if s.browser == nil {
		return nil, ErrNoResult
	}
	return s.browser, nil
}

// SelectTheme makes a theme of the loaded result active.
func (s *Session) SelectTheme(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.resultsBrowser("select theme")
	if err != nil {
		return err
	}
	return b.SelectTheme(id)
}

// NextStep advances the results sub-wizard.
func (s *Session) NextStep() error {
	return s.navigate("next step", (*results.Browser).Next)
}

// PreviousStep goes back one results section.
func (s *Session) PreviousStep() error {
	return s.navigate("previous step", (*results.Browser).Previous)
}

// GoToStep jumps to a results section.
func (s *Session) GoToStep(index int) error {
	return s.navigate("go to step", func(b *results.Browser) error {
		return b.GoTo(index)
	})
}

func (s *Session) navigate(op string, move func(*results.Browser) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.resultsBrowser(op)
	if err != nil {
		return err
	}
	return move(b)
}

// GenerateVariations renders one image per stylistic directive for a theme
// and replaces the theme's images with the successful ones. It returns the
// number of images produced. Failed directives are omitted; if all of them fail the error is
// logged and a notice is set, but nil is returned.
func (s *Session) GenerateVariations(ctx context.Context, themeID string) (int, error) {
	s.mu.Lock()
	b, err := s.resultsBrowser("generate variations")
	if err != nil {
		s.mu.Unlock()
		return 0, err
	}
	if len(s.prefs.ImageBytes) == 0 {
		s.mu.Unlock()
		return 0, ErrMissingImage
	}
	if s.deps.Visualizer == nil {
		s.mu.Unlock()
		return 0, ErrServiceUnavailable
	}
	if err := b.BeginGeneration(themeID); err != nil {
		s.mu.Unlock()
		return 0, err
	}
	result := b.Result()
	theme := result.ThemeByID(themeID)
	image := append([]byte(nil), s.prefs.ImageBytes...)
	mimeType := s.prefs.ImageMIME
	eventType := s.prefs.EventType
	s.notice = ""
	s.mu.Unlock()

	logCtx := s.logContext(ctx)
	callCtx, cancel := context.WithTimeout(ctx, s.deps.VariationTimeout)
	defer cancel()

	directives := ai.VariationDirectives()
	slots := make([]string, len(directives))
	var g errgroup.Group
	for i, directive := range directives {
		i, directive := i, directive
		g.Go(func() error {
			url, err := s.deps.Visualizer.GenerateVariation(callCtx, ai.VariationRequest{
				Image:    image,
				MIMEType: mimeType,
				Prompt:   ai.VariationPrompt(eventType, theme.Name, theme.VisualDescription, directive),
			})
			if err != nil {
				log.Error(logCtx, "variation failed", "theme", themeID, "directive", directive.Name, "error", err)
				return nil
			}
			slots[i] = url
			return nil
		})
	}
	_ = g.Wait()

	urls := make([]string, 0, len(slots))
	for _, url := range slots {
		if url != "" {
			urls = append(urls, url)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The project may have been reset while the calls were running.
	if s.browser != b {
		log.Info(logCtx, "variations discarded", "theme", themeID)
		return 0, nil
	}
	b.FinishGeneration(themeID, urls)

	switch {
	case len(urls) == 0:
		s.notice = MessageVariationsFailed
		log.Error(logCtx, "all variations failed", "theme", themeID, "error", fmt.Errorf("0 of %d directives succeeded", len(directives)))
	case len(urls) < len(directives):
		s.notice = MessageVariationsPartial
		log.Info(logCtx, "variations partially generated", "theme", themeID, "generated", len(urls), "requested", len(directives))
	default:
		log.Info(logCtx, "variations generated", "theme", themeID, "generated", len(urls))
	}
	return len(urls), nil
}
