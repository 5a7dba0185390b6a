package studio

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"promptframe/pkg/gallery"
	"promptframe/pkg/overlay"
)

var ErrNoDescription = errors.New("description is required")

// Generator renders a text prompt into an image. The diffusion client is
// the production implementation.
type Generator interface {
	Model() string
	Generate(ctx context.Context, prompt string) (image.Image, error)
}

func New(gen Generator, comp *overlay.Compositor, store *gallery.Store, params *Params, logger *zap.Logger, opts ...Option) *Studio {
	s := &Studio{
		gen:     gen,
		comp:    comp,
		store:   store,
		params:  params,
		history: NewHistory(),
		log:     logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Studio runs the whole pipeline: render the description, fit it to the
// configured size, caption it, store it.
type Studio struct {
	gen     Generator
	comp    *overlay.Compositor
	store   *gallery.Store
	params  *Params
	cache   *gallery.Cache
	history *History
	log     *zap.Logger
}

func (s *Studio) History() *History {
	return s.history
}

func (s *Studio) Params() *Params {
	return s.params
}

func (s *Studio) Model() string {
	return s.gen.Model()
}

// Generate produces a captioned image for the description and stores it
// under the given file name. It returns the stored name.
func (s *Studio) Generate(ctx context.Context, description string, filename string) (string, error) {
	if description == "" {
		return "", ErrNoDescription
	}

	width, height := s.params.Size()

	filled, cached, err := s.rendered(ctx, description, width, height)
	if err != nil {
		return "", err
	}

	finish := lo.Ternary(s.params.OverlayEnabled(), s.captioned, s.plain)

	file, err := s.store.Save(filename, finish(filled, description))
	if err != nil {
		return "", fmt.Errorf("save image failed: %w", err)
	}

	s.history.Add(&HistoryLog{
		Prompt: description,
		File:   file,
		Image:  filled,
		Cached: cached,
	})

	return file, nil
}

func (s *Studio) rendered(ctx context.Context, description string, width, height int) (image.Image, bool, error) {
	if s.cache != nil {
		exists, img, err := s.cache.LoadImage(description, width, height)
		if err != nil {
			return nil, false, fmt.Errorf("load cache failed: %w", err)
		}
		if exists {
			s.log.With(zap.String("prompt", description)).Debug("cache hit")
			return img, true, nil
		}
	}

	img, err := s.gen.Generate(ctx, description)
	if err != nil {
		return nil, false, fmt.Errorf("generate image failed: %w", err)
	}

	filled := imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)

	if s.cache != nil {
		if err := s.cache.SaveImage(description, filled); err != nil {
			s.log.With(zap.Error(err)).Info("save cache failed")
		}
	}

	return filled, false, nil
}

func (s *Studio) captioned(img image.Image, caption string) image.Image {
	return s.comp.Compose(img, caption)
}

func (s *Studio) plain(img image.Image, _ string) image.Image {
	return img
}
