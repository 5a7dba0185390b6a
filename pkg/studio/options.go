package studio

import "promptframe/pkg/gallery"

type Option func(s *Studio)

func WithCache(c *gallery.Cache) Option {
	return func(s *Studio) {
		s.cache = c
	}
}

func WithHistorySize(max int) Option {
	return func(s *Studio) {
		s.history.max = max
	}
}
