package service

import (
	"context"

	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
)

// SlideService serves the marketing slider.
type SlideService struct {
	slides SlideStore
}

// NewSlideService constructs a SlideService backed by slides.
func NewSlideService(slides SlideStore) *SlideService {
	return &SlideService{slides: slides}
}

// List returns every slide the store holds, or an empty non-nil slice.
func (s *SlideService) List(ctx context.Context) ([]model.Slide, error) {
	return nonNil(s.slides.List(ctx))
}
