package repository

import (
	"context"
	"fmt"

	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
)

// SlideRepository reads the marketing slider.
type SlideRepository struct {
	db DBTX
}

// NewSlideRepository constructs a SlideRepository.
func NewSlideRepository(db DBTX) *SlideRepository {
	return &SlideRepository{db: db}
}

// List returns all slides in display order.
func (r *SlideRepository) List(ctx context.Context) ([]model.Slide, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, subtitle, image_url, position FROM slides ORDER BY position ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}
	defer rows.Close()

	var slides []model.Slide
	for rows.Next() {
		var s model.Slide
		if err := rows.Scan(&s.ID, &s.Title, &s.Subtitle, &s.ImageURL, &s.Position); err != nil {
			return nil, fmt.Errorf("scan slide: %w", err)
		}
		slides = append(slides, s)
	}
	return slides, rows.Err()
}
