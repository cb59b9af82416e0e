package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const classColumns = `id, name, image_url, instructor_email, instructor_name, price, available_seats, status, feedback, created_at`

// ClassFilter narrows a class listing. Empty fields match everything.
type ClassFilter struct {
	Status          model.ClassStatus
	InstructorEmail string
}

// ClassRepository handles persistence for class offerings.
type ClassRepository struct {
	db DBTX
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db DBTX) *ClassRepository {
	return &ClassRepository{db: db}
}

func scanClass(row rowScanner) (*model.ClassOffering, error) {
	var c model.ClassOffering
	var status string
	err := row.Scan(&c.ID, &c.Name, &c.ImageURL, &c.InstructorEmail, &c.InstructorName,
		&c.Price, &c.AvailableSeats, &status, &c.Feedback, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.Status = model.ClassStatus(status)
	return &c, nil
}

// Create inserts a new pending class and returns it with a generated UUID.
func (r *ClassRepository) Create(ctx context.Context, instructorEmail string, req model.ClassRequest) (*model.ClassOffering, error) {
	c := &model.ClassOffering{
		ID:              uuid.New().String(),
		Name:            req.Name,
		ImageURL:        req.ImageURL,
		InstructorEmail: instructorEmail,
		InstructorName:  req.InstructorName,
		Price:           req.Price,
		AvailableSeats:  req.AvailableSeats,
		Status:          model.ClassPending,
		CreatedAt:       time.Now().UTC(),
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO classes (`+classColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Name, c.ImageURL, c.InstructorEmail, c.InstructorName,
		c.Price, c.AvailableSeats, string(c.Status), c.Feedback, c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert class: %w", err)
	}
	return c, nil
}

// GetByID returns a single class or ErrNotFound.
func (r *ClassRepository) GetByID(ctx context.Context, id string) (*model.ClassOffering, error) {
	c, err := scanClass(r.db.QueryRow(ctx,
		`SELECT `+classColumns+` FROM classes WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get class: %w", err)
	}
	return c, nil
}

// List returns classes matching f ordered by creation time descending.
func (r *ClassRepository) List(ctx context.Context, f ClassFilter) ([]model.ClassOffering, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+classColumns+`
		 FROM classes
		 WHERE ($1 = '' OR status = $1) AND ($2 = '' OR instructor_email = $2)
		 ORDER BY created_at DESC`,
		string(f.Status), f.InstructorEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	defer rows.Close()

	var classes []model.ClassOffering
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, fmt.Errorf("scan class: %w", err)
		}
		classes = append(classes, *c)
	}
	return classes, rows.Err()
}

// Update replaces the editable fields of a class.
func (r *ClassRepository) Update(ctx context.Context, id string, req model.ClassRequest) (*model.ClassOffering, error) {
	c, err := scanClass(r.db.QueryRow(ctx,
		`UPDATE classes
		 SET name = $2, image_url = $3, instructor_name = $4, price = $5, available_seats = $6
		 WHERE id = $1
		 RETURNING `+classColumns,
		id, req.Name, req.ImageURL, req.InstructorName, req.Price, req.AvailableSeats,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update class: %w", err)
	}
	return c, nil
}

// UpdateStatus moves a class from one status to another. It fails with
// ErrStaleStatus when the stored status is no longer from.
func (r *ClassRepository) UpdateStatus(ctx context.Context, id string, from, to model.ClassStatus, feedback string) (*model.ClassOffering, error) {
	c, err := scanClass(r.db.QueryRow(ctx,
		`UPDATE classes SET status = $3, feedback = $4
		 WHERE id = $1 AND status = $2
		 RETURNING `+classColumns,
		id, string(from), string(to), feedback,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStaleStatus
		}
		return nil, fmt.Errorf("update class status: %w", err)
	}
	return c, nil
}
