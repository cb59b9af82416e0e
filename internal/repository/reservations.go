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

const reservationColumns = `id, student_email, class_id, class_name, instructor_email, price, created_at`

// ReservationRepository handles persistence for held bookings.
type ReservationRepository struct {
	db DBTX
}

// NewReservationRepository constructs a ReservationRepository.
func NewReservationRepository(db DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func scanReservation(row rowScanner) (*model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(&res.ID, &res.StudentEmail, &res.ClassID, &res.ClassName,
		&res.InstructorEmail, &res.Price, &res.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Create inserts a reservation snapshotting the class it references.
func (r *ReservationRepository) Create(ctx context.Context, studentEmail string, class *model.ClassOffering) (*model.Reservation, error) {
	res := &model.Reservation{
		ID:              uuid.New().String(),
		StudentEmail:    studentEmail,
		ClassID:         class.ID,
		ClassName:       class.Name,
		InstructorEmail: class.InstructorEmail,
		Price:           class.Price,
		CreatedAt:       time.Now().UTC(),
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO reservations (`+reservationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		res.ID, res.StudentEmail, res.ClassID, res.ClassName, res.InstructorEmail, res.Price, res.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert reservation: %w", err)
	}
	return res, nil
}

// GetByID returns a single reservation or ErrNotFound.
func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	res, err := scanReservation(r.db.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return res, nil
}

// ListByStudent returns a student's reservations, newest first.
func (r *ReservationRepository) ListByStudent(ctx context.Context, studentEmail string) ([]model.Reservation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+reservationColumns+`
		 FROM reservations
		 WHERE student_email = $1
		 ORDER BY created_at DESC`,
		studentEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	var out []model.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// Delete removes a reservation and reports how many rows went away.
func (r *ReservationRepository) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete reservation: %w", err)
	}
	return tag.RowsAffected(), nil
}
