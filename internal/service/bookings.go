package service

import (
	"context"
	"fmt"

	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
)

// BookingService manages held reservations.
type BookingService struct {
	reservations ReservationStore
	classes      ClassLookup
}

// NewBookingService constructs a BookingService.
func NewBookingService(reservations ReservationStore, classes ClassLookup) *BookingService {
	return &BookingService{reservations: reservations, classes: classes}
}

// Add holds an approved class for a student, snapshotting its price.
// Seat availability is not checked.
func (s *BookingService) Add(ctx context.Context, req model.ReservationRequest) (*model.Reservation, error) {
	req.StudentEmail = normalizeEmail(req.StudentEmail)
	if err := model.Validate(req); err != nil {
		return nil, err
	}

	class, err := s.classes.GetByID(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}
	if class.Status != model.ClassApproved {
		return nil, ErrClassUnavailable
	}

	res, err := s.reservations.Create(ctx, req.StudentEmail, class)
	if err != nil {
		return nil, fmt.Errorf("add reservation: %w", err)
	}
	return res, nil
}

// ListFor returns a student's reservations. An empty email yields an empty list.
func (s *BookingService) ListFor(ctx context.Context, studentEmail string) ([]model.Reservation, error) {
	studentEmail = normalizeEmail(studentEmail)
	if studentEmail == "" {
		return []model.Reservation{}, nil
	}
	return nonNil(s.reservations.ListByStudent(ctx, studentEmail))
}

// Get returns a single reservation.
func (s *BookingService) Get(ctx context.Context, id string) (*model.Reservation, error) {
	return s.reservations.GetByID(ctx, id)
}

// Remove cancels a reservation. Removing one that is already gone reports 0.
func (s *BookingService) Remove(ctx context.Context, id string) (model.DeleteResult, error) {
	n, err := s.reservations.Delete(ctx, id)
	if err != nil {
		return model.DeleteResult{}, fmt.Errorf("remove reservation: %w", err)
	}
	return model.DeleteResult{DeletedCount: n}, nil
}
