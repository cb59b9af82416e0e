// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the stores.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
	"github.com/Shivanand-hulikatti/sports-academy/internal/payment"
	"github.com/Shivanand-hulikatti/sports-academy/internal/repository"
)

// ErrUpstream wraps payment provider failures.
var ErrUpstream = errors.New("payment provider failure")

// ErrNotOwner is returned when an instructor edits another instructor's class.
var ErrNotOwner = errors.New("class belongs to another instructor")

// ErrInvalidTransition is returned for a class status change the state machine forbids.
var ErrInvalidTransition = errors.New("invalid class status transition")

// ErrClassUnavailable is returned when a student reserves a class that is not approved.
var ErrClassUnavailable = errors.New("class is not open for booking")

// UserStore persists identities.
type UserStore interface {
	Upsert(ctx context.Context, email string, req model.UpsertUserRequest) (*model.Identity, error)
	GetByEmail(ctx context.Context, email string) (*model.Identity, error)
	List(ctx context.Context) ([]model.Identity, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.Identity, error)
	SetRole(ctx context.Context, email string, role model.Role) (*model.Identity, error)
}

// ClassStore persists class offerings.
type ClassStore interface {
	Create(ctx context.Context, instructorEmail string, req model.ClassRequest) (*model.ClassOffering, error)
	GetByID(ctx context.Context, id string) (*model.ClassOffering, error)
	List(ctx context.Context, f repository.ClassFilter) ([]model.ClassOffering, error)
	Update(ctx context.Context, id string, req model.ClassRequest) (*model.ClassOffering, error)
	UpdateStatus(ctx context.Context, id string, from, to model.ClassStatus, feedback string) (*model.ClassOffering, error)
}

// ClassLookup is the read side of ClassStore.
type ClassLookup interface {
	GetByID(ctx context.Context, id string) (*model.ClassOffering, error)
}

// ReservationStore persists held bookings.
type ReservationStore interface {
	Create(ctx context.Context, studentEmail string, class *model.ClassOffering) (*model.Reservation, error)
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	ListByStudent(ctx context.Context, studentEmail string) ([]model.Reservation, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// PaymentStore persists payment records and performs the settlement write.
type PaymentStore interface {
	Settle(ctx context.Context, p model.PaymentRecord) (model.SettlementResult, error)
	ListByStudent(ctx context.Context, studentEmail string) ([]model.PaymentRecord, error)
}

// SlideStore reads the marketing slider.
type SlideStore interface {
	List(ctx context.Context) ([]model.Slide, error)
}

// ChargeProvider creates a client-completable charge at the payment provider.
type ChargeProvider interface {
	CreateIntent(ctx context.Context, in payment.Intent) (string, error)
}

// RoleInvalidator drops cached roles after identity writes.
type RoleInvalidator interface {
	Forget(ctx context.Context, email string)
}

// nonNil keeps empty listings serialized as [] rather than null.
func nonNil[T any](items []T, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
