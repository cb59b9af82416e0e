package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Shivanand-hulikatti/sports-academy/internal/metrics"
	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
	"github.com/Shivanand-hulikatti/sports-academy/internal/payment"
	"github.com/Shivanand-hulikatti/sports-academy/internal/repository"
)

// ReservationLookup is the read side of ReservationStore.
type ReservationLookup interface {
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
}

// SettlementService drives checkout: charge intent, payment record, reservation retirement.
type SettlementService struct {
	payments     PaymentStore
	reservations ReservationLookup
	provider     ChargeProvider
	currency     string
	log          logrus.FieldLogger
	now          func() time.Time
}

// NewSettlementService constructs a SettlementService.
func NewSettlementService(payments PaymentStore, reservations ReservationLookup, provider ChargeProvider, currency string, log logrus.FieldLogger) *SettlementService {
	return &SettlementService{
		payments:     payments,
		reservations: reservations,
		provider:     provider,
		currency:     currency,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// CreateChargeIntent asks the provider for a client secret. Nothing is stored.
func (s *SettlementService) CreateChargeIntent(ctx context.Context, req model.PaymentIntentRequest) (string, error) {
	if err := model.Validate(req); err != nil {
		return "", err
	}

	secret, err := s.provider.CreateIntent(ctx, payment.Intent{
		Amount:             payment.ToMinorUnits(req.Amount),
		Currency:           s.currency,
		PaymentMethodTypes: []string{"card"},
		IdempotencyKey:     req.IdempotencyKey,
	})
	if err != nil {
		metrics.ChargeIntent("error")
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	metrics.ChargeIntent("ok")
	return secret, nil
}

// Settle records a completed payment and removes the reservation it paid for.
// Both writes commit together; a reservation that is already gone is reported
// as deletedCount 0 and the payment is still recorded.
func (s *SettlementService) Settle(ctx context.Context, req model.SettleRequest) (model.SettlementResult, error) {
	req.StudentEmail = normalizeEmail(req.StudentEmail)
	if err := model.Validate(req); err != nil {
		return model.SettlementResult{}, err
	}

	rec := model.PaymentRecord{
		StudentEmail:  req.StudentEmail,
		ReservationID: req.ReservationID,
		ClassID:       req.ClassID,
		ClassName:     req.ClassName,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
		PaidAt:        s.now(),
	}
	if rec.ClassID == "" || rec.ClassName == "" {
		held, err := s.reservations.GetByID(ctx, req.ReservationID)
		switch {
		case err == nil:
			if rec.ClassID == "" {
				rec.ClassID = held.ClassID
			}
			if rec.ClassName == "" {
				rec.ClassName = held.ClassName
			}
		case errors.Is(err, repository.ErrNotFound):
		default:
			return model.SettlementResult{}, fmt.Errorf("lookup reservation: %w", err)
		}
	}

	res, err := s.payments.Settle(ctx, rec)
	if err != nil {
		return model.SettlementResult{}, fmt.Errorf("settle payment: %w", err)
	}

	metrics.Settled(res.InsertResult.Inserted, res.DeleteResult.DeletedCount)
	entry := s.log.WithFields(logrus.Fields{
		"student":     rec.StudentEmail,
		"reservation": rec.ReservationID,
		"payment":     res.InsertResult.InsertedID,
		"inserted":    res.InsertResult.Inserted,
		"deleted":     res.DeleteResult.DeletedCount,
	})
	if res.DeleteResult.DeletedCount == 0 {
		entry.Warn("settled payment without a held reservation")
	} else {
		entry.Info("settled reservation")
	}
	return res, nil
}

// PaymentsFor returns a student's payment history, newest first.
func (s *SettlementService) PaymentsFor(ctx context.Context, studentEmail string) ([]model.PaymentRecord, error) {
	return nonNil(s.payments.ListByStudent(ctx, normalizeEmail(studentEmail)))
}
