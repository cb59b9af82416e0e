package repository

import (
	"context"
	"fmt"

	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
	"github.com/google/uuid"
)

const paymentColumns = `id, student_email, reservation_id, class_id, class_name, amount, COALESCE(transaction_id, ''), paid_at`

// PaymentRepository handles persistence for payment records.
type PaymentRepository struct {
	db DBTX
}

// NewPaymentRepository constructs a PaymentRepository.
func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Settle appends the payment record and retires the reservation it pays for.
//
// Both writes run in one transaction, payment first. Either both commit or
// neither does, so a reservation and its payment never diverge:
//
//	INSERT payments     → inserted, or skipped when transaction_id already exists
//	DELETE reservations → 1, or 0 when the reservation is already gone
//	COMMIT
//
// A missing reservation is not an error: the payment is still recorded and
// DeletedCount is 0. A repeated transaction_id reuses the first payment's id
// so a client retry never produces a second record; if that payment belongs to
// another reservation or student, nothing is written and ErrTransactionReused
// is returned.
func (r *PaymentRepository) Settle(ctx context.Context, p model.PaymentRecord) (res model.SettlementResult, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return res, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	tag, err := tx.Exec(ctx,
		`INSERT INTO payments (id, student_email, reservation_id, class_id, class_name, amount, transaction_id, paid_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (transaction_id) DO NOTHING`,
		p.ID, p.StudentEmail, p.ReservationID, p.ClassID, p.ClassName, p.Amount, nullable(p.TransactionID), p.PaidAt,
	)
	if err != nil {
		return res, fmt.Errorf("insert payment: %w", err)
	}

	if tag.RowsAffected() == 1 {
		res.InsertResult = model.InsertResult{InsertedID: p.ID, Inserted: true}
	} else {
		var reservationID, studentEmail string
		err = tx.QueryRow(ctx,
			`SELECT id, reservation_id, student_email FROM payments WHERE transaction_id = $1`,
			p.TransactionID,
		).Scan(&res.InsertResult.InsertedID, &reservationID, &studentEmail)
		if err != nil {
			return res, fmt.Errorf("find existing payment: %w", err)
		}
		if reservationID != p.ReservationID || studentEmail != p.StudentEmail {
			err = ErrTransactionReused
			return model.SettlementResult{}, err
		}
	}

	tag, err = tx.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, p.ReservationID)
	if err != nil {
		return res, fmt.Errorf("delete reservation: %w", err)
	}
	res.DeleteResult.DeletedCount = tag.RowsAffected()

	if err = tx.Commit(ctx); err != nil {
		return res, fmt.Errorf("commit transaction: %w", err)
	}
	return res, nil
}

// ListByStudent returns a student's payments ordered by paid_at descending.
func (r *PaymentRepository) ListByStudent(ctx context.Context, studentEmail string) ([]model.PaymentRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+paymentColumns+`
		 FROM payments
		 WHERE student_email = $1
		 ORDER BY paid_at DESC`,
		studentEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []model.PaymentRecord
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func scanPayment(row rowScanner) (*model.PaymentRecord, error) {
	var p model.PaymentRecord
	err := row.Scan(&p.ID, &p.StudentEmail, &p.ReservationID, &p.ClassID, &p.ClassName,
		&p.Amount, &p.TransactionID, &p.PaidAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
