package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func testPayment() model.PaymentRecord {
	return model.PaymentRecord{
		StudentEmail:  "s@academy.io",
		ReservationID: "res-1",
		ClassID:       "class-1",
		ClassName:     "Junior Tennis",
		Amount:        50,
		TransactionID: "pi_123",
		PaidAt:        time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func paymentInsertArgs() []any {
	return []any{
		pgxmock.AnyArg(), "s@academy.io", "res-1", "class-1", "Junior Tennis", 50.0,
		pgxmock.AnyArg(), time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestSettleInsertsPaymentAndDeletesReservation(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payments").
		WithArgs(paymentInsertArgs()...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("DELETE FROM reservations").
		WithArgs("res-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	res, err := NewPaymentRepository(mock).Settle(context.Background(), testPayment())
	require.NoError(t, err)

	assert.True(t, res.InsertResult.Inserted)
	assert.NotEmpty(t, res.InsertResult.InsertedID)
	assert.Equal(t, int64(1), res.DeleteResult.DeletedCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettleMissingReservationStillRecordsPayment(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payments").
		WithArgs(paymentInsertArgs()...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("DELETE FROM reservations").
		WithArgs("res-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectCommit()

	res, err := NewPaymentRepository(mock).Settle(context.Background(), testPayment())
	require.NoError(t, err)

	assert.True(t, res.InsertResult.Inserted)
	assert.Equal(t, int64(0), res.DeleteResult.DeletedCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettleDuplicateTransactionReusesPayment(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payments").
		WithArgs(paymentInsertArgs()...).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectQuery("SELECT id, reservation_id, student_email FROM payments").
		WithArgs("pi_123").
		WillReturnRows(pgxmock.NewRows([]string{"id", "reservation_id", "student_email"}).
			AddRow("pay-original", "res-1", "s@academy.io"))
	mock.ExpectExec("DELETE FROM reservations").
		WithArgs("res-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectCommit()

	res, err := NewPaymentRepository(mock).Settle(context.Background(), testPayment())
	require.NoError(t, err)

	assert.False(t, res.InsertResult.Inserted)
	assert.Equal(t, "pay-original", res.InsertResult.InsertedID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettleRejectsTransactionFromAnotherReservation(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payments").
		WithArgs(paymentInsertArgs()...).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectQuery("SELECT id, reservation_id, student_email FROM payments").
		WithArgs("pi_123").
		WillReturnRows(pgxmock.NewRows([]string{"id", "reservation_id", "student_email"}).
			AddRow("pay-alice", "res-alice", "alice@academy.io"))
	mock.ExpectRollback()

	res, err := NewPaymentRepository(mock).Settle(context.Background(), testPayment())
	assert.ErrorIs(t, err, ErrTransactionReused)
	assert.Equal(t, int64(0), res.DeleteResult.DeletedCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettleRollsBackWhenDeleteFails(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payments").
		WithArgs(paymentInsertArgs()...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("DELETE FROM reservations").
		WithArgs("res-1").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := NewPaymentRepository(mock).Settle(context.Background(), testPayment())
	assert.ErrorContains(t, err, "delete reservation")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPaymentsNewestFirst(t *testing.T) {
	mock := newMock(t)
	t3 := time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC)
	t1 := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	cols := []string{"id", "student_email", "reservation_id", "class_id", "class_name", "amount", "transaction_id", "paid_at"}
	mock.ExpectQuery("ORDER BY paid_at DESC").
		WithArgs("s@academy.io").
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow("p3", "s@academy.io", "r3", "c", "Swim", 30.0, "pi_3", t3).
			AddRow("p1", "s@academy.io", "r1", "c", "Swim", 10.0, "", t1))

	got, err := NewPaymentRepository(mock).ListByStudent(context.Background(), "s@academy.io")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p3", got[0].ID)
	assert.Equal(t, t3, got[0].PaidAt)
	assert.Equal(t, "", got[1].TransactionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
