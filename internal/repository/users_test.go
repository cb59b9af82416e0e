package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"email", "name", "photo_url", "role", "created_at", "updated_at"}

func TestUpsertCreatesStudent(t *testing.T) {
	mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("ann@academy.io", "Ann", "", "student", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(userCols).AddRow("ann@academy.io", "Ann", "", "student", now, now))

	u, err := NewUserRepository(mock).Upsert(context.Background(), "ann@academy.io", model.UpsertUserRequest{Name: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, u.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmailNotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("FROM users WHERE email").
		WithArgs("ghost@academy.io").
		WillReturnError(pgx.ErrNoRows)

	_, err := NewUserRepository(mock).GetByEmail(context.Background(), "ghost@academy.io")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByRole(t *testing.T) {
	mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery("WHERE role = ").
		WithArgs("instructor").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow("i1@academy.io", "Ivy", "", "instructor", now, now).
			AddRow("i2@academy.io", "Ike", "", "instructor", now, now))

	users, err := NewUserRepository(mock).ListByRole(context.Background(), model.RoleInstructor)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, model.RoleInstructor, users[1].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetRoleMissingUser(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("UPDATE users SET role").
		WithArgs("ghost@academy.io", "admin", pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	_, err := NewUserRepository(mock).SetRole(context.Background(), "ghost@academy.io", model.RoleAdmin)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateClassStatusStale(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("UPDATE classes SET status").
		WithArgs("c1", "pending", "approved", "").
		WillReturnError(pgx.ErrNoRows)

	_, err := NewClassRepository(mock).UpdateStatus(context.Background(), "c1", model.ClassPending, model.ClassApproved, "")
	assert.ErrorIs(t, err, ErrStaleStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReservationReportsCount(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("DELETE FROM reservations").
		WithArgs("r1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	n, err := NewReservationRepository(mock).Delete(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
