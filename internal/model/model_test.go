package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"":           RoleUnset,
		"unset":      RoleUnset,
		"student":    RoleStudent,
		"Instructor": RoleInstructor,
		" admin ":    RoleAdmin,
	}
	for in, want := range cases {
		got, err := ParseRole(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseRole("superuser")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "role", verr.Field)
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "unset", RoleUnset.String())
	assert.Equal(t, "admin", RoleAdmin.String())
	assert.True(t, RoleAdmin.IsAny(RoleInstructor, RoleAdmin))
	assert.False(t, RoleStudent.IsAny(RoleInstructor, RoleAdmin))
}

func TestClassStatusTransitions(t *testing.T) {
	assert.True(t, ClassPending.CanTransition(ClassApproved))
	assert.True(t, ClassPending.CanTransition(ClassDenied))
	assert.True(t, ClassApproved.CanTransition(ClassDenied))
	assert.True(t, ClassDenied.CanTransition(ClassApproved))
	assert.False(t, ClassApproved.CanTransition(ClassApproved))
	assert.False(t, ClassApproved.CanTransition(ClassPending))
	assert.False(t, ClassStatus("archived").CanTransition(ClassApproved))
}

func TestValidateReportsJSONFieldName(t *testing.T) {
	err := Validate(ReservationRequest{StudentEmail: "not-an-email", ClassID: "c1"})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "studentEmail", verr.Field)
	assert.Equal(t, "must be a valid email address", verr.Message)
}

func TestValidateSettleRequest(t *testing.T) {
	ok := SettleRequest{StudentEmail: "s@academy.io", ReservationID: "r1", Amount: 50}
	assert.NoError(t, Validate(ok))

	bad := ok
	bad.Amount = 0
	var verr *ValidationError
	require.True(t, errors.As(Validate(bad), &verr))
	assert.Equal(t, "amount", verr.Field)
}

func TestValidateChargeAmountBounds(t *testing.T) {
	cases := []struct {
		amount float64
		msg    string
	}{
		{MinChargeAmount, ""},
		{MaxChargeAmount, ""},
		{12.5, ""},
		{0, "must be at least 0.01"},
		{0.004, "must be at least 0.01"},
		{-3, "must be at least 0.01"},
		{1000000, "must be at most 999999.99"},
		{1e17, "must be at most 999999.99"},
	}
	for _, tc := range cases {
		intent := PaymentIntentRequest{Amount: tc.amount}
		settle := SettleRequest{StudentEmail: "s@academy.io", ReservationID: "r1", Amount: tc.amount}
		for _, err := range []error{Validate(intent), Validate(settle)} {
			if tc.msg == "" {
				assert.NoError(t, err, tc.amount)
				continue
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), tc.amount)
			assert.Equal(t, "amount", verr.Field)
			assert.Equal(t, tc.msg, verr.Message)
		}
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, ValidateVar("email", "a@b.co", "required,email"))

	var verr *ValidationError
	require.True(t, errors.As(ValidateVar("email", "nope", "required,email"), &verr))
	assert.Equal(t, "email", verr.Field)
}
