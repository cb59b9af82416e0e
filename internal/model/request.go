package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError is returned when a request body or parameter fails its schema.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks v against its `validate` struct tags and reports the first
// failing field as a *ValidationError.
func Validate(v any) error {
	return toValidationError("", validate.Struct(v))
}

// ValidateVar checks a single value, such as a path parameter.
func ValidateVar(field string, value any, tag string) error {
	return toValidationError(field, validate.Var(value, tag))
}

func toValidationError(field string, err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: field, Message: err.Error()}
	}
	fe := fieldErrs[0]
	if field == "" {
		field = fe.Field()
	}
	return &ValidationError{Field: field, Message: describe(fe)}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " long"
	default:
		return "failed " + fe.Tag() + " check"
	}
}

// UpsertUserRequest is the body of PUT /users/{email}.
type UpsertUserRequest struct {
	Name     string `json:"name" validate:"max=120"`
	PhotoURL string `json:"photoUrl" validate:"omitempty,url"`
}

// SetRoleRequest is the body of PATCH /users/{email}/role.
type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=unset student instructor admin"`
}

// ClassRequest is the body of POST /classes and PUT /classes/{id}.
type ClassRequest struct {
	Name           string  `json:"name" validate:"required,max=200"`
	ImageURL       string  `json:"imageUrl" validate:"omitempty,url"`
	InstructorName string  `json:"instructorName" validate:"max=120"`
	Price          float64 `json:"price" validate:"gte=0"`
	AvailableSeats int     `json:"availableSeats" validate:"gte=0"`
}

// ClassStatusRequest is the body of PATCH /classes/{id}/status.
type ClassStatusRequest struct {
	Status   string `json:"status" validate:"required,oneof=approved denied"`
	Feedback string `json:"feedback" validate:"max=1000"`
}

// ReservationRequest is the body of POST /sports.
type ReservationRequest struct {
	StudentEmail string `json:"studentEmail" validate:"required,email"`
	ClassID      string `json:"classId" validate:"required"`
}

// Charge amounts are in major currency units. The bounds keep the converted
// minor-unit value inside int64 and non-zero.
const (
	MinChargeAmount = 0.01
	MaxChargeAmount = 999999.99
)

// PaymentIntentRequest is the body of POST /create-payment-intent.
type PaymentIntentRequest struct {
	Amount         float64 `json:"amount" validate:"gte=0.01,lte=999999.99"`
	IdempotencyKey string  `json:"idempotencyKey" validate:"max=255"`
}

// SettleRequest is the body of POST /payment.
type SettleRequest struct {
	StudentEmail  string  `json:"studentEmail" validate:"required,email"`
	ReservationID string  `json:"bookmarkedId" validate:"required"`
	ClassID       string  `json:"classId"`
	ClassName     string  `json:"className" validate:"max=200"`
	Amount        float64 `json:"amount" validate:"gte=0.01,lte=999999.99"`
	TransactionID string  `json:"transactionId" validate:"max=255"`
}
